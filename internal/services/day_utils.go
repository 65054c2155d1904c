package services

import (
	"time"

	"github.com/terraincognita07/nutrismart/internal/models"
)

func DateAtLocation(value time.Time, location *time.Location) time.Time {
	if location == nil {
		location = time.UTC
	}
	localized := value.In(location)
	year, month, day := localized.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, location)
}

func DayRange(value time.Time, location *time.Location) (time.Time, time.Time) {
	start := DateAtLocation(value, location)
	return start, start.AddDate(0, 0, 1)
}

// dayBounds renders DayRange in the meal timestamp layout so it can be
// compared against the stored text column.
func dayBounds(value time.Time, location *time.Location) (string, string) {
	start, end := DayRange(value, location)
	return start.Format(models.MealTimestampLayout), end.Format(models.MealTimestampLayout)
}
