package models

import "time"

// MealTimestampLayout is the text layout of meal_entries.timestamp.
const MealTimestampLayout = "2006-01-02 15:04:05"

type MealEntry struct {
	ID            uint    `gorm:"primaryKey"`
	UserEmail     string  `gorm:"not null;index"`
	FoodName      string  `gorm:"not null"`
	QuantityGrams float64 `gorm:"not null"`
	Timestamp     string  `gorm:"not null"`
	Calories      float64 `gorm:"not null;default:0"`
}

func (entry MealEntry) RecordedAt(location *time.Location) (time.Time, error) {
	if location == nil {
		location = time.UTC
	}
	return time.ParseInLocation(MealTimestampLayout, entry.Timestamp, location)
}

// FoodTotal is one row of a user's most-consumed foods ranking.
type FoodTotal struct {
	FoodName   string  `gorm:"column:food_name"`
	TotalGrams float64 `gorm:"column:total_grams"`
}

// MealCalorieRow joins a meal entry with the current catalog value of its food.
// CaloriesPer100g is nil when the food was removed from the catalog after recording.
type MealCalorieRow struct {
	ID              uint     `gorm:"column:id"`
	FoodName        string   `gorm:"column:food_name"`
	QuantityGrams   float64  `gorm:"column:quantity_grams"`
	CaloriesPer100g *float64 `gorm:"column:calories_per_100g"`
}
