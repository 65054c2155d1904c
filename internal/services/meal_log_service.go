package services

import (
	"math"
	"time"

	"github.com/terraincognita07/nutrismart/internal/models"
	"github.com/terraincognita07/nutrismart/internal/nutrition"
	"go.uber.org/zap"
)

const (
	DefaultRankingLimit = 10
	DailyWaterLiters    = 2.0
)

type MealEntryRepository interface {
	Create(entry *models.MealEntry) error
	ListByUser(email string) ([]models.MealEntry, error)
	ListDayCalories(email string, dayStart string, dayEnd string) ([]models.MealCalorieRow, error)
	CountByUserDay(email string, dayStart string, dayEnd string) (int64, error)
	RankFoodsByUser(email string, limit int) ([]models.FoodTotal, error)
}

type MealUserLookup interface {
	FindByEmail(email string) (models.User, bool, error)
}

type MealFoodLookup interface {
	FindByName(name string) (models.Food, bool, error)
}

type DailySummary struct {
	Day              time.Time
	TotalCalories    float64
	TargetCalories   float64
	Status           nutrition.SummaryStatus
	Entries          int
	UnmatchedEntries int
}

type Reminders struct {
	MealsRecorded int64
	WaterLiters   float64
}

func (reminders Reminders) HasMeals() bool {
	return reminders.MealsRecorded > 0
}

type MealLogService struct {
	meals    MealEntryRepository
	users    MealUserLookup
	foods    MealFoodLookup
	locks    *EmailLocks
	location *time.Location
	log      *zap.Logger
	now      func() time.Time
}

func NewMealLogService(meals MealEntryRepository, users MealUserLookup, foods MealFoodLookup, locks *EmailLocks, location *time.Location, log *zap.Logger) *MealLogService {
	if location == nil {
		location = time.UTC
	}
	if locks == nil {
		locks = NewEmailLocks()
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &MealLogService{
		meals:    meals,
		users:    users,
		foods:    foods,
		locks:    locks,
		location: location,
		log:      log,
		now:      time.Now,
	}
}

func (service *MealLogService) RecordMeal(email string, foodName string, quantityGrams float64) (models.MealEntry, error) {
	email = NormalizeEmail(email)
	foodName = NormalizeFoodName(foodName)
	if !(quantityGrams > 0) || math.IsInf(quantityGrams, 1) {
		return models.MealEntry{}, ErrInvalidQuantity
	}

	unlock := service.locks.Lock(email)
	defer unlock()

	if _, err := service.findUser(email); err != nil {
		return models.MealEntry{}, err
	}
	food, found, err := service.foods.FindByName(foodName)
	if err != nil {
		return models.MealEntry{}, storageError("load food", err)
	}
	if !found {
		return models.MealEntry{}, ErrFoodNotFound
	}

	entry := models.MealEntry{
		UserEmail:     email,
		FoodName:      food.Name,
		QuantityGrams: quantityGrams,
		Timestamp:     service.now().In(service.location).Format(models.MealTimestampLayout),
		Calories:      nutrition.Round2(food.CaloriesPer100g * quantityGrams / 100),
	}
	if err := service.meals.Create(&entry); err != nil {
		service.log.Error("record meal failed", zap.String("email", email), zap.String("food", food.Name), zap.Error(err))
		return models.MealEntry{}, storageError("create meal entry", err)
	}

	service.log.Info("meal recorded",
		zap.String("email", email),
		zap.String("food", food.Name),
		zap.Float64("grams", quantityGrams),
		zap.Uint("id", entry.ID),
	)
	return entry, nil
}

// ListMeals returns the user's entries, newest first.
func (service *MealLogService) ListMeals(email string) ([]models.MealEntry, error) {
	email = NormalizeEmail(email)
	if _, err := service.findUser(email); err != nil {
		return nil, err
	}
	entries, err := service.meals.ListByUser(email)
	if err != nil {
		return nil, storageError("list meals", err)
	}
	return entries, nil
}

// DailySummary totals the calories of the given day using the catalog's
// current values. Entries whose food left the catalog are counted apart.
func (service *MealLogService) DailySummary(email string, day time.Time) (DailySummary, error) {
	email = NormalizeEmail(email)
	user, err := service.findUser(email)
	if err != nil {
		return DailySummary{}, err
	}

	start, end := dayBounds(day, service.location)
	rows, err := service.meals.ListDayCalories(email, start, end)
	if err != nil {
		return DailySummary{}, storageError("load day calories", err)
	}
	if len(rows) == 0 {
		return DailySummary{}, ErrNoMealsToday
	}

	summary := DailySummary{
		Day:     DateAtLocation(day, service.location),
		Entries: len(rows),
	}
	total := 0.0
	for _, row := range rows {
		if row.CaloriesPer100g == nil {
			summary.UnmatchedEntries++
			continue
		}
		total += *row.CaloriesPer100g * row.QuantityGrams / 100
	}
	summary.TotalCalories = nutrition.Round2(total)
	summary.TargetCalories = nutrition.DailyCalorieTarget(user.Diet, user.WeightKg)
	summary.Status = nutrition.EvaluateCalories(summary.TotalCalories, summary.TargetCalories)
	return summary, nil
}

// FoodRanking lists foods by total grams eaten. A non-positive limit means
// DefaultRankingLimit.
func (service *MealLogService) FoodRanking(email string, limit int) ([]models.FoodTotal, error) {
	email = NormalizeEmail(email)
	if limit <= 0 {
		limit = DefaultRankingLimit
	}
	if _, err := service.findUser(email); err != nil {
		return nil, err
	}
	totals, err := service.meals.RankFoodsByUser(email, limit)
	if err != nil {
		return nil, storageError("rank foods", err)
	}
	return totals, nil
}

func (service *MealLogService) DailyReminders(email string, day time.Time) (Reminders, error) {
	email = NormalizeEmail(email)
	if _, err := service.findUser(email); err != nil {
		return Reminders{}, err
	}
	start, end := dayBounds(day, service.location)
	count, err := service.meals.CountByUserDay(email, start, end)
	if err != nil {
		return Reminders{}, storageError("count meals", err)
	}
	return Reminders{MealsRecorded: count, WaterLiters: DailyWaterLiters}, nil
}

// Today is the current day in the service location.
func (service *MealLogService) Today() time.Time {
	return DateAtLocation(service.now(), service.location)
}

func (service *MealLogService) findUser(email string) (models.User, error) {
	user, found, err := service.users.FindByEmail(email)
	if err != nil {
		return models.User{}, storageError("load user", err)
	}
	if !found {
		return models.User{}, ErrUserNotFound
	}
	return user, nil
}
