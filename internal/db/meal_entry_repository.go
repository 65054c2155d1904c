package db

import (
	"github.com/terraincognita07/nutrismart/internal/models"
	"gorm.io/gorm"
)

type MealEntryRepository struct {
	database *gorm.DB
}

func NewMealEntryRepository(database *gorm.DB) *MealEntryRepository {
	return &MealEntryRepository{database: database}
}

func (repo *MealEntryRepository) Create(entry *models.MealEntry) error {
	return repo.database.Create(entry).Error
}

func (repo *MealEntryRepository) ListByUser(email string) ([]models.MealEntry, error) {
	entries := make([]models.MealEntry, 0)
	if err := repo.database.
		Where("user_email = ?", email).
		Order("timestamp DESC, id DESC").
		Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

// ListDayCalories returns the user's entries in [dayStart, dayEnd) joined with
// the current catalog calories. Bounds use models.MealTimestampLayout.
func (repo *MealEntryRepository) ListDayCalories(email string, dayStart string, dayEnd string) ([]models.MealCalorieRow, error) {
	rows := make([]models.MealCalorieRow, 0)
	if err := repo.database.
		Table("meal_entries").
		Select("meal_entries.id, meal_entries.food_name, meal_entries.quantity_grams, foods.calories_per_100g").
		Joins("LEFT JOIN foods ON foods.name = meal_entries.food_name").
		Where("meal_entries.user_email = ? AND meal_entries.timestamp >= ? AND meal_entries.timestamp < ?", email, dayStart, dayEnd).
		Order("meal_entries.id ASC").
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (repo *MealEntryRepository) CountByUserDay(email string, dayStart string, dayEnd string) (int64, error) {
	var count int64
	if err := repo.database.Model(&models.MealEntry{}).
		Where("user_email = ? AND timestamp >= ? AND timestamp < ?", email, dayStart, dayEnd).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// RankFoodsByUser sums grams per food, largest first. Ties keep the order in
// which each food was first recorded.
func (repo *MealEntryRepository) RankFoodsByUser(email string, limit int) ([]models.FoodTotal, error) {
	totals := make([]models.FoodTotal, 0)
	if err := repo.database.
		Table("meal_entries").
		Select("food_name, SUM(quantity_grams) AS total_grams").
		Where("user_email = ?", email).
		Group("food_name").
		Order("total_grams DESC, MIN(id) ASC").
		Limit(limit).
		Scan(&totals).Error; err != nil {
		return nil, err
	}
	return totals, nil
}
