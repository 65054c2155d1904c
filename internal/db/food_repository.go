package db

import (
	"github.com/terraincognita07/nutrismart/internal/models"
	"gorm.io/gorm"
)

type FoodRepository struct {
	database *gorm.DB
}

func NewFoodRepository(database *gorm.DB) *FoodRepository {
	return &FoodRepository{database: database}
}

func (repo *FoodRepository) FindByName(name string) (models.Food, bool, error) {
	var food models.Food
	result := repo.database.Where("name = ?", name).Limit(1).Find(&food)
	if result.Error != nil {
		return models.Food{}, false, result.Error
	}
	if result.RowsAffected == 0 {
		return models.Food{}, false, nil
	}
	return food, true, nil
}

func (repo *FoodRepository) Create(food *models.Food) error {
	return repo.database.Create(food).Error
}

func (repo *FoodRepository) DeleteByName(name string) (bool, error) {
	result := repo.database.Where("name = ?", name).Delete(&models.Food{})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (repo *FoodRepository) List() ([]models.Food, error) {
	foods := make([]models.Food, 0)
	if err := repo.database.Order("name ASC").Find(&foods).Error; err != nil {
		return nil, err
	}
	return foods, nil
}
