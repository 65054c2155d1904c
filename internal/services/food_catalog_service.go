package services

import (
	"math"
	"sync"

	"github.com/juju/errors"
	"github.com/terraincognita07/nutrismart/internal/models"
	"go.uber.org/zap"
)

type FoodRepository interface {
	FindByName(name string) (models.Food, bool, error)
	Create(food *models.Food) error
	DeleteByName(name string) (bool, error)
	List() ([]models.Food, error)
}

type FoodCatalogService struct {
	mu    sync.Mutex
	foods FoodRepository
	log   *zap.Logger
}

func NewFoodCatalogService(foods FoodRepository, log *zap.Logger) *FoodCatalogService {
	if log == nil {
		log = zap.NewNop()
	}
	return &FoodCatalogService{foods: foods, log: log}
}

func (service *FoodCatalogService) AddFood(name string, caloriesPer100g float64) (models.Food, error) {
	name = NormalizeFoodName(name)
	if name == "" {
		return models.Food{}, ErrInvalidFoodName
	}
	if !(caloriesPer100g > 0) || math.IsInf(caloriesPer100g, 1) {
		return models.Food{}, ErrInvalidCalories
	}

	service.mu.Lock()
	defer service.mu.Unlock()

	_, found, err := service.foods.FindByName(name)
	if err != nil {
		return models.Food{}, storageError("load food", err)
	}
	if found {
		return models.Food{}, errors.Annotatef(ErrDuplicateFood, "%s", name)
	}

	food := models.Food{Name: name, CaloriesPer100g: caloriesPer100g}
	if err := service.foods.Create(&food); err != nil {
		service.log.Error("add food failed", zap.String("food", name), zap.Error(err))
		return models.Food{}, storageError("create food", err)
	}
	service.log.Info("food added", zap.String("food", name), zap.Float64("calories_per_100g", caloriesPer100g))
	return food, nil
}

func (service *FoodCatalogService) ListFoods() ([]models.Food, error) {
	foods, err := service.foods.List()
	if err != nil {
		return nil, storageError("list foods", err)
	}
	return foods, nil
}

// FindFood looks a food up by its normalized name.
func (service *FoodCatalogService) FindFood(name string) (models.Food, error) {
	food, found, err := service.foods.FindByName(NormalizeFoodName(name))
	if err != nil {
		return models.Food{}, storageError("load food", err)
	}
	if !found {
		return models.Food{}, ErrFoodNotFound
	}
	return food, nil
}

// RemoveFood deletes a catalog entry. Past meal entries keep their food name.
func (service *FoodCatalogService) RemoveFood(name string) error {
	name = NormalizeFoodName(name)

	service.mu.Lock()
	defer service.mu.Unlock()

	deleted, err := service.foods.DeleteByName(name)
	if err != nil {
		return storageError("delete food", err)
	}
	if !deleted {
		return errors.Annotatef(ErrFoodNotFound, "%s", name)
	}
	service.log.Info("food removed", zap.String("food", name))
	return nil
}
