package db

import (
	"github.com/terraincognita07/nutrismart/internal/models"
	"gorm.io/gorm"
)

type UserRepository struct {
	database *gorm.DB
}

func NewUserRepository(database *gorm.DB) *UserRepository {
	return &UserRepository{database: database}
}

func (repo *UserRepository) ExistsByEmail(email string) (bool, error) {
	var matched int64
	if err := repo.database.Model(&models.User{}).
		Where("email = ?", email).
		Count(&matched).Error; err != nil {
		return false, err
	}
	return matched > 0, nil
}

func (repo *UserRepository) FindByEmail(email string) (models.User, bool, error) {
	var user models.User
	result := repo.database.Where("email = ?", email).Limit(1).Find(&user)
	if result.Error != nil {
		return models.User{}, false, result.Error
	}
	if result.RowsAffected == 0 {
		return models.User{}, false, nil
	}
	return user, true, nil
}

func (repo *UserRepository) Create(user *models.User) error {
	return repo.database.Create(user).Error
}

func (repo *UserRepository) UpdateProfile(email string, weightKg float64, heightM float64, diet models.Diet, bmi float64) (bool, error) {
	result := repo.database.Model(&models.User{}).Where("email = ?", email).Updates(map[string]any{
		"weight_kg": weightKg,
		"height_m":  heightM,
		"diet":      diet,
		"bmi":       bmi,
	})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (repo *UserRepository) UpdateCredential(email string, credential string) (bool, error) {
	result := repo.database.Model(&models.User{}).Where("email = ?", email).Update("credential", credential)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (repo *UserRepository) List() ([]models.User, error) {
	users := make([]models.User, 0)
	if err := repo.database.Order("created_at ASC, email ASC").Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}
