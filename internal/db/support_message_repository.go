package db

import (
	"time"

	"github.com/terraincognita07/nutrismart/internal/models"
	"gorm.io/gorm"
)

type SupportMessageRepository struct {
	database *gorm.DB
}

func NewSupportMessageRepository(database *gorm.DB) *SupportMessageRepository {
	return &SupportMessageRepository{database: database}
}

func (repo *SupportMessageRepository) Create(message *models.SupportMessage) error {
	return repo.database.Create(message).Error
}

func (repo *SupportMessageRepository) ListByUser(email string) ([]models.SupportMessage, error) {
	messages := make([]models.SupportMessage, 0)
	if err := repo.database.Where("user_email = ?", email).Order("id ASC").Find(&messages).Error; err != nil {
		return nil, err
	}
	return messages, nil
}

func (repo *SupportMessageRepository) ListAll() ([]models.SupportMessage, error) {
	messages := make([]models.SupportMessage, 0)
	if err := repo.database.Order("id ASC").Find(&messages).Error; err != nil {
		return nil, err
	}
	return messages, nil
}

func (repo *SupportMessageRepository) UpdateResponse(messageID uint, response string, answeredAt time.Time) (bool, error) {
	result := repo.database.Model(&models.SupportMessage{}).Where("id = ?", messageID).Updates(map[string]any{
		"response":    response,
		"answered_at": answeredAt,
	})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}
