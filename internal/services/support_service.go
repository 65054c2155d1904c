package services

import (
	"strings"
	"time"

	"github.com/juju/errors"
	"github.com/terraincognita07/nutrismart/internal/models"
	"go.uber.org/zap"
)

type SupportMessageRepository interface {
	Create(message *models.SupportMessage) error
	ListByUser(email string) ([]models.SupportMessage, error)
	ListAll() ([]models.SupportMessage, error)
	UpdateResponse(messageID uint, response string, answeredAt time.Time) (bool, error)
}

type SupportUserLookup interface {
	ExistsByEmail(email string) (bool, error)
}

type SupportService struct {
	messages SupportMessageRepository
	users    SupportUserLookup
	log      *zap.Logger
	now      func() time.Time
}

func NewSupportService(messages SupportMessageRepository, users SupportUserLookup, log *zap.Logger) *SupportService {
	if log == nil {
		log = zap.NewNop()
	}
	return &SupportService{messages: messages, users: users, log: log, now: time.Now}
}

func (service *SupportService) SubmitMessage(email string, text string) (uint, error) {
	email = NormalizeEmail(email)
	text = strings.TrimSpace(text)
	if text == "" {
		return 0, ErrEmptyMessage
	}

	exists, err := service.users.ExistsByEmail(email)
	if err != nil {
		return 0, storageError("check user", err)
	}
	if !exists {
		return 0, ErrUserNotFound
	}

	message := models.SupportMessage{UserEmail: email, Message: text, CreatedAt: service.now().UTC()}
	if err := service.messages.Create(&message); err != nil {
		service.log.Error("submit support message failed", zap.String("email", email), zap.Error(err))
		return 0, storageError("create support message", err)
	}
	service.log.Info("support message submitted", zap.String("email", email), zap.Uint("id", message.ID))
	return message.ID, nil
}

func (service *SupportService) ListMessagesForUser(email string) ([]models.SupportMessage, error) {
	messages, err := service.messages.ListByUser(NormalizeEmail(email))
	if err != nil {
		return nil, storageError("list user messages", err)
	}
	return messages, nil
}

func (service *SupportService) ListAllMessages() ([]models.SupportMessage, error) {
	messages, err := service.messages.ListAll()
	if err != nil {
		return nil, storageError("list messages", err)
	}
	return messages, nil
}

// AnswerMessage sets the response of a message, replacing any earlier one.
func (service *SupportService) AnswerMessage(messageID uint, response string) error {
	response = strings.TrimSpace(response)
	if response == "" {
		return ErrEmptyMessage
	}

	updated, err := service.messages.UpdateResponse(messageID, response, service.now().UTC())
	if err != nil {
		return storageError("answer message", err)
	}
	if !updated {
		return errors.Annotatef(ErrMessageNotFound, "id %d", messageID)
	}
	service.log.Info("support message answered", zap.Uint("id", messageID))
	return nil
}
