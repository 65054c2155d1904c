package services

import (
	"github.com/juju/errors"
	"golang.org/x/crypto/bcrypt"
)

// AdminService gates the administrator menu.
type AdminService struct {
	passwordHash []byte
	attempts     *AttemptLimiter
}

const adminAttemptKey = "admin"

func NewAdminService(password string, attempts *AttemptLimiter) (*AdminService, error) {
	if password == "" {
		return nil, errors.NotValidf("empty admin password")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, errors.Annotate(err, "hash admin password")
	}
	return &AdminService{passwordHash: hash, attempts: attempts}, nil
}

func (service *AdminService) Authenticate(password string) error {
	if err := service.attempts.Check(adminAttemptKey); err != nil {
		return err
	}
	if bcrypt.CompareHashAndPassword(service.passwordHash, []byte(password)) != nil {
		service.attempts.Fail(adminAttemptKey)
		return ErrWrongCredential
	}
	service.attempts.Reset(adminAttemptKey)
	return nil
}
