package services

import (
	"fmt"

	"github.com/juju/errors"
)

// ErrStorage marks persistence failures. They are never retried here; the
// caller decides whether to repeat the whole interaction.
const ErrStorage = errors.ConstError("storage failure")

var (
	ErrInvalidEmail            = errors.NotValidf("email")
	ErrInvalidCredential       = errors.NotValidf("credential")
	ErrInvalidMeasurement      = errors.NotValidf("weight or height")
	ErrInvalidSex              = errors.NotValidf("sex")
	ErrInvalidDiet             = errors.NotValidf("diet")
	ErrInvalidRecoveryQuestion = errors.NotValidf("recovery question")
	ErrInvalidFoodName         = errors.NotValidf("food name")
	ErrInvalidCalories         = errors.NotValidf("calories per 100g")
	ErrInvalidQuantity         = errors.NotValidf("quantity")
	ErrEmptyMessage            = errors.NotValidf("empty message")

	ErrUserNotFound    = errors.NotFoundf("user")
	ErrFoodNotFound    = errors.NotFoundf("food")
	ErrMessageNotFound = errors.NotFoundf("support message")
	ErrNoMealsToday    = errors.NotFoundf("meals for the day")

	ErrDuplicateEmail = errors.AlreadyExistsf("email")
	ErrDuplicateFood  = errors.AlreadyExistsf("food")

	ErrWrongCredential = errors.Unauthorizedf("credential")
	ErrWrongAnswer     = errors.Unauthorizedf("recovery answer")
)

type Category string

const (
	CategoryNone       Category = ""
	CategoryValidation Category = "validation"
	CategoryNotFound   Category = "not_found"
	CategoryConflict   Category = "conflict"
	CategoryAuth       Category = "auth"
	CategoryStorage    Category = "storage"
	CategoryUnknown    Category = "unknown"
)

// CategoryOf maps err onto the error taxonomy shown to users.
func CategoryOf(err error) Category {
	switch {
	case err == nil:
		return CategoryNone
	case errors.Is(err, ErrStorage):
		return CategoryStorage
	case errors.Is(err, errors.NotValid):
		return CategoryValidation
	case errors.Is(err, errors.NotFound):
		return CategoryNotFound
	case errors.Is(err, errors.AlreadyExists):
		return CategoryConflict
	case errors.Is(err, errors.Unauthorized):
		return CategoryAuth
	default:
		return CategoryUnknown
	}
}

func storageError(operation string, err error) error {
	return fmt.Errorf("%w: %s: %v", ErrStorage, operation, err)
}
