package cli

import (
	"errors"

	"github.com/terraincognita07/nutrismart/internal/nutrition"
	"github.com/terraincognita07/nutrismart/internal/services"
)

var errorMessageKeys = []struct {
	err error
	key string
}{
	{services.ErrInvalidEmail, "error.invalid_email"},
	{services.ErrDuplicateEmail, "error.duplicate_email"},
	{services.ErrInvalidCredential, "error.invalid_credential"},
	{services.ErrInvalidMeasurement, "error.invalid_measurement"},
	{services.ErrInvalidSex, "error.invalid_sex"},
	{services.ErrInvalidDiet, "error.invalid_diet"},
	{services.ErrInvalidRecoveryQuestion, "error.invalid_question"},
	{services.ErrUserNotFound, "error.user_not_found"},
	{services.ErrWrongCredential, "error.wrong_credential"},
	{services.ErrWrongAnswer, "error.wrong_answer"},
	{services.ErrInvalidFoodName, "error.invalid_food_name"},
	{services.ErrInvalidCalories, "error.invalid_calories"},
	{services.ErrDuplicateFood, "error.duplicate_food"},
	{services.ErrFoodNotFound, "error.food_not_found"},
	{services.ErrInvalidQuantity, "error.invalid_quantity"},
	{services.ErrNoMealsToday, "error.no_meals_today"},
	{services.ErrEmptyMessage, "error.empty_message"},
	{services.ErrMessageNotFound, "error.message_not_found"},
	{services.ErrCredentialResetUnsupported, "error.reset_unsupported"},
	{services.ErrTooManyAttempts, "error.too_many_attempts"},
	{nutrition.ErrDietNotFound, "error.diet_list_missing"},
	{errInvalidNumber, "error.invalid_number"},
}

var categoryMessageKeys = map[services.Category]string{
	services.CategoryValidation: "error.validation",
	services.CategoryNotFound:   "error.not_found",
	services.CategoryConflict:   "error.conflict",
	services.CategoryAuth:       "error.auth",
	services.CategoryStorage:    "error.storage",
}

func errorMessageKey(err error) string {
	if errors.Is(err, services.ErrStorage) {
		return "error.storage"
	}
	for _, candidate := range errorMessageKeys {
		if errors.Is(err, candidate.err) {
			return candidate.key
		}
	}
	if key, ok := categoryMessageKeys[services.CategoryOf(err)]; ok {
		return key
	}
	return "error.unknown"
}
