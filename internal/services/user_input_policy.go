package services

import (
	"math"
	"strings"

	"github.com/terraincognita07/nutrismart/internal/models"
	"github.com/terraincognita07/nutrismart/internal/nutrition"
)

type RegistrationInput struct {
	Email            string
	Credential       string
	WeightKg         float64
	HeightM          float64
	Sex              models.Sex
	Diet             models.Diet
	RecoveryQuestion models.RecoveryQuestion
	RecoveryAnswer   string
}

// NormalizeEmail trims surrounding blanks. Case is kept: emails are
// case-sensitive identities.
func NormalizeEmail(raw string) string {
	return strings.TrimSpace(raw)
}

// NormalizeCredential trims surrounding blanks. Registration stores and
// login compares the trimmed form.
func NormalizeCredential(raw string) string {
	return strings.TrimSpace(raw)
}

func NormalizeRecoveryAnswer(raw string) string {
	return strings.ToLower(strings.TrimSpace(raw))
}

func NormalizeFoodName(raw string) string {
	return strings.ToLower(strings.TrimSpace(raw))
}

func NormalizeRegistrationInput(input RegistrationInput) RegistrationInput {
	input.Email = NormalizeEmail(input.Email)
	input.Credential = NormalizeCredential(input.Credential)
	input.Sex = models.Sex(strings.ToUpper(strings.TrimSpace(string(input.Sex))))
	input.RecoveryAnswer = NormalizeRecoveryAnswer(input.RecoveryAnswer)
	return input
}

// ValidateRegistrationInput checks every field that does not need storage.
// The input is expected to be normalized.
func ValidateRegistrationInput(input RegistrationInput) error {
	if !nutrition.ValidateEmail(input.Email) {
		return ErrInvalidEmail
	}
	if input.Credential == "" {
		return ErrInvalidCredential
	}
	if err := validateMeasurements(input.WeightKg, input.HeightM); err != nil {
		return err
	}
	if !input.Sex.Valid() {
		return ErrInvalidSex
	}
	if !input.Diet.Valid() {
		return ErrInvalidDiet
	}
	if !input.RecoveryQuestion.Valid() {
		return ErrInvalidRecoveryQuestion
	}
	return nil
}

func validateMeasurements(weightKg float64, heightM float64) error {
	if !(weightKg > 0) || !(heightM > 0) || math.IsInf(weightKg, 0) || math.IsInf(heightM, 0) {
		return ErrInvalidMeasurement
	}
	return nil
}
