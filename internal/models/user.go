package models

import "time"

type Sex string

const (
	SexMale   Sex = "M"
	SexFemale Sex = "F"
)

func (sex Sex) Valid() bool {
	return sex == SexMale || sex == SexFemale
}

type Diet string

const (
	DietLowCarb     Diet = "LowCarb"
	DietKetogenic   Diet = "Ketogenic"
	DietHighProtein Diet = "HighProtein"
	DietBulking     Diet = "Bulking"
)

// Diets lists the selectable diets in menu order.
func Diets() []Diet {
	return []Diet{DietLowCarb, DietKetogenic, DietHighProtein, DietBulking}
}

func (diet Diet) Valid() bool {
	for _, known := range Diets() {
		if diet == known {
			return true
		}
	}
	return false
}

type RecoveryQuestion string

const (
	QuestionFirstPet     RecoveryQuestion = "first_pet"
	QuestionFavoriteFood RecoveryQuestion = "favorite_food"
	QuestionBirthCity    RecoveryQuestion = "birth_city"
)

func RecoveryQuestions() []RecoveryQuestion {
	return []RecoveryQuestion{QuestionFirstPet, QuestionFavoriteFood, QuestionBirthCity}
}

func (question RecoveryQuestion) Valid() bool {
	for _, known := range RecoveryQuestions() {
		if question == known {
			return true
		}
	}
	return false
}

type User struct {
	Email            string           `gorm:"primaryKey"`
	Credential       string           `gorm:"not null"`
	WeightKg         float64          `gorm:"not null"`
	HeightM          float64          `gorm:"not null"`
	Sex              Sex              `gorm:"not null"`
	Diet             Diet             `gorm:"not null"`
	BMI              float64          `gorm:"column:bmi;not null"`
	RecoveryQuestion RecoveryQuestion `gorm:"not null"`
	RecoveryAnswer   string           `gorm:"not null"`
	CreatedAt        time.Time        `gorm:"not null"`
}
