package models

type Food struct {
	Name            string  `gorm:"primaryKey"`
	CaloriesPer100g float64 `gorm:"column:calories_per_100g;not null"`
}
