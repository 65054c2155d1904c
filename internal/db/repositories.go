package db

import "gorm.io/gorm"

type Repositories struct {
	Users    *UserRepository
	Foods    *FoodRepository
	Meals    *MealEntryRepository
	Messages *SupportMessageRepository
}

func NewRepositories(database *gorm.DB) *Repositories {
	return &Repositories{
		Users:    NewUserRepository(database),
		Foods:    NewFoodRepository(database),
		Meals:    NewMealEntryRepository(database),
		Messages: NewSupportMessageRepository(database),
	}
}
