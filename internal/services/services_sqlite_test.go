package services

import (
	"errors"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/terraincognita07/nutrismart/internal/db"
	"github.com/terraincognita07/nutrismart/internal/models"
	"github.com/terraincognita07/nutrismart/internal/nutrition"
)

type sqliteServices struct {
	directory *UserDirectoryService
	catalog   *FoodCatalogService
	meals     *MealLogService
	support   *SupportService
}

var fixedNow = time.Date(2026, time.March, 10, 12, 30, 0, 0, time.UTC)

func newSQLiteServices(t *testing.T) sqliteServices {
	t.Helper()

	database, err := db.OpenSQLite(filepath.Join(t.TempDir(), "services.db"), nil)
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() {
		_ = db.Close(database)
	})

	repos := db.NewRepositories(database)
	policy, err := NewCredentialPolicy(CredentialModePlain)
	if err != nil {
		t.Fatalf("credential policy: %v", err)
	}
	locks := NewEmailLocks()

	built := sqliteServices{
		directory: NewUserDirectoryService(repos.Users, policy, locks, nil, nil),
		catalog:   NewFoodCatalogService(repos.Foods, nil),
		meals:     NewMealLogService(repos.Meals, repos.Users, repos.Foods, locks, time.UTC, nil),
		support:   NewSupportService(repos.Messages, repos.Users, nil),
	}
	built.meals.now = func() time.Time { return fixedNow }
	built.support.now = func() time.Time { return fixedNow }
	return built
}

func (built sqliteServices) registerAna(t *testing.T) string {
	t.Helper()
	email, err := built.directory.Register(validRegistrationInput())
	if err != nil {
		t.Fatalf("Register() error: %v", err)
	}
	return email
}

func (built sqliteServices) addFood(t *testing.T, name string, calories float64) {
	t.Helper()
	if _, err := built.catalog.AddFood(name, calories); err != nil {
		t.Fatalf("AddFood(%q) error: %v", name, err)
	}
}

func (built sqliteServices) recordMeal(t *testing.T, email string, food string, grams float64) models.MealEntry {
	t.Helper()
	entry, err := built.meals.RecordMeal(email, food, grams)
	if err != nil {
		t.Fatalf("RecordMeal(%q, %v) error: %v", food, grams, err)
	}
	return entry
}

func TestSQLiteRegisterDuplicateEmail(t *testing.T) {
	built := newSQLiteServices(t)
	built.registerAna(t)

	again := validRegistrationInput()
	again.Credential = "outra"
	if _, err := built.directory.Register(again); CategoryOf(err) != CategoryConflict {
		t.Fatalf("second Register() = %v, want conflict", err)
	}
	if _, err := built.directory.Authenticate("ana@example.com", "segredo"); err != nil {
		t.Fatalf("first record must stay intact: %v", err)
	}

	users, err := built.directory.ListUsers()
	if err != nil {
		t.Fatalf("ListUsers() error: %v", err)
	}
	if len(users) != 1 {
		t.Fatalf("len(users) = %d, want 1", len(users))
	}
}

func TestSQLiteFoodCatalog(t *testing.T) {
	built := newSQLiteServices(t)

	food, err := built.catalog.AddFood("Rice", 130)
	if err != nil {
		t.Fatalf("AddFood() error: %v", err)
	}
	if food.Name != "rice" {
		t.Fatalf("food name = %q, want rice", food.Name)
	}
	if _, err := built.catalog.AddFood(" RICE ", 200); !errors.Is(err, ErrDuplicateFood) {
		t.Fatalf("AddFood(duplicate) = %v, want ErrDuplicateFood", err)
	}
	if _, err := built.catalog.AddFood("bean", 0); !errors.Is(err, ErrInvalidCalories) {
		t.Fatalf("AddFood(zero calories) = %v, want ErrInvalidCalories", err)
	}
	if _, err := built.catalog.AddFood("   ", 100); !errors.Is(err, ErrInvalidFoodName) {
		t.Fatalf("AddFood(blank) = %v, want ErrInvalidFoodName", err)
	}
	built.addFood(t, "apple", 52)

	foods, err := built.catalog.ListFoods()
	if err != nil {
		t.Fatalf("ListFoods() error: %v", err)
	}
	if len(foods) != 2 || foods[0].Name != "apple" || foods[1].Name != "rice" || foods[1].CaloriesPer100g != 130 {
		t.Fatalf("ListFoods() = %+v", foods)
	}

	if err := built.catalog.RemoveFood("bread"); !errors.Is(err, ErrFoodNotFound) {
		t.Fatalf("RemoveFood(missing) = %v, want ErrFoodNotFound", err)
	}
	after, err := built.catalog.ListFoods()
	if err != nil {
		t.Fatalf("ListFoods() error: %v", err)
	}
	if len(after) != 2 {
		t.Fatalf("catalog changed after failed removal: %+v", after)
	}

	if err := built.catalog.RemoveFood("Apple"); err != nil {
		t.Fatalf("RemoveFood() error: %v", err)
	}
	if _, err := built.catalog.FindFood("apple"); !errors.Is(err, ErrFoodNotFound) {
		t.Fatalf("FindFood(removed) = %v, want ErrFoodNotFound", err)
	}
}

func TestSQLiteRecordMealValidation(t *testing.T) {
	built := newSQLiteServices(t)
	email := built.registerAna(t)
	built.addFood(t, "rice", 130)

	if _, err := built.meals.RecordMeal("ghost@example.com", "rice", 100); !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("RecordMeal(unknown user) = %v, want ErrUserNotFound", err)
	}
	if _, err := built.meals.RecordMeal(email, "pizza", 100); !errors.Is(err, ErrFoodNotFound) {
		t.Fatalf("RecordMeal(unknown food) = %v, want ErrFoodNotFound", err)
	}
	if _, err := built.meals.RecordMeal(email, "rice", 0); !errors.Is(err, ErrInvalidQuantity) {
		t.Fatalf("RecordMeal(zero grams) = %v, want ErrInvalidQuantity", err)
	}

	entry := built.recordMeal(t, email, "RICE", 150)
	if entry.FoodName != "rice" || entry.Calories != 195 {
		t.Fatalf("entry = %+v, want rice with 195 calories", entry)
	}
	if entry.Timestamp != "2026-03-10 12:30:00" {
		t.Fatalf("timestamp = %q", entry.Timestamp)
	}
}

func TestSQLiteDailySummary(t *testing.T) {
	built := newSQLiteServices(t)
	email := built.registerAna(t)
	built.addFood(t, "rice", 130)
	built.addFood(t, "chicken", 165)

	if _, err := built.meals.DailySummary(email, fixedNow); !errors.Is(err, ErrNoMealsToday) {
		t.Fatalf("DailySummary(no meals) = %v, want ErrNoMealsToday", err)
	}

	built.recordMeal(t, email, "rice", 150)
	built.recordMeal(t, email, "chicken", 200)
	built.recordMeal(t, email, "rice", 33.3)

	summary, err := built.meals.DailySummary(email, fixedNow)
	if err != nil {
		t.Fatalf("DailySummary() error: %v", err)
	}
	want := nutrition.Round2(130*150/100.0 + 165*200/100.0 + 130*33.3/100.0)
	if summary.TotalCalories != want {
		t.Fatalf("total = %v, want %v", summary.TotalCalories, want)
	}
	if summary.TargetCalories != 1750 {
		t.Fatalf("target = %v, want 1750", summary.TargetCalories)
	}
	if summary.Status != nutrition.StatusUnder {
		t.Fatalf("status = %q, want under", summary.Status)
	}
	if summary.Entries != 3 || summary.UnmatchedEntries != 0 {
		t.Fatalf("summary counts = %+v", summary)
	}

	if _, err := built.meals.DailySummary(email, fixedNow.AddDate(0, 0, 1)); !errors.Is(err, ErrNoMealsToday) {
		t.Fatalf("DailySummary(next day) = %v, want ErrNoMealsToday", err)
	}
	if _, err := built.meals.DailySummary("ghost@example.com", fixedNow); !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("DailySummary(unknown) = %v, want ErrUserNotFound", err)
	}
}

func TestSQLiteDailySummaryCountsEntriesOfRemovedFoods(t *testing.T) {
	built := newSQLiteServices(t)
	email := built.registerAna(t)
	built.addFood(t, "rice", 130)
	built.addFood(t, "cake", 400)
	built.recordMeal(t, email, "rice", 100)
	built.recordMeal(t, email, "cake", 100)

	if err := built.catalog.RemoveFood("cake"); err != nil {
		t.Fatalf("RemoveFood() error: %v", err)
	}

	summary, err := built.meals.DailySummary(email, fixedNow)
	if err != nil {
		t.Fatalf("DailySummary() error: %v", err)
	}
	if summary.TotalCalories != 130 || summary.UnmatchedEntries != 1 {
		t.Fatalf("summary = %+v, want 130 calories and one unmatched entry", summary)
	}

	meals, err := built.meals.ListMeals(email)
	if err != nil {
		t.Fatalf("ListMeals() error: %v", err)
	}
	if len(meals) != 2 {
		t.Fatalf("history must keep removed foods, got %+v", meals)
	}
}

func TestSQLiteDailySummaryUsesCurrentCatalogCalories(t *testing.T) {
	built := newSQLiteServices(t)
	email := built.registerAna(t)
	built.addFood(t, "rice", 130)
	built.recordMeal(t, email, "rice", 100)

	if err := built.catalog.RemoveFood("rice"); err != nil {
		t.Fatalf("RemoveFood() error: %v", err)
	}
	built.addFood(t, "rice", 200)

	summary, err := built.meals.DailySummary(email, fixedNow)
	if err != nil {
		t.Fatalf("DailySummary() error: %v", err)
	}
	if summary.TotalCalories != 200 || summary.UnmatchedEntries != 0 {
		t.Fatalf("summary = %+v, want 200 calories from the re-added food", summary)
	}

	meals, err := built.meals.ListMeals(email)
	if err != nil {
		t.Fatalf("ListMeals() error: %v", err)
	}
	if len(meals) != 1 || meals[0].Calories != 130 {
		t.Fatalf("entry snapshot = %+v, want 130 recorded at insert", meals)
	}
}

func TestSQLiteConcurrentMealsForOneUser(t *testing.T) {
	built := newSQLiteServices(t)
	email := built.registerAna(t)
	built.addFood(t, "rice", 130)

	const writers = 12
	var wg sync.WaitGroup
	for range writers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := built.meals.RecordMeal(email, "rice", 10); err != nil {
				t.Errorf("RecordMeal() error: %v", err)
			}
		}()
	}
	wg.Wait()

	meals, err := built.meals.ListMeals(email)
	if err != nil {
		t.Fatalf("ListMeals() error: %v", err)
	}
	if len(meals) != writers {
		t.Fatalf("len(meals) = %d, want %d", len(meals), writers)
	}
	ids := make(map[uint]struct{}, writers)
	for _, meal := range meals {
		ids[meal.ID] = struct{}{}
	}
	if len(ids) != writers {
		t.Fatalf("meal ids are not distinct: %+v", meals)
	}

	summary, err := built.meals.DailySummary(email, fixedNow)
	if err != nil {
		t.Fatalf("DailySummary() error: %v", err)
	}
	if summary.TotalCalories != nutrition.Round2(130*10*writers/100.0) {
		t.Fatalf("total = %v after concurrent writes", summary.TotalCalories)
	}
}

func TestSQLiteListMealsNewestFirst(t *testing.T) {
	built := newSQLiteServices(t)
	email := built.registerAna(t)
	built.addFood(t, "rice", 130)
	built.addFood(t, "egg", 155)

	built.recordMeal(t, email, "rice", 100)
	built.meals.now = func() time.Time { return fixedNow.Add(time.Hour) }
	built.recordMeal(t, email, "egg", 50)
	built.recordMeal(t, email, "rice", 20)

	meals, err := built.meals.ListMeals(email)
	if err != nil {
		t.Fatalf("ListMeals() error: %v", err)
	}
	if len(meals) != 3 {
		t.Fatalf("len(meals) = %d, want 3", len(meals))
	}
	if meals[0].QuantityGrams != 20 || meals[1].FoodName != "egg" || meals[2].QuantityGrams != 100 {
		t.Fatalf("ListMeals() order = %+v", meals)
	}
}

func TestSQLiteFoodRanking(t *testing.T) {
	built := newSQLiteServices(t)
	email := built.registerAna(t)
	built.addFood(t, "rice", 130)
	built.addFood(t, "chicken", 165)
	built.addFood(t, "egg", 155)

	built.recordMeal(t, email, "rice", 50)
	built.recordMeal(t, email, "chicken", 200)
	built.recordMeal(t, email, "egg", 50)
	built.recordMeal(t, email, "chicken", 200)

	ranking, err := built.meals.FoodRanking(email, 0)
	if err != nil {
		t.Fatalf("FoodRanking() error: %v", err)
	}
	if len(ranking) != 3 {
		t.Fatalf("len(ranking) = %d, want 3", len(ranking))
	}
	if ranking[0].FoodName != "chicken" || ranking[0].TotalGrams != 400 {
		t.Fatalf("ranking[0] = %+v, want chicken 400", ranking[0])
	}
	if ranking[1].FoodName != "rice" || ranking[2].FoodName != "egg" {
		t.Fatalf("ties must keep first-recorded order, got %+v", ranking)
	}

	top, err := built.meals.FoodRanking(email, 1)
	if err != nil {
		t.Fatalf("FoodRanking(1) error: %v", err)
	}
	if len(top) != 1 {
		t.Fatalf("len(top) = %d, want 1", len(top))
	}
}

func TestSQLiteDailyReminders(t *testing.T) {
	built := newSQLiteServices(t)
	email := built.registerAna(t)
	built.addFood(t, "rice", 130)

	reminders, err := built.meals.DailyReminders(email, fixedNow)
	if err != nil {
		t.Fatalf("DailyReminders() error: %v", err)
	}
	if reminders.HasMeals() || reminders.WaterLiters != DailyWaterLiters {
		t.Fatalf("reminders = %+v", reminders)
	}

	built.recordMeal(t, email, "rice", 100)
	built.recordMeal(t, email, "rice", 80)
	reminders, err = built.meals.DailyReminders(email, fixedNow)
	if err != nil {
		t.Fatalf("DailyReminders() error: %v", err)
	}
	if reminders.MealsRecorded != 2 {
		t.Fatalf("meals recorded = %d, want 2", reminders.MealsRecorded)
	}
}

func TestSQLiteSupportMessaging(t *testing.T) {
	built := newSQLiteServices(t)
	email := built.registerAna(t)

	if _, err := built.support.SubmitMessage(email, "   "); !errors.Is(err, ErrEmptyMessage) {
		t.Fatalf("SubmitMessage(blank) = %v, want ErrEmptyMessage", err)
	}
	if _, err := built.support.SubmitMessage("ghost@example.com", "oi"); !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("SubmitMessage(unknown) = %v, want ErrUserNotFound", err)
	}

	first, err := built.support.SubmitMessage(email, " primeira dúvida ")
	if err != nil {
		t.Fatalf("SubmitMessage() error: %v", err)
	}
	second, err := built.support.SubmitMessage(email, "segunda")
	if err != nil {
		t.Fatalf("SubmitMessage() error: %v", err)
	}

	if err := built.support.AnswerMessage(first, "resposta A"); err != nil {
		t.Fatalf("AnswerMessage() error: %v", err)
	}
	if err := built.support.AnswerMessage(first, "resposta B"); err != nil {
		t.Fatalf("AnswerMessage() error: %v", err)
	}
	if err := built.support.AnswerMessage(999, "nada"); !errors.Is(err, ErrMessageNotFound) {
		t.Fatalf("AnswerMessage(missing) = %v, want ErrMessageNotFound", err)
	}
	if err := built.support.AnswerMessage(second, " "); !errors.Is(err, ErrEmptyMessage) {
		t.Fatalf("AnswerMessage(blank) = %v, want ErrEmptyMessage", err)
	}

	messages, err := built.support.ListMessagesForUser(email)
	if err != nil {
		t.Fatalf("ListMessagesForUser() error: %v", err)
	}
	if len(messages) != 2 || messages[0].ID != first || messages[1].ID != second {
		t.Fatalf("messages = %+v, want oldest first", messages)
	}
	if messages[0].Message != "primeira dúvida" {
		t.Fatalf("message text = %q, want trimmed", messages[0].Message)
	}
	if messages[0].Response == nil || *messages[0].Response != "resposta B" {
		t.Fatalf("response = %v, want last write", messages[0].Response)
	}
	if messages[0].AnsweredAt == nil || messages[1].Answered() {
		t.Fatalf("answered state = %+v", messages)
	}

	all, err := built.support.ListAllMessages()
	if err != nil {
		t.Fatalf("ListAllMessages() error: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("len(all) = %d, want 2", len(all))
	}
}

func TestSQLiteUpdateProfilePersistsBMI(t *testing.T) {
	built := newSQLiteServices(t)
	email := built.registerAna(t)

	if _, err := built.directory.UpdateProfile(email, 90, 1.8, models.DietHighProtein); err != nil {
		t.Fatalf("UpdateProfile() error: %v", err)
	}
	user, err := built.directory.Profile(email)
	if err != nil {
		t.Fatalf("Profile() error: %v", err)
	}
	if user.BMI != 27.78 || user.Diet != models.DietHighProtein || user.WeightKg != 90 {
		t.Fatalf("profile = %+v", user)
	}
}
