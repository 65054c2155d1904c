package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/terraincognita07/nutrismart/internal/models"
	"github.com/terraincognita07/nutrismart/internal/nutrition"
	"github.com/terraincognita07/nutrismart/internal/services"
	"go.uber.org/zap"
)

var sessionOptions = []string{
	"menu.session.profile",
	"menu.session.edit",
	"menu.session.record_meal",
	"menu.session.list_meals",
	"menu.session.recommended",
	"menu.session.ranking",
	"menu.session.reminders",
	"menu.session.close_day",
	"menu.session.support",
	"menu.session.messages",
	"menu.session.logout",
}

func (app *App) sessionMenu(ctx context.Context, email string) error {
	actions := []func(string) error{
		app.showProfile,
		app.editProfile,
		app.recordMeal,
		app.listMeals,
		app.showRecommendedFoods,
		app.showRanking,
		app.showReminders,
		app.closeDay,
		app.submitSupportMessage,
		app.listOwnMessages,
	}

	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		choice, err := app.menuWithTitle(app.tf("menu.session.title", email), sessionOptions...)
		if err != nil {
			return err
		}
		switch {
		case choice == len(sessionOptions):
			app.println("logout.success")
			app.log.Info("user logged out", zap.String("email", email))
			return nil
		case choice >= 1 && choice <= len(actions):
			if err := actions[choice-1](email); err != nil {
				return err
			}
		default:
			app.println("menu.invalid")
		}
	}
}

func (app *App) showProfile(email string) error {
	user, err := app.services.Users.Profile(email)
	if err != nil {
		app.report(err)
		return nil
	}
	fmt.Fprintln(app.out)
	app.println("profile.title")
	app.printf("profile.measurements", user.WeightKg, user.HeightM)
	app.printf("profile.details", user.Sex, user.Diet, user.BMI, app.t("bmi."+nutrition.BMICategory(user.BMI)))
	return nil
}

func (app *App) editProfile(email string) error {
	fmt.Fprintln(app.out)
	app.println("profile.edit.title")

	weight, err := app.readFloat("prompt.new_weight")
	if err != nil {
		return err
	}
	height, err := app.readFloat("prompt.new_height")
	if err != nil {
		return err
	}
	diet, err := app.chooseDiet()
	if err != nil {
		return err
	}

	bmi, err := app.services.Users.UpdateProfile(email, weight, height, diet)
	if err != nil {
		app.report(err)
		return nil
	}
	app.printf("profile.updated", bmi)
	return nil
}

func (app *App) recordMeal(email string) error {
	fmt.Fprintln(app.out)
	app.println("meal.title")

	food, err := app.prompt.Line(app.t("prompt.food_name"))
	if err != nil {
		return err
	}
	if _, err := app.services.Foods.FindFood(food); err != nil {
		app.report(err)
		return nil
	}
	grams, err := app.readFloat("prompt.grams")
	if err != nil {
		return err
	}

	entry, err := app.services.Meals.RecordMeal(email, food, grams)
	if err != nil {
		app.report(err)
		return nil
	}
	app.printf("meal.recorded", entry.Calories)
	return nil
}

func (app *App) listMeals(email string) error {
	entries, err := app.services.Meals.ListMeals(email)
	if err != nil {
		app.report(err)
		return nil
	}
	fmt.Fprintln(app.out)
	app.println("meals.title")
	if len(entries) == 0 {
		app.println("meals.empty")
		return nil
	}
	for _, entry := range entries {
		app.printf("meals.line", entry.ID, displayFoodName(entry.FoodName), entry.QuantityGrams, entry.Calories, entry.Timestamp)
	}
	return nil
}

func (app *App) showRecommendedFoods(email string) error {
	diet, foods, err := app.services.Users.RecommendedFoods(email)
	if err != nil {
		app.report(err)
		return nil
	}
	fmt.Fprintln(app.out)
	app.printf("recommended.title", len(foods), diet)
	for _, food := range foods {
		app.printf("list.item", food)
	}
	return nil
}

func (app *App) showRanking(email string) error {
	totals, err := app.services.Meals.FoodRanking(email, services.DefaultRankingLimit)
	if err != nil {
		app.report(err)
		return nil
	}
	fmt.Fprintln(app.out)
	app.println("ranking.title")
	if len(totals) == 0 {
		app.println("ranking.empty")
		return nil
	}
	for index, total := range totals {
		app.printf("ranking.line", index+1, displayFoodName(total.FoodName), total.TotalGrams)
	}
	return nil
}

func (app *App) showReminders(email string) error {
	reminders, err := app.services.Meals.DailyReminders(email, app.services.Meals.Today())
	if err != nil {
		app.report(err)
		return nil
	}
	fmt.Fprintln(app.out)
	app.println("reminders.title")
	if reminders.HasMeals() {
		app.printf("reminders.some", reminders.MealsRecorded)
	} else {
		app.println("reminders.none")
	}
	app.printf("reminders.water", reminders.WaterLiters)
	_, err = app.prompt.Line(app.t("prompt.continue"))
	return err
}

func (app *App) closeDay(email string) error {
	fmt.Fprintln(app.out)
	app.println("summary.title")

	summary, err := app.services.Meals.DailySummary(email, app.services.Meals.Today())
	if err != nil {
		app.report(err)
		return nil
	}
	user, err := app.services.Users.Profile(email)
	if err != nil {
		app.report(err)
		return nil
	}

	app.printf("summary.diet", user.Diet)
	app.printf("summary.total", summary.TotalCalories)
	app.printf("summary.target", summary.TargetCalories)
	if summary.UnmatchedEntries > 0 {
		app.printf("summary.unmatched", summary.UnmatchedEntries)
	}
	app.println("summary." + string(summary.Status))
	return nil
}

func (app *App) submitSupportMessage(email string) error {
	text, err := app.prompt.Line(app.t("prompt.message"))
	if err != nil {
		return err
	}
	id, err := app.services.Support.SubmitMessage(email, text)
	if err != nil {
		app.report(err)
		return nil
	}
	app.printf("support.sent", id)
	return nil
}

func (app *App) listOwnMessages(email string) error {
	messages, err := app.services.Support.ListMessagesForUser(email)
	if err != nil {
		app.report(err)
		return nil
	}
	app.printMessages(messages)
	return nil
}

func (app *App) printMessages(messages []models.SupportMessage) {
	fmt.Fprintln(app.out)
	app.println("support.title")
	if len(messages) == 0 {
		app.println("support.empty")
		return
	}
	for _, message := range messages {
		app.printf("support.line", message.ID, message.CreatedAt.Local().Format(models.MealTimestampLayout), message.UserEmail, message.Message)
		if message.Answered() {
			app.printf("support.response", *message.Response)
		} else {
			app.println("support.pending")
		}
	}
}

// displayFoodName capitalizes the stored lower-case name.
func displayFoodName(name string) string {
	if name == "" {
		return name
	}
	runes := []rune(name)
	return strings.ToUpper(string(runes[0])) + string(runes[1:])
}
