package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/terraincognita07/nutrismart/internal/services"
	"go.uber.org/zap"
)

var adminOptions = []string{
	"menu.admin.add_food",
	"menu.admin.list_foods",
	"menu.admin.list_users",
	"menu.admin.remove_food",
	"menu.admin.messages",
	"menu.admin.answer",
	"menu.admin.exit",
}

func (app *App) adminMenu(ctx context.Context) error {
	password, err := app.prompt.Secret(app.t("prompt.admin_password"))
	if err != nil {
		return err
	}
	if err := app.services.Admin.Authenticate(password); err != nil {
		app.log.Warn("administrator login rejected", zap.Error(err))
		if errors.Is(err, services.ErrWrongCredential) {
			app.println("admin.denied")
		} else {
			app.report(err)
		}
		return nil
	}
	app.log.Info("administrator logged in")

	actions := []func() error{
		app.addFood,
		app.listFoods,
		app.listUsers,
		app.removeFood,
		app.listAllMessages,
		app.answerMessage,
	}
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		choice, err := app.menu("menu.admin.title", adminOptions...)
		if err != nil {
			return err
		}
		switch {
		case choice == len(adminOptions):
			app.println("admin.exit")
			return nil
		case choice >= 1 && choice <= len(actions):
			if err := actions[choice-1](); err != nil {
				return err
			}
		default:
			app.println("menu.invalid")
		}
	}
}

func (app *App) addFood() error {
	fmt.Fprintln(app.out)
	app.println("food.add.title")

	name, err := app.prompt.Line(app.t("prompt.food_name"))
	if err != nil {
		return err
	}
	calories, err := app.readFloat("prompt.calories")
	if err != nil {
		return err
	}

	food, err := app.services.Foods.AddFood(name, calories)
	if err != nil {
		app.report(err)
		return nil
	}
	app.printf("food.added", food.Name)
	return nil
}

func (app *App) listFoods() error {
	foods, err := app.services.Foods.ListFoods()
	if err != nil {
		app.report(err)
		return nil
	}
	fmt.Fprintln(app.out)
	app.println("foods.title")
	if len(foods) == 0 {
		app.println("foods.empty")
		return nil
	}
	for _, food := range foods {
		app.printf("foods.line", displayFoodName(food.Name), food.CaloriesPer100g)
	}
	return nil
}

func (app *App) listUsers() error {
	users, err := app.services.Users.ListUsers()
	if err != nil {
		app.report(err)
		return nil
	}
	fmt.Fprintln(app.out)
	app.println("users.title")
	if len(users) == 0 {
		app.println("users.empty")
		return nil
	}
	for _, user := range users {
		app.printf("users.line", user.Email, user.WeightKg, user.HeightM, user.Sex, user.Diet, user.BMI)
	}
	return nil
}

func (app *App) removeFood() error {
	fmt.Fprintln(app.out)
	app.println("food.remove.title")

	name, err := app.prompt.Line(app.t("prompt.food_name"))
	if err != nil {
		return err
	}
	food, err := app.services.Foods.FindFood(name)
	if err != nil {
		app.report(err)
		return nil
	}
	confirmed, err := app.prompt.Confirm(app.tf("prompt.confirm_remove", food.Name), app.t("confirm.yes"))
	if err != nil {
		return err
	}
	if !confirmed {
		app.println("food.remove_cancelled")
		return nil
	}

	if err := app.services.Foods.RemoveFood(food.Name); err != nil {
		app.report(err)
		return nil
	}
	app.printf("food.removed", food.Name)
	return nil
}

func (app *App) listAllMessages() error {
	messages, err := app.services.Support.ListAllMessages()
	if err != nil {
		app.report(err)
		return nil
	}
	app.printMessages(messages)
	return nil
}

func (app *App) answerMessage() error {
	raw, err := app.prompt.Line(app.t("prompt.message_id"))
	if err != nil {
		return err
	}
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		app.report(errInvalidNumber)
		return nil
	}
	response, err := app.prompt.Line(app.t("prompt.response"))
	if err != nil {
		return err
	}

	if err := app.services.Support.AnswerMessage(uint(id), response); err != nil {
		app.report(err)
		return nil
	}
	app.println("support.answered")
	app.log.Info("support message answered by administrator", zap.Uint64("id", id))
	return nil
}
