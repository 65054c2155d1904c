package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/terraincognita07/nutrismart/internal/models"
	"github.com/terraincognita07/nutrismart/internal/nutrition"
	"github.com/terraincognita07/nutrismart/internal/services"
	"go.uber.org/zap"
)

func (app *App) guestMenu(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		choice, err := app.menu("menu.guest.title", "menu.guest.register", "menu.guest.login", "menu.guest.recover", "menu.back")
		if err != nil {
			return err
		}
		switch choice {
		case 1:
			err = app.register()
		case 2:
			err = app.login(ctx)
		case 3:
			err = app.recoverCredential("")
		case 4:
			return nil
		default:
			app.println("menu.invalid")
		}
		if err != nil {
			return err
		}
	}
}

func (app *App) register() error {
	fmt.Fprintln(app.out)
	app.println("register.title")

	var input services.RegistrationInput
	var err error
	if input.Email, err = app.prompt.Line(app.t("prompt.email")); err != nil {
		return err
	}
	if input.Credential, err = app.prompt.Secret(app.t("prompt.credential")); err != nil {
		return err
	}
	if input.WeightKg, err = app.readFloat("prompt.weight"); err != nil {
		return err
	}
	if input.HeightM, err = app.readFloat("prompt.height"); err != nil {
		return err
	}
	sex, err := app.prompt.Line(app.t("prompt.sex"))
	if err != nil {
		return err
	}
	input.Sex = models.Sex(sex)
	if input.Diet, err = app.chooseDiet(); err != nil {
		return err
	}
	if input.RecoveryQuestion, err = app.chooseQuestion(); err != nil {
		return err
	}
	if input.RecoveryAnswer, err = app.prompt.Line(app.t("prompt.answer")); err != nil {
		return err
	}

	email, err := app.services.Users.Register(input)
	if err != nil {
		app.report(err)
		return nil
	}
	app.printf("register.success", nutrition.ComputeBMI(input.WeightKg, input.HeightM))
	app.log.Info("registration completed", zap.String("email", email))
	return nil
}

func (app *App) login(ctx context.Context) error {
	fmt.Fprintln(app.out)
	app.println("login.title")

	email, err := app.prompt.Line(app.t("prompt.email"))
	if err != nil {
		return err
	}
	credential, err := app.prompt.Secret(app.t("prompt.credential"))
	if err != nil {
		return err
	}

	user, err := app.services.Users.Authenticate(email, credential)
	switch {
	case errors.Is(err, services.ErrWrongCredential):
		app.report(err)
		wantsRecovery, err := app.prompt.Confirm(app.t("prompt.offer_recovery"), app.t("confirm.yes"))
		if err != nil || !wantsRecovery {
			return err
		}
		return app.recoverCredential(email)
	case err != nil:
		app.report(err)
		return nil
	}

	app.println("login.success")
	app.log.Info("user logged in", zap.String("email", user.Email))
	return app.sessionMenu(ctx, user.Email)
}

// recoverCredential asks the recovery question of email, prompting for the
// email first when it is empty.
func (app *App) recoverCredential(email string) error {
	fmt.Fprintln(app.out)
	app.println("recover.title")

	var err error
	if email == "" {
		if email, err = app.prompt.Line(app.t("prompt.email")); err != nil {
			return err
		}
	}
	user, err := app.services.Users.Profile(email)
	if err != nil {
		app.report(err)
		return nil
	}

	app.printf("recover.question", app.t(questionKey(user.RecoveryQuestion)))
	answer, err := app.prompt.Line(app.t("prompt.your_answer"))
	if err != nil {
		return err
	}
	credential, err := app.services.Users.RecoverCredential(email, answer)
	if err != nil {
		app.report(err)
		return nil
	}
	if app.services.Users.CredentialMode() == services.CredentialModePlain {
		app.printf("recover.success", credential)
	} else {
		app.printf("recover.temporary", credential)
	}
	return nil
}

func (app *App) chooseDiet() (models.Diet, error) {
	diets := models.Diets()
	for {
		fmt.Fprintln(app.out)
		app.println("diet.choose")
		for index, diet := range diets {
			fmt.Fprintln(app.out, app.tf("menu.item", index+1, string(diet)))
		}
		choice, err := app.prompt.Choice(app.t("prompt.diet"))
		if err != nil {
			return "", err
		}
		if choice >= 1 && choice <= len(diets) {
			return diets[choice-1], nil
		}
		app.println("menu.invalid")
	}
}

func (app *App) chooseQuestion() (models.RecoveryQuestion, error) {
	questions := models.RecoveryQuestions()
	for {
		fmt.Fprintln(app.out)
		app.println("question.choose")
		for index, question := range questions {
			fmt.Fprintln(app.out, app.tf("menu.item", index+1, app.t(questionKey(question))))
		}
		choice, err := app.prompt.Choice(app.t("prompt.question"))
		if err != nil {
			return "", err
		}
		if choice >= 1 && choice <= len(questions) {
			return questions[choice-1], nil
		}
		app.println("menu.invalid")
	}
}

// readFloat re-prompts until the input parses as a number.
func (app *App) readFloat(labelKey string) (float64, error) {
	for {
		value, err := app.prompt.Float(app.t(labelKey))
		if errors.Is(err, errInvalidNumber) {
			app.report(err)
			continue
		}
		return value, err
	}
}

func questionKey(question models.RecoveryQuestion) string {
	return "question." + string(question)
}
