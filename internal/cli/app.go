package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/terraincognita07/nutrismart/internal/i18n"
	"github.com/terraincognita07/nutrismart/internal/models"
	"github.com/terraincognita07/nutrismart/internal/services"
	"go.uber.org/zap"
)

type UserDirectory interface {
	Register(input services.RegistrationInput) (string, error)
	Authenticate(email string, credential string) (models.User, error)
	RecoverCredential(email string, answer string) (string, error)
	UpdateProfile(email string, weightKg float64, heightM float64, diet models.Diet) (float64, error)
	Profile(email string) (models.User, error)
	ListUsers() ([]models.User, error)
	RecommendedFoods(email string) (models.Diet, []string, error)
	CredentialMode() services.CredentialMode
}

type FoodCatalog interface {
	AddFood(name string, caloriesPer100g float64) (models.Food, error)
	ListFoods() ([]models.Food, error)
	FindFood(name string) (models.Food, error)
	RemoveFood(name string) error
}

type MealLog interface {
	RecordMeal(email string, foodName string, quantityGrams float64) (models.MealEntry, error)
	ListMeals(email string) ([]models.MealEntry, error)
	DailySummary(email string, day time.Time) (services.DailySummary, error)
	FoodRanking(email string, limit int) ([]models.FoodTotal, error)
	DailyReminders(email string, day time.Time) (services.Reminders, error)
	Today() time.Time
}

type Support interface {
	SubmitMessage(email string, text string) (uint, error)
	ListMessagesForUser(email string) ([]models.SupportMessage, error)
	ListAllMessages() ([]models.SupportMessage, error)
	AnswerMessage(messageID uint, response string) error
}

type AdminGate interface {
	Authenticate(password string) error
}

type Services struct {
	Users   UserDirectory
	Foods   FoodCatalog
	Meals   MealLog
	Support Support
	Admin   AdminGate
}

// The concrete services satisfy the menu contracts.
var (
	_ UserDirectory = (*services.UserDirectoryService)(nil)
	_ FoodCatalog   = (*services.FoodCatalogService)(nil)
	_ MealLog       = (*services.MealLogService)(nil)
	_ Support       = (*services.SupportService)(nil)
	_ AdminGate     = (*services.AdminService)(nil)
)

type App struct {
	services Services
	messages *i18n.Manager
	language string
	prompt   *Prompter
	out      io.Writer
	log      *zap.Logger
}

func NewApp(svc Services, messages *i18n.Manager, language string, in io.Reader, out io.Writer, log *zap.Logger) *App {
	if log == nil {
		log = zap.NewNop()
	}
	return &App{
		services: svc,
		messages: messages,
		language: messages.NormalizeLanguage(language),
		prompt:   NewPrompter(in, out),
		out:      out,
		log:      log,
	}
}

// Run drives the main menu until the user exits, the input ends or ctx is
// cancelled.
func (app *App) Run(ctx context.Context) error {
	app.log = app.log.With(zap.String("session_id", uuid.NewString()))
	app.log.Info("session started", zap.String("language", app.language))
	defer app.log.Info("session finished")

	app.println("app.welcome")
	err := app.mainMenu(ctx)
	if errors.Is(err, io.EOF) || errors.Is(err, context.Canceled) {
		err = nil
	}
	app.println("app.goodbye")
	return err
}

func (app *App) mainMenu(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		choice, err := app.menu("menu.main.title", "menu.main.user", "menu.main.admin", "menu.main.exit")
		if err != nil {
			return err
		}
		switch choice {
		case 1:
			err = app.guestMenu(ctx)
		case 2:
			err = app.adminMenu(ctx)
		case 3:
			return nil
		default:
			app.println("menu.invalid")
		}
		if err != nil {
			return err
		}
	}
}

// menu prints a numbered list of option keys and reads the choice.
func (app *App) menu(titleKey string, optionKeys ...string) (int, error) {
	return app.menuWithTitle(app.t(titleKey), optionKeys...)
}

func (app *App) menuWithTitle(title string, optionKeys ...string) (int, error) {
	fmt.Fprintln(app.out)
	fmt.Fprintln(app.out, title)
	for index, key := range optionKeys {
		fmt.Fprintln(app.out, app.tf("menu.item", index+1, app.t(key)))
	}
	return app.prompt.Choice(app.t("menu.choose"))
}

// report prints the localized message of a service error and logs failures
// that are not the user's fault.
func (app *App) report(err error) {
	if category := services.CategoryOf(err); category == services.CategoryStorage || category == services.CategoryUnknown {
		app.log.Error("operation failed", zap.Error(err))
	}
	fmt.Fprintln(app.out, app.t(errorMessageKey(err)))
}

func (app *App) t(key string) string {
	return app.messages.Translate(app.language, key)
}

func (app *App) tf(key string, args ...any) string {
	return app.messages.Translatef(app.language, key, args...)
}

func (app *App) println(key string) {
	fmt.Fprintln(app.out, app.t(key))
}

func (app *App) printf(key string, args ...any) {
	fmt.Fprintln(app.out, app.tf(key, args...))
}
