package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/juju/errors"
	"github.com/juju/gnuflag"
	"github.com/terraincognita07/nutrismart/internal/cli"
	"github.com/terraincognita07/nutrismart/internal/config"
	"github.com/terraincognita07/nutrismart/internal/db"
	"github.com/terraincognita07/nutrismart/internal/i18n"
	"github.com/terraincognita07/nutrismart/internal/logger"
	"github.com/terraincognita07/nutrismart/internal/services"
	"go.uber.org/zap"
)

const resetCredentialCommand = "reset-credential"

type options struct {
	command  string
	dbPath   string
	language string
	email    string
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-ctx.Done()
		// A second interrupt terminates immediately.
		stop()
	}()

	code := run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

func run(ctx context.Context, args []string, stdin io.Reader, stdout io.Writer, stderr io.Writer) int {
	opts, err := parseArgs(args, stderr)
	if err != nil {
		if errors.Is(err, gnuflag.ErrHelp) {
			return 0
		}
		fmt.Fprintf(stderr, "nutrismart: %v\n", err)
		return 2
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(stderr, "nutrismart: %v\n", err)
		return 1
	}
	if opts.dbPath != "" {
		cfg.DBPath = opts.dbPath
	}

	log, err := logger.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		fmt.Fprintf(stderr, "nutrismart: %v\n", err)
		return 1
	}
	defer func() {
		_ = log.Sync()
	}()
	for _, warning := range cfg.Warnings {
		log.Warn(warning)
	}

	if err := execute(ctx, opts, cfg, log, stdin, stdout); err != nil {
		log.Error("nutrismart failed", zap.String("command", opts.command), zap.Error(err))
		return 1
	}
	return 0
}

func execute(ctx context.Context, opts options, cfg config.Config, log *zap.Logger, stdin io.Reader, stdout io.Writer) error {
	messages, err := i18n.NewManager(cfg.DefaultLanguage)
	if err != nil {
		return errors.Annotate(err, "i18n init failed")
	}
	language := resolveLanguage(messages, opts.language, cfg.DefaultLanguage)

	mode, err := services.ParseCredentialMode(cfg.CredentialMode)
	if err != nil {
		return err
	}
	credentials, err := services.NewCredentialPolicy(mode)
	if err != nil {
		return err
	}

	database, err := db.OpenSQLite(cfg.DBPath, log)
	if err != nil {
		return errors.Annotate(err, "database init failed")
	}
	defer func() {
		if err := db.Close(database); err != nil {
			log.Warn("database close failed", zap.Error(err))
		}
	}()

	repos := db.NewRepositories(database)
	locks := services.NewEmailLocks()
	attempts := services.NewAttemptLimiter(cfg.LoginAttemptLimit, cfg.LoginAttemptWindow)
	users := services.NewUserDirectoryService(repos.Users, credentials, locks, attempts, log.Named("users"))

	if opts.command == resetCredentialCommand {
		return cli.RunResetCredentialCommand(users, messages, language, opts.email, stdout)
	}

	admin, err := services.NewAdminService(cfg.AdminPassword, attempts)
	if err != nil {
		return err
	}
	app := cli.NewApp(cli.Services{
		Users:   users,
		Foods:   services.NewFoodCatalogService(repos.Foods, log.Named("foods")),
		Meals:   services.NewMealLogService(repos.Meals, repos.Users, repos.Foods, locks, cfg.Location, log.Named("meals")),
		Support: services.NewSupportService(repos.Messages, repos.Users, log.Named("support")),
		Admin:   admin,
	}, messages, language, stdin, stdout, log.Named("cli"))

	log.Info("nutrismart started",
		zap.String("db", cfg.DBPath),
		zap.String("credential_mode", string(mode)),
		zap.String("tz", cfg.Location.String()),
	)
	return app.Run(ctx)
}

// resolveLanguage prefers the flag, then DEFAULT_LANGUAGE, then the process
// locale.
func resolveLanguage(messages *i18n.Manager, flagValue string, configured string) string {
	if flagValue != "" {
		return messages.NormalizeLanguage(flagValue)
	}
	if configured != "" {
		return messages.NormalizeLanguage(configured)
	}
	return messages.DetectFromLocale(os.Getenv("LC_ALL"), os.Getenv("LC_MESSAGES"), os.Getenv("LANG"))
}

func parseArgs(args []string, stderr io.Writer) (options, error) {
	opts := options{}
	name := "nutrismart"
	if len(args) > 0 && args[0] == resetCredentialCommand {
		opts.command = resetCredentialCommand
		name += " " + resetCredentialCommand
		args = args[1:]
	}

	flags := gnuflag.NewFlagSet(name, gnuflag.ContinueOnError)
	flags.SetOutput(stderr)
	flags.StringVar(&opts.dbPath, "db", "", "path to the SQLite database (overrides DB_PATH)")
	flags.StringVar(&opts.language, "lang", "", "interface language: pt or en")
	if opts.command == resetCredentialCommand {
		flags.StringVar(&opts.email, "email", "", "email of the user whose credential is reset")
	}
	if err := flags.Parse(true, args); err != nil {
		return options{}, err
	}
	if extra := flags.Args(); len(extra) > 0 {
		return options{}, errors.Errorf("unexpected arguments: %v", extra)
	}

	switch opts.language {
	case "", i18n.LangPT, i18n.LangEN:
	default:
		return options{}, errors.NotValidf("language %q", opts.language)
	}
	if opts.command == resetCredentialCommand && opts.email == "" {
		return options{}, errors.New("--email is required")
	}
	return opts, nil
}
