package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/joho/godotenv"

	"careconnect.backend/internal/config"
	"careconnect.backend/internal/domain/entities"
	"careconnect.backend/internal/infrastructure/datasources"
	"careconnect.backend/internal/infrastructure/repositories"
	"careconnect.backend/internal/usecases"
	"careconnect.backend/pkg/jwt"
)

const minPasswordLength = 8

type adminCreator interface {
	CreateAdmin(ctx context.Context, email, name, password string) (*entities.User, error)
}

type createAdminDeps struct {
	loadEnv func() error
	loadCfg func() *config.Config
	prepare func(cfg *config.Config) (adminCreator, io.Closer, error)
	getenv  func(string) string
	out     io.Writer
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

func defaultCreateAdminDeps() createAdminDeps {
	return createAdminDeps{
		loadEnv: func() error { return godotenv.Load() },
		loadCfg: config.Load,
		prepare: prepareAdminCreator,
		getenv:  os.Getenv,
		out:     os.Stdout,
	}
}

func prepareAdminCreator(cfg *config.Config) (adminCreator, io.Closer, error) {
	db, err := datasources.Open(cfg.Database)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect db: %w", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to init sql db: %w", err)
	}
	if cfg.Database.AutoMigrate {
		if err := datasources.Migrate(db); err != nil {
			_ = sqlDB.Close()
			return nil, nil, err
		}
	}

	jwtService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiry, cfg.JWT.RefreshExpiry)
	authUsecase := usecases.NewAuthUsecase(
		repositories.NewUserRepository(db),
		repositories.NewClientRepository(db),
		repositories.NewProviderRepository(db),
		repositories.NewVerificationRepository(db),
		repositories.NewUnitOfWork(db),
		jwtService,
	)
	return authUsecase, sqlDB, nil
}

func runCreateAdmin(args []string, deps createAdminDeps) error {
	def := defaultCreateAdminDeps()
	if deps.loadEnv == nil {
		deps.loadEnv = def.loadEnv
	}
	if deps.loadCfg == nil {
		deps.loadCfg = def.loadCfg
	}
	if deps.prepare == nil {
		deps.prepare = def.prepare
	}
	if deps.getenv == nil {
		deps.getenv = def.getenv
	}
	if deps.out == nil {
		deps.out = def.out
	}

	fs := flag.NewFlagSet("create-admin", flag.ContinueOnError)
	emailFlag := fs.String("email", "", "admin email (required)")
	nameFlag := fs.String("name", "", "display name (optional)")
	passwordFlag := fs.String("password", "", "password; falls back to ADMIN_PASSWORD")
	if err := fs.Parse(args); err != nil {
		return err
	}

	email := strings.TrimSpace(*emailFlag)
	if email == "" {
		return fmt.Errorf("--email is required")
	}

	if err := deps.loadEnv(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	password := *passwordFlag
	if password == "" {
		password = deps.getenv("ADMIN_PASSWORD")
	}
	if len(password) < minPasswordLength {
		return fmt.Errorf("password must be at least %d characters", minPasswordLength)
	}

	cfg := deps.loadCfg()
	creator, closer, err := deps.prepare(cfg)
	if err != nil {
		return err
	}
	if closer == nil {
		closer = nopCloser{}
	}
	defer closer.Close()

	user, err := creator.CreateAdmin(context.Background(), email, *nameFlag, password)
	if err != nil {
		return fmt.Errorf("failed creating admin: %w", err)
	}

	_, _ = fmt.Fprintln(deps.out, "Created ADMIN user")
	_, _ = fmt.Fprintf(deps.out, "user_id=%s\n", user.ID.String())
	_, _ = fmt.Fprintf(deps.out, "email=%s\n", user.Email)
	_, _ = fmt.Fprintf(deps.out, "name=%s\n", user.Name)
	return nil
}

func main() {
	if err := runCreateAdmin(os.Args[1:], defaultCreateAdminDeps()); err != nil {
		log.Fatal(err)
	}
}
