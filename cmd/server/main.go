package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"careconnect.backend/internal/config"
	"careconnect.backend/internal/domain/entities"
	"careconnect.backend/internal/infrastructure/datasources"
	"careconnect.backend/internal/infrastructure/jobs"
	"careconnect.backend/internal/infrastructure/notifications"
	"careconnect.backend/internal/infrastructure/realtime"
	"careconnect.backend/internal/infrastructure/repositories"
	"careconnect.backend/internal/interfaces/http/handlers"
	"careconnect.backend/internal/interfaces/http/middleware"
	"careconnect.backend/internal/usecases"
	"careconnect.backend/pkg/jwt"
	"careconnect.backend/pkg/logger"
	"careconnect.backend/pkg/redis"
)

const shutdownTimeout = 10 * time.Second

var (
	loadDotenv = godotenv.Load
	loadCfg    = config.Load
	initLog    = logger.Init
	initRedis  = redis.Init
	openDB     = datasources.Open
	migrateDB  = datasources.Migrate
	runServer  = serve
)

func main() {
	if err := runMainProcess(); err != nil {
		log.Fatal(err)
	}
}

func runMainProcess() error {
	if err := loadDotenv(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := loadCfg()

	initLog(cfg.Server.Env)
	defer logger.Sync()
	ctx := context.Background()
	logger.Info(ctx, "Logger initialized", zap.String("env", cfg.Server.Env))

	if err := initRedis(cfg.Redis.URL, cfg.Redis.Password); err != nil {
		logger.Error(ctx, "Failed to initialize Redis", zap.Error(err))
		return fmt.Errorf("failed to initialize redis: %w", err)
	}
	defer redis.Close()
	logger.Info(ctx, "Redis initialized")

	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := openDB(cfg.Database)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	if sqlDB, err := db.DB(); err == nil {
		defer sqlDB.Close()
	}
	if cfg.Database.AutoMigrate {
		if err := migrateDB(db); err != nil {
			return err
		}
		logger.Info(ctx, "Database migrated")
	}

	hub := realtime.NewHub(entities.EventVerificationUpdated)
	defer hub.Close()

	publishers := notifications.Fanout{hub}
	mailer := notifications.NewMailer(cfg.Mail)
	if mailer != nil {
		emailPublisher := notifications.NewEmailPublisher(mailer).SkipWhenOnline(hub, entities.EventVerificationUpdated)
		defer emailPublisher.Wait()
		publishers = append(publishers, emailPublisher)
	} else {
		logger.Info(ctx, "SMTP not configured, email notifications disabled")
	}

	app := buildApp(cfg, db, publishers)

	if cfg.Jobs.Enabled {
		scheduler, err := newScheduler(cfg, app, mailer)
		if err != nil {
			return err
		}
		scheduler.Start()
		defer func() {
			stopCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			scheduler.Stop(stopCtx)
		}()
		logger.Info(ctx, "Background jobs scheduled", zap.Int("entries", scheduler.Entries()))
	}

	engine, err := newEngine(routeDeps{
		authHandler:           handlers.NewAuthHandler(app.auth),
		clientHandler:         handlers.NewClientHandler(app.client),
		providerHandler:       handlers.NewProviderHandler(app.provider),
		verificationHandler:   handlers.NewVerificationHandler(app.verification),
		bookingHandler:        handlers.NewBookingHandler(app.booking),
		walletHandler:         handlers.NewWalletHandler(app.wallet),
		serviceHandler:        handlers.NewServiceHandler(app.catalog),
		adminHandler:          handlers.NewAdminHandler(app.admin),
		realtimeHandler:       handlers.NewRealtimeHandler(app.auth, hub),
		authMiddleware:        middleware.AuthMiddleware(app.auth),
		rateLimitMiddleware:   middleware.RateLimitMiddleware(cfg.RateLimit.Limit, cfg.RateLimit.Window),
		idempotencyMiddleware: middleware.IdempotencyMiddleware(cfg.Cache.IdempotencyTTL),
	})
	if err != nil {
		return fmt.Errorf("failed to build router: %w", err)
	}
	logger.Info(ctx, "Routes registered", zap.Int("count", len(engine.Routes())))

	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	sigCtx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logger.Info(ctx, "CareConnect backend starting", zap.String("port", cfg.Server.Port))
	if err := runServer(sigCtx, srv); err != nil {
		return fmt.Errorf("failed to start server: %w", err)
	}
	logger.Info(ctx, "Server stopped")
	return nil
}

// serve runs srv until ctx is cancelled, then drains in-flight requests
func serve(ctx context.Context, srv *http.Server) error {
	errCh := make(chan error, 1)
	go func() { errCh <- srv.ListenAndServe() }()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	logger.Info(context.Background(), "Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

type application struct {
	bookingRepo      *repositories.BookingRepository
	verificationRepo *repositories.VerificationRepository

	auth         *usecases.AuthUsecase
	client       *usecases.ClientUsecase
	provider     *usecases.ProviderUsecase
	verification *usecases.VerificationUsecase
	booking      *usecases.BookingUsecase
	wallet       *usecases.WalletUsecase
	catalog      *usecases.ServiceCatalogUsecase
	admin        *usecases.AdminUsecase
}

func buildApp(cfg *config.Config, db *gorm.DB, publisher usecases.EventPublisher) *application {
	jwtService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiry, cfg.JWT.RefreshExpiry)

	userRepo := repositories.NewUserRepository(db)
	clientRepo := repositories.NewClientRepository(db)
	locationRepo := repositories.NewLocationRepository(db)
	familyRepo := repositories.NewFamilyMemberRepository(db)
	favoriteRepo := repositories.NewFavoriteRepository(db)
	providerRepo := repositories.NewProviderRepository(db)
	verificationRepo := repositories.NewVerificationRepository(db)
	bookingRepo := repositories.NewBookingRepository(db)
	serviceRepo := repositories.NewServiceRepository(db)
	walletRepo := repositories.NewWalletRepository(db, cfg.Payment.Currency)
	uow := repositories.NewUnitOfWork(db)

	identity := usecases.NewIdentityUsecase(clientRepo, providerRepo, verificationRepo, uow)

	return &application{
		bookingRepo:      bookingRepo,
		verificationRepo: verificationRepo,

		auth:         usecases.NewAuthUsecase(userRepo, clientRepo, providerRepo, verificationRepo, uow, jwtService),
		client:       usecases.NewClientUsecase(identity, clientRepo, locationRepo, familyRepo, favoriteRepo, providerRepo, uow),
		provider:     usecases.NewProviderUsecase(identity, providerRepo, verificationRepo, bookingRepo),
		verification: usecases.NewVerificationUsecase(identity, providerRepo, verificationRepo, uow, publisher),
		booking: usecases.NewBookingUsecase(usecases.BookingDeps{
			Clients:           identity,
			Providers:         identity,
			BookingRepo:       bookingRepo,
			ClientRepo:        clientRepo,
			ProviderRepo:      providerRepo,
			VerificationRepo:  verificationRepo,
			LocationRepo:      locationRepo,
			FamilyRepo:        familyRepo,
			ServiceRepo:       serviceRepo,
			WalletRepo:        walletRepo,
			UnitOfWork:        uow,
			Publisher:         publisher,
			DefaultFeePercent: cfg.Payment.DefaultFeePercent,
		}),
		wallet:  usecases.NewWalletUsecase(identity, walletRepo, uow, cfg.Payment.CheckoutSecret),
		catalog: usecases.NewServiceCatalogUsecase(serviceRepo, redis.NewCache("services"), cfg.Cache.ServiceCatalogTTL),
		admin:   usecases.NewAdminUsecase(clientRepo, providerRepo, bookingRepo, verificationRepo, walletRepo),
	}
}

func newScheduler(cfg *config.Config, app *application, mailer *notifications.Mailer) (*jobs.Scheduler, error) {
	scheduler := jobs.NewScheduler(0)
	if err := scheduler.Register(cfg.Jobs.BookingExpirySpec, jobs.NewBookingExpiryJob(app.bookingRepo, cfg.Jobs.StaleAfter)); err != nil {
		return nil, fmt.Errorf("booking expiry job: %w", err)
	}
	if mailer == nil || cfg.Mail.AdminNotifyEmail == "" {
		return scheduler, nil
	}
	reminder := jobs.NewReviewReminderJob(app.verificationRepo, mailer, cfg.Mail.AdminNotifyEmail)
	if err := scheduler.Register(cfg.Jobs.ReminderSpec, reminder); err != nil {
		return nil, fmt.Errorf("review reminder job: %w", err)
	}
	return scheduler, nil
}
