package app

import (
	"context"
	"net/http"

	"github.com/sirupsen/logrus"

	"github.com/dj-idk/gym-backend/internal/config"
	httpx "github.com/dj-idk/gym-backend/internal/http"
	"github.com/dj-idk/gym-backend/internal/http/handlers"
	"github.com/dj-idk/gym-backend/internal/http/middleware"
	"github.com/dj-idk/gym-backend/internal/infrastructure/auth"
	"github.com/dj-idk/gym-backend/internal/infrastructure/database"
	"github.com/dj-idk/gym-backend/internal/infrastructure/notifications"
	"github.com/dj-idk/gym-backend/internal/infrastructure/repositories"
	"github.com/dj-idk/gym-backend/internal/infrastructure/storage"
	"github.com/dj-idk/gym-backend/internal/services"
)

func Run(cfg *config.Config) error {
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	logger.SetLevel(logrus.InfoLevel)

	gdb, err := database.Open(cfg.DSN)
	if err != nil {
		return err
	}
	if err := database.AutoMigrate(gdb); err != nil {
		return err
	}

	rdb := database.NewRedis(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB).Client
	if err := rdb.Ping(context.Background()).Err(); err != nil {
		return err
	}

	cas, err := auth.NewCasbinService(gdb, cfg.CasbinModelPath)
	if err != nil {
		return err
	}

	// Repositories
	userRepo := repositories.NewUserRepository(gdb)
	roleRepo := repositories.NewRoleRepository(gdb)
	tokenStore := repositories.NewTokenRepository(rdb)
	otpStore := repositories.NewOTPRepository(rdb)
	profileRepo := repositories.NewProfileRepository(gdb)
	coachRepo := repositories.NewCoachRepository(gdb)
	catalogRepo := repositories.NewCatalogRepository(gdb)
	purchaseRepo := repositories.NewPurchaseRepository(gdb)
	ticketRepo := repositories.NewTicketRepository(gdb)
	messageRepo := repositories.NewMessageRepository(gdb)
	analyticsRepo := repositories.NewAnalyticsRepository(gdb)

	if err := roleRepo.Seed(context.Background()); err != nil {
		return err
	}

	// Infrastructure services
	passwordSvc := auth.NewPasswordService()
	tokenSvc := auth.NewJWTService(cfg.JWTSecret, cfg.JWTIssuer, cfg.AccessTTL, tokenStore)
	smsSvc := notifications.NewTwilioService(cfg.TwilioSID, cfg.TwilioToken, cfg.TwilioFrom)
	emailSvc := notifications.NewSMTPService(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPassword, cfg.MailFrom)
	mediaStore, err := storage.NewS3Storage(cfg.S3Endpoint, cfg.S3Region, cfg.S3AccessKey, cfg.S3SecretKey, cfg.S3Bucket)
	if err != nil {
		return err
	}

	// Domain services
	otpSvc := services.NewOTPService(otpStore, smsSvc, rdb, services.OTPConfig{
		Length:          cfg.OTPLength,
		VerificationTTL: cfg.VerificationTTL,
		ResetTTL:        cfg.ResetTTL,
		MaxAttempts:     cfg.OTPMaxAttempts,
		ResendWindow:    cfg.OTPResendWindow,
	})
	authSvc := services.NewAuthService(userRepo, roleRepo, tokenStore, passwordSvc, tokenSvc, otpSvc)
	userSvc := services.NewUserService(userRepo, roleRepo, passwordSvc, emailSvc, cfg.BaseURL)
	profileSvc := services.NewProfileService(profileRepo, mediaStore, int64(cfg.MaxPhotoMB)<<20)
	coachSvc := services.NewCoachService(coachRepo, userRepo, roleRepo)
	catalogSvc := services.NewCatalogService(catalogRepo)
	purchaseSvc := services.NewPurchaseService(purchaseRepo, catalogRepo)
	ticketSvc := services.NewTicketService(ticketRepo, userRepo)
	messageSvc := services.NewMessageService(messageRepo, userRepo)
	analyticsSvc := services.NewAnalyticsService(analyticsRepo, purchaseRepo)

	// Handlers and middleware
	h := httpx.Handlers{
		Auth:      handlers.NewAuthHandlers(authSvc, cfg.ExposeOTP),
		User:      handlers.NewUserHandlers(userSvc),
		Profile:   handlers.NewProfileHandlers(profileSvc),
		Coach:     handlers.NewCoachHandlers(coachSvc),
		Catalog:   handlers.NewCatalogHandlers(catalogSvc),
		Purchase:  handlers.NewPurchaseHandlers(purchaseSvc),
		Ticket:    handlers.NewTicketHandlers(ticketSvc),
		Message:   handlers.NewMessageHandlers(messageSvc),
		Analytics: handlers.NewAnalyticsHandlers(analyticsSvc),
	}
	authMW := middleware.AuthMiddleware(tokenSvc, userRepo)
	casbinMW := middleware.NewCasbinMW(cas.E)

	r := httpx.BuildRouter(h, authMW, casbinMW, logger, cfg.APIPrefix, cfg.CORSAllowOrigins)

	seedPolicies(cas, cfg.APIPrefix, logger)

	addr := ":" + cfg.Port
	logger.WithField("addr", addr).Info("listening")
	return http.ListenAndServe(addr, r)
}

// seedPolicies installs the default route authorization rules once.
func seedPolicies(cas *auth.CasbinService, prefix string, logger *logrus.Logger) {
	policies, _ := cas.E.GetPolicy()
	if len(policies) > 0 {
		return
	}
	cas.E.AddPolicy("role_admin", prefix+"/admin/*", "(GET|POST|PUT|DELETE)")
	cas.E.AddPolicy("role_admin", prefix+"/support/*", "(GET|POST)")
	cas.E.AddPolicy("role_support", prefix+"/support/*", "(GET|POST)")
	cas.E.AddPolicy("role_coach", prefix+"/coach/*", "(GET|POST|PUT)")
	_ = cas.E.SavePolicy()
	logger.Info("casbin: seeded default policies")
}
