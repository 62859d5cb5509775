package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math/rand"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/jmoiron/sqlx"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "github.com/noah-isme/taptime-api/api/swagger"
	"github.com/noah-isme/taptime-api/internal/handler"
	"github.com/noah-isme/taptime-api/internal/middleware"
	"github.com/noah-isme/taptime-api/internal/models"
	"github.com/noah-isme/taptime-api/internal/repository"
	"github.com/noah-isme/taptime-api/internal/service"
	"github.com/noah-isme/taptime-api/pkg/cache"
	"github.com/noah-isme/taptime-api/pkg/config"
	"github.com/noah-isme/taptime-api/pkg/database"
	"github.com/noah-isme/taptime-api/pkg/i18n"
	"github.com/noah-isme/taptime-api/pkg/jobs"
	"github.com/noah-isme/taptime-api/pkg/logger"
	corsmiddleware "github.com/noah-isme/taptime-api/pkg/middleware/cors"
	reqidmiddleware "github.com/noah-isme/taptime-api/pkg/middleware/requestid"
	"github.com/noah-isme/taptime-api/pkg/storage"
)

const (
	sweepInterval   = time.Minute
	shutdownTimeout = 10 * time.Second
)

// @title TapTime API
// @version 1.0.0
// @description HR timesheet and management dashboard backend
// @BasePath /api/v1
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

type sessionStore interface {
	Get(ctx context.Context, id string) (*models.Session, error)
	Save(ctx context.Context, session *models.Session) error
	Delete(ctx context.Context, id string) error
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	translator, err := i18n.New(cfg.I18n.DefaultLocale)
	if err != nil {
		logr.Fatal("failed to load locales", zap.Error(err))
	}

	checks := map[string]handler.ReadinessCheck{}

	store, err := newSessionStore(ctx, cfg, logr, checks)
	if err != nil {
		logr.Fatal("failed to init session store", zap.Error(err))
	}

	metrics := service.NewMetricsService()
	validate := validator.New()
	tokens := service.NewTokenService(service.TokenConfig{Secret: cfg.Session.Secret, TTL: cfg.Session.TTL})
	sessions := service.NewSessionService(store, tokens, metrics, logr)
	go releaseExpiredRuntimes(ctx, sessions, logr)

	files, err := storage.NewLocalStorage(cfg.Reports.StorageDir)
	if err != nil {
		logr.Fatal("failed to init report storage", zap.Error(err))
	}
	signer := storage.NewSignedURLSigner(cfg.Reports.SignedURLSecret, cfg.Reports.SignedURLTTL)
	exports := service.NewExportService(files, signer, service.ExportConfig{
		APIPrefix: cfg.APIPrefix,
		ResultTTL: cfg.Reports.SignedURLTTL,
	}, logr)

	reports := service.NewReportService(sessions, exports, validate, logr, service.ReportServiceConfig{
		ResultTTL:       cfg.Reports.SignedURLTTL,
		CleanupInterval: cfg.Reports.CleanupInterval,
	})
	queue := jobs.NewQueue("reports", reports.Handle, jobs.QueueConfig{
		Workers:    cfg.Reports.WorkerConcurrency,
		MaxRetries: cfg.Reports.WorkerRetries,
		OnFailure:  reports.MarkFailed,
		Logger:     logr,
	})
	reports.AttachQueue(queue)
	queue.Start(ctx)
	defer queue.Stop()
	reports.StartCleanup(ctx)

	audit, err := newAuditService(ctx, cfg, sessions, logr, checks)
	if err != nil {
		logr.Fatal("failed to init audit trail", zap.Error(err))
	}

	handlers := handler.Handlers{
		Session:      handler.NewSessionHandler(sessions, audit, translator),
		Registration: handler.NewRegistrationHandler(service.NewRegistrationService(sessions, validate, logr, rand.New(rand.NewSource(time.Now().UnixNano()))), sessions, translator),
		Dashboard: handler.NewDashboardHandler(service.NewDashboardService(sessions, metrics, logr, service.DashboardConfig{
			ClockTick:        cfg.Dashboard.ClockTick,
			WFHApprovalDelay: cfg.Dashboard.WFHApprovalDelay,
		}), translator),
		Approvals:  handler.NewApprovalHandler(service.NewApprovalService(sessions, validate, logr), translator),
		Tasks:      handler.NewTaskHandler(service.NewTaskService(sessions, validate, logr), translator),
		Employees:  handler.NewEmployeeHandler(service.NewEmployeeService(sessions, validate, logr), translator),
		Attendance: handler.NewAttendanceHandler(service.NewAttendanceService(sessions, validate, logr)),
		DTR:        handler.NewDTRHandler(service.NewDTRService(sessions, exports, validate, logr)),
		Payroll:    handler.NewPayrollHandler(service.NewPayrollService(sessions, exports, validate, logr)),
		Leaves:     handler.NewLeaveHandler(service.NewLeaveService(sessions, validate, logr), translator),
		Settings:   handler.NewSettingsHandler(service.NewSettingsService(sessions, validate, logr), translator),
		Divisions:  handler.NewDivisionHandler(service.NewDivisionService(sessions, reports, validate, logr), translator),
		Reports:    handler.NewReportHandler(reports, translator),
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metrics))
	r.Use(middleware.Locale(translator.Locales()))

	metricsHandler := handler.NewMetricsHandler(metrics, checks)
	r.GET("/health", metricsHandler.Health)
	r.GET("/ready", metricsHandler.Ready)
	r.GET("/metrics", metricsHandler.Prometheus)

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	handler.RegisterRoutes(r.Group(cfg.APIPrefix), handlers, handler.RouteMiddleware{
		Session:    middleware.Session(sessions),
		HRAdmin:    middleware.RequireRoles(sessions, models.RoleHRAdmin),
		HRDivision: middleware.RequireRoles(sessions, models.RoleHRDivision),
		Audit: func(action, resource string) gin.HandlerFunc {
			return middleware.Audit(audit, action, resource)
		},
	})

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logr.Sugar().Infow("server starting", "addr", srv.Addr, "env", cfg.Env, "session_store", cfg.Session.Store)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logr.Sugar().Fatalw("server failed", "error", err)
		}
	}()

	<-ctx.Done()
	logr.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logr.Error("graceful shutdown failed", zap.Error(err))
	}
}

// newSessionStore picks the configured backend. The memory store gets a janitor
// that drops expired sessions until ctx ends.
func newSessionStore(ctx context.Context, cfg *config.Config, logr *zap.Logger, checks map[string]handler.ReadinessCheck) (sessionStore, error) {
	if cfg.Session.Store == config.SessionStoreRedis {
		client, err := cache.NewRedis(ctx, cfg.Redis)
		if err != nil {
			return nil, err
		}
		go func() {
			<-ctx.Done()
			_ = client.Close()
		}()
		repo := repository.NewRedisSessionRepository(client, cfg.Session.KeyPrefix, cfg.Session.TTL, logr)
		checks["redis"] = repo.Ping
		return repo, nil
	}

	repo := repository.NewMemorySessionRepository(cfg.Session.TTL)
	go func() {
		ticker := time.NewTicker(sweepInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if removed := repo.Sweep(); removed > 0 {
					logr.Debug("expired sessions swept", zap.Int("removed", removed))
				}
			}
		}
	}()
	return repo, nil
}

// releaseExpiredRuntimes frees dashboard runtimes of sessions the store dropped on TTL expiry.
func releaseExpiredRuntimes(ctx context.Context, sessions *service.SessionService, logr *zap.Logger) {
	ticker := time.NewTicker(sweepInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if released := sessions.ReleaseExpired(ctx); released > 0 {
				logr.Debug("expired session runtimes released", zap.Int("released", released))
			}
		}
	}
}

// newAuditService connects the Postgres audit trail when enabled. A disabled trail records nothing.
func newAuditService(ctx context.Context, cfg *config.Config, sessions *service.SessionService, logr *zap.Logger, checks map[string]handler.ReadinessCheck) (*service.AuditService, error) {
	if !cfg.Audit.Enabled {
		return service.NewAuditService(nil, sessions, logr), nil
	}
	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		return nil, err
	}
	if err := database.EnsureAuditSchema(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}
	go closeOnDone(ctx, db)
	checks["postgres"] = db.PingContext
	return service.NewAuditService(repository.NewAuditRepository(db), sessions, logr), nil
}

func closeOnDone(ctx context.Context, db *sqlx.DB) {
	<-ctx.Done()
	_ = db.Close()
}
