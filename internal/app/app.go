package app

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"studyquiz_backend/internal/config"
	"studyquiz_backend/internal/controller"
	"studyquiz_backend/internal/repository"
	"studyquiz_backend/internal/service"
	"studyquiz_backend/pkg/database"
	"studyquiz_backend/pkg/logger"
	"studyquiz_backend/pkg/monitoring"
	"studyquiz_backend/pkg/security"
	"studyquiz_backend/pkg/tracing"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.uber.org/zap"
)

type App struct {
	Config   *config.Config
	Router   *gin.Engine
	Redis    *redis.Client
	services *services
	tracer   *sdktrace.TracerProvider
}

type services struct {
	pdf     *service.PDFService
	ai      *service.AIService
	grading *service.GradingService
	history *service.HistoryService
	storage *service.StorageService
}

type controllers struct {
	auth    *controller.AuthController
	study   *controller.StudyController
	history *controller.HistoryController
	health  *controller.HealthController
}

// initHistoryRepository selects the tabular backend. Sheets is the default;
// mysql keeps the same row semantics behind gorm.
func (a *App) initHistoryRepository(cfg *config.Config) repository.HistoryRepository {
	switch cfg.HistoryStore.Type {
	case "mysql":
		db, err := database.InitDB(&cfg.Database)
		if err != nil {
			logger.Log.Fatal("Failed to initialize database", zap.Error(err))
		}
		return repository.NewMySQLHistoryRepository(db)
	default:
		repo, err := repository.NewSheetsHistoryRepository(context.Background(), cfg.Sheets)
		if err != nil {
			logger.Log.Fatal("Failed to initialize sheets history store", zap.Error(err))
		}
		return repo
	}
}

func (a *App) initServices(cfg *config.Config, repo repository.HistoryRepository, rdb *redis.Client) *services {
	s := &services{}

	s.pdf = service.NewPDFService()
	s.grading = service.NewGradingService()
	s.storage = service.NewStorageService(cfg)
	s.history = service.NewHistoryService(repo, rdb)

	ai, err := service.NewAIService(context.Background(), cfg.AI, s.pdf)
	if err != nil {
		logger.Log.Fatal("Failed to initialize AI client", zap.Error(err))
	}
	s.ai = ai

	return s
}

func (a *App) initControllers(s *services, rdb *redis.Client) *controllers {
	return &controllers{
		auth:    controller.NewAuthController(a.Config),
		study:   controller.NewStudyController(s.ai, s.grading, s.history, s.storage),
		history: controller.NewHistoryController(s.history),
		health:  controller.NewHealthController(rdb),
	}
}

func (a *App) setupMiddlewares(router *gin.Engine, cfg *config.Config) {
	router.Use(security.CORS(cfg.CORS.AllowedOrigins))
	router.Use(security.Secure())

	maxRequests := cfg.RateLimit.MaxRequests
	if maxRequests <= 0 {
		maxRequests = 300
	}
	window := time.Duration(cfg.RateLimit.WindowMinutes) * time.Minute
	if window <= 0 {
		window = time.Minute
	}
	router.Use(security.RateLimiter(maxRequests, window))

	if cfg.Tracing.Enabled {
		router.Use(tracing.GinMiddleware())
	}

	router.Use(monitoring.MetricsMiddleware())
}

func NewApp(cfg *config.Config) *App {
	logger.InitLogger(cfg)
	logger.Log.Info("Logger initialized successfully")

	if cfg.Server.Mode != "" {
		gin.SetMode(cfg.Server.Mode)
	}

	// The cache is an optimization; a missing redis only costs read speed.
	rdb, err := database.InitRedis(&cfg.Redis)
	if err != nil {
		logger.Log.Warn("Redis unavailable, history cache disabled", zap.Error(err))
		rdb = nil
	}

	app := &App{
		Config: cfg,
		Redis:  rdb,
	}

	repo := app.initHistoryRepository(cfg)
	if err := repo.EnsureArchivedColumn(context.Background()); err != nil {
		logger.Log.Warn("archived column migration skipped", zap.Error(err))
	}

	services := app.initServices(cfg, repo, rdb)
	app.services = services
	controllers := app.initControllers(services, rdb)

	monitoring.Init()

	router := gin.Default()
	app.Router = router

	app.setupMiddlewares(router, cfg)

	if cfg.Tracing.Enabled {
		tp, err := tracing.InitTracer("studyquiz-backend", cfg.Tracing.CollectorEndpoint)
		if err != nil {
			logger.Log.Fatal("Failed to initialize tracing", zap.Error(err))
		}
		app.tracer = tp
	}

	app.registerRoutes(router, controllers, cfg)

	if cfg.Storage.Type == "local" {
		router.Static("/uploads", cfg.Storage.LocalPath)
	}

	return app
}

func (a *App) Run() {
	srv := &http.Server{
		Addr:    ":" + a.Config.Server.Port,
		Handler: a.Router,
	}

	go func() {
		log.Printf("Server running on port %s", a.Config.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	if a.services != nil && a.services.ai != nil {
		a.services.ai.Close()
	}
	if a.tracer != nil {
		if err := a.tracer.Shutdown(context.Background()); err != nil {
			logger.Log.Error("Failed to shutdown tracer provider", zap.Error(err))
		}
	}

	log.Println("Server exiting")
}
