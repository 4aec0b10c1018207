package app

import (
	"context"
	"dsa_tracker_backend/internal/config"
	"dsa_tracker_backend/internal/controller"
	"dsa_tracker_backend/internal/repository"
	"dsa_tracker_backend/internal/service"
	"dsa_tracker_backend/pkg/configwatcher"
	"dsa_tracker_backend/pkg/database"
	"dsa_tracker_backend/pkg/logger"
	"dsa_tracker_backend/pkg/monitoring"
	"dsa_tracker_backend/pkg/security"
	"dsa_tracker_backend/pkg/tracing"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const serviceName = "dsa-tracker"

type App struct {
	Config          *config.Config
	Router          *gin.Engine
	DB              *gorm.DB
	Redis           *redis.Client
	services        *services
	tracer          *sdktrace.TracerProvider
	configCallbacks []func(*config.Config)
}

type repositories struct {
	user    *repository.UserRepository
	problem *repository.ProblemRepository
	attempt *repository.AttemptRepository
	session *repository.SessionRepository
}

type services struct {
	auth     *service.AuthService
	identity *service.IdentityService
	problem  *service.ProblemService
	attempt  *service.AttemptService
	stats    *service.StatsService
	seed     *service.SeedService
}

type controllers struct {
	auth    *controller.AuthController
	problem *controller.ProblemController
	attempt *controller.AttemptController
	stats   *controller.StatsController
	health  *controller.HealthController
}

func (a *App) RegisterConfigCallback(callback func(*config.Config)) {
	a.configCallbacks = append(a.configCallbacks, callback)
}

func (a *App) applyConfig(cfg *config.Config) {
	for _, callback := range a.configCallbacks {
		callback(cfg)
	}
}

func (a *App) initRepositories(db *gorm.DB, rdb *redis.Client) *repositories {
	return &repositories{
		user:    repository.NewUserRepository(db),
		problem: repository.NewProblemRepository(db),
		attempt: repository.NewAttemptRepository(db),
		session: repository.NewSessionRepository(rdb),
	}
}

func (a *App) initServices(repos *repositories, cfg *config.Config, db *gorm.DB) *services {
	problemService := service.NewProblemService(repos.problem)
	attemptService := service.NewAttemptService(db, repos.problem, repos.attempt)

	return &services{
		auth:     service.NewAuthService(repos.user, repos.session, cfg),
		identity: service.NewIdentityService(repos.user, cfg.Demo.Email),
		problem:  problemService,
		attempt:  attemptService,
		stats:    service.NewStatsService(attemptService),
		seed:     service.NewSeedService(repos.user, repos.problem, problemService, attemptService, cfg.Demo),
	}
}

func (a *App) initControllers(s *services, db *gorm.DB, cfg *config.Config) *controllers {
	return &controllers{
		auth:    controller.NewAuthController(s.auth, cfg.Session.CookieName, cfg.Session.Secure),
		problem: controller.NewProblemController(s.problem, s.identity),
		attempt: controller.NewAttemptController(s.attempt, s.identity),
		stats:   controller.NewStatsController(s.stats, s.identity),
		health:  controller.NewHealthController(db),
	}
}

func (a *App) setupMiddlewares(router *gin.Engine, cfg *config.Config) {
	router.Use(security.CORS(cfg.CORS.AllowedOrigins))
	router.Use(security.Secure())

	// 分布式追踪中间件
	if cfg.Tracing.Enabled {
		router.Use(tracing.GinMiddleware())
	}

	router.Use(monitoring.MetricsMiddleware())
}

// New wires the HTTP surface on top of already opened stores. rdb may be nil.
func New(cfg *config.Config, db *gorm.DB, rdb *redis.Client) *App {
	app := &App{
		Config: cfg,
		DB:     db,
		Redis:  rdb,
	}

	repos := app.initRepositories(db, rdb)
	app.services = app.initServices(repos, cfg, db)
	controllers := app.initControllers(app.services, db, cfg)

	router := gin.Default()
	app.Router = router

	app.setupMiddlewares(router, cfg)
	app.registerRoutes(router, controllers, app.services, cfg)

	app.RegisterConfigCallback(logger.SetLevel)
	return app
}

func NewApp(cfg *config.Config) *App {
	logger.InitLogger(cfg)
	defer logger.Log.Sync()

	logger.Log.Info("Logger initialized successfully")
	gin.SetMode(cfg.Server.Mode)

	db, err := database.InitDB(&cfg.Database, cfg.Server.Mode)
	if err != nil {
		logger.Log.Fatal("Failed to initialize database", zap.Error(err))
		log.Fatalf("Failed to initialize database: %v", err)
	}

	// release 模式下默认不迁移，除非通过 -migrate 显式指定
	if cfg.Server.Mode != gin.ReleaseMode || cfg.ForceMigrate {
		if err := database.Migrate(db); err != nil {
			logger.Log.Fatal("Failed to migrate database", zap.Error(err))
		}
		logger.Log.Info("Database migrated", zap.String("driver", cfg.Database.Driver))
	}

	rdb, err := database.InitRedis(&cfg.Redis)
	if err != nil {
		logger.Log.Fatal("Failed to initialize redis", zap.Error(err))
		log.Fatalf("Failed to initialize redis: %v", err)
	}

	// 监控初始化
	monitoring.Init()

	app := New(cfg, db, rdb)

	if cfg.Tracing.Enabled {
		tp, err := tracing.InitTracer(serviceName, cfg.Tracing.CollectorEndpoint)
		if err != nil {
			logger.Log.Fatal("Failed to initialize tracing", zap.Error(err))
		}
		app.tracer = tp
	}

	return app
}

// Bootstrap provisions the demo identity, optionally with its sample catalog.
func (a *App) Bootstrap(ctx context.Context, samples bool) error {
	result, err := a.services.seed.Bootstrap(ctx, samples)
	if err != nil {
		return err
	}
	logger.Log.Info("Demo identity ready",
		zap.Uint("user_id", result.Demo.ID),
		zap.Int("problems", result.Problems),
		zap.Int("attempts", result.Attempts),
	)
	return nil
}

func (a *App) Run() {
	srv := &http.Server{
		Addr:              ":" + a.Config.Server.Port,
		Handler:           a.Router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// 启动服务器
	go func() {
		logger.Log.Info("Server running", zap.String("port", a.Config.Server.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	watchCtx, stopWatching := context.WithCancel(context.Background())
	defer stopWatching()
	if a.Config.File != "" {
		go func() {
			if err := configwatcher.WatchConfig(watchCtx, a.Config.File, a.applyConfig); err != nil {
				logger.Log.Warn("Config watcher disabled", zap.Error(err))
			}
		}()
	}

	// 等待中断信号优雅地关闭服务器（设置5秒的超时时间）
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Log.Info("Shutting down server...")
	stopWatching()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Log.Error("Server forced to shutdown", zap.Error(err))
	}

	if a.tracer != nil {
		if err := a.tracer.Shutdown(ctx); err != nil {
			logger.Log.Error("Failed to shutdown tracer provider", zap.Error(err))
		}
	}
	if a.Redis != nil {
		a.Redis.Close()
	}
	if sqlDB, err := a.DB.DB(); err == nil {
		sqlDB.Close()
	}

	logger.Log.Info("Server exiting")
}
