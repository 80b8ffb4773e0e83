package app

import (
	"context"
	"math/rand"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"finverse_backend/internal/config"
	"finverse_backend/internal/controller"
	"finverse_backend/internal/repository"
	"finverse_backend/internal/service"
	"finverse_backend/pkg/database"
	"finverse_backend/pkg/logger"
	"finverse_backend/pkg/monitoring"
	"finverse_backend/pkg/tracing"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Repositories struct {
	User     *repository.UserRepository
	Lesson   *repository.LessonRepository
	Progress *repository.ProgressRepository
	Duel     *repository.DuelRepository
	Boss     *repository.BossRepository
	Trap     *repository.TrapRepository
	Habit    *repository.HabitRepository
	Budget   *repository.BudgetRepository
	AI       *repository.AIRepository
}

type Services struct {
	Auth        *service.AuthService
	Progression *service.ProgressionService
	Lesson      *service.LessonService
	Duel        *service.DuelService
	Boss        *service.BossService
	Trap        *service.TrapService
	Habit       *service.HabitService
	Budget      *service.BudgetService
	Gateway     *service.AIGatewayService
}

type Controllers struct {
	Auth     *controller.AuthController
	Profile  *controller.ProfileController
	Lesson   *controller.LessonController
	Progress *controller.ProgressController
	Duel     *controller.DuelController
	Boss     *controller.BossController
	Trap     *controller.TrapController
	Habit    *controller.HabitController
	Budget   *controller.BudgetController
	AI       *controller.AIController
	Health   *controller.HealthController
}

type App struct {
	Config    *config.Config
	DB        *gorm.DB
	Redis     *redis.Client
	Router    *gin.Engine
	Services  *Services
	traceProv *sdktrace.TracerProvider
}

func NewApp(cfg *config.Config) *App {
	logger.InitLogger(cfg)

	gin.SetMode(cfg.Server.Mode)

	db, err := database.InitDB(&cfg.Database)
	if err != nil {
		logger.Log.Fatal("failed to connect to database", zap.Error(err))
	}
	if cfg.Server.Mode != "release" || cfg.ForceMigrate {
		if err := database.Setup(db); err != nil {
			logger.Log.Fatal("database setup failed", zap.Error(err))
		}
	}

	redisClient, err := database.InitRedis(&cfg.Redis)
	if err != nil {
		logger.Log.Warn("redis unavailable, caches degrade to DB only", zap.Error(err))
		redisClient = nil
	}

	var traceProvider *sdktrace.TracerProvider
	if cfg.Tracing.Enabled {
		traceProvider, err = tracing.InitTracer("finverse-backend", cfg.Tracing.CollectorEndpoint)
		if err != nil {
			logger.Log.Warn("tracing disabled", zap.Error(err))
		}
	}

	monitoring.Init()

	repos := buildRepositories(db)
	services := buildServices(cfg, repos, redisClient)
	controllers := buildControllers(db, redisClient, services)

	app := &App{
		Config:    cfg,
		DB:        db,
		Redis:     redisClient,
		Services:  services,
		traceProv: traceProvider,
	}
	app.Router = app.setupRouter(controllers)
	return app
}

func buildRepositories(db *gorm.DB) *Repositories {
	return &Repositories{
		User:     repository.NewUserRepository(db),
		Lesson:   repository.NewLessonRepository(db),
		Progress: repository.NewProgressRepository(db),
		Duel:     repository.NewDuelRepository(db),
		Boss:     repository.NewBossRepository(db),
		Trap:     repository.NewTrapRepository(db),
		Habit:    repository.NewHabitRepository(db),
		Budget:   repository.NewBudgetRepository(db),
		AI:       repository.NewAIRepository(db),
	}
}

func buildServices(cfg *config.Config, repos *Repositories, redisClient *redis.Client) *Services {
	progression := service.NewProgressionService(repos.Progress, repos.Lesson)
	aiClient := service.NewOpenAIClient(cfg.AI)
	gateway := service.NewAIGatewayService(aiClient, repos.AI, repos.Lesson, progression, redisClient, cfg.AI)
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))

	return &Services{
		Auth:        service.NewAuthService(repos.User, repos.Progress, cfg),
		Progression: progression,
		Lesson:      service.NewLessonService(repos.Lesson, repos.Progress, progression, gateway),
		Duel:        service.NewDuelService(repos.Duel),
		Boss:        service.NewBossService(repos.Boss, progression, rng),
		Trap:        service.NewTrapService(repos.Trap, progression),
		Habit:       service.NewHabitService(repos.Habit),
		Budget:      service.NewBudgetService(repos.Budget, rng),
		Gateway:     gateway,
	}
}

func buildControllers(db *gorm.DB, redisClient *redis.Client, services *Services) *Controllers {
	return &Controllers{
		Auth:     controller.NewAuthController(services.Auth),
		Profile:  controller.NewProfileController(services.Auth),
		Lesson:   controller.NewLessonController(services.Lesson),
		Progress: controller.NewProgressController(services.Progression),
		Duel:     controller.NewDuelController(services.Duel),
		Boss:     controller.NewBossController(services.Boss),
		Trap:     controller.NewTrapController(services.Trap),
		Habit:    controller.NewHabitController(services.Habit),
		Budget:   controller.NewBudgetController(services.Budget),
		AI:       controller.NewAIController(services.Gateway),
		Health:   controller.NewHealthController(db, redisClient),
	}
}

// Run serves until SIGINT/SIGTERM, then drains connections.
func (a *App) Run() {
	srv := &http.Server{
		Addr:    ":" + a.Config.Server.Port,
		Handler: a.Router,
	}

	go func() {
		logger.Log.Info("server starting", zap.String("port", a.Config.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.Fatal("server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Log.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Log.Error("forced shutdown", zap.Error(err))
	}
	if a.traceProv != nil {
		if err := a.traceProv.Shutdown(ctx); err != nil {
			logger.Log.Error("tracer shutdown failed", zap.Error(err))
		}
	}
	if a.Redis != nil {
		a.Redis.Close()
	}
	logger.Log.Info("server exited")
}
