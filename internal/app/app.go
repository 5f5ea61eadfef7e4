package app

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/trahulprabhu38/major-project-sub000/internal/config"
	"github.com/trahulprabhu38/major-project-sub000/internal/controller"
	"github.com/trahulprabhu38/major-project-sub000/internal/repository"
	"github.com/trahulprabhu38/major-project-sub000/internal/service"
	"github.com/trahulprabhu38/major-project-sub000/pkg/database"
	"github.com/trahulprabhu38/major-project-sub000/pkg/logger"
	"github.com/trahulprabhu38/major-project-sub000/pkg/monitoring"
	"github.com/trahulprabhu38/major-project-sub000/pkg/security"
	"github.com/trahulprabhu38/major-project-sub000/pkg/tracing"
)

type App struct {
	Config *config.Config
	Router *gin.Engine
	DB     *gorm.DB
	Redis  *redis.Client
}

type repositories struct {
	user        *repository.UserRepository
	questionMap *repository.QuestionMapRepository
	marks       *repository.MarksRepository
	resource    *repository.ResourceRepository
	interaction *repository.InteractionRepository
}

type services struct {
	auth        *service.AuthService
	storage     *service.StorageService
	content     *service.ContentService
	performance *service.PerformanceService
	planner     *service.StudyPlanService
	feedback    *service.FeedbackService
	recommender *service.RecommenderService
}

type controllers struct {
	auth      *controller.AuthController
	analytics *controller.AnalyticsController
	feedback  *controller.FeedbackController
	content   *controller.ContentController
	health    *controller.HealthController
}

func (a *App) initRepositories(db *gorm.DB) *repositories {
	return &repositories{
		user:        repository.NewUserRepository(db),
		questionMap: repository.NewQuestionMapRepository(db),
		marks:       repository.NewMarksRepository(db),
		resource:    repository.NewResourceRepository(db),
		interaction: repository.NewInteractionRepository(db),
	}
}

func (a *App) initServices(repos *repositories, cfg *config.Config, rdb *redis.Client) *services {
	s := &services{}

	s.storage = service.NewStorageService(cfg)
	s.auth = service.NewAuthService(repos.user, cfg)
	s.content = service.NewContentService(repos.resource, repos.questionMap, s.storage)

	var marksClient *service.MarksClient
	if cfg.Recommender.MarksServiceURL != "" {
		marksClient = service.NewMarksClient(cfg.Recommender.MarksServiceURL)
	}
	s.performance = service.NewPerformanceService(repos.marks, repos.questionMap, marksClient)

	collaborative := service.NewCollaborativeService(repos.interaction, cfg.Recommender.NeighborCount)
	s.recommender = service.NewRecommenderService(
		s.performance,
		collaborative,
		service.NewContentRanker(),
		repos.resource,
		rdb,
		&cfg.Recommender,
	)
	s.planner = service.NewStudyPlanService()
	s.feedback = service.NewFeedbackService(repos.interaction, repos.resource, rdb)

	return s
}

func (a *App) initControllers(s *services, repos *repositories, db *gorm.DB) *controllers {
	return &controllers{
		auth:      controller.NewAuthController(s.auth),
		analytics: controller.NewAnalyticsController(s.performance, s.recommender, s.planner),
		feedback:  controller.NewFeedbackController(s.feedback),
		content:   controller.NewContentController(s.content, repos.marks),
		health:    controller.NewHealthController(db, a.Redis),
	}
}

func (a *App) setupMiddlewares(router *gin.Engine, cfg *config.Config) {
	router.Use(security.CORS(cfg.CORS.AllowedOrigins))
	router.Use(security.Secure())
	maxReq := cfg.RateLimit.MaxRequests
	if maxReq <= 0 {
		maxReq = 100000
	}
	window := time.Duration(cfg.RateLimit.WindowMinutes) * time.Minute
	if window <= 0 {
		window = time.Minute
	}
	router.Use(security.RateLimiter(maxReq, window))

	if cfg.Tracing.Enabled {
		router.Use(tracing.GinMiddleware())
	}

	router.Use(monitoring.MetricsMiddleware())
}

func NewApp(cfg *config.Config) *App {
	logger.InitLogger(cfg)

	db, err := database.InitDB(&cfg.Database)
	if err != nil {
		logger.Log.Fatal("Failed to initialize database", zap.Error(err))
	}

	rdb, err := database.InitRedis(&cfg.Redis)
	if err != nil {
		// Redis只做缓存，连不上时推荐照常生成
		logger.Log.Warn("Redis unavailable, recommendation caching disabled", zap.Error(err))
		rdb = nil
	}

	app := &App{
		Config: cfg,
		DB:     db,
		Redis:  rdb,
	}

	repos := app.initRepositories(db)
	services := app.initServices(repos, cfg, rdb)
	controllers := app.initControllers(services, repos, db)

	monitoring.Init()

	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.Default()
	app.Router = router

	app.setupMiddlewares(router, cfg)

	if cfg.Tracing.Enabled {
		_, err := tracing.InitTracer("exam-remediation", cfg.Tracing.CollectorEndpoint)
		if err != nil {
			logger.Log.Fatal("Failed to initialize tracing", zap.Error(err))
		}
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
		logger.Log.Info("Server running", zap.String("port", a.Config.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.Fatal("listen failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Log.Info("Shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Log.Fatal("Server forced to shutdown", zap.Error(err))
	}

	logger.Log.Info("Server exiting")
	logger.Sync()
}
