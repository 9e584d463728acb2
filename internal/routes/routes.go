package routes

import (
	"github.com/go-redis/redis/v8"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"submission-portal/internal/forms"
	"submission-portal/internal/repositories"
	"submission-portal/internal/services"
	"submission-portal/pkg/blobstore"
	"submission-portal/pkg/config"
	"submission-portal/pkg/middleware"
	"submission-portal/pkg/service"
)

func InitRouter(
	e *echo.Echo,
	dbConn *pgxpool.Pool,
	redisClient *redis.Client,
	store blobstore.BlobStorageInterface,
	jwtSvc service.JWTService,
	logger *zap.Logger,
	cfg *config.Config,
) {
	logger.Info("InitRouter: Начало создания маршрутов")

	api := e.Group("/api")
	authMW := middleware.NewAuthMiddleware(jwtSvc, logger)

	// --- 1. РЕПОЗИТОРИИ ---
	// По одному репозиторию на вариант формы: каждый знает только свою таблицу.
	submissionRepos := make(map[forms.FormType]repositories.SubmissionRepositoryInterface)
	for _, variant := range forms.Variants() {
		submissionRepos[variant.Type] = repositories.NewSubmissionRepository(dbConn, variant.Table, logger)
	}
	reviewerRepo := repositories.NewReviewerRepository(dbConn)
	cacheRepo := repositories.NewRedisCacheRepository(redisClient)

	// --- 2. СЕРВИСЫ ---
	writer := services.NewSubmissionWriter(store, submissionRepos, logger)
	normalizer := services.NewNormalizer(store, logger)
	submissionService := services.NewSubmissionService(writer, submissionRepos, normalizer, cacheRepo, logger)
	authService := services.NewAuthService(reviewerRepo, jwtSvc, logger)
	reportService := services.NewReportService(submissionRepos, logger)

	// --- 3. МАРШРУТЫ ---
	registerSubmissionRoutes(api, submissionService, authMW, logger)
	registerAuthRoutes(api, authService, logger)
	registerReportRoutes(api, reportService, authMW, logger)
	registerFileRoutes(e, store, logger)

	logger.Info("InitRouter: Маршруты созданы")
}
