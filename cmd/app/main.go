package main

import (
	"context"
	"os"

	"go.uber.org/zap"
	dbadapter "timelineforum/internal/adapters/database"
	"timelineforum/internal/adapters/httpapi"
	previewadapter "timelineforum/internal/adapters/preview"
	redisadapter "timelineforum/internal/adapters/redis"
	"timelineforum/internal/config"
	"timelineforum/internal/core/comment"
	commentapp "timelineforum/internal/core/comment/service"
	"timelineforum/internal/core/event"
	eventapp "timelineforum/internal/core/event/service"
	"timelineforum/internal/core/post"
	postapp "timelineforum/internal/core/post/service"
	promotionapp "timelineforum/internal/core/promotion/service"
	"timelineforum/internal/core/tag"
	tagapp "timelineforum/internal/core/tag/service"
	"timelineforum/internal/core/timeline"
	timelineapp "timelineforum/internal/core/timeline/service"
	"timelineforum/internal/core/user"
	userapp "timelineforum/internal/core/user/service"
	"timelineforum/internal/workers"
)

// defaultSweepSchedule runs the promotion sweep every ten minutes unless
// SWEEP_SCHEDULE overrides it.
const defaultSweepSchedule = "*/10 * * * *"

func main() {
	config.InitLogger()
	config.Init()
	config.InitDB()

	if err := config.DB.AutoMigrate(
		&user.User{},
		&timeline.Timeline{},
		&tag.Tag{},
		&event.Event{},
		&post.Post{},
		&comment.Comment{},
	); err != nil {
		config.Logger.Fatal("Error during migrations:", zap.Error(err))
	}
	config.Logger.Info("Database migrations completed")

	config.InitRedis()
	defer closeResources(config.Logger)

	jwtKey := []byte(os.Getenv("JWT_SECRET"))

	userRepo := dbadapter.NewUserRepositoryDatabase()
	timelineRepo := dbadapter.NewTimelineRepositoryDatabase()
	tagRepo := dbadapter.NewTagRepositoryDatabase()
	eventRepo := dbadapter.NewEventRepositoryDatabase()
	postRepo := dbadapter.NewPostRepositoryDatabase()
	promotionRepo := dbadapter.NewPromotionRepositoryDatabase()
	commentRepo := dbadapter.NewCommentRepositoryDatabase()

	previewFetcher := previewadapter.NewFetcher(config.Logger)
	previewCache := redisadapter.NewPreviewCacheRedis(config.RedisClient)

	userSvc := userapp.NewUserService(userRepo, jwtKey, config.Logger)
	timelineSvc := timelineapp.NewTimelineService(timelineRepo, config.Logger)
	tagSvc := tagapp.NewTagService(tagRepo, timelineRepo, config.Logger)
	eventSvc := eventapp.NewEventService(eventRepo, timelineRepo, tagSvc, previewFetcher, previewCache, config.Logger)
	postSvc := postapp.NewPostService(postRepo, timelineRepo, previewFetcher, previewCache, config.Logger)
	promotionSvc := promotionapp.NewPromotionService(promotionRepo, timelineRepo, config.Logger)
	commentSvc := commentapp.NewCommentService(commentRepo, postRepo, eventRepo, config.Logger)

	seedGeneralTimeline(timelineSvc, userSvc)

	r := httpapi.SetupRoutes(userSvc, timelineSvc, eventSvc, postSvc, promotionSvc, commentSvc, jwtKey)

	schedule := os.Getenv("SWEEP_SCHEDULE")
	if schedule == "" {
		schedule = defaultSweepSchedule
	}
	promotionWorker := workers.NewPromotionWorker(promotionSvc, timelineRepo, schedule, config.Logger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go promotionWorker.Run(ctx)

	config.Logger.Info("App is running...")
	if err := r.Run(":" + os.Getenv("APP_PORT")); err != nil {
		config.Logger.Fatal("Server failed to start:", zap.Error(err))
	}
}

// seedGeneralTimeline makes sure the reserved General timeline exists, owned
// by a system account created on first boot.
func seedGeneralTimeline(timelineSvc *timelineapp.TimelineService, userSvc *userapp.UserService) {
	ctx := context.Background()

	system, err := userSvc.RegisterUser(ctx, "system", "system@timelineforum.local", os.Getenv("SYSTEM_USER_PASSWORD"))
	if err != nil {
		// Already registered on a previous boot; the timeline lookup below
		// only needs an owner for first-time creation.
		existing, lookupErr := userSvc.UserRepository.FindByUsername("system")
		if lookupErr != nil {
			config.Logger.Fatal("could not resolve system user", zap.Error(lookupErr))
		}
		if _, err := timelineSvc.EnsureGeneral(ctx, existing.ID.String()); err != nil {
			config.Logger.Fatal("could not seed General timeline", zap.Error(err))
		}
		return
	}

	if _, err := timelineSvc.EnsureGeneral(ctx, system.ID); err != nil {
		config.Logger.Fatal("could not seed General timeline", zap.Error(err))
	}
}

// closeResources shuts down Redis and the database connection.
func closeResources(logger *zap.Logger) {
	if err := config.RedisClient.Close(); err != nil {
		logger.Error("Error closing Redis connection:", zap.Error(err))
	}

	sqlDB, err := config.DB.DB()
	if err != nil {
		logger.Error("Error getting raw DB:", zap.Error(err))
		return
	}
	if err := sqlDB.Close(); err != nil {
		logger.Error("Error closing database connection:", zap.Error(err))
	}
}
