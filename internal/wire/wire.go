package wire

import (
	"Tieba/internal/api"
	"Tieba/internal/api/config"
	"Tieba/internal/api/handler"
	"Tieba/internal/job"
	"Tieba/internal/pkg/cron"
	"Tieba/internal/pkg/kafka"
	"Tieba/internal/pkg/mongo"
	"Tieba/internal/repository"
	"Tieba/internal/service"

	"github.com/gin-gonic/gin"
	mongodriver "go.mongodb.org/mongo-driver/mongo"
	"gorm.io/gorm"
)

// ApplicationContainer 封装了应用运行所需的所有顶级组件
type ApplicationContainer struct {
	Router   *gin.Engine
	DB       *gorm.DB
	CronMgr  *cron.Manager
	Producer kafka.Producer
	// KafkaManager 未配置 broker 时为 nil
	KafkaManager *kafka.ConsumerManager
}

func BuildApplication(db *gorm.DB, mongoDB *mongodriver.Database, cfg *config.Config) (*ApplicationContainer, error) {
	userRepo := repository.NewUserRepo(db)
	userFollowRepo := repository.NewUserFollowRepo(db)
	boardRepo := repository.NewBoardRepo(db)
	categoryRepo := repository.NewBoardCategoryRepo(db)
	memberRepo := repository.NewBoardMemberRepo(db)
	announcementRepo := repository.NewAnnouncementRepo(db)
	boardMetricRepo := repository.NewBoardMetricRepository(db)
	postRepo := repository.NewPostRepository(db)
	actionRepo := repository.NewPostActionRepo(db)
	commentRepo := repository.NewCommentRepo(db)
	notificationRepo := mongo.NewNotificationRepo(mongoDB)
	modLogRepo := mongo.NewModLogRepo(mongoDB)

	producer, err := kafka.NewProducer(cfg)
	if err != nil {
		return nil, err
	}

	userService := service.NewUserService(userRepo, userFollowRepo)
	userFollowService := service.NewUserFollowService(userFollowRepo, userService, producer)
	boardService := service.NewBoardService(boardRepo, categoryRepo, memberRepo, producer)
	memberService := service.NewBoardMemberService(boardRepo, memberRepo, userService, producer)
	announcementService := service.NewAnnouncementService(announcementRepo, boardRepo, memberRepo, userService, producer)
	mediaService := service.NewMediaService()
	postService := service.NewPostService(postRepo, boardRepo, memberRepo, actionRepo, userService, mediaService, producer)
	actionService := service.NewPostActionService(actionRepo, postRepo, userService, producer)
	commentService := service.NewCommentService(commentRepo, postRepo, memberRepo, userService, mediaService, producer)
	toggleService := service.NewToggleService(actionService, commentService, userFollowService, memberService)
	boardMetricService := service.NewBoardMetricService(boardMetricRepo, boardRepo, memberRepo)
	notificationService := service.NewNotificationService(notificationRepo, userService)
	modLogService := service.NewModLogService(modLogRepo, boardRepo, memberRepo, userService)

	handlers := &api.HandlersGroup{
		UserHandler:         handler.NewUserHandler(userService),
		UserFollowHandler:   handler.NewUserFollowHandler(userFollowService),
		BoardHandler:        handler.NewBoardHandler(boardService),
		BoardMemberHandler:  handler.NewBoardMemberHandler(memberService),
		AnnouncementHandler: handler.NewAnnouncementHandler(announcementService),
		PostHandler:         handler.NewPostHandler(postService),
		PostActionHandler:   handler.NewPostActionHandler(actionService),
		CommentHandler:      handler.NewCommentHandler(commentService),
		ToggleHandler:       handler.NewToggleHandler(toggleService),
		MediaHandler:        handler.NewMediaHandler(mediaService),
		BoardMetricHandler:  handler.NewBoardMetricHandler(boardMetricService),
		NotificationHandler: handler.NewNotificationHandler(notificationService),
		ModLogHandler:       handler.NewModLogHandler(modLogService),
	}

	router := api.SetupRouter(handlers)

	cronMgr := cron.NewCronManager(
		cfg,
		job.NewBoardMetricJob(boardRepo, boardMetricService),
		job.NewMediaCleanupJob(),
	)

	var kafkaMgr *kafka.ConsumerManager
	if len(cfg.Kafka.Brokers) > 0 {
		kafkaMgr, err = kafka.NewConsumerManager(cfg, notificationRepo, modLogRepo)
		if err != nil {
			_ = producer.Close()
			return nil, err
		}
	}

	return &ApplicationContainer{
		Router:       router,
		DB:           db,
		CronMgr:      cronMgr,
		Producer:     producer,
		KafkaManager: kafkaMgr,
	}, nil
}
