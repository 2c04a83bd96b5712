package bootstrap

import (
	"context"
	"log"
	"time"

	"ai-import-be/internal/config"
	"ai-import-be/internal/controller"
	"ai-import-be/internal/pkg/logger"
	"ai-import-be/internal/pkg/serverutils"
	"ai-import-be/internal/repository/cache"
	"ai-import-be/internal/repository/contract"
	"ai-import-be/internal/repository/memory"
	"ai-import-be/internal/repository/unitofwork"
	"ai-import-be/internal/service"

	pktNats "ai-import-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	ImportController controller.IImportController

	// Background Services (Exposed for main.go to run)
	ConsumerService service.IConsumerService

	Logger logger.ILogger

	natsPub *pktNats.Publisher
	rdb     *redis.Client
	pubSub  *gochannel.GoChannel
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core Facades
	uowFactory := unitofwork.NewRepositoryFactory(db)
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.IsProduction())
	consumerLogger := logger.NewIsolatedLogger(cfg.Import.ConsumerLogPath)

	// 2. Event Bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	// 3. Infrastructure
	natsPub, err := pktNats.NewPublisher(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
	}

	ttl := time.Duration(cfg.Import.SessionTTLMinutes) * time.Minute
	var rdb *redis.Client
	var drafts contract.ImportDraftRepository
	if cfg.Import.SessionStore == "redis" {
		rdb = newRedisClient(cfg.App.RedisURL)
		drafts = cache.NewImportDraftRepository(rdb, ttl)
		log.Printf("[INFO] Import drafts stored in Redis (ttl %s)", ttl)
	} else {
		drafts = memory.NewImportDraftRepository(ttl)
		log.Printf("[INFO] Import drafts stored in memory (ttl %s)", ttl)
	}

	// 4. Services
	publisherService := service.NewPublisherService(cfg.Import.CommitTopic, pubSub)
	eventPublisher := service.NewImportEventPublisher(natsPub, sysLogger)
	consumerService := service.NewConsumerService(
		pubSub,
		cfg.Import.CommitTopic,
		uowFactory,
		eventPublisher,
		consumerLogger,
	)
	importService := service.NewImportService(drafts, publisherService, sysLogger, ttl)

	// 5. Controllers
	jwtMiddleware := serverutils.NewJwtMiddleware(cfg.App.JwtSecret)
	importController := controller.NewImportController(importService, jwtMiddleware)

	return &Container{
		ImportController: importController,
		ConsumerService:  consumerService,
		Logger:           sysLogger,
		natsPub:          natsPub,
		rdb:              rdb,
		pubSub:           pubSub,
	}
}

func newRedisClient(url string) *redis.Client {
	opt, err := redis.ParseURL(url)
	if err != nil {
		log.Printf("[WARN] Failed to parse Redis URL: %v. Using direct Addr", err)
		opt = &redis.Options{
			Addr: url,
		}
	}
	rdb := redis.NewClient(opt)
	if _, err := rdb.Ping(context.Background()).Result(); err != nil {
		log.Printf("[WARN] Failed to connect to Redis: %v", err)
	}
	return rdb
}

// Close releases the connections opened by NewContainer.
func (c *Container) Close() {
	if err := c.pubSub.Close(); err != nil {
		log.Printf("[WARN] Failed to close event bus: %v", err)
	}
	if c.natsPub != nil {
		c.natsPub.Close()
	}
	if c.rdb != nil {
		if err := c.rdb.Close(); err != nil {
			log.Printf("[WARN] Failed to close Redis: %v", err)
		}
	}
	_ = c.Logger.Sync()
}
