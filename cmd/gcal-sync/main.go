package main

import (
	"context"
	"log"
	"net/http"

	"github.com/SergeyKozhin/gcal-sync-backend/internal/api"
	sync_service "github.com/SergeyKozhin/gcal-sync-backend/internal/business/sync"
	"github.com/SergeyKozhin/gcal-sync-backend/internal/config"
	"github.com/SergeyKozhin/gcal-sync-backend/internal/database"
	"github.com/SergeyKozhin/gcal-sync-backend/internal/database/events"
	"github.com/SergeyKozhin/gcal-sync-backend/internal/database/eventtypes"
	"github.com/SergeyKozhin/gcal-sync-backend/internal/pkg/gcal"
	"github.com/SergeyKozhin/gcal-sync-backend/internal/pkg/oauth"
	"github.com/SergeyKozhin/gcal-sync-backend/internal/pkg/rrule"
	"github.com/SergeyKozhin/gcal-sync-backend/internal/poller"
	"github.com/SergeyKozhin/gcal-sync-backend/internal/redis"
	"github.com/xlab/closer"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func main() {
	ctx := context.Background()

	logger, err := initLogger()
	if err != nil {
		log.Fatalf("unable to initialize logger: %v", err)
	}

	redisPool := redis.NewRedisPool(logger)
	tokens := redis.NewTokenRepository(redisPool, logger)

	db, err := database.NewPGX(ctx, config.PostgresURL())
	if err != nil {
		logger.Fatalw("unable to initialize db", "err", err)
	}
	eventsRepository := events.NewRepository()
	eventTypesRepository := eventtypes.NewRepository()

	flow, err := oauth.NewFlow(logger, tokens)
	if err != nil {
		logger.Fatalw("unable to initialize oauth flow", "err", err)
	}

	feed := gcal.NewClient(flow)
	ruleParser := rrule.NewParser()

	syncService := sync_service.NewService(
		db,
		logger,
		feed,
		eventsRepository,
		eventTypesRepository,
		ruleParser,
		flow,
		config.CalendarID(),
		config.PrimaryColor(),
	)

	p := poller.NewPoller(logger, syncService, config.SyncSchedule(), config.SyncOnStart())
	if err := p.Start(ctx); err != nil {
		logger.Fatalw("unable to start poller", "err", err)
	}

	api := api.NewApi(logger, syncService, flow)

	errLogger, err := zap.NewStdLogAt(logger.Desugar(), zap.ErrorLevel)
	if err != nil {
		logger.Fatalw("error initiating server logger", "err", err)
	}

	server := &http.Server{
		Addr:     ":" + config.Port(),
		Handler:  api,
		ErrorLog: errLogger,
	}

	logger.Infow("Started server", "port", config.Port())
	logger.Fatalw("server error", "err", server.ListenAndServe())
}

func initLogger() (*zap.SugaredLogger, error) {
	var logger *zap.Logger
	var err error

	if config.Production() {
		logger, err = zap.NewProduction()
	} else {
		conf := zap.NewDevelopmentConfig()
		conf.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		logger, err = conf.Build()
	}

	if err != nil {
		return nil, err
	}

	closer.Bind(func() {
		_ = logger.Sync()
	})

	return logger.Sugar(), nil
}
