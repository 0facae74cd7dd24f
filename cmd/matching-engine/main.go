package main

import (
	"context"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	app "github.com/hyyu189/SVM-CLOB-sub000/internal/app/engine"
	eventpublisher "github.com/hyyu189/SVM-CLOB-sub000/internal/usecase/event-publisher"
	orderreader "github.com/hyyu189/SVM-CLOB-sub000/internal/usecase/order-reader"
	"github.com/hyyu189/SVM-CLOB-sub000/internal/usecase/orderbook"
	"github.com/hyyu189/SVM-CLOB-sub000/internal/usecase/snapshot"
	"github.com/hyyu189/SVM-CLOB-sub000/internal/usecase/tape"
	"github.com/hyyu189/SVM-CLOB-sub000/pkg/config"
	"github.com/hyyu189/SVM-CLOB-sub000/pkg/logger"
	"github.com/hyyu189/SVM-CLOB-sub000/pkg/redis"
)

var cfg *config.Config
var log *logger.Logger

func init() {
	var err error
	cfg = &config.Config{}
	err = config.Load(cfg)
	if err != nil {
		panic(err)
	}

	logger, err := logger.NewLogger()
	if err != nil {
		panic(err)
	}

	log = logger
}

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Set up signal handling for graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	redisConfig := redis.DefaultConfig()
	redisConfig.Addrs = strings.Split(cfg.Redis.Addrs, ",")
	redisConfig.Password = cfg.Redis.Password
	redisConfig.Username = cfg.Redis.Username
	redisConfig.DB = cfg.Redis.DB

	rclient := redis.NewClient(log, redisConfig)
	if err := rclient.Connect(ctx); err != nil {
		log.Error(err, logger.Field{
			Key:   "action",
			Value: "connect_redis",
		})
		return
	}

	// Initialize components
	tradeTape := tape.NewTape(cfg.Engine.TapeCapacity)
	book := orderbook.NewBook(orderbook.Config{
		TickSize:    cfg.Engine.TickSize,
		MinQuantity: cfg.Engine.MinQuantity,
	}, tradeTape)
	oReader := orderreader.NewReader(cfg.Kafka, log)
	ePublisher := eventpublisher.NewPublisher(cfg.Kafka, log)
	snapshotStore := snapshot.NewSnapshotStore(rclient, cfg.Pair, log)

	options := app.DefaultEngineOptions()
	options.SnapshotInterval = cfg.Snapshot.Interval
	options.SnapshotCommandDelta = cfg.Snapshot.CommandDelta
	options.ExpirySweepInterval = cfg.Snapshot.ExpirySweepInterval

	engine := app.NewEngineWithOptions(
		book,
		oReader,
		ePublisher,
		snapshotStore,
		log,
		cfg,
		options,
	)

	// Start the engine
	if err := engine.Start(ctx); err != nil {
		log.Error(err, logger.Field{
			Key:   "action",
			Value: "start_engine",
		})
		return
	}

	log.Info("Matching engine started successfully", logger.Field{
		Key:   "pair",
		Value: cfg.Pair,
	})

	// Wait for shutdown signal
	sig := <-sigChan
	log.Info("Received shutdown signal", logger.Field{
		Key:   "signal",
		Value: sig.String(),
	})

	cancel()

	// Create a timeout context for graceful shutdown
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := engine.Stop(shutdownCtx); err != nil {
		log.Error(err, logger.Field{
			Key:   "action",
			Value: "stop_engine",
		})
	}

	if err := ePublisher.Close(); err != nil {
		log.Error(err, logger.Field{
			Key:   "action",
			Value: "close_event_publisher",
		})
	}

	if err := rclient.Disconnect(shutdownCtx); err != nil {
		log.Error(err, logger.Field{
			Key:   "action",
			Value: "disconnect_redis",
		})
	}

	log.Info("Matching engine shutdown complete")
}
