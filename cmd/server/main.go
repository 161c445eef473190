package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	actionloghandler "github.com/L968/trecco-api/internal/actionlog/handler"
	actionlogkafka "github.com/L968/trecco-api/internal/actionlog/kafka"
	"github.com/L968/trecco-api/internal/actionlog/recorder"
	actionlogservice "github.com/L968/trecco-api/internal/actionlog/service"
	actionlogmemory "github.com/L968/trecco-api/internal/actionlog/store/memory"
	actionlogpostgres "github.com/L968/trecco-api/internal/actionlog/store/postgres"
	boardhandler "github.com/L968/trecco-api/internal/board/handler"
	boardmetrics "github.com/L968/trecco-api/internal/board/metrics"
	boardservice "github.com/L968/trecco-api/internal/board/service"
	boardmemory "github.com/L968/trecco-api/internal/board/store/memory"
	boardpostgres "github.com/L968/trecco-api/internal/board/store/postgres"
	"github.com/L968/trecco-api/internal/events"
	httptransport "github.com/L968/trecco-api/internal/http"
	"github.com/L968/trecco-api/internal/jwtauth"
	"github.com/L968/trecco-api/internal/notify"
	notifyredis "github.com/L968/trecco-api/internal/notify/redis"
	"github.com/L968/trecco-api/internal/platform/config"
	"github.com/L968/trecco-api/internal/platform/httpserver"
	"github.com/L968/trecco-api/internal/platform/logger"
	platformpostgres "github.com/L968/trecco-api/internal/platform/postgres"
	platformredis "github.com/L968/trecco-api/internal/platform/redis"
	usershandler "github.com/L968/trecco-api/internal/users/handler"
	usersservice "github.com/L968/trecco-api/internal/users/service"
	usersmemory "github.com/L968/trecco-api/internal/users/store/memory"
	"github.com/L968/trecco-api/internal/users/welcome"
)

// main wires the dependencies and runs the process under one errgroup: the
// HTTP server, the redis-to-hub bridge and the shutdown watcher.
func main() {
	cfg := config.FromEnv()
	log := logger.New()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Stores: postgres when configured, in-memory otherwise.
	var boardStore boardservice.BoardStore
	var logStore actionlogservice.ActionLogStore
	if cfg.PostgresDSN != "" {
		pool, err := platformpostgres.NewPool(ctx, cfg.PostgresDSN)
		if err != nil {
			log.Error("failed to connect to postgres", "error", err)
			os.Exit(1)
		}
		defer pool.Close()

		bs := boardpostgres.New(pool)
		if err := bs.EnsureSchema(ctx); err != nil {
			log.Error("failed to prepare board schema", "error", err)
			os.Exit(1)
		}
		boardStore = bs

		db, err := actionlogpostgres.Open(ctx, cfg.PostgresDSN)
		if err != nil {
			log.Error("failed to connect to postgres for action logs", "error", err)
			os.Exit(1)
		}
		defer func() { _ = db.Close() }()

		ls := actionlogpostgres.New(db)
		if err := ls.EnsureSchema(ctx); err != nil {
			log.Error("failed to prepare action log schema", "error", err)
			os.Exit(1)
		}
		logStore = ls
	} else {
		log.Warn("POSTGRES_DSN not set, using in-memory stores")
		boardStore = boardmemory.NewInMemory()
		logStore = actionlogmemory.NewInMemory()
	}

	userStore := usersmemory.NewInMemory()

	// Realtime: publish via redis when configured so frames reach every
	// process; otherwise feed the local hub directly.
	hub := notify.NewHub(log)
	var notifier notify.Notifier
	redisClient, err := platformredis.New(cfg.RedisURL)
	if err != nil {
		log.Error("failed to connect to redis", "error", err)
		os.Exit(1)
	}
	if redisClient != nil {
		defer func() { _ = redisClient.Close() }()
		notifier = notifyredis.NewPublisher(redisClient.Client)
	} else {
		log.Warn("REDIS_URL not set, realtime notifications stay in-process")
		notifier = notify.NewLocalNotifier(hub)
	}

	recorderOpts := []recorder.Option{recorder.WithNotifier(notifier)}
	var mirror *actionlogkafka.Publisher
	if len(cfg.KafkaBrokers) > 0 {
		mirror, err = actionlogkafka.NewPublisher(cfg.KafkaBrokers, cfg.KafkaTopic, log)
		if err != nil {
			log.Error("failed to connect to kafka", "error", err)
			os.Exit(1)
		}
		recorderOpts = append(recorderOpts, recorder.WithMirror(mirror))
	}

	dispatcher := events.NewDispatcher(log,
		recorder.New(logStore, log, recorderOpts...),
		notify.NewCardMovedBroadcaster(notifier, log),
		welcome.New(userStore, log),
	)

	jwtService := jwtauth.NewJWTService(cfg.JWTSigningKey, cfg.JWTIssuer, cfg.AccessTokenTTL)
	usersService := usersservice.New(userStore, jwtService, usersservice.WithLogger(log))
	boardsService := boardservice.New(boardStore,
		boardservice.WithLogger(log),
		boardservice.WithMetrics(boardmetrics.New()),
		boardservice.WithDispatcher(dispatcher),
	)
	logsService := actionlogservice.New(logStore, boardStore, actionlogservice.WithLogger(log))

	router := httptransport.NewRouter(httptransport.Dependencies{
		Logger:         log,
		TokenValidator: jwtService,
		Users:          usershandler.New(usersService, log),
		Boards:         boardhandler.New(boardsService, hub, log),
		Logs:           actionloghandler.New(logsService, log),
	})

	srv := httpserver.New(cfg.Addr, router)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("starting trecco-api", "addr", cfg.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	if redisClient != nil {
		g.Go(func() error {
			if err := hub.Run(ctx, redisClient.Client); err != nil && !errors.Is(err, context.Canceled) {
				return err
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		log.Error("server error", "error", err)
		os.Exit(1)
	}

	if mirror != nil {
		flushCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := mirror.Close(flushCtx); err != nil {
			log.Warn("failed to flush kafka producer", "error", err)
		}
	}
	log.Info("shutdown complete")
}
