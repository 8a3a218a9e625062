package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/Elliott-ab/Battlemap-sub000/internal/engine"
	"github.com/Elliott-ab/Battlemap-sub000/internal/server"
	"github.com/Elliott-ab/Battlemap-sub000/internal/version"
	"github.com/Elliott-ab/Battlemap-sub000/pkg/logger"
)

func init() {
	logger.Init()
}

func main() {
	// 1. Конфиг: значения по умолчанию, затем BM_*, затем флаги
	cfg := engine.NewConfig()
	if err := cfg.LoadEnv(); err != nil {
		logger.Log.Fatal("Invalid environment: ", err)
	}

	flag.StringVar(&cfg.Port, "port", cfg.Port, "HTTP/WebSocket port")
	flag.IntVar(&cfg.Workers, "workers", cfg.Workers, "Worker goroutines")
	flag.IntVar(&cfg.QueueSize, "queue", cfg.QueueSize, "Worker queue capacity")
	flag.IntVar(&cfg.MaxGridCells, "max-cells", cfg.MaxGridCells, "Max W*H per request (0 = unlimited)")
	flag.Parse()

	if err := cfg.Validate(); err != nil {
		logger.Log.Fatal("Invalid flags: ", err)
	}

	logger.Log.Info("Starting Battlemap engine...")
	logger.Log.Info(version.String())
	logger.Log.WithField("config", cfg).Debug("Config resolved")

	// 2. Движок и пул воркеров
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	dispatcher := engine.NewDispatcher(engine.NewService(), cfg)
	pool := engine.NewPool(dispatcher, cfg)
	pool.Start(ctx)

	// 3. Запуск сервера; Run возвращается после отмены ctx
	srv := server.New(pool, cfg.Port)
	if err := srv.Run(ctx); err != nil {
		logger.Log.Fatal("Server start error: ", err)
	}

	logger.Log.Info("Shutting down...")
	pool.Wait()
	logger.Log.Info("Done.")
}
