package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"carteira/src/api"
	"carteira/src/config"
	"carteira/src/utils"
	"carteira/src/worker"

	"github.com/sirupsen/logrus"
)

func main() {
	logger := utils.NewLogger(logrus.InfoLevel, false, "")

	cfg, err := config.LoadConfig("./settings")
	if err != nil {
		logger.WithError(err).Fatal("error while loading config")
	}

	errC, err := run(cfg, logger)
	if err != nil {
		logger.WithError(err).Fatal("couldn't run")
	}

	if err := <-errC; err != nil {
		logger.WithError(err).Error("error while running")
	}
}

func run(cfg *config.Config, logger *logrus.Logger) (<-chan error, error) {
	errC := make(chan error, 1)

	var httpServer *http.Server
	var closeServer func() error
	if cfg.Service.Type == config.API {
		server, err := api.NewServer(cfg)
		if err != nil {
			return nil, err
		}
		httpServer = api.NewHTTPServer(server, cfg.Service.Port)
		closeServer = server.Close
	} else {
		server, err := worker.NewServer(cfg, logger)
		if err != nil {
			return nil, err
		}
		httpServer = worker.NewHTTPServer(server, cfg.Service.Port)
		closeServer = server.Close
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	go func() {
		<-ctx.Done()
		stop()

		logger.Info("shutdown signal received")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			errC <- err
			return
		}
		errC <- closeServer()
	}()

	go func() {
		logger.WithFields(logrus.Fields{
			"type": cfg.Service.Type,
			"port": cfg.Service.Port,
		}).Info("starting server")

		// "ListenAndServe always returns a non-nil error. After Shutdown or Close, the returned error is
		// ErrServerClosed."
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errC <- err
		}
	}()
	return errC, nil
}
