package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"adlytics/infrastructure/clients/backend"
	"adlytics/infrastructure/configuration"
	"adlytics/infrastructure/logger"
	"adlytics/infrastructure/persistence"
	"adlytics/infrastructure/realtime"
	httpHandler "adlytics/interfaces/http"
	"adlytics/server"
	"adlytics/usecase"
)

var httpServer *http.Server

func recoverPanic() {
	if err := recover(); err != nil {
		logger.GetLogger().WithField("error", err).Error("Application panic recovered")
	}
}

func main() {
	defer recoverPanic()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(interrupt)

	g, ctx := errgroup.WithContext(ctx)

	// Load env from files (non-destructive; OS env still has precedence)
	configuration.LoadEnvFromFile("config.env", ".env")

	db, err := persistence.NewLocalDB(configuration.C.Storage.Path)
	if err != nil {
		logger.GetLogger().WithField("error", err).Error("Cannot open local store")
		os.Exit(1)
	}
	defer db.Close()
	if err := persistence.EnsureLocalSchema(db); err != nil {
		logger.GetLogger().WithField("error", err).Error("Cannot prepare local store schema")
		os.Exit(1)
	}

	tokenRepository := persistence.NewTokenRepository(db)
	accountCacheRepository := persistence.NewAccountCacheRepository(db)

	gateway := backend.NewClient(
		configuration.C.Backend.BaseURL,
		time.Duration(configuration.C.Backend.TimeoutSeconds)*time.Second,
	)

	hub := realtime.NewHub()

	sessionUsecase := usecase.NewSessionUsecase(gateway, tokenRepository)
	gateway.SetTokenSource(sessionUsecase.Token)
	gateway.SetUnauthorizedHook(sessionUsecase.Invalidate)

	oauthUsecase := usecase.NewOAuthUsecase(gateway, accountCacheRepository, hub)
	queuePoller := usecase.NewQueuePoller(gateway, hub, time.Duration(configuration.C.Poller.IntervalMs)*time.Millisecond)
	uploadUsecase := usecase.NewUploadUsecase(gateway, queuePoller, hub)
	analysisUsecase := usecase.NewAnalysisUsecase(gateway)
	reportUsecase := usecase.NewReportUsecase(gateway)

	authHandler := httpHandler.NewAuthHandler(sessionUsecase)
	accountHandler := httpHandler.NewAccountHandler(oauthUsecase)
	oauthCallbackHandler := httpHandler.NewOAuthCallbackHandler(oauthUsecase)
	analysisHandler := httpHandler.NewAnalysisHandler(analysisUsecase)
	uploadHandler := httpHandler.NewUploadHandler(uploadUsecase)
	queueHandler := httpHandler.NewQueueHandler(queuePoller, hub)
	reportHandler := httpHandler.NewReportHandler(reportUsecase)

	router := server.InitiateRouter(
		authHandler,
		accountHandler,
		oauthCallbackHandler,
		analysisHandler,
		uploadHandler,
		queueHandler,
		reportHandler,
		sessionUsecase,
	)

	// Restore any persisted session before requests race the guard.
	g.Go(func() error {
		restoreCtx, restoreCancel := context.WithTimeout(ctx, 10*time.Second)
		defer restoreCancel()
		if sess := sessionUsecase.RestoreSession(restoreCtx); sess != nil {
			logger.GetLogger().WithField("email", sess.Email).Info("Session restored")
		} else {
			logger.GetLogger().Info("No session to restore")
		}
		return nil
	})

	// Forward session changes onto the SSE feed.
	g.Go(func() error {
		events, unsubscribe := sessionUsecase.Subscribe()
		defer unsubscribe()
		for {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case evt := <-events:
				hub.BroadcastSession(evt)
			}
		}
	})

	g.Go(func() error {
		return queuePoller.Run(ctx)
	})

	port := configuration.C.App.Port
	logger.GetLogger().WithFields(map[string]interface{}{
		"port":    port,
		"backend": configuration.C.Backend.BaseURL,
	}).Info("Starting application")
	g.Go(func() error {
		httpServer = &http.Server{
			Addr:    fmt.Sprintf(":%d", port),
			Handler: router,
		}
		if err := httpServer.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	select {
	case <-interrupt:
		logger.GetLogger().Info("Application shutdown requested")
	case <-ctx.Done():
	}

	cancel()
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if httpServer != nil {
		_ = httpServer.Shutdown(shutdownCtx)
	}

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		logger.GetLogger().WithField("error", err).Error("Server returned an error")
		os.Exit(2)
	}
}
