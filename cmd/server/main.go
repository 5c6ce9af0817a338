package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"neurodiverse/internal/app"
	"neurodiverse/internal/config"
	"neurodiverse/internal/extract"
	"neurodiverse/internal/flow"
	"neurodiverse/internal/render"
	"neurodiverse/internal/service"
	"neurodiverse/internal/speech"
	"neurodiverse/internal/transport/rest"
	"neurodiverse/internal/transport/ws"

	"go.uber.org/zap"
)

func newLogger(cfg *config.Config) (*zap.Logger, error) {
	if cfg.IsDevelopment() {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

func main() {
	ctx := context.Background()
	cfg := config.Load()

	logger, err := newLogger(cfg)
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	// Load flow config and definitions
	flowConfig := config.DefaultFlowConfig()
	flows, err := flow.LoadSet(flowConfig.Paths)
	if err != nil {
		logger.Fatal("load flow definitions", zap.Error(err))
	}
	logger.Info("flows loaded",
		zap.String("style", flows.Style.Name()),
		zap.String("summary", flows.Summary.Name()),
		zap.String("story", flows.Story.Name()),
		zap.String("compound", flows.Compound.Name()),
		zap.String("endpoint", flowConfig.Endpoint()))
	if !flowConfig.IsEnabled() {
		logger.Warn("API_KEY not set, generation endpoints will fail")
	}

	if err := cfg.EnsureDirs(); err != nil {
		logger.Fatal("create data directories", zap.Error(err))
	}

	a, err := app.New(ctx, cfg, logger)
	if err != nil {
		logger.Fatal("open stores", zap.Error(err))
	}
	defer a.Close(ctx)

	// Initialize WebSocket hub
	wsHub := ws.NewHub(logger)
	defer wsHub.Close()

	// Initialize clients
	flowClient := flow.NewClient(flowConfig, logger)
	renderer := render.NewDyslexicRenderer(cfg.FontPath, logger)
	logger.Info("pdf renderer ready", zap.Bool("dyslexiaFont", renderer.HasFont()))
	synthesizer := speech.NewSynthesizer(cfg.TTSBaseURL, logger)

	// Initialize services
	docSvc := service.NewDocumentService(cfg.UploadDir, extract.NewPDFExtractor(logger), a.TextRepo, logger)
	genSvc := service.NewGenerationService(flows, flowClient, a.FlowCache, a.TextRepo, a.ChapterRepo, logger)
	outSvc := service.NewOutputService(cfg.OutputDir, cfg.TTSLang, a.TextRepo, genSvc, renderer, synthesizer, logger)

	// Inject broadcaster (wsHub implements service.Broadcaster)
	docSvc.SetBroadcaster(wsHub)
	genSvc.SetBroadcaster(wsHub)
	outSvc.SetBroadcaster(wsHub)

	router := rest.NewRouter(&rest.Container{
		Config:            cfg,
		DocumentService:   docSvc,
		GenerationService: genSvc,
		OutputService:     outSvc,
		WSHub:             wsHub,
		Logger:            logger,
	})

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		logger.Info("server starting", zap.String("port", cfg.Port), zap.String("store", cfg.StoreBackend))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("listen", zap.Error(err))
		}
	}()

	// Wait for interrupt
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down server")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server forced to shutdown", zap.Error(err))
	}

	logger.Info("server exited")
}
