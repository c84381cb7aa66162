package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/ent0n29/iris/internal/alert"
	"github.com/ent0n29/iris/internal/assistant"
	"github.com/ent0n29/iris/internal/brain"
	"github.com/ent0n29/iris/internal/config"
	"github.com/ent0n29/iris/internal/convo"
	"github.com/ent0n29/iris/internal/httpapi"
	"github.com/ent0n29/iris/internal/input"
	"github.com/ent0n29/iris/internal/intent"
	"github.com/ent0n29/iris/internal/journal"
	"github.com/ent0n29/iris/internal/listen"
	"github.com/ent0n29/iris/internal/observability"
	"github.com/ent0n29/iris/internal/schedule"
	"github.com/ent0n29/iris/internal/speech"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}
	if cfg.GeminiAPIKey != "" && !strings.HasPrefix(cfg.GeminiAPIKey, "AIza") {
		// Google API keys start with AIza; anything else is usually a
		// copy-paste mistake that only surfaces on the first model call.
		log.Printf("warning: GEMINI_API_KEY does not look like a Google API key")
	}

	metrics := observability.NewMetrics(cfg.MetricsNamespace)

	ctx := context.Background()
	store, err := schedule.NewStore(ctx, cfg.DatabaseURL, cfg.ScheduleDBPath)
	if err != nil {
		log.Fatalf("schedule store init failed: %v", err)
	}
	defer store.Close()

	jrnl, err := journal.New(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("journal init failed: %v", err)
	}
	defer jrnl.Close()

	adapter, err := brain.NewAdapter(brain.Config{
		Provider: cfg.BrainProvider,
		APIKey:   cfg.GeminiAPIKey,
		BaseURL:  cfg.GeminiBaseURL,
		Model:    cfg.BrainModel,
	})
	if err != nil {
		log.Fatalf("brain adapter init failed: %v", err)
	}

	var notifier alert.Notifier = alert.NoopNotifier{}
	if cfg.TelegramBotToken != "" && cfg.TelegramChatID != 0 {
		tn, err := alert.NewTelegramNotifier(cfg.TelegramBotToken, cfg.TelegramChatID)
		if err != nil {
			log.Printf("telegram notifier unavailable: %v", err)
		} else {
			notifier = tn
			log.Printf("telegram reminder alerts enabled")
		}
	}

	var recognizer listen.Recognizer
	if r := listen.NewExecRecognizer(cfg.ListenCommand); r != nil {
		recognizer = r
	} else {
		log.Printf("LISTEN_COMMAND not set, voice input unavailable")
	}
	var deviceLister listen.DeviceLister = listen.NewExecDeviceLister(cfg.DeviceListCommand)

	var devices []listen.Device
	if recognizer != nil {
		devices = deviceLister.InputDevices()
	}
	sel := input.SelectInput(os.Stdin, os.Stdout, devices)
	controller := input.NewController(
		recognizer,
		deviceLister,
		sel.Device,
		cfg.ListenStartTimeout,
		cfg.ListenPhraseLimit,
		os.Stdin,
		os.Stdout,
	)

	var synth speech.Synthesizer
	if s := speech.NewExecSynthesizer(cfg.SpeakCommand); s != nil {
		synth = s
	} else {
		log.Printf("SPEAK_COMMAND not set, replies go to stdout only")
		synth = speech.NewConsoleSynthesizer(os.Stdout)
	}

	buffer := convo.NewBuffer(cfg.BrainContextWindow)
	hub := httpapi.NewHub()
	buffer.SetOnAppend(hub.Publish)

	runCtx, runCancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer runCancel()

	worker := speech.NewWorker(synth, metrics)
	worker.Start(runCtx)

	api := httpapi.New(cfg, store, hub, metrics)
	httpServer := &http.Server{
		Addr:    cfg.BindAddr,
		Handler: api.Router(),
	}
	go func() {
		log.Printf("server listening on %s", cfg.BindAddr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("listen error: %v", err)
		}
	}()

	orchestrator := assistant.New(
		controller,
		intent.NewRouter(),
		adapter,
		store,
		worker,
		buffer,
		jrnl,
		notifier,
		metrics,
		sel.Mode,
		cfg.SpeechStopTimeout,
	)
	if err := orchestrator.Run(runCtx); err != nil {
		log.Printf("assistant loop error: %v", err)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Printf("graceful shutdown failed: %v", err)
		_ = httpServer.Close()
	}
	log.Printf("shutdown complete")
}
