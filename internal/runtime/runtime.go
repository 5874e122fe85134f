// Package runtime assembles the daemon: telemetry, the optional
// embedded broker, the bus client, the synthesis engine, the speech
// service, and the health endpoints.
package runtime

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/phonolabs/retrovox/internal/bus"
	"github.com/phonolabs/retrovox/internal/config"
	"github.com/phonolabs/retrovox/internal/engine"
	"github.com/phonolabs/retrovox/internal/natsserver"
	"github.com/phonolabs/retrovox/internal/speech"
	"github.com/phonolabs/retrovox/internal/utterancelog"
)

type Runtime struct {
	cfg         config.Config
	logger      *slog.Logger
	httpServer  *http.Server
	tracerClose func(context.Context) error
	busClient   *bus.Client
	embedded    *natsserver.EmbeddedServer
	store       *utterancelog.Store
	service     *speech.Service
	ready       atomic.Bool
	wg          sync.WaitGroup
}

func New(cfg config.Config, logger *slog.Logger) *Runtime {
	return &Runtime{
		cfg:    cfg,
		logger: logger,
	}
}

// NewLogger builds the process logger at the configured level.
func NewLogger(cfg config.Config) *slog.Logger {
	var level slog.Level
	switch strings.ToLower(cfg.Telemetry.LogLevel) {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}
	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
}

// Start runs the daemon until ctx is cancelled, then shuts everything
// down in reverse start order.
func (r *Runtime) Start(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	shutdownTelemetry, metricsHandler, err := setupTelemetry(r.cfg, r.logger)
	if err != nil {
		return fmt.Errorf("failed to setup telemetry: %w", err)
	}
	r.tracerClose = shutdownTelemetry

	embedded, err := natsserver.Start(r.cfg.Bus, r.logger)
	if err != nil {
		return fmt.Errorf("failed to start embedded bus: %w", err)
	}
	r.embedded = embedded

	busCfg := r.cfg.Bus
	if embedded != nil {
		busCfg.Servers = []string{embedded.ClientURL()}
	}
	busClient, err := bus.Connect(ctx, busCfg, r.logger)
	if err != nil {
		r.shutdownServices()
		return fmt.Errorf("failed to connect to bus: %w", err)
	}
	r.busClient = busClient

	store, err := utterancelog.Open(ctx, r.cfg.UtteranceLog, r.logger)
	if err != nil {
		r.shutdownServices()
		return fmt.Errorf("failed to open utterance log: %w", err)
	}
	r.store = store

	eng := engine.New(r.cfg, r.logger)

	synth, err := r.buildSynthesizer(eng)
	if err != nil {
		r.shutdownServices()
		return fmt.Errorf("failed to build synthesizer: %w", err)
	}

	r.service = speech.NewService(ctx, r.cfg.Speech, busClient, synth, r.logger)
	if err := r.service.Start(); err != nil {
		r.shutdownServices()
		return fmt.Errorf("failed to start speech service: %w", err)
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", r.handleHealth)
	mux.HandleFunc("/readyz", r.handleReady)
	if metricsHandler != nil {
		mux.Handle("/metrics", metricsHandler)
	}

	addr := fmt.Sprintf("%s:%d", r.cfg.HTTP.Bind, r.cfg.HTTP.Port)
	r.httpServer = &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	r.wg.Add(1)
	go func() {
		defer r.wg.Done()
		if err := r.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			r.logger.Error("http server failed", slog.String("error", err.Error()))
		}
	}()

	r.ready.Store(true)
	r.logger.Info("runtime started",
		slog.String("addr", addr),
		slog.Int("sample_rate", r.cfg.Audio.SampleRate),
		slog.String("preset", r.cfg.Vintage.Preset))

	<-ctx.Done()
	r.logger.Info("runtime stopping")
	r.ready.Store(false)

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancelShutdown()
	if err := r.httpServer.Shutdown(shutdownCtx); err != nil {
		r.logger.Error("http shutdown error", slog.String("error", err.Error()))
	}
	r.wg.Wait()

	r.shutdownServices()

	if r.tracerClose != nil {
		if err := r.tracerClose(shutdownCtx); err != nil {
			r.logger.Error("telemetry shutdown error", slog.String("error", err.Error()))
		}
	}

	return nil
}

func (r *Runtime) buildSynthesizer(eng *engine.Engine) (speech.Synthesizer, error) {
	switch r.cfg.Speech.Mode {
	case "mock":
		return speech.NewMockSynth(r.cfg.Audio.SampleRate, r.cfg.Audio.Channels), nil
	case "exec":
		return speech.NewExecSynth(r.cfg.Speech.Command, r.cfg.Audio.SampleRate, r.cfg.Audio.Channels)
	default:
		return speech.NewEngineSynth(eng, r.store, r.cfg.Audio.Channels, r.cfg.Speech.ChunkMS, r.cfg.Vintage.Preset, r.logger), nil
	}
}

func (r *Runtime) shutdownServices() {
	if r.service != nil {
		r.service.Close()
		r.service = nil
	}
	if r.store != nil {
		if err := r.store.Close(); err != nil {
			r.logger.Error("utterance log close error", slog.String("error", err.Error()))
		}
		r.store = nil
	}
	if r.busClient != nil {
		r.busClient.Close()
		r.busClient = nil
	}
	if r.embedded != nil {
		r.embedded.Shutdown()
		r.embedded = nil
	}
}

func (r *Runtime) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func (r *Runtime) handleReady(w http.ResponseWriter, _ *http.Request) {
	if r.ready.Load() && r.busClient.Healthy() && r.service.Healthy() {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ready"))
		return
	}
	w.WriteHeader(http.StatusServiceUnavailable)
	_, _ = w.Write([]byte("not ready"))
}
