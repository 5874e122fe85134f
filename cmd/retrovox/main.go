// Command retrovox synthesizes text from the command line: one-shot to
// a WAV file or the speakers, or an interactive prompt loop.
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/phonolabs/retrovox/internal/audioio"
	"github.com/phonolabs/retrovox/internal/config"
	"github.com/phonolabs/retrovox/internal/engine"
)

func main() {
	var (
		configPath string
		text       string
		inPath     string
		outPath    string
		play       bool
		preset     string
		intensity  float64
		sampleRate int
		bitDepth   int
		quiet      bool
	)

	flag.StringVar(&configPath, "config", "", "Path to configuration file")
	flag.StringVar(&text, "text", "", "Text to synthesize; omit for interactive mode")
	flag.StringVar(&inPath, "in", "", "Read text to synthesize from this file")
	flag.StringVar(&outPath, "out", "", "Write synthesized audio to this WAV file")
	flag.BoolVar(&play, "play", false, "Play synthesized audio on the default output device")
	flag.StringVar(&preset, "preset", "", "Vintage preset override (dr_sbaitso, dr_sbaitso_enhanced, subtle_vintage, none)")
	flag.Float64Var(&intensity, "intensity", -1, "Vintage intensity override, 0.0 to 1.0")
	flag.IntVar(&sampleRate, "sample-rate", 0, "Sample rate override in Hz")
	flag.IntVar(&bitDepth, "bit-depth", 0, "Bit depth override (8, 12, or 16)")
	flag.BoolVar(&quiet, "quiet", false, "Suppress log output")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))
	if quiet {
		logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		fatal(logger, "failed to load config", err)
	}

	if inPath != "" {
		data, err := os.ReadFile(inPath)
		if err != nil {
			fatal(logger, "failed to read input file", err)
		}
		text = strings.TrimSpace(string(data))
	}

	if preset != "" {
		if preset == "none" {
			cfg.Vintage.Enabled = false
		} else {
			cfg.Vintage.Enabled = true
			cfg.Vintage.Preset = preset
		}
	}
	if intensity >= 0 {
		cfg.Vintage.Intensity = intensity
	}
	if sampleRate > 0 {
		cfg.Audio.SampleRate = sampleRate
	}
	if bitDepth > 0 {
		cfg.Audio.BitDepth = bitDepth
	}
	if err := config.Validate(cfg); err != nil {
		fatal(logger, "invalid configuration", err)
	}

	eng := engine.New(cfg, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var player *audioio.Player
	if play || text == "" {
		player, err = audioio.NewPlayer(cfg.Audio.SampleRate, cfg.Audio.Channels)
		if err != nil {
			if play {
				fatal(logger, "failed to open audio device", err)
			}
			logger.Warn("audio device unavailable, playback disabled", slog.String("error", err.Error()))
		}
	}

	if text != "" {
		if err := speakOnce(ctx, eng, player, text, outPath, cfg.Audio.Channels, logger); err != nil {
			fatal(logger, "synthesis failed", err)
		}
		return
	}

	interactive(ctx, eng, player, cfg.Audio.Channels, logger)
}

func speakOnce(ctx context.Context, eng *engine.Engine, player *audioio.Player, text, outPath string, channels int, logger *slog.Logger) error {
	u, err := eng.Speak(ctx, text)
	if err != nil {
		return err
	}
	if len(u.Samples) == 0 {
		logger.Warn("nothing to synthesize")
		return nil
	}

	if outPath != "" {
		if err := audioio.WriteWAVFile(outPath, u.Samples, u.SampleRate, channels); err != nil {
			return err
		}
		logger.Info("wrote audio",
			slog.String("path", outPath),
			slog.Duration("duration", u.Duration))
	}
	if player != nil {
		if err := player.Play(ctx, u.Samples); err != nil {
			return err
		}
	}
	return nil
}

func interactive(ctx context.Context, eng *engine.Engine, player *audioio.Player, channels int, logger *slog.Logger) {
	fmt.Println("retrovox interactive mode. Type text and press enter; 'quit' to exit.")
	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			fmt.Println()
			return
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if strings.EqualFold(line, "quit") || strings.EqualFold(line, "exit") {
			return
		}
		if err := speakOnce(ctx, eng, player, line, "", channels, logger); err != nil {
			if ctx.Err() != nil {
				return
			}
			logger.Error("synthesis failed", slog.String("error", err.Error()))
		}
	}
}

func fatal(logger *slog.Logger, msg string, err error) {
	logger.Error(msg, slog.String("error", err.Error()))
	os.Exit(1)
}
