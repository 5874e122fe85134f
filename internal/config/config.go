package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

type AudioConfig struct {
	SampleRate int `yaml:"sample_rate"`
	BitDepth   int `yaml:"bit_depth"`
	Channels   int `yaml:"channels"`
	BufferSize int `yaml:"buffer_size"`
}

type VintageConfig struct {
	Enabled   bool    `yaml:"enabled"`
	Intensity float64 `yaml:"intensity"`
	Preset    string  `yaml:"preset"`
}

type AdvancedConfig struct {
	SpectralEnhancement bool `yaml:"spectral_enhancement"`
	HarmonicEnrichment  bool `yaml:"harmonic_enrichment"`
	NoiseReduction      bool `yaml:"noise_reduction"`
	TemporalSmoothing   bool `yaml:"temporal_smoothing"`
	QuantizationNoise   bool `yaml:"quantization_noise"`
	AnalogSimulation    bool `yaml:"analog_simulation"`
	FrequencyShaping    bool `yaml:"frequency_shaping"`
}

type PaddingConfig struct {
	LeadMS int `yaml:"lead_ms"`
	TailMS int `yaml:"tail_ms"`
	FadeMS int `yaml:"fade_ms"`
}

type SpeechConfig struct {
	Enabled bool   `yaml:"enabled"`
	Mode    string `yaml:"mode"` // engine, mock, exec
	Command string `yaml:"command"`
	ChunkMS int    `yaml:"chunk_ms"`
}

type TelemetryConfig struct {
	LogLevel     string `yaml:"log_level"`
	OTLPEndpoint string `yaml:"otlp_endpoint"`
	OTLPInsecure bool   `yaml:"otlp_insecure"`
}

type HTTPConfig struct {
	Bind string `yaml:"bind"`
	Port int    `yaml:"port"`
}

type BusConfig struct {
	Embedded       bool     `yaml:"embedded"`
	Port           int      `yaml:"port"`
	Servers        []string `yaml:"servers"`
	Username       string   `yaml:"username"`
	Password       string   `yaml:"password"`
	Token          string   `yaml:"token"`
	ConnectTimeout int      `yaml:"connect_timeout_ms"`
}

type UtteranceLogConfig struct {
	Enabled       bool   `yaml:"enabled"`
	Path          string `yaml:"path"`
	RetentionDays int    `yaml:"retention_days"`
	MaxUtterances int    `yaml:"max_utterances"`
	VacuumOnStart bool   `yaml:"vacuum_on_start"`
}

type Config struct {
	ServiceName  string             `yaml:"service_name"`
	Environment  string             `yaml:"environment"`
	Audio        AudioConfig        `yaml:"audio"`
	Vintage      VintageConfig      `yaml:"vintage"`
	Advanced     AdvancedConfig     `yaml:"advanced"`
	Padding      PaddingConfig      `yaml:"padding"`
	Speech       SpeechConfig       `yaml:"speech"`
	Telemetry    TelemetryConfig    `yaml:"telemetry"`
	HTTP         HTTPConfig         `yaml:"http"`
	Bus          BusConfig          `yaml:"bus"`
	UtteranceLog UtteranceLogConfig `yaml:"utterance_log"`
}

func Default() Config {
	return Config{
		ServiceName: "retrovox",
		Environment: "development",
		Audio: AudioConfig{
			SampleRate: 22050,
			BitDepth:   8,
			Channels:   1,
			BufferSize: 1024,
		},
		Vintage: VintageConfig{
			Enabled:   true,
			Intensity: 1.0,
			Preset:    "dr_sbaitso",
		},
		Advanced: AdvancedConfig{
			QuantizationNoise: true,
			AnalogSimulation:  true,
			FrequencyShaping:  true,
		},
		Padding: PaddingConfig{
			LeadMS: 50,
			TailMS: 100,
			FadeMS: 5,
		},
		Speech: SpeechConfig{
			Enabled: true,
			Mode:    "engine",
			ChunkMS: 400,
		},
		Telemetry: TelemetryConfig{
			LogLevel:     "info",
			OTLPInsecure: true,
		},
		HTTP: HTTPConfig{
			Bind: "0.0.0.0",
			Port: 8080,
		},
		Bus: BusConfig{
			Embedded:       true,
			Port:           4222,
			Servers:        []string{"nats://localhost:4222"},
			ConnectTimeout: 2000,
		},
		UtteranceLog: UtteranceLogConfig{
			Enabled:       true,
			Path:          "./data/retrovox-utterances.db",
			RetentionDays: 30,
			MaxUtterances: 10000,
		},
	}
}

func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			if os.IsNotExist(err) {
				return cfg, fmt.Errorf("config file not found: %w", err)
			}
			return cfg, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse config file: %w", err)
		}
	}

	applyEnvOverrides(&cfg)
	if err := Validate(cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func applyEnvOverrides(cfg *Config) {
	overrideString(&cfg.ServiceName, "RETROVOX_SERVICE_NAME")
	overrideString(&cfg.Environment, "RETROVOX_ENVIRONMENT")
	overrideInt(&cfg.Audio.SampleRate, "RETROVOX_AUDIO_SAMPLE_RATE")
	overrideInt(&cfg.Audio.BitDepth, "RETROVOX_AUDIO_BIT_DEPTH")
	overrideInt(&cfg.Audio.Channels, "RETROVOX_AUDIO_CHANNELS")
	overrideInt(&cfg.Audio.BufferSize, "RETROVOX_AUDIO_BUFFER_SIZE")
	overrideBool(&cfg.Vintage.Enabled, "RETROVOX_VINTAGE_ENABLED")
	overrideFloat(&cfg.Vintage.Intensity, "RETROVOX_VINTAGE_INTENSITY")
	overrideString(&cfg.Vintage.Preset, "RETROVOX_VINTAGE_PRESET")
	overrideBool(&cfg.Advanced.SpectralEnhancement, "RETROVOX_ADVANCED_SPECTRAL_ENHANCEMENT")
	overrideBool(&cfg.Advanced.HarmonicEnrichment, "RETROVOX_ADVANCED_HARMONIC_ENRICHMENT")
	overrideBool(&cfg.Advanced.NoiseReduction, "RETROVOX_ADVANCED_NOISE_REDUCTION")
	overrideBool(&cfg.Advanced.TemporalSmoothing, "RETROVOX_ADVANCED_TEMPORAL_SMOOTHING")
	overrideBool(&cfg.Advanced.QuantizationNoise, "RETROVOX_ADVANCED_QUANTIZATION_NOISE")
	overrideBool(&cfg.Advanced.AnalogSimulation, "RETROVOX_ADVANCED_ANALOG_SIMULATION")
	overrideBool(&cfg.Advanced.FrequencyShaping, "RETROVOX_ADVANCED_FREQUENCY_SHAPING")
	overrideInt(&cfg.Padding.LeadMS, "RETROVOX_PADDING_LEAD_MS")
	overrideInt(&cfg.Padding.TailMS, "RETROVOX_PADDING_TAIL_MS")
	overrideInt(&cfg.Padding.FadeMS, "RETROVOX_PADDING_FADE_MS")
	overrideBool(&cfg.Speech.Enabled, "RETROVOX_SPEECH_ENABLED")
	overrideString(&cfg.Speech.Mode, "RETROVOX_SPEECH_MODE")
	overrideString(&cfg.Speech.Command, "RETROVOX_SPEECH_COMMAND")
	overrideInt(&cfg.Speech.ChunkMS, "RETROVOX_SPEECH_CHUNK_MS")
	overrideString(&cfg.Telemetry.LogLevel, "RETROVOX_TELEMETRY_LOG_LEVEL")
	overrideString(&cfg.Telemetry.OTLPEndpoint, "RETROVOX_TELEMETRY_OTLP_ENDPOINT")
	overrideBool(&cfg.Telemetry.OTLPInsecure, "RETROVOX_TELEMETRY_OTLP_INSECURE")
	overrideString(&cfg.HTTP.Bind, "RETROVOX_HTTP_BIND")
	overrideInt(&cfg.HTTP.Port, "RETROVOX_HTTP_PORT")
	overrideBool(&cfg.Bus.Embedded, "RETROVOX_BUS_EMBEDDED")
	overrideInt(&cfg.Bus.Port, "RETROVOX_BUS_PORT")
	overrideStringSlice(&cfg.Bus.Servers, "RETROVOX_BUS_SERVERS")
	overrideString(&cfg.Bus.Username, "RETROVOX_BUS_USERNAME")
	overrideString(&cfg.Bus.Password, "RETROVOX_BUS_PASSWORD")
	overrideString(&cfg.Bus.Token, "RETROVOX_BUS_TOKEN")
	overrideInt(&cfg.Bus.ConnectTimeout, "RETROVOX_BUS_CONNECT_TIMEOUT_MS")
	overrideBool(&cfg.UtteranceLog.Enabled, "RETROVOX_UTTERANCE_LOG_ENABLED")
	overrideString(&cfg.UtteranceLog.Path, "RETROVOX_UTTERANCE_LOG_PATH")
	overrideInt(&cfg.UtteranceLog.RetentionDays, "RETROVOX_UTTERANCE_LOG_RETENTION_DAYS")
	overrideInt(&cfg.UtteranceLog.MaxUtterances, "RETROVOX_UTTERANCE_LOG_MAX_UTTERANCES")
	overrideBool(&cfg.UtteranceLog.VacuumOnStart, "RETROVOX_UTTERANCE_LOG_VACUUM_ON_START")
}

func overrideString(target *string, envKey string) {
	if value, ok := os.LookupEnv(envKey); ok && strings.TrimSpace(value) != "" {
		*target = value
	}
}

func overrideInt(target *int, envKey string) {
	if value, ok := os.LookupEnv(envKey); ok {
		if parsed, err := strconv.Atoi(value); err == nil {
			*target = parsed
		}
	}
}

func overrideBool(target *bool, envKey string) {
	if value, ok := os.LookupEnv(envKey); ok {
		if parsed, err := strconv.ParseBool(value); err == nil {
			*target = parsed
		}
	}
}

func overrideFloat(target *float64, envKey string) {
	if value, ok := os.LookupEnv(envKey); ok {
		if parsed, err := strconv.ParseFloat(value, 64); err == nil {
			*target = parsed
		}
	}
}

func overrideStringSlice(target *[]string, envKey string) {
	if value, ok := os.LookupEnv(envKey); ok {
		parts := strings.Split(value, ",")
		var trimmed []string
		for _, p := range parts {
			if s := strings.TrimSpace(p); s != "" {
				trimmed = append(trimmed, s)
			}
		}
		if len(trimmed) > 0 {
			*target = trimmed
		}
	}
}

// Validate rejects invalid audio and processing parameters before any
// synthesis work begins. Downstream components assume validated values.
func Validate(cfg Config) error {
	if cfg.ServiceName == "" {
		return errors.New("service_name must not be empty")
	}
	if cfg.Audio.SampleRate < 8000 || cfg.Audio.SampleRate > 48000 {
		return fmt.Errorf("audio.sample_rate must be between 8000 and 48000, got %d", cfg.Audio.SampleRate)
	}
	switch cfg.Audio.BitDepth {
	case 8, 12, 16:
	default:
		return fmt.Errorf("audio.bit_depth must be one of 8|12|16, got %d", cfg.Audio.BitDepth)
	}
	if cfg.Audio.Channels != 1 && cfg.Audio.Channels != 2 {
		return fmt.Errorf("audio.channels must be 1 or 2, got %d", cfg.Audio.Channels)
	}
	if cfg.Audio.BufferSize <= 0 {
		return errors.New("audio.buffer_size must be positive")
	}
	if cfg.Vintage.Intensity < 0.0 || cfg.Vintage.Intensity > 1.0 {
		return fmt.Errorf("vintage.intensity must be between 0.0 and 1.0, got %g", cfg.Vintage.Intensity)
	}
	if cfg.Padding.LeadMS < 0 || cfg.Padding.TailMS < 0 || cfg.Padding.FadeMS < 0 {
		return errors.New("padding values must not be negative")
	}
	if cfg.Speech.Enabled {
		switch cfg.Speech.Mode {
		case "engine", "mock", "exec":
		default:
			return errors.New("speech.mode must be one of engine|mock|exec")
		}
		if cfg.Speech.Mode == "exec" && cfg.Speech.Command == "" {
			return errors.New("speech.command must be set when mode=exec")
		}
		if cfg.Speech.ChunkMS <= 0 {
			return errors.New("speech.chunk_ms must be positive")
		}
	}
	if cfg.HTTP.Port <= 0 || cfg.HTTP.Port > 65535 {
		return errors.New("http.port must be between 1 and 65535")
	}
	if cfg.Bus.Embedded {
		if cfg.Bus.Port <= 0 || cfg.Bus.Port > 65535 {
			return errors.New("bus.port must be between 1 and 65535 when embedded mode is enabled")
		}
	} else {
		if len(cfg.Bus.Servers) == 0 {
			return errors.New("bus.servers must not be empty when embedded mode is disabled")
		}
	}
	if cfg.UtteranceLog.Enabled {
		if cfg.UtteranceLog.Path == "" {
			return errors.New("utterance_log.path must not be empty when enabled")
		}
		if cfg.UtteranceLog.RetentionDays < 0 {
			return errors.New("utterance_log.retention_days must be >= 0")
		}
	}
	return nil
}
