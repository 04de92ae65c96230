package main

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/ossrs/go-oryx-lib/errors"
)

// config holds the render settings read from the environment.
type config struct {
	OutDir     string
	Seed       int64
	SampleRate int
	Length     float64
}

func setEnvDefault(key, value string) {
	if os.Getenv(key) == "" {
		os.Setenv(key, value)
	}
}

// loadConfig reads envFile when it exists, fills defaults and parses the
// GRAIN_* variables.
func loadConfig(envFile string) (config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !os.IsNotExist(err) {
			return config{}, errors.Wrapf(err, "load %v", envFile)
		}
	}

	setEnvDefault("GRAIN_OUT_DIR", "renders")
	setEnvDefault("GRAIN_SEED", "1")
	setEnvDefault("GRAIN_SAMPLERATE", "44100")
	setEnvDefault("GRAIN_LENGTH", "30")

	cfg := config{OutDir: os.Getenv("GRAIN_OUT_DIR")}

	var err error
	if cfg.Seed, err = strconv.ParseInt(os.Getenv("GRAIN_SEED"), 10, 64); err != nil {
		return config{}, errors.Wrapf(err, "parse GRAIN_SEED")
	}
	if cfg.SampleRate, err = strconv.Atoi(os.Getenv("GRAIN_SAMPLERATE")); err != nil {
		return config{}, errors.Wrapf(err, "parse GRAIN_SAMPLERATE")
	}
	if cfg.SampleRate <= 0 {
		return config{}, errors.Errorf("GRAIN_SAMPLERATE must be > 0, got %v", cfg.SampleRate)
	}
	if cfg.Length, err = strconv.ParseFloat(os.Getenv("GRAIN_LENGTH"), 64); err != nil {
		return config{}, errors.Wrapf(err, "parse GRAIN_LENGTH")
	}
	if cfg.Length <= 0 {
		return config{}, errors.Errorf("GRAIN_LENGTH must be > 0, got %v", cfg.Length)
	}
	return cfg, nil
}
