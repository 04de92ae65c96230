// Command hats renders the hi-hat sequencing scenes to WAV files.
//
// Settings come from the environment, optionally loaded from a .env
// file: GRAIN_OUT_DIR, GRAIN_SEED, GRAIN_SAMPLERATE and GRAIN_LENGTH
// (seconds).
//
// Usage:
//
//	hats [-env .env] [-workers n] [scene ...]
//
// Without arguments every scene is rendered.
package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/ossrs/go-oryx-lib/errors"
	"github.com/ossrs/go-oryx-lib/logger"

	"github.com/cwbudde/algo-grain/codec/wavfile"
	"github.com/cwbudde/algo-grain/dsp/dither"
)

func main() {
	ctx := logger.WithContext(context.Background())

	if err := doMain(ctx); err != nil {
		logger.Ef(ctx, "run err %+v", err)
		os.Exit(1)
	}

	logger.Tf(ctx, "run ok")
}

func doMain(ctx context.Context) error {
	var envFile string
	var workers int
	flag.StringVar(&envFile, "env", ".env", "optional environment file")
	flag.IntVar(&workers, "workers", 0, "concurrent grain generators (0 uses GOMAXPROCS)")
	flag.Parse()

	cfg, err := loadConfig(envFile)
	if err != nil {
		return errors.Wrapf(err, "load config")
	}
	logger.Tf(ctx, "load config ok, out=%v, seed=%v, rate=%v, length=%vs",
		cfg.OutDir, cfg.Seed, cfg.SampleRate, cfg.Length)

	names := flag.Args()
	if len(names) == 0 {
		names = sceneNames()
	}
	todo := make([]scene, 0, len(names))
	for _, name := range names {
		s, ok := lookupScene(name)
		if !ok {
			return errors.Errorf("unknown scene %q, want one of %v", name, sceneNames())
		}
		todo = append(todo, s)
	}

	sc := make(chan os.Signal, 1)
	signal.Notify(sc, syscall.SIGINT, syscall.SIGTERM, os.Interrupt)
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	go func() {
		for s := range sc {
			logger.Tf(ctx, "Got signal %v", s)
			cancel()
		}
	}()

	if err := os.MkdirAll(cfg.OutDir, 0o755); err != nil {
		return errors.Wrapf(err, "create %v", cfg.OutDir)
	}

	k, err := newKit(cfg, workers)
	if err != nil {
		return errors.Wrapf(err, "build kit")
	}
	for _, s := range todo {
		start := time.Now()
		buf, err := s.render(ctx, k)
		if err != nil {
			return errors.Wrapf(err, "render %v", s.name)
		}

		file := filepath.Join(cfg.OutDir, s.name+".wav")
		if err := buf.Save(wavfile.File{Path: file, Dither: dither.Triangular}); err != nil {
			return errors.Wrapf(err, "save %v", file)
		}
		logger.Tf(ctx, "render %v ok, file=%v, duration=%.2fs, cost=%v",
			s.name, file, buf.Duration(), time.Since(start))
	}
	return nil
}
