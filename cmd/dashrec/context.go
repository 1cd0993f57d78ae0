package main

import (
	"log/slog"
	"strings"
	"sync"

	"dashrec/internal/api"
	"dashrec/internal/config"
	"dashrec/internal/logging"
	"dashrec/internal/pipeline"
	"dashrec/internal/services/deepseek"
	"dashrec/internal/services/ffmpeg"
	"dashrec/internal/services/pdfgen"
	"dashrec/internal/services/solarcore"
	"dashrec/internal/services/whisper"
	"dashrec/internal/store"
	"dashrec/internal/syncer"
	"dashrec/internal/translate"
)

type commandContext struct {
	configFlag *string

	configOnce sync.Once
	config     *config.Config
	configErr  error
}

func newCommandContext(configFlag *string) *commandContext {
	return &commandContext{configFlag: configFlag}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		var path string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}
		cfg, _, _, err := config.Load(path)
		if err != nil {
			c.configErr = err
			return
		}
		if err := cfg.EnsureDirectories(); err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
	})
	return c.config, c.configErr
}

// app bundles the wired components for one command invocation. Commands
// that start background processing must call wait before returning so
// in-flight pipeline runs finish before the store closes.
type app struct {
	cfg     *config.Config
	store   *store.Store
	service *api.Service
	runner  *pipeline.Runner
	logger  *slog.Logger
}

func (a *app) wait() {
	a.runner.Wait()
}

// withApp opens the store, wires the full service stack, runs fn, then
// waits for background work and closes the store.
func (c *commandContext) withApp(fn func(*app) error) error {
	cfg, err := c.ensureConfig()
	if err != nil {
		return err
	}

	logger, err := logging.NewFromConfig(cfg)
	if err != nil {
		return err
	}

	st, err := store.Open(cfg)
	if err != nil {
		return err
	}
	defer st.Close()

	engine, err := whisper.NewEngine(cfg.Whisper)
	if err != nil {
		return err
	}
	pipe := pipeline.New(st, cfg, logger, engine, pdfgen.NewGenerator(cfg.PDF), ffmpeg.NewConverter(cfg.FFmpeg))
	runner := pipeline.NewRunner(pipe, logger)
	defer runner.Wait()

	sync := syncer.New(st, solarcore.NewClient(cfg.SolarCore), cfg.SolarCore, logger)
	translator := translate.New(st, deepseek.NewClient(cfg.Translation), cfg, logger)

	return fn(&app{
		cfg:     cfg,
		store:   st,
		service: api.New(st, cfg, pipe, runner, sync, translator, logger),
		runner:  runner,
		logger:  logger,
	})
}
