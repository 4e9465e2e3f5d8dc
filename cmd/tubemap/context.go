package main

import (
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/spf13/cobra"

	"tubemap/internal/catalog"
	"tubemap/internal/config"
	"tubemap/internal/filter"
	"tubemap/internal/lexicon"
	"tubemap/internal/logging"
	"tubemap/internal/match"
	"tubemap/internal/pipeline"
	"tubemap/internal/services/kakao"
	"tubemap/internal/services/youtube"
)

type commandContext struct {
	configFlag *string

	configOnce sync.Once
	config     *config.Config
	configErr  error

	loggerOnce sync.Once
	logger     *slog.Logger
	loggerErr  error
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

func (c *commandContext) ensureLogger() (*slog.Logger, error) {
	c.loggerOnce.Do(func() {
		cfg, err := c.ensureConfig()
		if err != nil {
			c.loggerErr = err
			return
		}
		c.logger, c.loggerErr = logging.NewFromConfig(cfg)
	})
	return c.logger, c.loggerErr
}

// openGateway builds the dual-sink gateway. A primary that fails to open is
// logged and left nil so the run starts straight on the fallback file.
func (c *commandContext) openGateway() (*catalog.Gateway, *catalog.Store, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, nil, err
	}
	logger, err := c.ensureLogger()
	if err != nil {
		return nil, nil, err
	}

	store, err := catalog.Open(cfg)
	if err != nil {
		logger.Warn("primary store unavailable, starting on fallback",
			logging.Error(err))
		store = nil
	}
	fallback := catalog.NewFallbackStore(cfg.FallbackPath())
	return catalog.NewGateway(store, fallback, logger), store, nil
}

func (c *commandContext) buildOrchestrator() (*pipeline.Orchestrator, *catalog.Store, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, nil, err
	}
	logger, err := c.ensureLogger()
	if err != nil {
		return nil, nil, err
	}

	lex, err := loadLexicon(cfg)
	if err != nil {
		return nil, nil, err
	}

	gateway, store, err := c.openGateway()
	if err != nil {
		return nil, nil, err
	}

	videos := youtube.NewClient(youtube.Config{
		APIKey:         cfg.YouTube.APIKey,
		BaseURL:        cfg.YouTube.BaseURL,
		TimeoutSeconds: cfg.YouTube.TimeoutSeconds,
	})
	places := kakao.NewClient(kakao.Config{
		APIKey:         cfg.Kakao.APIKey,
		BaseURL:        cfg.Kakao.BaseURL,
		TimeoutSeconds: cfg.Kakao.TimeoutSeconds,
	})

	orch := pipeline.New(cfg, pipeline.Deps{
		Videos:  videos,
		Matcher: match.New(places, cfg.Match, cfg.Kakao.PageSize, logger),
		Gate:    filter.New(cfg.Filter, lex, logger),
		Gateway: gateway,
		Lexicon: lex,
		HTTPClient: &http.Client{
			Timeout: time.Duration(cfg.Pipeline.ThumbTimeout) * time.Second,
		},
		Logger: logger,
	})
	return orch, store, nil
}

func loadLexicon(cfg *config.Config) (*lexicon.Lexicon, error) {
	if path := strings.TrimSpace(cfg.Paths.LexiconFile); path != "" {
		return lexicon.Load(path)
	}
	return lexicon.Default()
}

func shouldSkipConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations != nil && c.Annotations["skipConfigLoad"] == "true" {
			return true
		}
	}
	return false
}
