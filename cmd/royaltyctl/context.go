package main

import (
	"context"
	"log/slog"
	"os"
	"strings"
	"sync"

	portssvc "github.com/SscSPs/royalty_settlement_app/internal/core/ports/services"
	"github.com/SscSPs/royalty_settlement_app/internal/core/services"
	"github.com/SscSPs/royalty_settlement_app/internal/platform/config"
	"github.com/SscSPs/royalty_settlement_app/internal/platform/storage"
)

// commandContext lazily opens the ledger store once per invocation.
type commandContext struct {
	tenantID   string
	jsonOutput bool

	once     sync.Once
	cfg      *config.Config
	services *portssvc.ServiceContainer
	closeFn  func()
	err      error
}

func newCommandContext() *commandContext {
	return &commandContext{}
}

func (c *commandContext) ensureServices(ctx context.Context) (*portssvc.ServiceContainer, error) {
	c.once.Do(func() {
		cfg, err := config.LoadConfig()
		if err != nil {
			c.err = err
			return
		}
		logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
		slog.SetDefault(logger)

		repos, closeFn, err := storage.Open(ctx, cfg, logger, storage.Options{})
		if err != nil {
			c.err = err
			return
		}
		svc, err := services.NewServiceContainer(cfg, repos, nil, nil)
		if err != nil {
			closeFn()
			c.err = err
			return
		}
		c.cfg, c.services, c.closeFn = cfg, svc, closeFn
	})
	return c.services, c.err
}

// tenant returns the --tenant flag or the configured demo brand.
func (c *commandContext) tenant() string {
	if t := strings.TrimSpace(c.tenantID); t != "" {
		return t
	}
	if c.cfg != nil {
		return c.cfg.DemoBrandID
	}
	return ""
}

func (c *commandContext) close() {
	if c.closeFn != nil {
		c.closeFn()
	}
}
