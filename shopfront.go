package shopfront

import (
	"context"
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/aretw0/shopfront/internal/adapters/memory"
	redisadapter "github.com/aretw0/shopfront/internal/adapters/redis"
	"github.com/aretw0/shopfront/internal/config"
	"github.com/aretw0/shopfront/internal/engine"
	"github.com/aretw0/shopfront/internal/metrics"
	"github.com/aretw0/shopfront/internal/moltin"
	"github.com/aretw0/shopfront/pkg/ports"
)

// Version is the release version reported by the CLI.
const Version = "0.1.0"

// Bot is a fully wired storefront bot: commerce client, session store, and
// conversation engine. Construct it once at process start and share it; the
// services inside are safe for concurrent conversations.
type Bot struct {
	Engine   *engine.Engine
	Registry *prometheus.Registry
	Metrics  *metrics.Set

	store ports.SessionStore
	redis *redisadapter.Store
}

// New wires a bot against Redis per the given configuration.
func New(cfg *config.Config, logger *slog.Logger) (*Bot, error) {
	store := redisadapter.New(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)

	bot := build(cfg, logger, store)
	bot.redis = store
	return bot, nil
}

// NewLocal wires a bot against an in-memory session store. Used by the chat
// command; conversation state does not survive the process.
func NewLocal(cfg *config.Config, logger *slog.Logger) (*Bot, error) {
	return build(cfg, logger, memory.NewStore()), nil
}

func build(cfg *config.Config, logger *slog.Logger, store ports.SessionStore) *Bot {
	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector())
	set := metrics.New(registry)

	client := moltin.NewClient(
		cfg.Moltin.BaseURL,
		cfg.Moltin.ClientID,
		cfg.Moltin.ClientSecret,
		moltin.WithLogger(logger),
		moltin.WithMetrics(set),
	)

	eng := engine.New(
		moltin.NewCatalog(client),
		moltin.NewCarts(client),
		moltin.NewCustomers(client),
		store,
		engine.WithLogger(logger),
		engine.WithMetrics(set),
	)

	return &Bot{
		Engine:   eng,
		Registry: registry,
		Metrics:  set,
		store:    store,
	}
}

// Ping verifies the session store connection, when it has one.
func (b *Bot) Ping(ctx context.Context) error {
	if b.redis == nil {
		return nil
	}
	return b.redis.Ping(ctx)
}

// Close releases held connections.
func (b *Bot) Close() error {
	if b.redis == nil {
		return nil
	}
	return b.redis.Close()
}
