package di

import (
	"go.uber.org/zap"

	"github.com/lasersoldier/MuseMemo/application/ports"
	"github.com/lasersoldier/MuseMemo/application/store"
	"github.com/lasersoldier/MuseMemo/infrastructure/config"
	"github.com/lasersoldier/MuseMemo/infrastructure/persistence/memory"
	"github.com/lasersoldier/MuseMemo/infrastructure/persistence/supabase"
)

// Container holds all application dependencies
type Container struct {
	Config       *config.Config
	Logger       *zap.Logger
	Gateway      ports.Gateway
	StoreManager *store.Manager
}

// Close releases container resources
func (c *Container) Close() {
	c.StoreManager.Close()
}

// ProvideLogger creates a new logger instance
func ProvideLogger(cfg *config.Config) (*zap.Logger, error) {
	if cfg.Environment == "production" {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}

// ProvideGateway selects the persistence gateway. Without Supabase
// credentials the in-memory gateway serves the self-contained demo mode.
func ProvideGateway(cfg *config.Config, logger *zap.Logger) (ports.Gateway, error) {
	if !cfg.SupabaseConfigured() {
		logger.Warn("supabase not configured, running in demo mode")
		return memory.New(), nil
	}
	gateway, err := supabase.New(cfg.SupabaseURL, cfg.SupabaseServiceKey)
	if err != nil {
		return nil, err
	}
	return gateway, nil
}

// ProvideStoreManager creates the per-session store manager
func ProvideStoreManager(gateway ports.Gateway, logger *zap.Logger) *store.Manager {
	return store.NewManager(gateway, logger)
}
