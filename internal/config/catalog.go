package config

import (
	"log"
	"strings"
	"sync/atomic"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

// CatalogConfig carries catalog tuning knobs that operators may adjust
// without redeploying.
type CatalogConfig struct {
	HandleMaxAttempts   int    `mapstructure:"handleMaxAttempts"`
	BatchMaxProducts    int    `mapstructure:"batchMaxProducts"`
	DefaultSalesChannel string `mapstructure:"defaultSalesChannel"`
}

func DefaultCatalogConfig() CatalogConfig {
	return CatalogConfig{
		HandleMaxAttempts:   50,
		BatchMaxProducts:    1000,
		DefaultSalesChannel: "Default Sales Channel",
	}
}

// CatalogConfigHolder holds the current catalog config and follows file changes.
type CatalogConfigHolder struct {
	current atomic.Value // holds CatalogConfig
}

func NewCatalogConfigHolder() (*CatalogConfigHolder, error) {
	v := viper.New()

	v.SetConfigName("catalog")
	v.SetConfigType("yml")
	v.AddConfigPath("/var/lib/storefront/config")
	v.AddConfigPath("/etc/storefront")
	v.AddConfigPath(".")

	v.SetEnvPrefix("STOREFRONT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	defaults := DefaultCatalogConfig()
	v.SetDefault("catalog.handleMaxAttempts", defaults.HandleMaxAttempts)
	v.SetDefault("catalog.batchMaxProducts", defaults.BatchMaxProducts)
	v.SetDefault("catalog.defaultSalesChannel", defaults.DefaultSalesChannel)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	holder := &CatalogConfigHolder{}
	if err := holder.reload(v); err != nil {
		return nil, err
	}

	v.OnConfigChange(func(e fsnotify.Event) {
		if err := holder.reload(v); err != nil {
			log.Printf("catalog config reload failed: %v", err)
		}
	})
	v.WatchConfig()

	return holder, nil
}

func (h *CatalogConfigHolder) reload(v *viper.Viper) error {
	var cfg CatalogConfig
	if err := v.UnmarshalKey("catalog", &cfg); err != nil {
		return err
	}
	if cfg.HandleMaxAttempts <= 0 {
		cfg.HandleMaxAttempts = DefaultCatalogConfig().HandleMaxAttempts
	}
	if cfg.BatchMaxProducts <= 0 {
		cfg.BatchMaxProducts = DefaultCatalogConfig().BatchMaxProducts
	}
	if strings.TrimSpace(cfg.DefaultSalesChannel) == "" {
		cfg.DefaultSalesChannel = DefaultCatalogConfig().DefaultSalesChannel
	}
	h.current.Store(cfg)
	return nil
}

// Current returns the active catalog configuration.
func (h *CatalogConfigHolder) Current() CatalogConfig {
	if h == nil {
		return DefaultCatalogConfig()
	}
	if cfg, ok := h.current.Load().(CatalogConfig); ok {
		return cfg
	}
	return DefaultCatalogConfig()
}

// StaticCatalogConfigHolder returns a holder pinned to cfg, for tests.
func StaticCatalogConfigHolder(cfg CatalogConfig) *CatalogConfigHolder {
	holder := &CatalogConfigHolder{}
	holder.current.Store(cfg)
	return holder
}
