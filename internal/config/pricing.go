package config

import (
	"errors"
	"log"
	"strings"
	"sync/atomic"

	"github.com/fsnotify/fsnotify"
	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
)

// PricingConfig carries the tunable pricing constants. It is kept separate
// from env config so underwriting can adjust it without a redeploy.
type PricingConfig struct {
	// MinimumPremium is the floor applied after all discounts.
	MinimumPremium string `mapstructure:"minimumPremium"`
	// DefaultCurrency tags premiums when a coverage level does not specify one.
	DefaultCurrency string `mapstructure:"defaultCurrency"`
}

func DefaultPricingConfig() PricingConfig {
	return PricingConfig{
		MinimumPremium:  "10.00",
		DefaultCurrency: "EUR",
	}
}

// MinimumPremiumDecimal parses the configured floor. The value is validated
// on load, so parsing here cannot fail.
func (c PricingConfig) MinimumPremiumDecimal() decimal.Decimal {
	d, err := decimal.NewFromString(c.MinimumPremium)
	if err != nil {
		return decimal.RequireFromString(DefaultPricingConfig().MinimumPremium)
	}
	return d
}

// PricingConfigHolder exposes the current pricing config with hot reload.
type PricingConfigHolder struct {
	current atomic.Value // holds PricingConfig
}

func NewPricingConfigHolder() (*PricingConfigHolder, error) {
	v := viper.New()

	v.SetConfigName("pricing")
	v.SetConfigType("yml")
	v.AddConfigPath("/var/lib/tripquote/config") // Volume-mounted config
	v.AddConfigPath("/etc/tripquote")            // System config
	v.AddConfigPath(".")                         // Current directory (dev mode)

	v.SetEnvPrefix("TRIPQUOTE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
		// if config file not found, use defaults
		defaults := DefaultPricingConfig()
		v.SetDefault("pricing.minimumPremium", defaults.MinimumPremium)
		v.SetDefault("pricing.defaultCurrency", defaults.DefaultCurrency)
	}

	var cfg PricingConfig
	if err := v.UnmarshalKey("pricing", &cfg); err != nil {
		return nil, err
	}
	if err := validatePricingConfig(cfg); err != nil {
		return nil, err
	}

	holder := &PricingConfigHolder{}
	holder.current.Store(cfg)

	v.WatchConfig()
	v.OnConfigChange(func(e fsnotify.Event) {
		var updated PricingConfig
		if err := v.UnmarshalKey("pricing", &updated); err != nil {
			log.Printf("[pricing-config] reload failed: %v", err)
			return
		}
		if err := validatePricingConfig(updated); err != nil {
			log.Printf("[pricing-config] invalid config ignored: %v", err)
			return
		}
		holder.current.Store(updated)
		log.Printf("[pricing-config] reloaded from %s", e.Name)
	})

	return holder, nil
}

// NewStaticPricingConfigHolder wraps a fixed config, for tests.
func NewStaticPricingConfigHolder(cfg PricingConfig) *PricingConfigHolder {
	holder := &PricingConfigHolder{}
	holder.current.Store(cfg)
	return holder
}

func (h *PricingConfigHolder) Get() PricingConfig {
	return h.current.Load().(PricingConfig)
}

func validatePricingConfig(cfg PricingConfig) error {
	min, err := decimal.NewFromString(cfg.MinimumPremium)
	if err != nil {
		return errors.New("pricing.minimumPremium must be a decimal")
	}
	if min.IsNegative() {
		return errors.New("pricing.minimumPremium cannot be negative")
	}
	if strings.TrimSpace(cfg.DefaultCurrency) == "" {
		return errors.New("pricing.defaultCurrency cannot be empty")
	}
	return nil
}
