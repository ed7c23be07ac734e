package config

import (
	"errors"
	"strings"
	"sync/atomic"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// Storefront holds the merchandising knobs that can change without a deploy.
type Storefront struct {
	FeaturedGroups []string `mapstructure:"featuredGroups"`
	HomepageLimit  int      `mapstructure:"homepageLimit"`
	PageStep       int      `mapstructure:"pageStep"`
	PillLimit      int      `mapstructure:"pillLimit"`
	Currency       string   `mapstructure:"currency"`
}

func DefaultStorefront() Storefront {
	return Storefront{
		FeaturedGroups: []string{"Zerobaseone", "IVE", "ATEEZ", "BLACKPINK", "Stray Kids", "LE SSERAFIM"},
		HomepageLimit:  8,
		PageStep:       16,
		PillLimit:      3,
		Currency:       "DKK",
	}
}

type StorefrontHolder struct {
	current atomic.Value // holds Storefront
}

// NewStaticStorefrontHolder pins a fixed storefront config.
func NewStaticStorefrontHolder(sf Storefront) *StorefrontHolder {
	h := &StorefrontHolder{}
	h.current.Store(sf)
	return h
}

// NewStorefrontHolder reads storefront.yml and reloads it on change. A
// missing file falls back to the defaults; an invalid reload is ignored.
func NewStorefrontHolder(cfg Config, log *zap.Logger) (*StorefrontHolder, error) {
	log = log.Named("storefront.config")

	v := viper.New()
	if path := strings.TrimSpace(cfg.StorefrontConfigPath); path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("storefront")
		v.SetConfigType("yml")
		v.AddConfigPath("/etc/kstore")
		v.AddConfigPath(".")
	}

	v.SetEnvPrefix("KSTORE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	defaults := DefaultStorefront()
	v.SetDefault("storefront.featuredGroups", defaults.FeaturedGroups)
	v.SetDefault("storefront.homepageLimit", defaults.HomepageLimit)
	v.SetDefault("storefront.pageStep", defaults.PageStep)
	v.SetDefault("storefront.pillLimit", defaults.PillLimit)
	v.SetDefault("storefront.currency", defaults.Currency)

	watch := true
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
		watch = false
	}

	var sf Storefront
	if err := v.UnmarshalKey("storefront", &sf); err != nil {
		return nil, err
	}
	sf = withDefaults(sf)
	if err := validateStorefront(sf); err != nil {
		return nil, err
	}

	holder := NewStaticStorefrontHolder(sf)
	if !watch {
		return holder, nil
	}

	v.WatchConfig()
	v.OnConfigChange(func(e fsnotify.Event) {
		var updated Storefront
		if err := v.UnmarshalKey("storefront", &updated); err != nil {
			log.Warn("reload failed", zap.Error(err))
			return
		}
		updated = withDefaults(updated)
		if err := validateStorefront(updated); err != nil {
			log.Warn("invalid config ignored", zap.Error(err))
			return
		}
		holder.current.Store(updated)
		log.Info("reloaded", zap.String("file", e.Name))
	})

	return holder, nil
}

func (h *StorefrontHolder) Get() Storefront {
	return h.current.Load().(Storefront)
}

// withDefaults fills unset knobs. A partial file is merged with the
// defaults field by field.
func withDefaults(sf Storefront) Storefront {
	def := DefaultStorefront()
	if len(sf.FeaturedGroups) == 0 {
		sf.FeaturedGroups = def.FeaturedGroups
	}
	if sf.HomepageLimit == 0 {
		sf.HomepageLimit = def.HomepageLimit
	}
	if sf.PageStep == 0 {
		sf.PageStep = def.PageStep
	}
	if sf.PillLimit == 0 {
		sf.PillLimit = def.PillLimit
	}
	if strings.TrimSpace(sf.Currency) == "" {
		sf.Currency = def.Currency
	}
	return sf
}

func validateStorefront(sf Storefront) error {
	if sf.HomepageLimit <= 0 {
		return errors.New("storefront.homepageLimit must be positive")
	}
	if sf.PageStep <= 0 {
		return errors.New("storefront.pageStep must be positive")
	}
	if sf.PillLimit < 0 {
		return errors.New("storefront.pillLimit cannot be negative")
	}
	if strings.TrimSpace(sf.Currency) == "" {
		return errors.New("storefront.currency cannot be empty")
	}
	return nil
}
