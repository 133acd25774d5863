package config

import (
	"errors"
	"strings"
	"sync/atomic"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// BusinessProfile is the letterhead printed on every invoice plus the
// default price basis used when a request does not select one.
type BusinessProfile struct {
	Name    string `mapstructure:"name"`
	Address string `mapstructure:"address"`
	Phone   string `mapstructure:"phone"`
	Email   string `mapstructure:"email"`

	// "dp" or "mrp"
	DefaultPriceBasis string `mapstructure:"defaultPriceBasis"`
}

func DefaultBusinessProfile() BusinessProfile {
	return BusinessProfile{
		Name:              "Your Business Name",
		DefaultPriceBasis: "dp",
	}
}

// ProfileHolder keeps the current BusinessProfile and hot-reloads it
// when the config file changes on disk.
type ProfileHolder struct {
	current atomic.Value // holds BusinessProfile
}

func NewProfileHolder(log *zap.Logger) (*ProfileHolder, error) {
	log = log.Named("config.profile")

	v := viper.New()

	v.SetConfigName("billdesk")
	v.SetConfigType("yml")
	v.AddConfigPath("/etc/billdesk")
	v.AddConfigPath(".")

	v.SetEnvPrefix("BILLDESK")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
		defaults := DefaultBusinessProfile()
		v.SetDefault("business.name", defaults.Name)
		v.SetDefault("business.defaultPriceBasis", defaults.DefaultPriceBasis)
	}

	var profile BusinessProfile
	if err := v.UnmarshalKey("business", &profile); err != nil {
		return nil, err
	}
	if err := validateProfile(profile); err != nil {
		return nil, err
	}

	holder := &ProfileHolder{}
	holder.current.Store(profile)

	v.WatchConfig()
	v.OnConfigChange(func(e fsnotify.Event) {
		var updated BusinessProfile
		if err := v.UnmarshalKey("business", &updated); err != nil {
			log.Warn("profile reload failed", zap.Error(err))
			return
		}
		if err := validateProfile(updated); err != nil {
			log.Warn("invalid profile ignored", zap.Error(err))
			return
		}
		holder.current.Store(updated)
		log.Info("profile reloaded", zap.String("file", e.Name))
	})

	return holder, nil
}

func (h *ProfileHolder) Get() BusinessProfile {
	return h.current.Load().(BusinessProfile)
}

// NewStaticProfileHolder wraps a fixed profile, for tests.
func NewStaticProfileHolder(p BusinessProfile) *ProfileHolder {
	holder := &ProfileHolder{}
	holder.current.Store(p)
	return holder
}

func validateProfile(p BusinessProfile) error {
	if strings.TrimSpace(p.Name) == "" {
		return errors.New("business.name cannot be empty")
	}
	switch strings.ToLower(strings.TrimSpace(p.DefaultPriceBasis)) {
	case "", "dp", "mrp":
	default:
		return errors.New("business.defaultPriceBasis must be dp or mrp")
	}
	return nil
}
