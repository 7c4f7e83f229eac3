package config

import (
	"time"

	"github.com/spf13/viper"
)

// Base URLs mirror the two development targets the app is normally pointed
// at: the Android emulator reaches the host machine through its loopback
// alias, everything else uses localhost directly.
const (
	emulatorBaseURL  = "http://10.0.2.2:3000"
	localhostBaseURL = "http://localhost:3000"
)

// Config carries everything the client and the dev stub read at startup.
type Config struct {
	BaseURL     string
	PlatformFee float64
	// StrikeMarkup is the fake discount added on top of the payable total to
	// render a strike-through price next to it.
	StrikeMarkup float64
	// DetailTimeout bounds the product-detail fetch only; all other calls run
	// without a deadline, matching the backend contract as consumed today.
	DetailTimeout time.Duration

	StubAddr    string
	StubDBDSN   string
	StubAMQPURL string
	StubSecret  string
}

// Load reads configuration from the environment with sensible defaults.
func Load() Config {
	viper.SetDefault("TARGET_PLATFORM", "")
	viper.SetDefault("BASE_URL", "")
	viper.SetDefault("PLATFORM_FEE", 4.0)
	viper.SetDefault("STRIKE_MARKUP", 1200.0)
	viper.SetDefault("DETAIL_TIMEOUT", "60s")
	viper.SetDefault("STUB_ADDR", ":3000")
	viper.SetDefault("STUB_DB_DSN", "")
	viper.SetDefault("STUB_AMQP_URL", "")
	viper.SetDefault("STUB_JWT_SECRET", "dev_stub_secret")
	viper.AutomaticEnv()

	baseURL := viper.GetString("BASE_URL")
	if baseURL == "" {
		if viper.GetString("TARGET_PLATFORM") == "android" {
			baseURL = emulatorBaseURL
		} else {
			baseURL = localhostBaseURL
		}
	}

	return Config{
		BaseURL:       baseURL,
		PlatformFee:   viper.GetFloat64("PLATFORM_FEE"),
		StrikeMarkup:  viper.GetFloat64("STRIKE_MARKUP"),
		DetailTimeout: viper.GetDuration("DETAIL_TIMEOUT"),
		StubAddr:      viper.GetString("STUB_ADDR"),
		StubDBDSN:     viper.GetString("STUB_DB_DSN"),
		StubAMQPURL:   viper.GetString("STUB_AMQP_URL"),
		StubSecret:    viper.GetString("STUB_JWT_SECRET"),
	}
}
