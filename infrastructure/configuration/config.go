package configuration

import (
	"fmt"
	"os"
	"strconv"

	"adlytics/infrastructure/logger"

	"github.com/spf13/viper"
)

type Config struct {
	App     App     `json:"app"`
	Backend Backend `json:"backend"`
	Storage Storage `json:"storage"`
	Poller  Poller  `json:"poller"`
	Upload  Upload  `json:"upload"`
	UI      UI      `json:"ui"`
	Logger  Logger  `json:"logger"`
}

// App configures the local gateway server the UI talks to.
type App struct {
	Port int `json:"port"`
}

// Backend points at the ad-analytics API service.
type Backend struct {
	BaseURL        string `json:"baseURL"`
	TimeoutSeconds int    `json:"timeoutSeconds"`
}

// Storage configures the durable client store (token, account cache).
type Storage struct {
	Path string `json:"path"`
}

type Poller struct {
	IntervalMs int `json:"intervalMs"`
}

type Upload struct {
	MaxSizeMB int64 `json:"maxSizeMB"`
}

// UI lists the origins the local single-page UI is served from and the
// route users are sent back to after a connect attempt resolves.
type UI struct {
	Origins     []string `json:"origins"`
	ReturnRoute string   `json:"returnRoute"`
}

type Logger struct {
	Format string `json:"format"`
}

var C Config

func init() {
	LoadConfig()
	initApp(&C)
	initBackend(&C)
	initStorage(&C)
	initPoller(&C)
}

func LoadConfig() {
	name := getConfig()
	viper.SetConfigName(name)
	viper.SetConfigType("json")
	viper.AddConfigPath(".")
	viper.AddConfigPath("../")
	viper.AddConfigPath("../../")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			logger.GetLogger().Warn("Config file not found")
		} else {
			logger.GetLogger().WithField("error", err).Error("Error reading config file")
		}
	}

	logger.GetLogger().WithField("config", name).Info("Config set up successfully")
	if err := viper.Unmarshal(&C); err != nil {
		logger.GetLogger().WithField("error", err).Error("Viper unable to decode into struct")
	}
}

func getConfig() string {
	name := "config"
	env := os.Getenv("ENV")
	if env != "" {
		name = fmt.Sprintf("%s-%s", name, env)
	}
	return name
}

func initApp(C *Config) {
	// Port resolution order (env overrides config): APP_PORT -> PORT -> config -> default
	if v := os.Getenv("APP_PORT"); v != "" {
		if p, err := strconv.Atoi(v); err == nil {
			C.App.Port = p
		}
	} else if v := os.Getenv("PORT"); v != "" {
		if p, err := strconv.Atoi(v); err == nil {
			C.App.Port = p
		}
	}
	if C.App.Port == 0 {
		C.App.Port = 10040
	}
	if len(C.UI.Origins) == 0 {
		C.UI.Origins = []string{"http://localhost:3000", "https://localhost:3000"}
	}
	if C.UI.ReturnRoute == "" {
		C.UI.ReturnRoute = "/connect-account"
	}
}

func initBackend(C *Config) {
	if v := os.Getenv("BACKEND_URL"); v != "" {
		C.Backend.BaseURL = v
	}
	if C.Backend.BaseURL == "" {
		C.Backend.BaseURL = "http://localhost:8000"
	}
	if C.Backend.TimeoutSeconds == 0 {
		C.Backend.TimeoutSeconds = 30
	}
}

func initStorage(C *Config) {
	if v := os.Getenv("STORAGE_PATH"); v != "" {
		C.Storage.Path = v
	}
	if C.Storage.Path == "" {
		C.Storage.Path = "adlytics.db"
	}
}

func initPoller(C *Config) {
	if v := os.Getenv("POLL_INTERVAL_MS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			C.Poller.IntervalMs = n
		}
	}
	if C.Poller.IntervalMs == 0 {
		C.Poller.IntervalMs = 5000
	}
	if C.Upload.MaxSizeMB == 0 {
		C.Upload.MaxSizeMB = 200
	}
}
