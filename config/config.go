package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/freetocompute/mindboard/config/configkey"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

var loadConfigMutex sync.Mutex
var configLoaded bool

var DefaultValues = map[string]interface{}{
	configkey.DebugMode:                  false,
	configkey.LogLevel:                   "info",
	configkey.RequestLogger:              false,
	configkey.ServerPort:                 3000,
	configkey.StaticDir:                  "",
	configkey.FrontendURL:                "http://localhost:5500",
	configkey.AllowedOrigins:             []string{"http://localhost:5500", "http://127.0.0.1:5500", "http://localhost:3000"},
	configkey.DatabaseDriver:             "postgres",
	configkey.DatabaseURL:                "",
	configkey.DatabaseUsername:           "postgres",
	configkey.DatabaseDatabase:           "thoughts",
	configkey.DatabaseHost:               "localhost",
	configkey.DatabasePort:               5432,
	configkey.DatabaseSSLMode:            "disable",
	configkey.DatabaseTimezone:           "UTC",
	configkey.DatabasePassword:           "postgres",
	configkey.DatabasePath:               "mindboard.db",
	configkey.SessionRootKey:             "",
	configkey.SessionLocation:            "mindboard",
	configkey.SessionAdminCookie:         "thoughts-website-session",
	configkey.SessionUserCookie:          "thoughts-website-user",
	configkey.SessionVisitorCookie:       "thoughts-website-visitor",
	configkey.SessionSecureCookie:        false,
	configkey.AdminUsername:              "admin",
	configkey.AdminPassword:              "admin123",
	configkey.AdminInviteCode:            "",
	configkey.SuperModerator:             "",
	configkey.SignupRequireVerifiedGmail: false,
	configkey.MinioHost:                  "localhost:9000",
	configkey.MinioAccessKey:             "user",
	configkey.MinioSecretKey:             "password",
	configkey.MinioSecure:                false,
	configkey.MinioArchiveBucket:         "archives",
	configkey.AdminCLIServerURL:          "http://localhost:3000",
}

func LoadConfig() {
	loadConfigMutex.Lock()
	defer loadConfigMutex.Unlock()
	if !configLoaded {
		configLoaded = true

		// a missing .env is the normal case outside development
		if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
			logrus.Warnf("Could not load .env: %s", err)
		}

		explicitConfigFile := os.Getenv("CONFIG_FILE")
		if explicitConfigFile != "" {
			fmt.Printf("CONFIG_FILE: %s\n", explicitConfigFile)
			viper.SetConfigFile(explicitConfigFile)
		} else {
			viper.SetConfigName("config")
			viper.SetConfigType("yaml")
			viper.AddConfigPath("/etc/mindboard")
			viper.AddConfigPath(".")

			otherPath := os.Getenv("CONFIG_FILE_PATH")
			if otherPath != "" {
				viper.AddConfigPath(otherPath)
			}
		}

		// set defaults first
		for key, val := range DefaultValues {
			viper.SetDefault(key, val)
		}

		viper.SetEnvPrefix("mindboard")
		viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
		viper.AutomaticEnv()

		err := viper.ReadInConfig()
		if err != nil {
			logrus.Warn("Config file not found, using defaults")
		}
	}
}

// ConfigureLogging applies the configured log level to logrus.
func ConfigureLogging() {
	logLevelConfig := viper.GetString(configkey.LogLevel)
	l, errLevel := logrus.ParseLevel(logLevelConfig)
	if errLevel != nil {
		logrus.Error(errLevel)
	} else {
		logrus.SetLevel(l)
	}
}

func MustGetString(key string) string {
	val := viper.GetString(key)
	if len(val) == 0 {
		panic(errors.New("failed to get " + key))
	}

	return val
}

func MustGetInt32(key string) int32 {
	if viper.IsSet(key) {
		val := viper.GetInt32(key)
		return val
	}
	panic("key not found: " + key)
}
