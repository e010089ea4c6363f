package config

import (
	"errors"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

// Environment variable names.
const (
	EnvAPIURL    = "RAMADAN_PRO_API_URL"
	EnvAdminCode = "RAMADAN_PRO_ADMIN_CODE"
	EnvLogLevel  = "RAMADAN_PRO_LOG_LEVEL"
	EnvDataDir   = "RAMADAN_PRO_DATA_DIR"
)

// Environment holds process-level settings that do not belong in the
// user's settings file.
type Environment struct {
	APIURL    string
	AdminCode string
	LogLevel  string
	DataDir   string
}

// LoadEnv loads the given .env files (".env" when none are given) into the
// process environment and reads the recognised variables. Variables already
// set in the environment win over the files. A missing file is not an error.
func LoadEnv(files ...string) Environment {
	if err := godotenv.Load(files...); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			log.Debug().Msg("no .env file, using process environment")
		} else {
			log.Warn().Err(err).Msg("failed to load .env file")
		}
	}

	return Environment{
		APIURL:    GetEnv(EnvAPIURL),
		AdminCode: GetEnv(EnvAdminCode),
		LogLevel:  GetEnv(EnvLogLevel, "warn"),
		DataDir:   GetEnv(EnvDataDir),
	}
}

// GetEnv returns the value of key, or the first default when it is unset.
func GetEnv(key string, defaultValue ...string) string {
	value, exists := os.LookupEnv(key)
	if !exists && len(defaultValue) > 0 {
		return defaultValue[0]
	}
	return value
}
