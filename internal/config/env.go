package config

import (
	"errors"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Environment holds CLI defaults read from the process environment and an
// optional .env file. Process variables win over the file.
type Environment struct {
	LogLevel  string
	PrettyLog bool
	RedisAddr string
	OutputDir string
	Format    string
}

// LoadEnvironment reads GOALSIM_* variables. files defaults to ".env"; files
// that do not exist are skipped. The process environment is not modified.
func LoadEnvironment(files ...string) (Environment, error) {
	if len(files) == 0 {
		files = []string{".env"}
	}

	fileVars := map[string]string{}
	for _, f := range files {
		vars, err := godotenv.Read(f)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return Environment{}, err
		}
		for k, v := range vars {
			fileVars[k] = v
		}
	}

	get := func(key, def string) string {
		if v, ok := os.LookupEnv(key); ok {
			return v
		}
		if v, ok := fileVars[key]; ok {
			return v
		}
		return def
	}

	pretty, err := strconv.ParseBool(get("GOALSIM_PRETTY_LOG", "false"))
	if err != nil {
		return Environment{}, errors.New("GOALSIM_PRETTY_LOG must be a boolean")
	}

	return Environment{
		LogLevel:  strings.ToLower(get("GOALSIM_LOG_LEVEL", "warn")),
		PrettyLog: pretty,
		RedisAddr: get("GOALSIM_REDIS_ADDR", ""),
		OutputDir: get("GOALSIM_OUTPUT_DIR", ""),
		Format:    get("GOALSIM_FORMAT", "console"),
	}, nil
}
