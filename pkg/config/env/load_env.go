package env

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
)

// PathVar names the variable that points at an explicit .env file.
const PathVar = "ENV_PATH"

// LoadDotEnv loads variables from the file named by ENV_PATH, or from
// defaultPath when ENV_PATH is unset. A missing default file is not an
// error; a missing ENV_PATH file is. Variables already set in the process
// environment win over the file.
func LoadDotEnv(defaultPath string) error {
	envPath, explicit := os.LookupEnv(PathVar)
	if !explicit || envPath == "" {
		envPath = defaultPath
		explicit = false
	}

	err := godotenv.Load(envPath)
	if err == nil {
		slog.Debug("Loaded environment file", "path", envPath)
		return nil
	}

	if !explicit && errors.Is(err, fs.ErrNotExist) {
		slog.Debug("Skipping .env ...", "path", envPath)
		return nil
	}
	return fmt.Errorf("load env file %s: %w", envPath, err)
}
