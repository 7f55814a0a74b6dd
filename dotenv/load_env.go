package dotenv

import (
	"os"
	"strings"
)

// LoadEnv loads environment variables from .env style files.
// With no arguments it looks for ".env" in the current working directory
// and silently succeeds when the file does not exist.
func LoadEnv(envPath ...string) error {
	if len(envPath) == 0 {
		if _, err := os.Stat(".env"); err != nil {
			return nil
		}
		envPath = append(envPath, ".env")
	}

	for _, filename := range envPath {
		content, err := os.ReadFile(filename)
		if err != nil {
			return err
		}

		if err = LoadEnvFromString(string(content)); err != nil {
			return err
		}
	}

	return nil
}

func LoadEnvFromString(env string) error {
	lines := strings.Split(env, "\n")
	for _, line := range lines {
		// skip comments
		if strings.HasPrefix(strings.TrimSpace(line), "#") {
			continue
		}

		parts := strings.Split(line, "=")
		key := strings.TrimSpace(parts[0])
		if key == "" {
			continue
		}

		// join rest of the parts with "="
		value := strings.TrimSpace(strings.Join(parts[1:], "="))
		os.Setenv(key, value)
	}

	return nil
}
