package boxfile

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/getsops/sops/v3/decrypt"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// DecryptSecrets decrypts a SOPS-encrypted file and returns its data.
// The format follows the file extension: .json, .env, or YAML otherwise.
func DecryptSecrets(path string) (map[string]any, error) {
	format := sopsFormat(path)

	plaintext, err := decrypt.File(path, format)
	if err != nil {
		return nil, fmt.Errorf("sops decrypt %s: %w", path, err)
	}

	return parseSecrets(plaintext, format)
}

func parseSecrets(plaintext []byte, format string) (map[string]any, error) {
	secrets := make(map[string]any)

	if format == "dotenv" {
		env, err := godotenv.Unmarshal(string(plaintext))
		if err != nil {
			return nil, fmt.Errorf("parse decrypted dotenv: %w", err)
		}
		for k, v := range env {
			secrets[k] = v
		}
		return secrets, nil
	}

	// YAML is a superset of JSON, so one decoder covers both formats.
	if err := yaml.Unmarshal(plaintext, &secrets); err != nil {
		return nil, fmt.Errorf("parse decrypted %s: %w", format, err)
	}
	return secrets, nil
}

func sopsFormat(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return "json"
	case ".env":
		return "dotenv"
	default:
		return "yaml"
	}
}
