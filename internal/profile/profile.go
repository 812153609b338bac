package profile

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
)

// Profile is the configuration to start main server.
type Profile struct {
	// Mode can be "prod" or "dev"
	Mode string
	// Addr is the binding address for server
	Addr string
	// Port is the binding port for server
	Port int
	// Vault is the note vault directory to scan
	Vault string
	// FilterOrphans excludes unlinked notes from the built graph
	FilterOrphans bool
	// Watch rescans the vault when files change
	Watch bool
	// Version is the current version of server
	Version string
}

func (p *Profile) IsDev() bool {
	return p.Mode != "prod"
}

// getEnvOrDefault returns the environment variable value or the default value.
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// FromEnv loads configuration from VAULTGRAPH_* environment variables.
func (p *Profile) FromEnv() {
	p.Mode = getEnvOrDefault("VAULTGRAPH_MODE", p.Mode)
	p.Addr = getEnvOrDefault("VAULTGRAPH_ADDR", p.Addr)
	p.Vault = getEnvOrDefault("VAULTGRAPH_VAULT", p.Vault)
	if os.Getenv("VAULTGRAPH_FILTER_ORPHANS") == "true" {
		p.FilterOrphans = true
	}
	if os.Getenv("VAULTGRAPH_WATCH") == "true" {
		p.Watch = true
	}
}

func checkVaultDir(vaultDir string) (string, error) {
	// Convert to absolute path if relative path is supplied.
	if !filepath.IsAbs(vaultDir) {
		absDir, err := filepath.Abs(vaultDir)
		if err != nil {
			return "", err
		}
		vaultDir = absDir
	}

	// Trim trailing \ or / in case user supplies
	vaultDir = strings.TrimRight(vaultDir, "\\/")
	info, err := os.Stat(vaultDir)
	if err != nil {
		return "", errors.Wrapf(err, "unable to access vault folder %s", vaultDir)
	}
	if !info.IsDir() {
		return "", errors.Errorf("vault path %s is not a directory", vaultDir)
	}
	return vaultDir, nil
}

func (p *Profile) Validate() error {
	if p.Mode != "dev" && p.Mode != "prod" {
		p.Mode = "dev"
	}

	if p.Vault == "" {
		return errors.New("vault directory is required")
	}

	vaultDir, err := checkVaultDir(p.Vault)
	if err != nil {
		return err
	}
	p.Vault = vaultDir

	if p.Port <= 0 || p.Port > 65535 {
		return errors.Errorf("invalid port %d", p.Port)
	}

	return nil
}
