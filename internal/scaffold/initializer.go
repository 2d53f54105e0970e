// Package scaffold writes the starter housie.yml for `housie init`.
package scaffold

import (
	"embed"
	"fmt"
	"os"
	"path/filepath"

	"github.com/dyluth/housie/internal/config"
)

//go:embed templates/*
var templatesFS embed.FS

// Initialize writes housie.yml into dir and returns its path. Unless force is
// set, an existing file is left alone and reported as an error.
func Initialize(dir string, force bool) (string, error) {
	path := filepath.Join(dir, config.DefaultPath)

	if !force {
		if err := CheckExisting(dir); err != nil {
			return "", err
		}
	}

	content, err := templatesFS.ReadFile("templates/housie.yml.tmpl")
	if err != nil {
		return "", fmt.Errorf("failed to read housie.yml template: %w", err)
	}

	if err := os.WriteFile(path, content, 0644); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", path, err)
	}

	// The template must always load cleanly.
	if _, err := config.Load(path); err != nil {
		return "", fmt.Errorf("created %s is invalid: %w", path, err)
	}

	return path, nil
}

// CheckExisting returns an error if dir already holds a housie.yml.
func CheckExisting(dir string) error {
	path := filepath.Join(dir, config.DefaultPath)
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("project already initialized\n\nFound existing: %s\n\nUse 'housie init --force' to overwrite it", path)
	}
	return nil
}
