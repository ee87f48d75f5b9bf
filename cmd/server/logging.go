package main

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
)

const (
	logDirPerm  = 0o750
	logFilePerm = 0o600
)

// resolveLogPath places LOG_FILE_PATH under base. Relative values are taken
// from base; absolute ones must already point inside it.
func resolveLogPath(base, name string) (string, error) {
	if strings.TrimSpace(name) == "" {
		return "", errors.New("log file path is empty")
	}
	target := name
	if !filepath.IsAbs(target) {
		target = filepath.Join(base, target)
	}

	rel, err := filepath.Rel(base, target)
	if err != nil {
		return "", fmt.Errorf("log file %q: %w", name, err)
	}
	if rel == "." || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("log file %q must be inside %s", name, base)
	}
	return filepath.Join(base, rel), nil
}

// setupLogging tees the standard logger to stdout and the access log file.
func setupLogging(name string) (*os.File, error) {
	wd, err := os.Getwd()
	if err != nil {
		return nil, err
	}
	path, err := resolveLogPath(wd, name)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(filepath.Dir(path), logDirPerm); err != nil {
		return nil, fmt.Errorf("log directory: %w", err)
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, logFilePerm) // #nosec G304 -- confined by resolveLogPath
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	log.SetOutput(io.MultiWriter(os.Stdout, f))
	return f, nil
}
