package main

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// parseSteps reads the optional step count of "down"; it defaults to one.
func parseSteps(args []string) (int, error) {
	if len(args) == 0 {
		return 1, nil
	}
	n, err := strconv.Atoi(strings.TrimSpace(args[0]))
	switch {
	case err != nil:
		return 0, fmt.Errorf("invalid down steps %q: %w", args[0], err)
	case n < 1:
		return 0, fmt.Errorf("down steps must be > 0, got %d", n)
	}
	return n, nil
}

// parseVersion reads the version for "force". Negative versions are refused.
func parseVersion(raw string) (int, error) {
	v, err := strconv.ParseInt(strings.TrimSpace(raw), 10, strconv.IntSize)
	switch {
	case err != nil:
		return 0, fmt.Errorf("invalid version %q: %w", raw, err)
	case v < 0:
		return 0, fmt.Errorf("version must be >= 0, got %d", v)
	}
	return int(v), nil
}

func parseTarget(raw string) (uint, error) {
	v, err := strconv.ParseUint(strings.TrimSpace(raw), 10, strconv.IntSize)
	if err != nil {
		return 0, fmt.Errorf("invalid target version %q: %w", raw, err)
	}
	return uint(v), nil
}

var migrationDirs = []string{"./db/migrations", "/app/db/migrations"}

// resolveMigrationsDir returns the first existing directory among
// MIGRATIONS_DIR and the defaults.
func resolveMigrationsDir() (string, error) {
	for _, dir := range append([]string{strings.TrimSpace(os.Getenv("MIGRATIONS_DIR"))}, migrationDirs...) {
		if dir == "" {
			continue
		}
		abs, err := filepath.Abs(dir)
		if err != nil {
			continue
		}
		if info, err := os.Stat(abs); err == nil && info.IsDir() {
			return abs, nil
		}
	}
	return "", fmt.Errorf("migration directory not found (checked MIGRATIONS_DIR, %s)", strings.Join(migrationDirs, ", "))
}

func normalizeDBURL(raw string, disableBinaryResult bool) string {
	u, err := url.Parse(raw)
	if !disableBinaryResult || err != nil || u.Scheme == "" {
		return raw
	}
	params := u.Query()
	if !params.Has("disable_prepared_binary_result") {
		params.Set("disable_prepared_binary_result", "yes")
		u.RawQuery = params.Encode()
	}
	return u.String()
}

func envBool(key string) bool {
	switch strings.TrimSpace(strings.ToLower(os.Getenv(key))) {
	case "1", "true", "t", "yes", "y", "on":
		return true
	default:
		return false
	}
}
