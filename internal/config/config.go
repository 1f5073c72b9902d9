package config

import (
	"os"
	"path/filepath"
	"strings"
)

// GetConnectionString returns the database connection string.
func GetConnectionString() string {
	connStr := os.Getenv("ORGSH_DB_CONN")
	if connStr == "" {
		// Default connection string for local development
		return "postgres://localhost:5432/orgsh?sslmode=disable"
	}
	return connStr
}

// GetHistoryFile returns the path where the REPL stores its input history.
func GetHistoryFile() string {
	path := os.Getenv("ORGSH_HISTORY_FILE")
	if path != "" {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ".orgsh_history"
	}
	return filepath.Join(home, ".orgsh_history")
}

// IsMemoryMode returns true when persistence is disabled and the shell
// runs against an in-memory store.
func IsMemoryMode() bool {
	storeType := os.Getenv("ORGSH_STORE")
	return strings.EqualFold(storeType, "memory")
}
