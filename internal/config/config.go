package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

type Config struct {
	// HTTP Server
	Port string

	// Table store backend selection
	StoreBackend string

	// Table keys (file names in the remote store)
	LedgerKey string
	StockKey  string

	// SQLite backend
	SQLiteDBPath string

	// GitHub backend
	GitHubToken  string
	GitHubOwner  string
	GitHubRepo   string
	GitHubBranch string

	// AMQP (optional change events for the spreadsheet mirror)
	AMQPURL      string
	AMQPExchange string
	AMQPQueue    string
}

func Load() *Config {
	return &Config{
		Port: getEnv("PORT", "8081"),

		StoreBackend: getEnv("STORE_BACKEND", "memory"),

		LedgerKey: getEnv("LEDGER_TABLE_KEY", "ledger.csv"),
		StockKey:  getEnv("STOCK_TABLE_KEY", "stock.csv"),

		SQLiteDBPath: getEnv("SQLITE_DB_PATH", "./data/medstore.db"),

		GitHubToken:  getEnv("GITHUB_TOKEN", ""),
		GitHubOwner:  getEnv("GITHUB_OWNER", ""),
		GitHubRepo:   getEnv("GITHUB_REPO", ""),
		GitHubBranch: getEnv("GITHUB_BRANCH", "main"),

		AMQPURL:      getEnv("AMQP_URL", ""),
		AMQPExchange: getEnv("AMQP_EXCHANGE", "medstore"),
		AMQPQueue:    getEnv("AMQP_QUEUE", "table_changes"),
	}
}

// ValidBackends lists the accepted STORE_BACKEND values.
var ValidBackends = []string{"memory", "sqlite", "github", "sheets"}

// Validate validates the configuration and returns an error if invalid.
func (c *Config) Validate() error {
	var problems []string

	if port, err := strconv.Atoi(c.Port); err != nil {
		problems = append(problems, fmt.Sprintf("invalid port '%s': must be a number", c.Port))
	} else if port < 1 || port > 65535 {
		problems = append(problems, fmt.Sprintf("invalid port %d: must be between 1 and 65535", port))
	}

	validBackend := false
	for _, b := range ValidBackends {
		if c.StoreBackend == b {
			validBackend = true
			break
		}
	}
	if !validBackend {
		problems = append(problems, fmt.Sprintf("invalid store backend '%s': must be one of %v", c.StoreBackend, ValidBackends))
	}

	if c.LedgerKey == "" {
		problems = append(problems, "ledger table key cannot be empty")
	}
	if c.StockKey == "" {
		problems = append(problems, "stock table key cannot be empty")
	}
	if c.LedgerKey != "" && c.LedgerKey == c.StockKey {
		problems = append(problems, "ledger and stock table keys must differ")
	}

	if c.StoreBackend == "sqlite" {
		if c.SQLiteDBPath == "" {
			problems = append(problems, "SQLite database path cannot be empty when using sqlite backend")
		} else if dir := filepath.Dir(c.SQLiteDBPath); dir != "." && dir != "" {
			if _, err := os.Stat(dir); os.IsNotExist(err) {
				if err := os.MkdirAll(dir, 0755); err != nil {
					problems = append(problems, fmt.Sprintf("cannot create SQLite database directory '%s': %v", dir, err))
				}
			}
		}
	}

	if c.StoreBackend == "github" {
		if c.GitHubToken == "" {
			problems = append(problems, "GITHUB_TOKEN is required when using github backend")
		}
		if c.GitHubOwner == "" {
			problems = append(problems, "GITHUB_OWNER is required when using github backend")
		}
		if c.GitHubRepo == "" {
			problems = append(problems, "GITHUB_REPO is required when using github backend")
		}
	}

	if c.AMQPURL != "" {
		if parsed, err := url.Parse(c.AMQPURL); err != nil {
			problems = append(problems, fmt.Sprintf("invalid AMQP URL '%s': %v", c.AMQPURL, err))
		} else if parsed.Scheme != "amqp" && parsed.Scheme != "amqps" {
			problems = append(problems, fmt.Sprintf("invalid AMQP URL scheme '%s': must be 'amqp' or 'amqps'", parsed.Scheme))
		}
		if c.AMQPExchange == "" {
			problems = append(problems, "AMQP exchange name cannot be empty when AMQP URL is provided")
		}
		if c.AMQPQueue == "" {
			problems = append(problems, "AMQP queue name cannot be empty when AMQP URL is provided")
		}
	}

	if len(problems) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(problems, "\n- "))
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
