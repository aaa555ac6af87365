package main

import (
	"os"
	"path/filepath"

	"github.com/xyproto/env/v2"
)

const historyFile = ".lcc_history"

// config holds the settings read from the environment. Command-line flags
// override them.
type config struct {
	Debug    bool   // LCC_DEBUG: debug logging of parse and reduction
	MaxSteps uint64 // LCC_MAX_STEPS: 0 reduces without limit
	Check    bool   // LCC_CHECK: validate the term after every step
	History  string // LCC_HISTORY: REPL history file
}

// loadConfig rereads the environment on every call.
func loadConfig() config {
	env.Load()
	cfg := config{
		Debug:   env.Bool("LCC_DEBUG"),
		Check:   env.Bool("LCC_CHECK"),
		History: env.Str("LCC_HISTORY"),
	}
	if n := env.Int("LCC_MAX_STEPS", 0); n > 0 {
		cfg.MaxSteps = uint64(n)
	}
	if cfg.History == "" {
		if home, err := os.UserHomeDir(); err == nil {
			cfg.History = filepath.Join(home, historyFile)
		}
	}
	return cfg
}
