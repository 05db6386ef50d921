package main

import (
	"fmt"
	"io"
	"os"

	"github.com/dd0wney/cluso-roles/pkg/algorithms"
	"github.com/dd0wney/cluso-roles/pkg/logging"
)

// loadConfig reads the optional YAML config. Without one, isolated nodes from
// the random graph score 0 instead of failing the run and the logger follows
// LOG_LEVEL. A config file is used as written.
func loadConfig(path string, logOut io.Writer) (*algorithms.Config, logging.Logger, error) {
	if path == "" {
		cfg := algorithms.DefaultConfig()
		cfg.ZeroDegree = algorithms.ZeroDegreePolicyZero.String()
		return cfg, logging.DefaultLogger(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read config: %w", err)
	}
	cfg, err := algorithms.ParseConfig(data)
	if err != nil {
		return nil, nil, err
	}
	logger, err := cfg.Logger(logOut)
	if err != nil {
		return nil, nil, err
	}
	return cfg, logger, nil
}
