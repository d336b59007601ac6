package config

import (
	"fmt"
	"os"
	"runtime"

	"github.com/BurntSushi/toml"
)

// ConfigParam holds the CLI-level defaults. Everything here can be
// overridden per invocation with flags; the config file only supplies
// defaults so that none of the components read ambient state.
type ConfigParam struct {
	CVSource    string `toml:"cv_source"`
	RootDataDir string `toml:"root_data_dir"`
	NWorkers    int    `toml:"n_workers"`
	LogLevel    string `toml:"log_level"`
	LogConsole  bool   `toml:"log_console"`
}

var cfg *ConfigParam

func Config() *ConfigParam {
	return cfg
}

func LoadConfig(filename string) error {
	if filename == "" {
		cfg = defaults()
		return nil
	}
	content, err := os.ReadFile(filename)
	if err != nil {
		return fmt.Errorf("error reading config file: %v", err)
	}
	cp := *defaults()
	if _, err := toml.Decode(string(content), &cp); err != nil {
		return fmt.Errorf("error parsing config file: %v", err)
	}
	cfg = &cp
	return nil
}

func defaults() *ConfigParam {
	return &ConfigParam{
		NWorkers:   runtime.NumCPU(),
		LogLevel:   "info",
		LogConsole: true,
	}
}

func init() {
	err := LoadConfig("")
	if err != nil {
		panic(err)
	}
}
