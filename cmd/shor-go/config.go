package main

import (
	"encoding/json"
	"os"

	"github.com/urfave/cli"
)

// Config for shor-go. Fields left out of the JSON file keep their defaults;
// explicit flags override both.
type Config struct {
	N         int64  `json:"n"`
	E         int64  `json:"e"`
	Message   int64  `json:"message"`
	Base      int64  `json:"base"`
	Upto      int64  `json:"upto"`
	Seed      int64  `json:"seed"`
	Attempts  int    `json:"attempts"`
	Oracle    string `json:"oracle"`
	LogLevel  string `json:"log_level"`
	LogFormat string `json:"log_format"`
	Redact    bool   `json:"redact"`
}

func defaultConfig() Config {
	return Config{
		N:         55,
		E:         17,
		Message:   9,
		Base:      4,
		Upto:      100,
		Attempts:  1,
		Oracle:    oracleExact,
		LogLevel:  "info",
		LogFormat: "text",
	}
}

func parseJSONConfig(config *Config, path string) error {
	file, err := os.Open(path) // For read access.
	if err != nil {
		return err
	}
	defer file.Close()

	return json.NewDecoder(file).Decode(config)
}

// applyFlags copies every flag the user set on c over config.
func applyFlags(config *Config, c *cli.Context) {
	if c.GlobalIsSet("log-level") {
		config.LogLevel = c.GlobalString("log-level")
	}
	if c.GlobalIsSet("log-format") {
		config.LogFormat = c.GlobalString("log-format")
	}
	if c.GlobalIsSet("redact") {
		config.Redact = c.GlobalBool("redact")
	}
	if c.IsSet("n") {
		config.N = c.Int64("n")
	}
	if c.IsSet("e") {
		config.E = c.Int64("e")
	}
	if c.IsSet("m") {
		config.Message = c.Int64("m")
	}
	if c.IsSet("a") {
		config.Base = c.Int64("a")
	}
	if c.IsSet("upto") {
		config.Upto = c.Int64("upto")
	}
	if c.IsSet("seed") {
		config.Seed = c.Int64("seed")
	}
	if c.IsSet("attempts") {
		config.Attempts = c.Int("attempts")
	}
	if c.IsSet("oracle") {
		config.Oracle = c.String("oracle")
	}
}
