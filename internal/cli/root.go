package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/regexrail/pkg/config"
)

// preRun applies --verbose, loads the config file and attaches the logger
// to the command context.
//
// The config comes from --config when given. Otherwise the default path is
// tried and a missing file means built-in defaults.
func (c *CLI) preRun(cmd *cobra.Command, args []string) error {
	level := LogInfo
	if c.verbose {
		level = LogDebug
	}
	c.SetLogLevel(level)

	cfg, err := c.loadConfig()
	if err != nil {
		return err
	}
	c.Config = cfg
	c.Logger.Debug("loaded config", "path", c.configPath, "cache", cfg.Cache.Backend, "metrics", cfg.Render.Metrics)

	cmd.SetContext(withLogger(cmd.Context(), commandLogger(c.Logger, cmd.Name())))
	return nil
}

func (c *CLI) loadConfig() (config.Config, error) {
	if c.configPath != "" {
		return config.Load(c.configPath)
	}
	return config.LoadDefault()
}
