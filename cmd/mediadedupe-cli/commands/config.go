package commands

import (
	"fmt"

	"github.com/HaiderBassem/mediadedupe/internal/utils"
	"github.com/HaiderBassem/mediadedupe/pkg/engine"
	"github.com/urfave/cli/v2"
)

// resolveConfig builds the pipeline Config for a command invocation. When
// --config names a YAML file it is loaded via utils.ConfigManager on top
// of the named tuning profile; otherwise the profile/cache/workers flags
// resolve it the way they always have.
func resolveConfig(c *cli.Context) (engine.Config, error) {
	cfg := configForProfile(c.String("profile"))

	if path := c.String("config"); path != "" {
		manager := utils.NewConfigManager(path)
		if !manager.ConfigExists() {
			return cfg, fmt.Errorf("config file not found: %s", path)
		}
		if err := manager.LoadConfig(&cfg); err != nil {
			return cfg, fmt.Errorf("load config %s: %w", path, err)
		}
	}

	return cfg, nil
}
