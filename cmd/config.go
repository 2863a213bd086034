package cmd

import (
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/pagevault/pagevault/internal/clierr"
	"github.com/pagevault/pagevault/internal/config"
	"github.com/pagevault/pagevault/internal/output"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "View or modify archive configuration",
	Long:  `View the full configuration, get a specific key, or set a writable value.`,
	RunE:  runConfigShow,
}

var configGetCmd = &cobra.Command{
	Use:   "get KEY",
	Short: "Get a configuration value",
	Args:  cobra.ExactArgs(1),
	RunE:  runConfigGet,
}

var configSetCmd = &cobra.Command{
	Use:   "set KEY VALUE",
	Short: "Set a configuration value",
	Args:  cobra.ExactArgs(2), //nolint:mnd // key and value
	RunE:  runConfigSet,
}

func init() {
	configCmd.AddCommand(configGetCmd)
	configCmd.AddCommand(configSetCmd)
	rootCmd.AddCommand(configCmd)
}

// configAccessor describes how to get and set a config key.
type configAccessor struct {
	get      func(*config.Config) any
	set      func(*config.Config, string) error
	writable bool
}

func setPositiveInt(target func(*config.Config, int)) func(*config.Config, string) error {
	return func(c *config.Config, v string) error {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			return clierr.Newf(clierr.InvalidInput, "expected a positive integer, got %q", v)
		}
		target(c, n)
		return nil
	}
}

func setDuration(target func(*config.Config, string)) func(*config.Config, string) error {
	return func(c *config.Config, v string) error {
		if _, err := time.ParseDuration(v); err != nil {
			return clierr.Newf(clierr.InvalidInput, "invalid duration %q", v)
		}
		target(c, v)
		return nil
	}
}

func configAccessors() map[string]configAccessor {
	return map[string]configAccessor{
		"version": {
			get: func(c *config.Config) any { return c.Version },
		},
		"incoming_dir": {
			get:      func(c *config.Config) any { return c.IncomingDir },
			set:      func(c *config.Config, v string) error { c.IncomingDir = v; return nil },
			writable: true,
		},
		"filename.total_bytes": {
			get:      func(c *config.Config) any { return c.Filename.TotalBytes },
			set:      setPositiveInt(func(c *config.Config, n int) { c.Filename.TotalBytes = n }),
			writable: true,
		},
		"filename.ceiling_bytes": {
			get:      func(c *config.Config) any { return c.Filename.CeilingBytes },
			set:      setPositiveInt(func(c *config.Config, n int) { c.Filename.CeilingBytes = n }),
			writable: true,
		},
		"filename.min_content": {
			get:      func(c *config.Config) any { return c.Filename.MinContent },
			set:      setPositiveInt(func(c *config.Config, n int) { c.Filename.MinContent = n }),
			writable: true,
		},
		"filename.extension": {
			get: func(c *config.Config) any { return c.Filename.Extension },
			set: func(c *config.Config, v string) error {
				if !strings.HasPrefix(v, ".") {
					return clierr.Newf(clierr.InvalidInput, "extension must start with a dot, got %q", v)
				}
				c.Filename.Extension = v
				return nil
			},
			writable: true,
		},
		"capture.docker_image": {
			get:      func(c *config.Config) any { return c.Capture.DockerImage },
			set:      func(c *config.Config, v string) error { c.Capture.DockerImage = v; return nil },
			writable: true,
		},
		"capture.timeout": {
			get:      func(c *config.Config) any { return c.Capture.Timeout },
			set:      setDuration(func(c *config.Config, v string) { c.Capture.Timeout = v }),
			writable: true,
		},
		"capture.request_interval": {
			get:      func(c *config.Config) any { return c.Capture.RequestInterval },
			set:      setDuration(func(c *config.Config, v string) { c.Capture.RequestInterval = v }),
			writable: true,
		},
		"capture.max_retries": {
			get:      func(c *config.Config) any { return c.Capture.MaxRetries },
			set:      setPositiveInt(func(c *config.Config, n int) { c.Capture.MaxRetries = n }),
			writable: true,
		},
		"capture.cookies_file": {
			get:      func(c *config.Config) any { return c.Capture.CookiesFile },
			set:      func(c *config.Config, v string) error { c.Capture.CookiesFile = v; return nil },
			writable: true,
		},
	}
}

func runConfigShow(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	accessors := configAccessors()
	if outputFormat() == output.FormatJSON {
		values := make(map[string]any, len(accessors))
		for key, acc := range accessors {
			values[key] = acc.get(cfg)
		}
		values["dir"] = cfg.Dir()
		return output.JSON(os.Stdout, values)
	}

	keys := make([]string, 0, len(accessors))
	for key := range accessors {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	output.Messagef(os.Stdout, "Archive: %s", cfg.Dir())
	for _, key := range keys {
		fmt.Fprintf(os.Stdout, "  %-26s %v\n", key+":", accessors[key].get(cfg))
	}
	return nil
}

func runConfigGet(_ *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	acc, ok := configAccessors()[args[0]]
	if !ok {
		return clierr.Newf(clierr.InvalidInput, "unknown config key %q", args[0])
	}
	if outputFormat() == output.FormatJSON {
		return output.JSON(os.Stdout, map[string]any{args[0]: acc.get(cfg)})
	}
	fmt.Fprintf(os.Stdout, "%v\n", acc.get(cfg))
	return nil
}

func runConfigSet(_ *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	key, value := args[0], args[1]

	acc, ok := configAccessors()[key]
	if !ok {
		return clierr.Newf(clierr.InvalidInput, "unknown config key %q", key)
	}
	if !acc.writable {
		return clierr.Newf(clierr.InvalidInput, "config key %q is read-only", key)
	}
	if err := acc.set(cfg, value); err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	if err := cfg.Save(); err != nil {
		return err
	}

	if outputFormat() == output.FormatJSON {
		return output.JSON(os.Stdout, map[string]any{key: acc.get(cfg)})
	}
	output.Messagef(os.Stdout, "Set %s = %v", key, acc.get(cfg))
	return nil
}
