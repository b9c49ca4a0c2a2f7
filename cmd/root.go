// Package cmd wires the tilegen command line.
package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/MJE43/tile-variations-go/internal/config"
)

var (
	cfgFile string
	logger  *slog.Logger
)

var rootCmd = &cobra.Command{
	Use:   "tilegen",
	Short: "Generate parameterised tile variations",
	Long: `tilegen enumerates the 64 edge combinations of a hex tile, samples the
continuous modifier parameters for each one and hands the resulting tile
descriptors to the 3D tool, a Blender script, or the run history.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return initLogging()
	},
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "Config file (YAML)")
	rootCmd.PersistentFlags().String("log-level", "info", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().String("log-format", "text", "Log format: text or json")
	rootCmd.PersistentFlags().String("db", "", "Run history database path (empty disables history)")

	for key, flag := range map[string]string{
		"log.level":  "log-level",
		"log.format": "log-format",
		"store.path": "db",
	} {
		if err := viper.BindPFlag(key, rootCmd.PersistentFlags().Lookup(flag)); err != nil {
			panic(fmt.Sprintf("failed to bind flag %s: %v", flag, err))
		}
	}
}

func initConfig() {
	if err := config.Setup(viper.GetViper(), cfgFile); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func initLogging() error {
	var level slog.Level
	if err := level.UnmarshalText([]byte(viper.GetString("log.level"))); err != nil {
		return fmt.Errorf("invalid log level %q: %w", viper.GetString("log.level"), err)
	}

	opts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler
	switch strings.ToLower(viper.GetString("log.format")) {
	case "json":
		handler = slog.NewJSONHandler(os.Stderr, opts)
	default:
		handler = slog.NewTextHandler(os.Stderr, opts)
	}

	logger = slog.New(handler)
	slog.SetDefault(logger)
	return nil
}

// flagBinding maps a viper key to a command flag.
type flagBinding struct {
	key  string
	flag string
}

// bindFlags binds at run time so that commands sharing a key do not
// overwrite each other's bindings.
func bindFlags(cmd *cobra.Command, bindings []flagBinding) error {
	for _, b := range bindings {
		f := cmd.Flags().Lookup(b.flag)
		if f == nil {
			continue
		}
		if err := viper.BindPFlag(b.key, f); err != nil {
			return fmt.Errorf("failed to bind flag %s: %w", b.flag, err)
		}
	}
	return nil
}

func loadConfig() (*config.Config, error) {
	return config.Load(viper.GetViper())
}
