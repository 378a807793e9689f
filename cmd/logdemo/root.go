package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/multierr"

	"github.com/philipp01105/streamlog/logger"
)

// envPrefix is prepended to every config key looked up in the environment,
// e.g. STREAMLOG_LOG_BACKEND for log.backend.
const envPrefix = "STREAMLOG"

// config is the shape viper unmarshals into.
type config struct {
	Log   logger.Options `mapstructure:"log"`
	Count int            `mapstructure:"count"`
	Fatal bool           `mapstructure:"fatal"`
}

// NewRootCommand builds the logdemo command with its own viper instance.
func NewRootCommand() *cobra.Command {
	v := viper.New()
	opts := logger.NewOptions()

	cmd := &cobra.Command{
		Use:   "logdemo",
		Short: "Write sample records through the streamlog facade",
		Long: `logdemo initializes the logging facade with the selected backend and
writes one record of every kind: plain, verbose, debug, errno-augmented and
slog-bridged. With --fatal it ends with a fatal record, which aborts.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(v)
			if err != nil {
				return err
			}
			return run(cfg, cmd.OutOrStdout())
		},
	}

	fs := cmd.Flags()
	fs.StringP("config", "c", "", "config file (yaml, json or toml)")
	fs.Int("count", 3, "number of info records to write")
	fs.Bool("fatal", false, "finish with a fatal record")
	opts.AddFlags(fs)
	_ = v.BindPFlags(fs)

	return cmd
}

func loadConfig(v *viper.Viper) (*config, error) {
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if cfgFile := v.GetString("config"); cfgFile != "" {
		v.SetConfigFile(cfgFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", cfgFile, err)
		}
	}

	cfg := &config{Log: *logger.NewOptions()}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	return cfg, nil
}

func run(cfg *config, out io.Writer) (err error) {
	if err := logger.Initialize(&cfg.Log); err != nil {
		return err
	}
	defer func() {
		if serr := logger.Shutdown(); serr != nil {
			err = multierr.Append(err, serr)
		}
	}()

	for i := 1; i <= cfg.Count; i++ {
		logger.Info().Str("sample record ").Int(i).Str(" of ").Int(cfg.Count).Send()
	}
	logger.Warning().Str("backend ").Str(cfg.Log.Backend).Str(" verbosity ").Int(logger.Verbosity()).Send()
	logger.V(1).Msg("verbose detail")
	logger.Debug().Msg("debug trace")

	missing := filepath.Join(os.TempDir(), "streamlog-demo-missing")
	if _, oerr := os.Open(missing); oerr != nil {
		logger.PError(oerr).Str("open ").Str(missing).Send()
	}

	slog.New(logger.NewSlogHandler(nil)).Info("slog bridge", "backend", cfg.Log.Backend)

	if cfg.Fatal {
		logger.Fatal().Msg("fatal record requested")
	}

	if ferr := logger.Flush(); ferr != nil {
		return ferr
	}
	if snap, ok := logger.Stats(); ok {
		var dropped uint64
		for _, n := range snap.DroppedTotal {
			dropped += n
		}
		fmt.Fprintf(out, "processed=%d dropped=%d blocked=%d\n", snap.ProcessedTotal, dropped, snap.BlockedTotal)
	}
	return nil
}
