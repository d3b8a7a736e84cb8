package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"runtime/debug"
	"strings"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	pflag "github.com/spf13/pflag"

	"github.com/bft-labs/dbgcast/internal/cliconfig"
	"github.com/bft-labs/dbgcast/internal/listen"
)

const helpDescription = `
Receive live debug snapshots from instrumented programs over TCP.

Programs embed the dbgcast library and call Snap()/SnapIf() at points of
interest; this command is the listening front end that decodes and
renders the snapshots. Configure via file, environment (DBGCAST_*), or
flags, in increasing order of precedence.
`

var exampleUsage = strings.TrimSpace(`
  dbgcast listen
  dbgcast listen --address 0.0.0.0 --port 9230 --log-level debug
  dbgcast demo --port 9230
`)

func getVersion() string {
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" {
		return info.Main.Version
	}
	return "dev"
}

func main() {
	root := &cobra.Command{
		Use:     "dbgcast",
		Short:   "Receive live debug snapshots from instrumented programs",
		Long:    strings.TrimSpace(helpDescription),
		Example: exampleUsage,
		Version: fmt.Sprintf("%s %s/%s", getVersion(), runtime.GOOS, runtime.GOARCH),
	}

	root.AddCommand(listenCommand())
	root.AddCommand(demoCommand())

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func listenCommand() *cobra.Command {
	cfg := cliconfig.DefaultConfig()
	var cfgPath string
	var watch bool

	cmd := &cobra.Command{
		Use:   "listen",
		Short: "Listen for snapshots and render them",
		RunE: func(cmd *cobra.Command, args []string) error {
			// Flags beat env beat file; track which flags were set.
			changed := map[string]bool{}
			cmd.Flags().Visit(func(f *pflag.Flag) { changed[f.Name] = true })

			cfgFile := cfgPath
			if cfgFile == "" {
				cfgFile = cliconfig.DefaultConfigPath()
			}
			if cfgFile != "" && cliconfig.FileExists(cfgFile) {
				fc, err := cliconfig.LoadFileConfig(cfgFile)
				if err != nil {
					return fmt.Errorf("load config: %w", err)
				}
				cliconfig.ApplyFileConfig(&cfg, fc, changed)
			}
			if err := cliconfig.ApplyEnvConfig(&cfg, changed); err != nil {
				return err
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			logger := cliconfig.Logger(cfg)
			logger.Info().Interface("config", cfg).Msg("configuration")

			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			if watch && cfgFile != "" && cliconfig.FileExists(cfgFile) {
				watcher := cliconfig.NewWatcher(cfgFile, logger, func(fc cliconfig.FileConfig) {
					if fc.LogLevel != "" {
						zerolog.SetGlobalLevel(cliconfig.ParseLevel(fc.LogLevel))
					}
				})
				go watcher.Run(ctx)
			}

			srv := listen.New(listen.Config{
				Addr:       cfg.ListenAddr(),
				MaxPayload: cfg.MaxPayload,
				AcceptGzip: cfg.AcceptGzip,
			}, logger, nil)

			return srv.Run(ctx)
		},
	}

	f := cmd.Flags()
	f.StringVar(&cfg.Address, "address", cfg.Address, "address to listen on")
	f.IntVar(&cfg.Port, "port", cfg.Port, "port to listen on")
	f.IntVar(&cfg.MaxPayload, "max-payload", cfg.MaxPayload, "maximum accepted payload size in bytes (0 = unlimited)")
	f.BoolVar(&cfg.AcceptGzip, "gzip", cfg.AcceptGzip, "transparently decompress gzip payloads")
	f.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "log level: debug, info, warn, error")
	f.BoolVar(&cfg.Pretty, "pretty", cfg.Pretty, "human-readable console output")
	f.StringVar(&cfgPath, "config", "", "config file path (default $HOME/.dbgcast/config.toml)")
	f.BoolVar(&watch, "watch-config", false, "reload log settings when the config file changes")

	return cmd
}
