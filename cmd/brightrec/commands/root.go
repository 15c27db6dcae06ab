package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"brightrec/internal/app"
	"brightrec/internal/logging"
)

var (
	home      string
	nodeURL   string
	backupURL string
	logLevel  string
	logFile   string

	appCtx *app.App
)

// Execute runs the root command.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	root := &cobra.Command{
		Use:           "brightrec",
		Short:         "Encrypted social-graph backup and recovery",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := app.LoadConfig()
			if err != nil {
				return err
			}
			flags := cmd.Flags()
			if flags.Changed("home") {
				cfg.Home = home
			}
			if flags.Changed("node") {
				cfg.NodeURL = nodeURL
			}
			if flags.Changed("backup-url") {
				cfg.BackupURL = backupURL
			}
			if flags.Changed("log-level") {
				cfg.LogLevel = logLevel
			}
			if flags.Changed("log-file") {
				cfg.LogFile = logFile
			}
			if err := logging.InitLog(cfg.LogLevel, cfg.LogFile); err != nil {
				return err
			}

			w, err := app.NewWire(cfg)
			if err != nil {
				return err
			}
			appCtx = app.New(w)
			return nil
		},
	}

	root.PersistentFlags().StringVar(&home, "home", "", "state dir (default ~/.brightrec)")
	root.PersistentFlags().StringVar(&nodeURL, "node", "", "identity node base URL")
	root.PersistentFlags().StringVar(&backupURL, "backup-url", "", "recovery store base URL")
	root.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level (debug, info, warn, error)")
	root.PersistentFlags().StringVar(&logFile, "log-file", "", `log file, or "console"`)

	root.AddCommand(sessionCmd(), signCmd(), acceptCmd(), restoreCmd(), backupCmd(), trustedCmd())

	err := root.ExecuteContext(ctx)
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", describe(err))
	}
	return err
}
