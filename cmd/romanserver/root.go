package main

import (
	"errors"
	"fmt"
	"os/signal"
	"syscall"

	"roman-numeral-service/buildinfo"
	"roman-numeral-service/config"
	"roman-numeral-service/logging"
	"roman-numeral-service/numeral/application"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

type rootFlags struct {
	configPath string
	listenAddr string
	logLevel   string
	strict     bool
}

func newRootCmd() *cobra.Command {
	var flags rootFlags

	cmd := &cobra.Command{
		Use:          "romanserver",
		Short:        "Roman numeral conversion service",
		Long:         "Serves GET /romannumeral?query=N, converting integers 1-3999 to Roman numerals.",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd, flags)
		},
	}
	cmd.PersistentFlags().StringVar(&flags.configPath, "config", "", "path to a YAML config file (default $CONFIG_FILE)")

	serve := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server (default)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd, flags)
		},
	}
	for _, c := range []*cobra.Command{cmd, serve} {
		c.Flags().StringVar(&flags.listenAddr, "listen", "", "listen address, overrides LISTEN_ADDR")
		c.Flags().StringVar(&flags.logLevel, "log-level", "", "debug|info|warn|error, overrides LOG_LEVEL")
		c.Flags().BoolVar(&flags.strict, "strict", false, "reject inputs with trailing non-numeric text")
	}

	cmd.AddCommand(serve, newConvertCmd(), newVersionCmd())
	return cmd
}

func loadConfig(cmd *cobra.Command, flags rootFlags) (config.Config, error) {
	cfg, err := config.Load(flags.configPath)
	if err != nil {
		return config.Config{}, fmt.Errorf("config error: %w", err)
	}
	if f := cmd.Flags().Lookup("listen"); f != nil && f.Changed {
		cfg.ListenAddr = flags.listenAddr
	}
	if f := cmd.Flags().Lookup("log-level"); f != nil && f.Changed {
		cfg.LogLevel = flags.logLevel
	}
	if f := cmd.Flags().Lookup("strict"); f != nil && f.Changed {
		cfg.StrictParsing = flags.strict
	}
	return cfg, cfg.Validate()
}

func runServe(cmd *cobra.Command, flags rootFlags) error {
	cfg, err := loadConfig(cmd, flags)
	if err != nil {
		return err
	}

	logger, err := logging.New(cfg.Env, cfg.LogLevel)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	ctx, cancel := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	srv, err := newServer(ctx, cfg, logger)
	if err != nil {
		logger.Error("startup failed", zap.Error(err))
		return err
	}
	return srv.run(ctx)
}

func newConvertCmd() *cobra.Command {
	var strict bool
	cmd := &cobra.Command{
		Use:   "convert NUMBER...",
		Short: "Convert numbers offline, without starting the server",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc := application.Service{Validator: application.Validator{Strict: strict}}
			var failed error
			for _, arg := range args {
				out := svc.Convert([]string{arg})
				switch {
				case out.Err != nil:
					failed = errors.Join(failed, fmt.Errorf("%s: %w", arg, out.Err))
				case !out.Validation.OK():
					fmt.Fprintf(cmd.ErrOrStderr(), "%s: %s\n", arg, out.Validation.Rejection.Message())
					failed = errors.Join(failed, fmt.Errorf("%s: %s", arg, out.Validation.Rejection))
				default:
					fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", out.Input(), out.Output)
				}
			}
			return failed
		},
	}
	cmd.Flags().BoolVar(&strict, "strict", false, "reject inputs with trailing non-numeric text")
	return cmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintln(cmd.OutOrStdout(), buildinfo.String())
		},
	}
}
