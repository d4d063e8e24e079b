package main

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/gogpu/gpuctx"
	"github.com/gogpu/gpuctx/internal/config"
)

// newRootCmd builds the command tree. Regular output goes to out, logs to
// errOut.
func newRootCmd(out, errOut io.Writer) *cobra.Command {
	cfg := config.Default()

	root := &cobra.Command{
		Use:           "gpuctx",
		Short:         "Acquire a GPU context with primary GPU to portable GL fallback",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetOut(out)
	root.SetErr(errOut)

	root.PersistentFlags().String("config", "", "Config file (.yaml, .json or .toml)")
	root.PersistentFlags().String("log-level", "", "Log level: debug|info|warn|error (default warn)")
	root.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		if f := cmd.Flags().Lookup("config"); f != nil && f.Value.String() != "" {
			loaded, err := config.Load(f.Value.String())
			if err != nil {
				return err
			}
			cfg = loaded.WithDefaults()
		}
		if f := cmd.Flags().Lookup("log-level"); f != nil && f.Value.String() != "" {
			cfg.LogLevel = f.Value.String()
		}
		level, err := cfg.Level()
		if err != nil {
			return err
		}
		gpuctx.SetLogger(slog.New(slog.NewTextHandler(errOut, &slog.HandlerOptions{Level: level})))
		return nil
	}

	root.AddCommand(newInitCmd(&cfg), newLimitsCmd(), newVersionCmd())
	return root
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the gpuctx version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := fmt.Fprintln(cmd.OutOrStdout(), "gpuctx", gpuctx.Version)
			return err
		},
	}
}
