package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/gogpu/gpuctx"
	"github.com/gogpu/gputypes"
)

func newLimitsCmd() *cobra.Command {
	var base, adapter string
	cmd := &cobra.Command{
		Use:     "limits",
		Short:   "Print the limits requested from an adapter profile",
		Example: "  gpuctx limits\n  gpuctx limits --base default --adapter downlevel",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLimits(cmd.OutOrStdout(), base, adapter)
		},
	}
	cmd.Flags().StringVar(&base, "base", "webgl2", "Base profile: webgl2|downlevel|default")
	cmd.Flags().StringVar(&adapter, "adapter", "default", "Adapter profile: webgl2|downlevel|default")
	return cmd
}

// runLimits clamps the base profile to the adapter profile and prints the
// result together with any field the base asked for beyond the adapter.
func runLimits(out io.Writer, base, adapter string) error {
	b, err := limitsProfile(base)
	if err != nil {
		return err
	}
	a, err := limitsProfile(adapter)
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "base:    %s\nadapter: %s\n", base, adapter)
	if over := gpuctx.ExceededLimits(b, a); len(over) > 0 {
		fmt.Fprintf(out, "clamped: %s\n", strings.Join(over, ", "))
	}
	printLimits(out, gpuctx.RequiredLimits(b, a))
	return nil
}

func limitsProfile(name string) (gputypes.Limits, error) {
	switch strings.ToLower(name) {
	case "webgl2", "gl":
		return gpuctx.DownlevelWebGL2Limits(), nil
	case "downlevel":
		return gputypes.DownlevelLimits(), nil
	case "default", "":
		return gputypes.DefaultLimits(), nil
	default:
		return gputypes.Limits{}, fmt.Errorf("unknown limits profile %q (want webgl2, downlevel or default)", name)
	}
}
