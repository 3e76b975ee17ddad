package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/drift/internal/app"
	"go.trai.ch/drift/internal/core/domain"
	"go.trai.ch/zerr"
)

func (c *CLI) newCheckCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check",
		Short: "Report dependencies with newer published versions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			noCache, _ := cmd.Flags().GetBool("no-cache")
			failOnOutdated, _ := cmd.Flags().GetBool("fail-on-outdated")
			parallelism, _ := cmd.Flags().GetInt("parallelism")
			color, _ := cmd.Flags().GetString("color")

			if parallelism < 0 {
				return zerr.With(domain.ErrInvalidParallelism, "parallelism", parallelism)
			}

			return c.app.Check(cmd.Context(), app.CheckOptions{
				NoCache:        noCache,
				FailOnOutdated: failOnOutdated,
				Parallelism:    parallelism,
				Color:          color,
			})
		},
	}
	cmd.Flags().BoolP("no-cache", "n", false, "Retry lookups that failed recently")
	cmd.Flags().Bool("fail-on-outdated", false, "Exit with status 1 when updates are available")
	cmd.Flags().IntP("parallelism", "p", 0, "Number of dependencies checked concurrently (default: configured or CPU count)")
	cmd.Flags().String("color", "auto", "Color output: auto, always, or never")
	return cmd
}
