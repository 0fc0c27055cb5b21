package cmd

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/analogrelay/optbridge/native"
)

func newLayoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "layout",
		Short: "Compare the Go and C layouts of the envelope record",
		Long: `Prints the size and field offsets of the envelope as seen by the Go compiler and
by the C compiler for this build target, and fails if they differ.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, log, err := setup(cmd)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Target: %s/%s\n", runtime.GOOS, runtime.GOARCH)
			fmt.Fprintf(out, "Go: %s\n", native.GoLayout())
			if !native.Available {
				fmt.Fprintln(out, "C:  unavailable (built without cgo)")
				return native.ErrUnavailable
			}
			fmt.Fprintf(out, "C:  %s\n", native.CLayout())

			if err := native.CheckLayout(); err != nil {
				log.ErrorWithErr("layout check failed", err)
				return err
			}
			fmt.Fprintln(out, "Layouts match.")
			return nil
		},
	}
}
