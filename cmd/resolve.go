package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/analogrelay/optbridge"
)

func newResolveCmd() *cobra.Command {
	resolveCmd := &cobra.Command{
		Use:   "resolve",
		Short: "Resolve one value from the producer",
		Long: `Primes the producer with an envelope, calls it once and prints the resolved value.
When the envelope's discriminant is anything but 1 the fallback value is printed instead.`,
		Args: cobra.NoArgs,
		RunE: runResolve,
	}

	resolveCmd.Flags().Int32P("value", "v", 0, "Payload the producer returns")
	resolveCmd.Flags().Uint8P("is-some", "s", 1, "Raw discriminant the producer returns (1 means present)")
	resolveCmd.Flags().BoolP("absent", "a", false, "Producer reports no value (same as --is-some 0)")
	resolveCmd.Flags().StringP("producer", "p", "static", "Producer to call (static, native)")
	resolveCmd.Flags().Int32P("fallback", "f", optbridge.DefaultReserveValue, "Fallback value used when the producer reports absence")
	return resolveCmd
}

func runResolve(cmd *cobra.Command, args []string) error {
	cfg, log, err := setup(cmd)
	if err != nil {
		return err
	}

	env, err := envelopeFromFlags(cmd)
	if err != nil {
		return err
	}

	producer, err := newProducer(cfg.Producer, env)
	if err != nil {
		return fmt.Errorf("failed to create producer: %w", err)
	}

	resolver := optbridge.NewResolver(producer, optbridge.WithLogger(log))
	fmt.Fprintln(cmd.OutOrStdout(), resolver.Resolve())
	return nil
}

func envelopeFromFlags(cmd *cobra.Command) (optbridge.Envelope, error) {
	value, err := cmd.Flags().GetInt32("value")
	if err != nil {
		return optbridge.Envelope{}, fmt.Errorf("failed to get value: %w", err)
	}
	isSome, err := cmd.Flags().GetUint8("is-some")
	if err != nil {
		return optbridge.Envelope{}, fmt.Errorf("failed to get is-some: %w", err)
	}
	absent, err := cmd.Flags().GetBool("absent")
	if err != nil {
		return optbridge.Envelope{}, fmt.Errorf("failed to get absent: %w", err)
	}
	if absent {
		isSome = 0
	}
	return optbridge.Envelope{Value: value, IsSome: isSome}, nil
}
