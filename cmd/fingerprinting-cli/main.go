// Command fingerprinting-cli is component C8: a one-shot utility that
// emits a random master secret and its n Base58-encoded Shamir shares
// for a chosen (t, n), per spec.md §4.8.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/outbe/outbe-transaction-fingerprinting/pkg/base58"
	"github.com/outbe/outbe-transaction-fingerprinting/pkg/shamir"
)

var (
	threshold int
	agents    int

	rootCmd = &cobra.Command{
		Use:   "fingerprinting-cli",
		Short: "Generate a threshold-shared secret for the fingerprinting protocol",
		RunE:  runGenerate,
	}
)

func init() {
	rootCmd.PersistentFlags().IntVarP(&threshold, "threshold", "t", 0, "minimum number of agents required to cooperate")
	rootCmd.PersistentFlags().IntVarP(&agents, "agents", "n", 0, "total number of agents to shard the secret across")
	_ = rootCmd.MarkPersistentFlagRequired("threshold")
	_ = rootCmd.MarkPersistentFlagRequired("agents")
}

func runGenerate(cmd *cobra.Command, args []string) error {
	shares, err := shamir.GenerateShares(threshold, agents)
	if err != nil {
		return fmt.Errorf("fingerprinting-cli: %w", err)
	}
	// Zeroize before returning control to cobra/runtime cleanup, per
	// spec.md §3/§9's address-space lifetime discipline: the secret and
	// polynomial coefficients must not outlive this process's stdout
	// write.
	defer shares.Zeroize()

	fmt.Fprintf(cmd.OutOrStdout(), "Random secret: %s\n", base58.EncodeScalar(shares.Secret))
	for _, s := range shares.Parts {
		fmt.Fprintf(cmd.OutOrStdout(), "== share %s: %s\n", s.ID, base58.EncodeScalar(s.Value))
	}
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
