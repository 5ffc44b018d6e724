// Command fingerprinting-light-agent runs only CooperationService: a
// cooperating peer that never accepts public FingerprintService
// requests, per spec.md §6's CLI surface.
package main

import (
	"fmt"
	"net"
	"os"

	"github.com/spf13/cobra"
	"google.golang.org/grpc"

	"github.com/outbe/outbe-transaction-fingerprinting/internal/config"
	"github.com/outbe/outbe-transaction-fingerprinting/internal/wire"
	"github.com/outbe/outbe-transaction-fingerprinting/pkg/fingerprint"
)

var (
	configPath string

	rootCmd = &cobra.Command{
		Use:   "fingerprinting-light-agent",
		Short: "Run CooperationService only",
		RunE:  run,
	}
)

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to the agent configuration file")
	_ = rootCmd.MarkPersistentFlagRequired("config")
}

func run(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("fingerprinting-light-agent: %w", err)
	}
	if cfg.EngineType != config.EngineCooperative {
		return fmt.Errorf("fingerprinting-light-agent: requires fingerprint-service.type=Cooperative, got %q", cfg.EngineType)
	}

	peer := fingerprint.NewPeer(cfg.Share)

	lis, err := net.Listen("tcp", cfg.AgentGRPC.String())
	if err != nil {
		return fmt.Errorf("fingerprinting-light-agent: listening on %s: %w", cfg.AgentGRPC, err)
	}

	srv := grpc.NewServer()
	srv.RegisterService(&wire.CooperationServiceDesc, wire.NewCooperationServer(peer))

	fmt.Fprintf(os.Stderr, "fingerprinting-light-agent: listening on %s (agent_id=%s)\n", cfg.AgentGRPC, cfg.AgentID)
	return srv.Serve(lis)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
