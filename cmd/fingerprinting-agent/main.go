// Command fingerprinting-agent runs both FingerprintService (the public
// API) and CooperationService (the agent-to-agent partial-evaluation
// endpoint), per spec.md §6's CLI surface.
package main

import (
	"fmt"
	"net"
	"os"

	"github.com/spf13/cobra"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"

	"github.com/outbe/outbe-transaction-fingerprinting/internal/config"
	"github.com/outbe/outbe-transaction-fingerprinting/internal/wire"
	"github.com/outbe/outbe-transaction-fingerprinting/pkg/coordinator"
	"github.com/outbe/outbe-transaction-fingerprinting/pkg/fingerprint"
	"github.com/outbe/outbe-transaction-fingerprinting/pkg/party"
)

var (
	configPath string

	rootCmd = &cobra.Command{
		Use:   "fingerprinting-agent",
		Short: "Run FingerprintService and CooperationService",
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
		return fmt.Errorf("fingerprinting-agent: %w", err)
	}

	engine, peer, err := buildEngineAndPeer(cfg)
	if err != nil {
		return fmt.Errorf("fingerprinting-agent: %w", err)
	}

	lis, err := net.Listen("tcp", cfg.GRPC.String())
	if err != nil {
		return fmt.Errorf("fingerprinting-agent: listening on %s: %w", cfg.GRPC, err)
	}

	srv := grpc.NewServer()
	srv.RegisterService(&wire.FingerprintServiceDesc, wire.NewFingerprintServer(engine))
	if peer != nil {
		peerLis, err := net.Listen("tcp", cfg.AgentGRPC.String())
		if err != nil {
			return fmt.Errorf("fingerprinting-agent: listening on %s: %w", cfg.AgentGRPC, err)
		}
		peerSrv := grpc.NewServer()
		peerSrv.RegisterService(&wire.CooperationServiceDesc, wire.NewCooperationServer(peer))
		go func() {
			if err := peerSrv.Serve(peerLis); err != nil {
				fmt.Fprintf(os.Stderr, "fingerprinting-agent: CooperationService on %s stopped: %v\n", cfg.AgentGRPC, err)
			}
		}()
		fmt.Fprintf(os.Stderr, "fingerprinting-agent: CooperationService listening on %s\n", cfg.AgentGRPC)
	}

	fmt.Fprintf(os.Stderr, "fingerprinting-agent: listening on %s (fingerprint-service.type=%s)\n", cfg.GRPC, cfg.EngineType)
	return srv.Serve(lis)
}

// buildEngineAndPeer wires the configured protocol engine (C6) and, in
// Cooperative mode, this agent's own Peer (served to other initiators)
// plus the coordinator.Pool dialing every configured peer over a real
// gRPC connection.
func buildEngineAndPeer(cfg *config.Config) (fingerprint.Engine, *fingerprint.Peer, error) {
	switch cfg.EngineType {
	case config.EngineNaive:
		return fingerprint.NewNaiveEngine(cfg.NaiveSecret), nil, nil

	case config.EngineCooperative:
		peer := fingerprint.NewPeer(cfg.Share)

		members := cfg.MemberIDs()
		clients := make(map[party.ID]coordinator.PeerClient, len(members))
		for _, m := range cfg.Members {
			if m.AgentID == cfg.AgentID {
				continue
			}
			conn, err := grpc.Dial(m.Address, grpc.WithTransportCredentials(insecure.NewCredentials()))
			if err != nil {
				return nil, nil, fmt.Errorf("dialing peer %q at %s: %w", m.AgentID, m.Address, err)
			}
			clients[m.AgentID] = wire.NewCooperationClient(conn)
		}
		pool := coordinator.NewPool(cfg.AgentID, members, clients)
		engine := fingerprint.NewCooperativeEngine(cfg.AgentID, cfg.Share, cfg.Threshold, pool)
		return engine, peer, nil

	default:
		return nil, nil, fmt.Errorf("unknown fingerprint-service.type %q", cfg.EngineType)
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
