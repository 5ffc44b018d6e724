// Package config implements the hierarchical key-value configuration
// loader (component A1): the grpc/agent-grpc endpoints, the
// Naive/Cooperative engine selection, and the cooperating-member
// registry, with validation covering duplicate IDs, a missing share,
// and a threshold exceeding the configured member count.
package config

import (
	"fmt"

	"github.com/spf13/viper"

	"github.com/outbe/outbe-transaction-fingerprinting/pkg/base58"
	"github.com/outbe/outbe-transaction-fingerprinting/pkg/curve"
	"github.com/outbe/outbe-transaction-fingerprinting/pkg/party"
)

// EngineType selects the protocol engine per spec.md §6's
// fingerprint-service.type key.
type EngineType string

const (
	EngineNaive       EngineType = "Naive"
	EngineCooperative EngineType = "Cooperative"
)

// Endpoint is a host/port pair, shared by the grpc.* and agent-grpc.*
// key groups.
type Endpoint struct {
	Host string
	Port int
}

func (e Endpoint) String() string {
	return fmt.Sprintf("%s:%d", e.Host, e.Port)
}

// Member is one entry of fingerprint-service.members: a peer's
// identity and the address its CooperationService listens on.
type Member struct {
	AgentID party.ID
	Address string
}

// Config is the fully loaded, validated hierarchical configuration of
// one agent process.
type Config struct {
	// GRPC is the public FingerprintService endpoint. Zero-valued on a
	// light agent that serves CooperationService only.
	GRPC Endpoint
	// AgentGRPC is the peer-facing CooperationService endpoint.
	AgentGRPC Endpoint

	EngineType EngineType

	// NaiveSecret holds the master secret when EngineType == EngineNaive.
	NaiveSecret curve.Scalar

	// AgentID, Share, Agents, Threshold, and Members are populated when
	// EngineType == EngineCooperative.
	AgentID   party.ID
	Share     curve.Scalar
	Agents    int
	Threshold int
	Members   []Member
}

// Load reads configuration from path (any format viper supports — YAML,
// JSON, TOML) using the key names of spec.md §6, and returns a
// validated Config. Invalid configuration is reported as an error,
// which callers at process startup must treat as fatal per spec.md §7's
// InvalidShareMaterial handling.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("config: reading %s: %w", path, err)
	}
	return FromViper(v)
}

// FromViper builds a Config from an already-populated viper instance,
// the seam tests use to avoid writing files to disk.
func FromViper(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		GRPC:       Endpoint{Host: v.GetString("grpc.address"), Port: v.GetInt("grpc.port")},
		AgentGRPC:  Endpoint{Host: v.GetString("agent-grpc.host"), Port: v.GetInt("agent-grpc.port")},
		EngineType: EngineType(v.GetString("fingerprint-service.type")),
	}

	switch cfg.EngineType {
	case EngineNaive:
		secretStr := v.GetString("fingerprint-service.secret")
		if secretStr == "" {
			return nil, fmt.Errorf("config: fingerprint-service.secret is required for Naive mode")
		}
		secret, err := base58.DecodeScalar(secretStr)
		if err != nil {
			return nil, fmt.Errorf("config: decoding fingerprint-service.secret: %w", err)
		}
		cfg.NaiveSecret = secret

	case EngineCooperative:
		cfg.AgentID = party.ID(v.GetString("fingerprint-service.agent_id"))
		cfg.Agents = v.GetInt("fingerprint-service.agents")
		cfg.Threshold = v.GetInt("fingerprint-service.threshold")

		shardStr := v.GetString("fingerprint-service.secret_shard")
		if shardStr == "" {
			return nil, fmt.Errorf("config: fingerprint-service.secret_shard is required for Cooperative mode")
		}
		share, err := base58.DecodeScalar(shardStr)
		if err != nil {
			return nil, fmt.Errorf("config: decoding fingerprint-service.secret_shard: %w", err)
		}
		cfg.Share = share

		var rawMembers []map[string]string
		if err := v.UnmarshalKey("fingerprint-service.members", &rawMembers); err != nil {
			return nil, fmt.Errorf("config: decoding fingerprint-service.members: %w", err)
		}
		for _, m := range rawMembers {
			cfg.Members = append(cfg.Members, Member{
				AgentID: party.ID(m["agent_id"]),
				Address: m["address"],
			})
		}

	case "":
		return nil, fmt.Errorf("config: fingerprint-service.type is required")
	default:
		return nil, fmt.Errorf("config: unknown fingerprint-service.type %q, want Naive or Cooperative", cfg.EngineType)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the fatal-at-startup failure modes spec.md §6 names:
// duplicate agent_id, missing shard, threshold > agents, unresolvable
// peer.
func (c *Config) Validate() error {
	switch c.EngineType {
	case EngineNaive:
		if c.NaiveSecret.IsZero() {
			return fmt.Errorf("config: naive secret must not be zero")
		}
		return nil

	case EngineCooperative:
		if c.AgentID == "" {
			return fmt.Errorf("config: fingerprint-service.agent_id is required")
		}
		if err := c.AgentID.Validate(); err != nil {
			return fmt.Errorf("config: %w", err)
		}
		if c.Agents < 1 {
			return fmt.Errorf("config: fingerprint-service.agents must be >= 1")
		}
		if c.Threshold < 1 {
			return fmt.Errorf("config: fingerprint-service.threshold must be >= 1")
		}
		if c.Threshold > c.Agents {
			return fmt.Errorf("config: threshold %d exceeds agents %d", c.Threshold, c.Agents)
		}
		if c.Share.IsZero() {
			return fmt.Errorf("config: fingerprint-service.secret_shard must not be zero")
		}

		seen := make(map[party.ID]bool, len(c.Members))
		selfFound := false
		for _, m := range c.Members {
			if m.AgentID == "" {
				return fmt.Errorf("config: member with empty agent_id")
			}
			if err := m.AgentID.Validate(); err != nil {
				return fmt.Errorf("config: member: %w", err)
			}
			if seen[m.AgentID] {
				return fmt.Errorf("config: duplicate agent_id %q in members", m.AgentID)
			}
			seen[m.AgentID] = true
			if m.AgentID != c.AgentID && m.Address == "" {
				return fmt.Errorf("config: member %q has no resolvable address", m.AgentID)
			}
			if m.AgentID == c.AgentID {
				selfFound = true
			}
		}
		if !selfFound {
			return fmt.Errorf("config: members list does not include self (%q)", c.AgentID)
		}
		if len(c.Members) < c.Threshold {
			return fmt.Errorf("config: members list (%d) is smaller than threshold (%d)", len(c.Members), c.Threshold)
		}
		return nil

	default:
		return fmt.Errorf("config: unknown fingerprint-service.type %q", c.EngineType)
	}
}

// MemberIDs returns every configured member's agent ID, in file order
// (this is the "fixed membership list order" spec.md §4.6 step 3 and
// §4.7 use for cooperating-set selection).
func (c *Config) MemberIDs() party.IDSlice {
	ids := make(party.IDSlice, len(c.Members))
	for i, m := range c.Members {
		ids[i] = m.AgentID
	}
	return ids
}

// Address looks up the configured address for a peer agent ID.
func (c *Config) Address(id party.ID) (string, bool) {
	for _, m := range c.Members {
		if m.AgentID == id {
			return m.Address, true
		}
	}
	return "", false
}
