package config_test

import (
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/outbe/outbe-transaction-fingerprinting/internal/config"
	"github.com/outbe/outbe-transaction-fingerprinting/pkg/base58"
	"github.com/outbe/outbe-transaction-fingerprinting/pkg/curve"
)

func naiveViper(t *testing.T, secret curve.Scalar) *viper.Viper {
	t.Helper()
	v := viper.New()
	v.Set("grpc.address", "0.0.0.0")
	v.Set("grpc.port", 8080)
	v.Set("fingerprint-service.type", "Naive")
	v.Set("fingerprint-service.secret", base58.EncodeScalar(secret))
	return v
}

func cooperativeViper(t *testing.T, share curve.Scalar) *viper.Viper {
	t.Helper()
	v := viper.New()
	v.Set("grpc.address", "0.0.0.0")
	v.Set("grpc.port", 8080)
	v.Set("agent-grpc.host", "0.0.0.0")
	v.Set("agent-grpc.port", 9090)
	v.Set("fingerprint-service.type", "Cooperative")
	v.Set("fingerprint-service.agent_id", "1")
	v.Set("fingerprint-service.agents", 5)
	v.Set("fingerprint-service.threshold", 3)
	v.Set("fingerprint-service.secret_shard", base58.EncodeScalar(share))
	v.Set("fingerprint-service.members", []map[string]string{
		{"agent_id": "1", "address": "agent1:9090"},
		{"agent_id": "2", "address": "agent2:9090"},
		{"agent_id": "3", "address": "agent3:9090"},
		{"agent_id": "4", "address": "agent4:9090"},
		{"agent_id": "5", "address": "agent5:9090"},
	})
	return v
}

func TestLoadNaiveConfig(t *testing.T) {
	secret, err := curve.RandomScalar()
	require.NoError(t, err)

	cfg, err := config.FromViper(naiveViper(t, secret))
	require.NoError(t, err)
	assert.Equal(t, config.EngineNaive, cfg.EngineType)
	assert.True(t, cfg.NaiveSecret.Equal(secret))
}

func TestLoadCooperativeConfig(t *testing.T) {
	share, err := curve.RandomScalar()
	require.NoError(t, err)

	cfg, err := config.FromViper(cooperativeViper(t, share))
	require.NoError(t, err)
	assert.Equal(t, config.EngineCooperative, cfg.EngineType)
	assert.True(t, cfg.Share.Equal(share))
	assert.Len(t, cfg.Members, 5)
	addr, ok := cfg.Address("3")
	assert.True(t, ok)
	assert.Equal(t, "agent3:9090", addr)
}

func TestLoadRejectsThresholdExceedingAgents(t *testing.T) {
	share, err := curve.RandomScalar()
	require.NoError(t, err)
	v := cooperativeViper(t, share)
	v.Set("fingerprint-service.threshold", 6)

	_, err = config.FromViper(v)
	assert.Error(t, err)
}

func TestLoadRejectsDuplicateAgentID(t *testing.T) {
	share, err := curve.RandomScalar()
	require.NoError(t, err)
	v := cooperativeViper(t, share)
	v.Set("fingerprint-service.members", []map[string]string{
		{"agent_id": "1", "address": "agent1:9090"},
		{"agent_id": "1", "address": "agent1-dup:9090"},
		{"agent_id": "2", "address": "agent2:9090"},
	})

	_, err = config.FromViper(v)
	assert.Error(t, err)
}

func TestLoadRejectsMissingShard(t *testing.T) {
	share, err := curve.RandomScalar()
	require.NoError(t, err)
	v := cooperativeViper(t, share)
	v.Set("fingerprint-service.secret_shard", "")

	_, err = config.FromViper(v)
	assert.Error(t, err)
}

func TestLoadRejectsSelfNotInMembers(t *testing.T) {
	share, err := curve.RandomScalar()
	require.NoError(t, err)
	v := cooperativeViper(t, share)
	v.Set("fingerprint-service.agent_id", "99")

	_, err = config.FromViper(v)
	assert.Error(t, err)
}

func TestLoadRejectsMissingType(t *testing.T) {
	v := viper.New()
	_, err := config.FromViper(v)
	assert.Error(t, err)
}

func TestMemberIDsPreservesFileOrder(t *testing.T) {
	share, err := curve.RandomScalar()
	require.NoError(t, err)
	cfg, err := config.FromViper(cooperativeViper(t, share))
	require.NoError(t, err)

	ids := cfg.MemberIDs()
	require.Len(t, ids, 5)
	for i, want := range []string{"1", "2", "3", "4", "5"} {
		assert.Equal(t, want, string(ids[i]))
	}
}
