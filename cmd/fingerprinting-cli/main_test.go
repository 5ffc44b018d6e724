package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateCommandEmitsSecretAndShares(t *testing.T) {
	threshold, agents = 3, 5
	var out bytes.Buffer
	rootCmd.SetOut(&out)

	err := runGenerate(rootCmd, nil)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 1+agents)
	assert.True(t, strings.HasPrefix(lines[0], "Random secret: "))
	for i := 1; i <= agents; i++ {
		assert.Contains(t, lines[i], "== share ")
	}
}

func TestGenerateCommandRejectsInvalidParameters(t *testing.T) {
	threshold, agents = 6, 5
	var out bytes.Buffer
	rootCmd.SetOut(&out)

	err := runGenerate(rootCmd, nil)
	assert.Error(t, err)
}
