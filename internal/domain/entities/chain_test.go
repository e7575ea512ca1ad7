package entities

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func validChain() *Chain {
	return &Chain{
		ID:               uuid.New(),
		Name:             "Ethereum",
		ChainID:          "ethereum",
		Network:          ChainNetworkMainnet,
		Status:           ChainStatusActive,
		Type:             ChainTypeEVM,
		ReliabilityScore: 100,
	}
}

func TestChainValidate(t *testing.T) {
	require.NoError(t, validChain().Validate())

	t.Run("missing name", func(t *testing.T) {
		c := validChain()
		c.Name = ""
		require.Error(t, c.Validate())
	})

	t.Run("missing chain id", func(t *testing.T) {
		c := validChain()
		c.ChainID = ""
		require.Error(t, c.Validate())
	})

	t.Run("unknown network", func(t *testing.T) {
		c := validChain()
		c.Network = "moonnet"
		require.Error(t, c.Validate())
	})

	t.Run("unknown status", func(t *testing.T) {
		c := validChain()
		c.Status = "degraded"
		require.Error(t, c.Validate())
	})

	t.Run("unknown type", func(t *testing.T) {
		c := validChain()
		c.Type = "quantum"
		require.Error(t, c.Validate())
	})

	t.Run("reliability out of range", func(t *testing.T) {
		c := validChain()
		c.ReliabilityScore = -0.1
		require.Error(t, c.Validate())

		c.ReliabilityScore = 100.1
		require.Error(t, c.Validate())

		c.ReliabilityScore = 0
		require.NoError(t, c.Validate())
	})

	t.Run("non-evm types", func(t *testing.T) {
		c := validChain()
		for _, typ := range []ChainType{ChainTypeSoroban, ChainTypeCosmos, ChainTypeOther} {
			c.Type = typ
			require.NoError(t, c.Validate())
		}
	})
}
