package acquisition

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSolicitation(t *testing.T) *Solicitation {
	t.Helper()
	sol, err := NewSolicitation("SOL-26-011", "Network switch procurement", uuid.New(), "cowens")
	require.NoError(t, err)
	return sol
}

func TestSolicitationAdvance(t *testing.T) {
	t.Run("single step forward allowed", func(t *testing.T) {
		sol := newTestSolicitation(t)
		require.NoError(t, sol.Advance(SolStatusMarketResearch, "cowens"))
		assert.Equal(t, SolStatusMarketResearch, sol.Status)
		assert.Equal(t, "ADVANCED", sol.AuditLog.Last().Action)
	})

	t.Run("skipping a phase rejected", func(t *testing.T) {
		sol := newTestSolicitation(t)
		err := sol.Advance(SolStatusActiveSolicitation, "cowens")
		require.Error(t, err)
		assert.Equal(t, SolStatusRequirementRefinement, sol.Status)
	})

	t.Run("moving backwards rejected", func(t *testing.T) {
		sol := newTestSolicitation(t)
		require.NoError(t, sol.Advance(SolStatusMarketResearch, "cowens"))
		assert.Error(t, sol.Advance(SolStatusRequirementRefinement, "cowens"))
	})

	t.Run("unknown phase rejected", func(t *testing.T) {
		sol := newTestSolicitation(t)
		assert.Error(t, sol.Advance(SolicitationStatus("PAUSED"), "cowens"))
	})

	t.Run("awarded is terminal", func(t *testing.T) {
		sol := newTestSolicitation(t)
		for _, phase := range solicitationPhases[1:] {
			require.NoError(t, sol.Advance(phase, "cowens"))
		}
		assert.Equal(t, SolStatusAwarded, sol.Status)
		assert.False(t, sol.Status.CanTransitionTo(SolStatusReadyForAward))
	})

	t.Run("advance raises event", func(t *testing.T) {
		sol := newTestSolicitation(t)
		sol.ClearDomainEvents()
		require.NoError(t, sol.Advance(SolStatusMarketResearch, "cowens"))
		events := sol.GetDomainEvents()
		require.Len(t, events, 1)
		assert.Equal(t, EventTypeSolicitationAdvanced, events[0].EventType())
	})
}

func TestSolicitationAddQuote(t *testing.T) {
	quote := NewVendorQuote("Acme Networks", decimal.NewFromInt(82000), "expedited delivery")

	t.Run("quotes accepted while active", func(t *testing.T) {
		sol := newTestSolicitation(t)
		require.NoError(t, sol.Advance(SolStatusMarketResearch, "cowens"))
		require.NoError(t, sol.Advance(SolStatusActiveSolicitation, "cowens"))
		require.NoError(t, sol.AddQuote(quote, "cowens"))
		assert.Len(t, sol.Quotes, 1)
	})

	t.Run("quotes rejected before solicitation opens", func(t *testing.T) {
		sol := newTestSolicitation(t)
		assert.Error(t, sol.AddQuote(quote, "cowens"))
	})

	t.Run("invalid quote rejected", func(t *testing.T) {
		sol := newTestSolicitation(t)
		bad := NewVendorQuote("", decimal.NewFromInt(100), "")
		assert.Error(t, sol.AddQuote(bad, "cowens"))
	})
}
