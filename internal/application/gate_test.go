package app

import (
	"testing"

	"github.com/stretchr/testify/require"

	"agrisight/internal/domain/entity"
)

func verdict(scores map[string]float64) entity.RouterVerdict {
	return entity.RouterVerdict{Scores: scores}
}

func TestGate_HumanRejected(t *testing.T) {
	d := Gate(verdict(map[string]float64{"human": 0.5, "plant": 0.9}))
	require.False(t, d.Accepted)
	require.Equal(t, ReasonHuman, d.Reason)
}

func TestGate_HumanCheckShortCircuits(t *testing.T) {
	// Высокая уверенность в растении не спасает фото человека.
	d := Gate(verdict(map[string]float64{"human": 0.41, "plant": 1.0, "crop": 1.0}))
	require.False(t, d.Accepted)
	require.Equal(t, ReasonHuman, d.Reason)
}

func TestGate_HumanAtThresholdPasses(t *testing.T) {
	d := Gate(verdict(map[string]float64{"human": 0.40, "plant": 0.9}))
	require.True(t, d.Accepted)
}

func TestGate_NoPlantRejected(t *testing.T) {
	d := Gate(verdict(map[string]float64{"human": 0.0, "plant": 0.2, "crop": 0.1, "unhealthy_plant": 0.3}))
	require.False(t, d.Accepted)
	require.Equal(t, ReasonNoPlant, d.Reason)
}

func TestGate_UnhealthyPlantCountsAsPlant(t *testing.T) {
	d := Gate(verdict(map[string]float64{"human": 0.1, "unhealthy_plant": 0.66}))
	require.True(t, d.Accepted)
}

func TestGate_MissingLabelsReject(t *testing.T) {
	d := Gate(verdict(map[string]float64{}))
	require.False(t, d.Accepted)
	require.Equal(t, ReasonNoPlant, d.Reason)
}

func TestGate_Accepted(t *testing.T) {
	d := Gate(verdict(map[string]float64{"human": 0.1, "plant": 0.9}))
	require.True(t, d.Accepted)
	require.Empty(t, d.Reason)
}
