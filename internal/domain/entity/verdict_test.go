package entity

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRouterVerdict_Score_MissingLabel(t *testing.T) {
	v := RouterVerdict{Scores: map[string]float64{LabelPlant: 0.8}}
	require.Equal(t, 0.8, v.Score(LabelPlant))
	require.Equal(t, 0.0, v.Score(LabelHuman))
}

func TestRouterVerdict_PlantLike(t *testing.T) {
	v := RouterVerdict{Scores: map[string]float64{
		LabelPlant:          0.2,
		LabelUnhealthyPlant: 0.7,
		LabelCrop:           0.5,
	}}
	require.Equal(t, 0.7, v.PlantLike())

	empty := RouterVerdict{Scores: map[string]float64{}}
	require.Equal(t, 0.0, empty.PlantLike())
}
