package inventory

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"evalgo.org/eqinv/models"
)

func populated(t *testing.T) *Registry {
	t.Helper()
	reg := New()
	for _, e := range []models.Equipment{
		router("10.0.0.1", 50, models.StateOn),
		server("10.0.0.2", 300),
		router("10.0.0.3", 70, models.StateOff),
		server("10.0.0.4", 300),
		router("10.0.0.5", 300, models.StateOn),
	} {
		_, err := reg.Register(e)
		require.NoError(t, err)
	}
	return reg
}

func TestCountByKind(t *testing.T) {
	reg := populated(t)
	assert.Equal(t, []KindCount{
		{Kind: models.KindRouter, Count: 3},
		{Kind: models.KindServer, Count: 2},
	}, reg.CountByKind())

	assert.Empty(t, New().CountByKind())
}

func TestAverageConsumptionByKind(t *testing.T) {
	reg := populated(t)
	avg := reg.AverageConsumptionByKind()
	require.Len(t, avg, 2)
	assert.Equal(t, models.KindRouter, avg[0].Kind)
	assert.InDelta(t, 140.0, avg[0].AverageWatts, 1e-9)
	assert.Equal(t, models.KindServer, avg[1].Kind)
	assert.InDelta(t, 300.0, avg[1].AverageWatts, 1e-9)
}

func TestCountByState(t *testing.T) {
	reg := populated(t)
	assert.Equal(t, []StateCount{
		{State: models.StateOn, Count: 2},
		{State: models.StateOff, Count: 3},
	}, reg.CountByState())
}

func TestTop3ByConsumption(t *testing.T) {
	reg := populated(t)

	top := reg.Top3ByConsumption()
	require.Len(t, top, 3)
	// three records tie at 300 W; insertion order decides
	assert.Equal(t, "10.0.0.2", top[0].IP)
	assert.Equal(t, "10.0.0.4", top[1].IP)
	assert.Equal(t, "10.0.0.5", top[2].IP)

	for i := 1; i < len(top); i++ {
		assert.GreaterOrEqual(t, top[i-1].EnergyWatts, top[i].EnergyWatts)
	}
}

func TestTopByConsumptionFewerRecords(t *testing.T) {
	reg := New()
	assert.Empty(t, reg.Top3ByConsumption())

	_, err := reg.Register(router("10.0.0.1", 10, models.StateOn))
	require.NoError(t, err)
	_, err = reg.Register(router("10.0.0.2", 20, models.StateOn))
	require.NoError(t, err)

	top := reg.Top3ByConsumption()
	require.Len(t, top, 2)
	assert.Equal(t, "10.0.0.2", top[0].IP)
	assert.Nil(t, reg.TopByConsumption(0))
}

func TestSummary(t *testing.T) {
	s := populated(t).Summary()
	assert.Equal(t, 5, s.Total)
	assert.Len(t, s.ByKind, 2)
	assert.Len(t, s.AverageByKind, 2)
	assert.Len(t, s.ByState, 2)
	assert.Len(t, s.TopByConsumption, 3)
}
