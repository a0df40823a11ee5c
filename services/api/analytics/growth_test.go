package analytics

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/seoul-urban-lab/transit-vitality/services/api/db"
)

func TestGrowthProjectionCompoundScenario(t *testing.T) {
	svc := newTestService(t, &fakeStore{
		hasHistory: true,
		yearlyHist: []db.YearStationVolume{
			{Year: "2022", StationName: "X", Volume: 100},
			{Year: "2023", StationName: "X", Volume: 150},
			{Year: "2024", StationName: "X", Volume: 200},
		},
	})

	out := svc.GrowthProjection(context.Background())
	require.Len(t, out, 1)
	rec := out[0]
	assert.Equal(t, "X", rec.StationName)
	// (200/100)^(1/2) - 1 = 41.42%
	assert.InDelta(t, 41.42, rec.CAGRPct, 0.01)
	assert.Equal(t, int64(200), rec.LastYearVolume)
	// 200 * sqrt(2)^6 = 1600
	assert.Equal(t, int64(1600), rec.ProjectedVolume)
	assert.Equal(t, 2030, rec.ProjectedYear)
	assert.Equal(t, TrendRising, rec.Trend)
}

func TestGrowthSkipsZeroStartYear(t *testing.T) {
	svc := newTestService(t, &fakeStore{
		hasHistory: true,
		yearlyHist: []db.YearStationVolume{
			{Year: "2023", StationName: "NEW", Volume: 500}, // no 2022 row
			{Year: "2022", StationName: "OLD", Volume: 100},
			{Year: "2023", StationName: "OLD", Volume: 90},
		},
	})

	out := svc.GrowthProjection(context.Background())
	require.Len(t, out, 1)
	assert.Equal(t, "OLD", out[0].StationName)
	assert.Equal(t, TrendFalling, out[0].Trend)
	assert.Negative(t, out[0].CAGRPct)
}

func TestGrowthRequiresTwoYears(t *testing.T) {
	svc := newTestService(t, &fakeStore{
		hasHistory: true,
		yearlyHist: []db.YearStationVolume{
			{Year: "2024", StationName: "X", Volume: 100},
			{Year: "2024", StationName: "Y", Volume: 200},
		},
	})

	out := svc.GrowthProjection(context.Background())
	assert.NotNil(t, out)
	assert.Empty(t, out)
}

func TestGrowthSortedByCAGRDescending(t *testing.T) {
	svc := newTestService(t, &fakeStore{
		hasHistory: true,
		yearlyHist: []db.YearStationVolume{
			{Year: "2022", StationName: "SLOW", Volume: 100},
			{Year: "2024", StationName: "SLOW", Volume: 110},
			{Year: "2022", StationName: "FAST", Volume: 100},
			{Year: "2024", StationName: "FAST", Volume: 400},
		},
	})

	out := svc.GrowthProjection(context.Background())
	require.Len(t, out, 2)
	assert.Equal(t, "FAST", out[0].StationName)
	assert.Equal(t, "SLOW", out[1].StationName)
}

func TestGrowthFallsBackToCurrentLog(t *testing.T) {
	svc := newTestService(t, &fakeStore{
		hasHistory: false,
		yearlyCurr: []db.YearStationVolume{
			{Year: "2024", StationName: "X", Volume: 100},
			{Year: "2025", StationName: "X", Volume: 200},
		},
	})

	out := svc.GrowthProjection(context.Background())
	require.Len(t, out, 1)
	assert.InDelta(t, 100.0, out[0].CAGRPct, 0.01)
	assert.Equal(t, 2031, out[0].ProjectedYear)
}

func TestGrowthAllSourcesExhausted(t *testing.T) {
	svc := newTestService(t, &fakeStore{
		hasHistory:    true,
		yearlyHistErr: errDown,
		yearlyCurrErr: errDown,
	})

	out := svc.GrowthProjection(context.Background())
	assert.NotNil(t, out)
	assert.Empty(t, out)
}

func TestGrowthHonorsConfiguredHorizon(t *testing.T) {
	store := &fakeStore{
		hasHistory: true,
		yearlyHist: []db.YearStationVolume{
			{Year: "2022", StationName: "X", Volume: 100},
			{Year: "2024", StationName: "X", Volume: 200},
		},
	}
	svc := New(store, nil, 2)

	out := svc.GrowthProjection(context.Background())
	require.Len(t, out, 1)
	assert.Equal(t, 2026, out[0].ProjectedYear)
	// Two observed years is one gap: cagr 100%, so 200 * 2^2 = 800.
	assert.InDelta(t, 100.0, out[0].CAGRPct, 0.01)
	assert.Equal(t, int64(800), out[0].ProjectedVolume)
}
