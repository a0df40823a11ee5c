package analytics

import (
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/seoul-urban-lab/transit-vitality/services/api/db"
)

var errDown = errors.New("connection refused")

// fakeStore satisfies Store with fixture data. Any nil-slice field paired
// with a nil error behaves like an empty table.
type fakeStore struct {
	hasHistory    bool
	hasHistoryErr error

	currentCount, historyCount, metaCount          int64
	currentCountErr, historyCountErr, metaCountErr error

	vitality    []db.VitalityRow
	vitalityErr error

	yearlyHist    []db.YearStationVolume
	yearlyHistErr error
	yearlyCurr    []db.YearStationVolume
	yearlyCurrErr error

	rhythmHist    []db.YearHourVolume
	rhythmHistErr error
	rhythmCurr    []db.YearHourVolume
	rhythmCurrErr error

	rankHist    []db.YearStationVolume
	rankHistErr error
	rankCurr    []db.YearStationVolume
	rankCurrErr error

	coords    []db.StationCoord
	coordsErr error

	timelapse    []db.HourStationVolume
	timelapseErr error

	clusterRows []db.ClusterFeatureRow
	clusterErr  error

	stations    []db.StationInfo
	stationsErr error

	basics     map[string]*db.StationBasic
	basicErr   error
	hourly     map[string][]db.HourVolume
	hourlyErr  error
	dayTypes   map[string][]db.DayTypeVolume
	dayTypeErr error
}

func (f *fakeStore) HasHistory(context.Context) (bool, error) { return f.hasHistory, f.hasHistoryErr }
func (f *fakeStore) CountCurrent(context.Context) (int64, error) {
	return f.currentCount, f.currentCountErr
}
func (f *fakeStore) CountHistory(context.Context) (int64, error) {
	return f.historyCount, f.historyCountErr
}
func (f *fakeStore) CountMeta(context.Context) (int64, error) { return f.metaCount, f.metaCountErr }

func (f *fakeStore) VitalityAggregates(context.Context) ([]db.VitalityRow, error) {
	return f.vitality, f.vitalityErr
}
func (f *fakeStore) YearlyElderlyHistory(context.Context) ([]db.YearStationVolume, error) {
	return f.yearlyHist, f.yearlyHistErr
}
func (f *fakeStore) YearlyElderlyCurrent(context.Context) ([]db.YearStationVolume, error) {
	return f.yearlyCurr, f.yearlyCurrErr
}
func (f *fakeStore) RhythmHistory(context.Context) ([]db.YearHourVolume, error) {
	return f.rhythmHist, f.rhythmHistErr
}
func (f *fakeStore) RhythmCurrent(context.Context) ([]db.YearHourVolume, error) {
	return f.rhythmCurr, f.rhythmCurrErr
}
func (f *fakeStore) DaytimeRankHistory(context.Context) ([]db.YearStationVolume, error) {
	return f.rankHist, f.rankHistErr
}
func (f *fakeStore) DaytimeRankCurrent(context.Context) ([]db.YearStationVolume, error) {
	return f.rankCurr, f.rankCurrErr
}
func (f *fakeStore) StationCoords(context.Context) ([]db.StationCoord, error) {
	return f.coords, f.coordsErr
}
func (f *fakeStore) TimelapseRows(context.Context) ([]db.HourStationVolume, error) {
	return f.timelapse, f.timelapseErr
}
func (f *fakeStore) ClusterFeatures(context.Context) ([]db.ClusterFeatureRow, error) {
	return f.clusterRows, f.clusterErr
}
func (f *fakeStore) StationsWithTraffic(context.Context) ([]db.StationInfo, error) {
	return f.stations, f.stationsErr
}
func (f *fakeStore) StationBasic(_ context.Context, code string) (*db.StationBasic, error) {
	if f.basicErr != nil {
		return nil, f.basicErr
	}
	return f.basics[code], nil
}
func (f *fakeStore) StationHourly(_ context.Context, code string) ([]db.HourVolume, error) {
	if f.hourlyErr != nil {
		return nil, f.hourlyErr
	}
	return f.hourly[code], nil
}
func (f *fakeStore) StationDayType(_ context.Context, code string) ([]db.DayTypeVolume, error) {
	if f.dayTypeErr != nil {
		return nil, f.dayTypeErr
	}
	return f.dayTypes[code], nil
}

func newTestService(t *testing.T, store Store) *Service {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(testWriter{t}, &slog.HandlerOptions{Level: slog.LevelError}))
	return New(store, logger, 0)
}

type testWriter struct{ t *testing.T }

func (w testWriter) Write(p []byte) (int, error) {
	w.t.Log(string(p))
	return len(p), nil
}
