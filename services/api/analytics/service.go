// Package analytics computes the derived ridership indicators served by the
// API: status counts, the vitality index, growth projections, trend series,
// the timelapse and clustering views.
//
// Every routine is stateless given the store contents and absorbs its own
// failures: a missing table or a failed query degrades to the routine's
// documented empty or zeroed shape instead of propagating. A dashboard
// showing "no data" beats a dashboard that errors out.
package analytics

import (
	"context"
	"errors"
	"log/slog"

	"github.com/seoul-urban-lab/transit-vitality/services/api/db"
)

// Store is the query surface the routines run against. *db.Store satisfies
// it; tests inject fixtures.
type Store interface {
	HasHistory(ctx context.Context) (bool, error)
	CountCurrent(ctx context.Context) (int64, error)
	CountHistory(ctx context.Context) (int64, error)
	CountMeta(ctx context.Context) (int64, error)

	VitalityAggregates(ctx context.Context) ([]db.VitalityRow, error)
	YearlyElderlyHistory(ctx context.Context) ([]db.YearStationVolume, error)
	YearlyElderlyCurrent(ctx context.Context) ([]db.YearStationVolume, error)
	RhythmHistory(ctx context.Context) ([]db.YearHourVolume, error)
	RhythmCurrent(ctx context.Context) ([]db.YearHourVolume, error)
	DaytimeRankHistory(ctx context.Context) ([]db.YearStationVolume, error)
	DaytimeRankCurrent(ctx context.Context) ([]db.YearStationVolume, error)
	StationCoords(ctx context.Context) ([]db.StationCoord, error)
	TimelapseRows(ctx context.Context) ([]db.HourStationVolume, error)
	ClusterFeatures(ctx context.Context) ([]db.ClusterFeatureRow, error)

	StationsWithTraffic(ctx context.Context) ([]db.StationInfo, error)
	StationBasic(ctx context.Context, code string) (*db.StationBasic, error)
	StationHourly(ctx context.Context, code string) ([]db.HourVolume, error)
	StationDayType(ctx context.Context, code string) ([]db.DayTypeVolume, error)
}

// CurrentTag labels live-log rows in series that mix historical years with
// the current log.
const CurrentTag = "Current"

// DefaultHorizonYears is how far past the last observed year the growth
// routine projects when no horizon is configured.
const DefaultHorizonYears = 6

// ErrStationNotFound reports that a single-station lookup matched no rows
// after code normalization. Distinct from a store failure so callers can
// tell "no data for this station" from "query failed".
var ErrStationNotFound = errors.New("analytics: station not found")

// ErrStoreUnavailable reports that a required query failed underneath a
// single-station lookup.
var ErrStoreUnavailable = errors.New("analytics: store unavailable")

// Service runs the metric routines against an injected store.
type Service struct {
	store        Store
	logger       *slog.Logger
	horizonYears int
}

// New constructs a Service. A non-positive horizon falls back to
// DefaultHorizonYears.
func New(store Store, logger *slog.Logger, horizonYears int) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	if horizonYears <= 0 {
		horizonYears = DefaultHorizonYears
	}
	return &Service{store: store, logger: logger, horizonYears: horizonYears}
}

// warn records an absorbed failure. Absorption is the degradation policy;
// the log line is the only trace the failure leaves.
func (s *Service) warn(routine string, err error) {
	s.logger.Warn("query degraded to empty result", "routine", routine, "error", err)
}

// historyRows fetches from the optional history table behind an existence
// probe. Returns false when the table is absent or the probe failed.
func historyRows[T any](ctx context.Context, s *Service, routine string,
	fetch func(context.Context) ([]T, error)) ([]T, bool) {

	ok, err := s.store.HasHistory(ctx)
	if err != nil {
		s.warn(routine, err)
		return nil, false
	}
	if !ok {
		return nil, false
	}
	rows, err := fetch(ctx)
	if err != nil {
		s.warn(routine, err)
		return nil, false
	}
	return rows, true
}
