package analytics

import (
	"context"
	"fmt"

	"github.com/seoul-urban-lab/transit-vitality/services/api/station"
)

// StationBasic is the headline block of a station detail.
type StationBasic struct {
	StationName string `json:"station_name"`
	TotalVol    int64  `json:"total_vol"`
	SeniorVol   int64  `json:"senior_vol"`
}

// HourVolumeRecord is one hour of a station's elderly pattern.
type HourVolumeRecord struct {
	Hour   int   `json:"hour"`
	Volume int64 `json:"volume"`
}

// DayTypeRecord is a weekday/weekend elderly volume split.
type DayTypeRecord struct {
	DayType string `json:"day_type"`
	Volume  int64  `json:"volume"`
}

// StationDetail is the full single-station view.
type StationDetail struct {
	Basic   StationBasic       `json:"basic"`
	Hourly  []HourVolumeRecord `json:"hourly"`
	DayType []DayTypeRecord    `json:"day_type"`
}

// StationDetail resolves one station by code, accepting padded and unpadded
// forms interchangeably. Returns ErrStationNotFound when the normalized code
// matches no traffic rows and ErrStoreUnavailable when any underlying query
// fails. This is the one routine that surfaces errors, so callers can tell
// "no such station" from "store is down".
func (s *Service) StationDetail(ctx context.Context, code string) (*StationDetail, error) {
	norm := station.Normalize(code)
	if norm == "" {
		return nil, ErrStationNotFound
	}

	basic, err := s.store.StationBasic(ctx, norm)
	if err != nil {
		s.warn("station-detail", err)
		return nil, fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
	}
	if basic == nil {
		return nil, fmt.Errorf("%w: %s", ErrStationNotFound, norm)
	}

	hourly, err := s.store.StationHourly(ctx, norm)
	if err != nil {
		s.warn("station-detail", err)
		return nil, fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
	}

	dayType, err := s.store.StationDayType(ctx, norm)
	if err != nil {
		s.warn("station-detail", err)
		return nil, fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
	}

	detail := &StationDetail{
		Basic: StationBasic{
			StationName: basic.StationName,
			TotalVol:    basic.TotalVol,
			SeniorVol:   basic.SeniorVol,
		},
		Hourly:  make([]HourVolumeRecord, 0, len(hourly)),
		DayType: make([]DayTypeRecord, 0, len(dayType)),
	}
	for _, h := range hourly {
		detail.Hourly = append(detail.Hourly, HourVolumeRecord{Hour: h.Hour, Volume: h.Volume})
	}
	for _, d := range dayType {
		detail.DayType = append(detail.DayType, DayTypeRecord{DayType: d.DayType, Volume: d.Volume})
	}
	return detail, nil
}

// StationListing is one distinct (station, line) pair with traffic.
type StationListing struct {
	StationName string `json:"station_name"`
	LineName    string `json:"line_name"`
	StationCode string `json:"station_code"`
}

// Stations lists the distinct stations that actually have traffic rows.
func (s *Service) Stations(ctx context.Context) []StationListing {
	rows, err := s.store.StationsWithTraffic(ctx)
	if err != nil {
		s.warn("stations", err)
		return []StationListing{}
	}

	out := make([]StationListing, 0, len(rows))
	for _, r := range rows {
		out = append(out, StationListing{
			StationName: r.StationName,
			LineName:    r.LineName,
			StationCode: r.StationCode,
		})
	}
	return out
}
