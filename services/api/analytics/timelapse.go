package analytics

import (
	"context"
	"sort"
)

// TimelapseRecord is one (hour, station) elderly volume with a coordinate,
// feeding the chrono/space map.
type TimelapseRecord struct {
	Hour        int     `json:"hour"`
	StationName string  `json:"station_name"`
	Lat         float64 `json:"lat"`
	Lon         float64 `json:"lon"`
	Volume      int64   `json:"volume"`
}

// Timelapse returns elderly-group volume per (hour, station) with one
// representative coordinate per station.
func (s *Service) Timelapse(ctx context.Context) []TimelapseRecord {
	rows, err := s.store.TimelapseRows(ctx)
	if err != nil {
		s.warn("timelapse", err)
		return []TimelapseRecord{}
	}

	out := make([]TimelapseRecord, 0, len(rows))
	for _, r := range rows {
		out = append(out, TimelapseRecord{
			Hour:        r.Hour,
			StationName: r.StationName,
			Lat:         r.Lat,
			Lon:         r.Lon,
			Volume:      r.Volume,
		})
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Hour != out[j].Hour {
			return out[i].Hour < out[j].Hour
		}
		return out[i].StationName < out[j].StationName
	})
	return out
}
