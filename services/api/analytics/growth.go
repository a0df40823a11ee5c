package analytics

import (
	"context"
	"math"
	"sort"
	"strconv"

	"github.com/seoul-urban-lab/transit-vitality/services/api/db"
)

// Trend labels for the growth projection.
const (
	TrendRising  = "RISING"
	TrendFalling = "FALLING"
)

// GrowthRecord is one station's compound-growth projection.
type GrowthRecord struct {
	StationName     string  `json:"station_name"`
	CAGRPct         float64 `json:"cagr_pct"`
	LastYearVolume  int64   `json:"volume_last_year"`
	ProjectedVolume int64   `json:"projected_volume"`
	ProjectedYear   int     `json:"projected_year"`
	Trend           string  `json:"trend"`
}

// GrowthProjection computes per-station CAGR over the observed years and
// projects the configured horizon past the last year. The history table is
// the preferred source; when it is absent the elderly-group rows of the live
// log substitute. Fewer than two distinct years yields an empty result.
func (s *Service) GrowthProjection(ctx context.Context) []GrowthRecord {
	rows, ok := historyRows(ctx, s, "prediction", s.store.YearlyElderlyHistory)
	if !ok {
		var err error
		rows, err = s.store.YearlyElderlyCurrent(ctx)
		if err != nil {
			s.warn("prediction", err)
			return []GrowthRecord{}
		}
	}
	return projectGrowth(rows, s.horizonYears)
}

// projectGrowth pivots (year, station) volumes, derives the compound annual
// growth rate from the first and last observed year, and projects forward.
// Stations with a zero first-year volume are skipped: their growth rate is
// undefined.
func projectGrowth(rows []db.YearStationVolume, horizonYears int) []GrowthRecord {
	byStation := make(map[string]map[string]int64)
	yearSet := make(map[string]struct{})
	for _, r := range rows {
		if byStation[r.StationName] == nil {
			byStation[r.StationName] = make(map[string]int64)
		}
		byStation[r.StationName][r.Year] += r.Volume
		yearSet[r.Year] = struct{}{}
	}

	years := make([]string, 0, len(yearSet))
	for y := range yearSet {
		years = append(years, y)
	}
	sort.Strings(years)
	if len(years) < 2 {
		return []GrowthRecord{}
	}

	startYear, endYear := years[0], years[len(years)-1]
	gaps := len(years) - 1
	if gaps < 1 {
		gaps = 1
	}

	projectedYear := 0
	if y, err := strconv.Atoi(endYear); err == nil {
		projectedYear = y + horizonYears
	}

	out := make([]GrowthRecord, 0, len(byStation))
	for name, byYear := range byStation {
		startVol := byYear[startYear]
		if startVol == 0 {
			continue
		}
		endVol := byYear[endYear]

		cagr := math.Pow(float64(endVol)/float64(startVol), 1/float64(gaps)) - 1
		projected := float64(endVol) * math.Pow(1+cagr, float64(horizonYears))

		trend := TrendFalling
		if cagr > 0 {
			trend = TrendRising
		}

		out = append(out, GrowthRecord{
			StationName:     name,
			CAGRPct:         round2(cagr * 100),
			LastYearVolume:  endVol,
			ProjectedVolume: int64(math.Round(projected)),
			ProjectedYear:   projectedYear,
			Trend:           trend,
		})
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].CAGRPct != out[j].CAGRPct {
			return out[i].CAGRPct > out[j].CAGRPct
		}
		return out[i].StationName < out[j].StationName
	})
	return out
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
