package analytics

import (
	"context"
	"sort"

	"github.com/seoul-urban-lab/transit-vitality/services/api/db"
	"github.com/seoul-urban-lab/transit-vitality/services/api/station"
)

// RhythmRecord is one (year, hour) point of the hourly rhythm series.
type RhythmRecord struct {
	Year   string `json:"year"`
	Hour   int    `json:"hour"`
	Volume int64  `json:"volume"`
}

// HourlyRhythm returns hourly elderly volume per historical year plus the
// live log tagged "Current". Missing history degrades to the current-only
// series; a failing current query degrades to empty.
func (s *Service) HourlyRhythm(ctx context.Context) []RhythmRecord {
	out := make([]RhythmRecord, 0)

	if hist, ok := historyRows(ctx, s, "rhythm", s.store.RhythmHistory); ok {
		for _, r := range hist {
			out = append(out, RhythmRecord{Year: r.Year, Hour: r.Hour, Volume: r.Volume})
		}
	}

	curr, err := s.store.RhythmCurrent(ctx)
	if err != nil {
		s.warn("rhythm", err)
		return []RhythmRecord{}
	}
	for _, r := range curr {
		out = append(out, RhythmRecord{Year: CurrentTag, Hour: r.Hour, Volume: r.Volume})
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Year != out[j].Year {
			return yearLess(out[i].Year, out[j].Year)
		}
		return out[i].Hour < out[j].Hour
	})
	return out
}

// ActiveZoneRecord is one (year, station) point of the daytime active-zone
// ranking, with its per-year dense minimum rank and coordinate.
type ActiveZoneRecord struct {
	Year        string  `json:"year"`
	StationName string  `json:"station_name"`
	Volume      int64   `json:"volume"`
	Rank        int     `json:"rank"`
	Lat         float64 `json:"lat"`
	Lon         float64 `json:"lon"`
}

// ActiveZoneRanking returns daytime-window (10-16h) elderly volume per
// (year, station), ranked within each year. Station names are forced to the
// metadata suffix form on both sides before the coordinate join; stations
// with no resolvable coordinate are dropped.
func (s *Service) ActiveZoneRanking(ctx context.Context) []ActiveZoneRecord {
	combined := make([]db.YearStationVolume, 0)
	if hist, ok := historyRows(ctx, s, "active-zone", s.store.DaytimeRankHistory); ok {
		combined = append(combined, hist...)
	}

	curr, err := s.store.DaytimeRankCurrent(ctx)
	if err != nil {
		s.warn("active-zone", err)
		return []ActiveZoneRecord{}
	}
	combined = append(combined, curr...)

	coords, err := s.store.StationCoords(ctx)
	if err != nil {
		s.warn("active-zone", err)
		return []ActiveZoneRecord{}
	}

	return rankActiveZones(combined, coords)
}

// rankActiveZones suffixes names on both sides, regroups volumes by
// (year, name), joins one coordinate per name and assigns per-year ranks.
func rankActiveZones(volumes []db.YearStationVolume, coords []db.StationCoord) []ActiveZoneRecord {
	type key struct{ year, name string }
	grouped := make(map[key]int64)
	for _, v := range volumes {
		grouped[key{v.Year, station.EnsureSuffix(v.StationName)}] += v.Volume
	}

	coordByName := make(map[string]db.StationCoord)
	for _, c := range coords {
		name := station.EnsureSuffix(c.StationName)
		if _, seen := coordByName[name]; !seen {
			coordByName[name] = c
		}
	}

	out := make([]ActiveZoneRecord, 0, len(grouped))
	for k, vol := range grouped {
		c, ok := coordByName[k.name]
		if !ok {
			continue
		}
		out = append(out, ActiveZoneRecord{
			Year:        k.year,
			StationName: k.name,
			Volume:      vol,
			Lat:         c.Lat,
			Lon:         c.Lon,
		})
	}

	// Rank within each year, descending by volume, min tie-break.
	byYear := make(map[string][]int)
	for i, r := range out {
		byYear[r.Year] = append(byYear[r.Year], i)
	}
	for _, idxs := range byYear {
		vols := make([]int64, len(idxs))
		for i, idx := range idxs {
			vols[i] = out[idx].Volume
		}
		ranks := minRanks(vols)
		for i, idx := range idxs {
			out[idx].Rank = ranks[i]
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Year != out[j].Year {
			return yearLess(out[i].Year, out[j].Year)
		}
		if out[i].Rank != out[j].Rank {
			return out[i].Rank < out[j].Rank
		}
		return out[i].StationName < out[j].StationName
	})
	return out
}

// minRanks assigns competition ranks descending by volume: ties share the
// lowest rank, and the next distinct value skips past them, so volumes
// [100, 100, 50] rank [1, 1, 3].
func minRanks(volumes []int64) []int {
	ranks := make([]int, len(volumes))
	for i, v := range volumes {
		rank := 1
		for _, other := range volumes {
			if other > v {
				rank++
			}
		}
		ranks[i] = rank
	}
	return ranks
}

// yearLess orders year tags chronologically with "Current" last.
func yearLess(a, b string) bool {
	if a == CurrentTag {
		return false
	}
	if b == CurrentTag {
		return true
	}
	return a < b
}
