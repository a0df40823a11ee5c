package analytics

import (
	"context"
	"math"
	"sort"

	"github.com/seoul-urban-lab/transit-vitality/services/api/db"
)

// vitalityNoiseFloor drops stations whose total volume is at or below this
// value before scoring.
const vitalityNoiseFloor = 100

// Weights of the vitality composite. Policy constants, not tunables.
const (
	weightNormVol      = 0.5
	weightBalanceScore = 0.3
	weightSilverRatio  = 0.2
)

// VitalityRecord is one scored station of the vitality index.
type VitalityRecord struct {
	StationName   string  `json:"station_name"`
	StationCode   string  `json:"station_code"`
	Lat           float64 `json:"lat"`
	Lon           float64 `json:"lon"`
	TotalVol      int64   `json:"total_vol"`
	SeniorVol     int64   `json:"senior_vol"`
	MorningVol    int64   `json:"morning_vol"`
	EveningVol    int64   `json:"evening_vol"`
	NormVol       float64 `json:"norm_vol"`
	SilverRatio   float64 `json:"silver_ratio"`
	BalanceScore  float64 `json:"balance_score"`
	VitalityScore float64 `json:"vitality_score"`
}

// VitalityIndex scores each station's elderly-mobility vitality and returns
// the records sorted by descending score.
func (s *Service) VitalityIndex(ctx context.Context) []VitalityRecord {
	rows, err := s.store.VitalityAggregates(ctx)
	if err != nil {
		s.warn("vitality", err)
		return []VitalityRecord{}
	}
	return scoreVitality(rows)
}

// scoreVitality applies the vitality formulas to raw aggregates:
//
//	norm_vol      = senior_vol / max(senior_vol) * 100
//	silver_ratio  = senior_vol / total_vol * 100
//	balance_score = 100 - |morning - evening| / max(morning+evening, 1) * 100
//	vitality      = 0.5*norm_vol + 0.3*balance_score + 0.2*silver_ratio
//
// Zero denominators are substituted with 1 so a degenerate division can
// never fault.
func scoreVitality(rows []db.VitalityRow) []VitalityRecord {
	kept := make([]db.VitalityRow, 0, len(rows))
	for _, r := range rows {
		if r.TotalVol > vitalityNoiseFloor {
			kept = append(kept, r)
		}
	}
	if len(kept) == 0 {
		return []VitalityRecord{}
	}

	maxSenior := int64(0)
	for _, r := range kept {
		if r.SeniorVol > maxSenior {
			maxSenior = r.SeniorVol
		}
	}
	if maxSenior <= 0 {
		maxSenior = 1
	}

	out := make([]VitalityRecord, 0, len(kept))
	for _, r := range kept {
		normVol := float64(r.SeniorVol) / float64(maxSenior) * 100
		silverRatio := float64(r.SeniorVol) / float64(r.TotalVol) * 100

		denom := r.MorningVol + r.EveningVol
		if denom < 1 {
			denom = 1
		}
		balance := 100 - math.Abs(float64(r.MorningVol-r.EveningVol))/float64(denom)*100

		score := weightNormVol*normVol + weightBalanceScore*balance + weightSilverRatio*silverRatio

		out = append(out, VitalityRecord{
			StationName:   r.StationName,
			StationCode:   r.StationCode,
			Lat:           r.Lat,
			Lon:           r.Lon,
			TotalVol:      r.TotalVol,
			SeniorVol:     r.SeniorVol,
			MorningVol:    r.MorningVol,
			EveningVol:    r.EveningVol,
			NormVol:       sanitize(normVol),
			SilverRatio:   sanitize(silverRatio),
			BalanceScore:  sanitize(balance),
			VitalityScore: sanitize(score),
		})
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].VitalityScore != out[j].VitalityScore {
			return out[i].VitalityScore > out[j].VitalityScore
		}
		return out[i].StationName < out[j].StationName
	})
	return out
}

// sanitize coerces NaN and infinities to 0, matching the contract that
// missing values come back as zeros.
func sanitize(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}
