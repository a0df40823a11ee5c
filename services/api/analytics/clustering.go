package analytics

import (
	"context"
	"sort"

	"github.com/seoul-urban-lab/transit-vitality/services/api/cluster"
	"github.com/seoul-urban-lab/transit-vitality/services/api/db"
)

// ClusterFeatureRecord is one station's day-part volume profile, the raw
// input to segment clustering.
type ClusterFeatureRecord struct {
	StationName string  `json:"station_name"`
	StationCode string  `json:"station_code"`
	Total       int64   `json:"total"`
	Morning     int64   `json:"morning"`
	Afternoon   int64   `json:"afternoon"`
	Evening     int64   `json:"evening"`
	Lat         float64 `json:"lat"`
	Lon         float64 `json:"lon"`
}

// ClusteringFeatures returns per-station elderly day-part volumes above the
// clustering noise floor, with one coordinate per station.
func (s *Service) ClusteringFeatures(ctx context.Context) []ClusterFeatureRecord {
	rows, err := s.store.ClusterFeatures(ctx)
	if err != nil {
		s.warn("clustering", err)
		return []ClusterFeatureRecord{}
	}
	out := featureRecords(rows)
	sort.SliceStable(out, func(i, j int) bool { return out[i].StationName < out[j].StationName })
	return out
}

// ClusterSegmentRecord is a clustered station: its features, engineered
// ratios, cluster index and the policy label of that cluster.
type ClusterSegmentRecord struct {
	ClusterFeatureRecord
	MorningRatio   float64 `json:"morning_ratio"`
	AfternoonRatio float64 `json:"afternoon_ratio"`
	Cluster        int     `json:"cluster"`
	Label          string  `json:"label"`
}

// ClusterSegments partitions the feature set into the three usage segments
// and labels each cluster by its mean day-part ratios. Fewer than three
// stations above the noise floor yields an empty result.
func (s *Service) ClusterSegments(ctx context.Context) []ClusterSegmentRecord {
	rows, err := s.store.ClusterFeatures(ctx)
	if err != nil {
		s.warn("clustering.segments", err)
		return []ClusterSegmentRecord{}
	}

	features := featureRecords(rows)
	points := make([]cluster.Point, len(features))
	for i, f := range features {
		m, a := cluster.Ratios(f.Morning, f.Afternoon, f.Total)
		points[i] = cluster.Point{MorningRatio: m, AfternoonRatio: a}
	}

	assignment, err := cluster.Assign(points)
	if err != nil {
		s.warn("clustering.segments", err)
		return []ClusterSegmentRecord{}
	}
	labels := cluster.Labels(points, assignment)

	out := make([]ClusterSegmentRecord, 0, len(features))
	for i, f := range features {
		out = append(out, ClusterSegmentRecord{
			ClusterFeatureRecord: f,
			MorningRatio:         points[i].MorningRatio,
			AfternoonRatio:       points[i].AfternoonRatio,
			Cluster:              assignment[i],
			Label:                labels[assignment[i]],
		})
	}

	sort.SliceStable(out, func(i, j int) bool { return out[i].StationName < out[j].StationName })
	return out
}

func featureRecords(rows []db.ClusterFeatureRow) []ClusterFeatureRecord {
	out := make([]ClusterFeatureRecord, 0, len(rows))
	for _, r := range rows {
		out = append(out, ClusterFeatureRecord{
			StationName: r.StationName,
			StationCode: r.StationCode,
			Total:       r.Total,
			Morning:     r.Morning,
			Afternoon:   r.Afternoon,
			Evening:     r.Evening,
			Lat:         r.Lat,
			Lon:         r.Lon,
		})
	}
	return out
}
