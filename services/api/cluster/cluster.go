// Package cluster partitions stations into k=3 day-part usage segments.
//
// The numeric work (quantile scaling, k-means) is delegated to gonum and
// muesli/kmeans; this package owns the feature engineering and the post-hoc
// labeling policy. Cluster indices coming out of k-means are arbitrary, so
// segments are named by a statistical property of each cluster, not by
// index: the cluster with the highest mean morning ratio is the AM type, the
// highest mean afternoon ratio among the rest is the PM type, and the
// remainder is the mixed type.
package cluster

import (
	"errors"
	"sort"

	"github.com/muesli/clusters"
	"github.com/muesli/kmeans"
	"gonum.org/v1/gonum/stat"
)

// K is the fixed number of usage segments.
const K = 3

// Segment labels, assigned by cluster-mean ordering.
const (
	LabelAM  = "Type A (AM)"
	LabelPM  = "Type B (PM)"
	LabelMix = "Type C (Mix)"
)

// ErrTooFewStations is returned when fewer than K stations survive the
// noise floor; a 3-way partition of fewer points is meaningless.
var ErrTooFewStations = errors.New("cluster: need at least 3 stations")

// Point is one station's engineered feature pair.
type Point struct {
	MorningRatio   float64
	AfternoonRatio float64
}

// Ratios converts raw day-part volumes into feature ratios. A zero total
// yields zero ratios rather than a division fault.
func Ratios(morning, afternoon, total int64) (morningRatio, afternoonRatio float64) {
	if total <= 0 {
		return 0, 0
	}
	return float64(morning) / float64(total), float64(afternoon) / float64(total)
}

// Assign scales the feature space to a uniform distribution and partitions
// the points into K clusters. The returned slice maps each input point to a
// cluster index in [0, K).
func Assign(points []Point) ([]int, error) {
	if len(points) < K {
		return nil, ErrTooFewStations
	}

	morning := scaleUniform(column(points, func(p Point) float64 { return p.MorningRatio }))
	afternoon := scaleUniform(column(points, func(p Point) float64 { return p.AfternoonRatio }))

	obs := make(clusters.Observations, len(points))
	for i := range points {
		obs[i] = clusters.Coordinates{morning[i], afternoon[i]}
	}

	km := kmeans.New()
	partition, err := km.Partition(obs, K)
	if err != nil {
		return nil, err
	}

	assignment := make([]int, len(points))
	for i := range points {
		assignment[i] = partition.Nearest(obs[i])
	}
	return assignment, nil
}

// Labels names each cluster by the mean feature ratios of its members,
// computed over the unscaled ratios. The result is indexed by cluster id.
// A tie on the ranking criterion resolves to the lower cluster index, and an
// empty cluster can never win a slot.
func Labels(points []Point, assignment []int) []string {
	type meanPair struct {
		morning   float64
		afternoon float64
		empty     bool
	}
	means := make([]meanPair, K)
	for c := 0; c < K; c++ {
		var ms, as []float64
		for i, a := range assignment {
			if a == c {
				ms = append(ms, points[i].MorningRatio)
				as = append(as, points[i].AfternoonRatio)
			}
		}
		if len(ms) == 0 {
			means[c] = meanPair{empty: true}
			continue
		}
		means[c] = meanPair{morning: stat.Mean(ms, nil), afternoon: stat.Mean(as, nil)}
	}

	amID := -1
	for c := 0; c < K; c++ {
		if means[c].empty {
			continue
		}
		if amID < 0 || means[c].morning > means[amID].morning {
			amID = c
		}
	}

	pmID := -1
	for c := 0; c < K; c++ {
		if c == amID || means[c].empty {
			continue
		}
		if pmID < 0 || means[c].afternoon > means[pmID].afternoon {
			pmID = c
		}
	}

	labels := make([]string, K)
	for c := 0; c < K; c++ {
		switch c {
		case amID:
			labels[c] = LabelAM
		case pmID:
			labels[c] = LabelPM
		default:
			labels[c] = LabelMix
		}
	}
	return labels
}

// scaleUniform maps values onto [0,1] by their empirical CDF, the same
// uniform quantile transform the feature space is scaled with before
// clustering. Constant input maps to all-ones.
func scaleUniform(vals []float64) []float64 {
	sorted := append([]float64(nil), vals...)
	sort.Float64s(sorted)

	out := make([]float64, len(vals))
	for i, v := range vals {
		out[i] = stat.CDF(v, stat.Empirical, sorted, nil)
	}
	return out
}

func column(points []Point, f func(Point) float64) []float64 {
	out := make([]float64, len(points))
	for i, p := range points {
		out[i] = f(p)
	}
	return out
}
