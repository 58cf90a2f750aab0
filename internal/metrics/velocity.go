package metrics

import (
	"sort"
	"time"
)

// VelocityPoint is one sprint's measured velocity: the sum of story
// points on its done tickets.
type VelocityPoint struct {
	SprintID   string
	SprintName string
	Velocity   float64
	StartDate  time.Time
	EndDate    time.Time
}

// Prediction scenario multipliers over the historical average.
const (
	conservativeFactor = 0.8
	realisticFactor    = 0.9
	optimisticFactor   = 1.1
)

// highConfidenceSamples is the minimum number of measured sprints for a
// "high" confidence label.
const highConfidenceSamples = 5

// VelocityPrediction holds next-sprint scenarios derived from history.
type VelocityPrediction struct {
	Conservative int
	Realistic    int
	Optimistic   int

	// Average is the mean of positive velocities, rounded to one decimal.
	Average    float64
	Confidence string
}

// SortVelocityPoints orders points chronologically, oldest first. The
// per-sprint queries may complete in any order; display and prediction
// both want most-recent-last.
func SortVelocityPoints(points []VelocityPoint) {
	sort.SliceStable(points, func(i, j int) bool {
		if points[i].StartDate.Equal(points[j].StartDate) {
			return points[i].SprintID < points[j].SprintID
		}
		return points[i].StartDate.Before(points[j].StartDate)
	})
}

// PredictVelocity derives next-sprint scenarios from measured history.
// Sprints with zero velocity are excluded as mis-tracked noise rather
// than treated as a true zero signal. When nothing positive remains,
// ok is false — the "no velocity data" terminal result, not an error.
func PredictVelocity(points []VelocityPoint) (VelocityPrediction, bool) {
	var sum float64
	var n int
	for _, p := range points {
		if p.Velocity > 0 {
			sum += p.Velocity
			n++
		}
	}
	if n == 0 {
		return VelocityPrediction{}, false
	}

	avg := sum / float64(n)
	pred := VelocityPrediction{
		Conservative: int(avg * conservativeFactor),
		Realistic:    int(avg * realisticFactor),
		Optimistic:   int(avg * optimisticFactor),
		Average:      round1(avg),
		Confidence:   "medium",
	}
	if n >= highConfidenceSamples {
		pred.Confidence = "high"
	}
	return pred, true
}
