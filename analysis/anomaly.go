package analysis

import (
	"errors"
	"fmt"

	"github.com/sarchlab/pagesim/replacement"
)

// ErrInvalidRange is returned when a frame range is empty, starts below 1 or
// spans more than MaxCurveLength frame counts.
var ErrInvalidRange = errors.New("invalid frame range")

// MaxCurveLength is the largest number of frame counts a fault curve covers.
const MaxCurveLength = 512

// A CurvePoint is the fault count of a policy at one frame count.
type CurvePoint struct {
	Frames int `json:"frames"`
	Faults int `json:"faults"`
}

// An Anomaly marks a frame count that faults more often than the frame count
// right below it (Bélády's anomaly).
type Anomaly struct {
	Frames         int `json:"frames"`
	Faults         int `json:"faults"`
	PreviousFrames int `json:"previous_frames"`
	PreviousFaults int `json:"previous_faults"`
}

// FaultCurve simulates policy for every frame count in [minFrames,
// maxFrames] and reports the number of faults at each.
func FaultCurve(
	policy replacement.Policy,
	refs []int,
	minFrames, maxFrames int,
) ([]CurvePoint, error) {
	if minFrames < 1 || maxFrames < minFrames {
		return nil, fmt.Errorf("%w: [%d, %d]",
			ErrInvalidRange, minFrames, maxFrames)
	}

	if maxFrames-minFrames >= MaxCurveLength {
		return nil, fmt.Errorf("%w: [%d, %d] covers more than %d frame counts",
			ErrInvalidRange, minFrames, maxFrames, MaxCurveLength)
	}

	n := maxFrames - minFrames + 1

	curve := make([]CurvePoint, 0, n)
	for i := range n {
		frames := minFrames + i

		r, err := replacement.Simulate(policy, refs, frames)
		if err != nil {
			return nil, err
		}

		curve = append(curve, CurvePoint{Frames: frames, Faults: r.Faults})
	}

	return curve, nil
}

// FindAnomalies returns the points of curve where the fault count rises
// although more frames are available. The curve must be ordered by frame
// count.
func FindAnomalies(curve []CurvePoint) []Anomaly {
	anomalies := []Anomaly{}
	for i := 1; i < len(curve); i++ {
		prev, cur := curve[i-1], curve[i]
		if cur.Faults > prev.Faults {
			anomalies = append(anomalies, Anomaly{
				Frames:         cur.Frames,
				Faults:         cur.Faults,
				PreviousFrames: prev.Frames,
				PreviousFaults: prev.Faults,
			})
		}
	}

	return anomalies
}

// DetectAnomalies combines FaultCurve and FindAnomalies.
func DetectAnomalies(
	policy replacement.Policy,
	refs []int,
	minFrames, maxFrames int,
) ([]CurvePoint, []Anomaly, error) {
	curve, err := FaultCurve(policy, refs, minFrames, maxFrames)
	if err != nil {
		return nil, nil, err
	}

	return curve, FindAnomalies(curve), nil
}
