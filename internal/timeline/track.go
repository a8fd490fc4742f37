package timeline

import (
	"math"
	"sort"
)

const (
	// Keyframes closer together than this replace each other instead
	// of stacking as near-duplicates.
	replaceEpsilon = 0.1

	// A fresh timeline's exit point lands this far after its entry.
	defaultWindow = 30.0
)

// NewTimelineData creates timeline data for an element that is first
// animated at the given position: entry at that position, exit a
// default window later.
func NewTimelineData(at float64) *TimelineData {
	exit := at + defaultWindow
	return &TimelineData{EntryPoint: at, ExitPoint: &exit}
}

// SetKeyframe inserts a keyframe, replacing any existing keyframe
// within replaceEpsilon of its time so the per-element uniqueness of
// keyframe times holds, and keeps the list sorted.
func (td *TimelineData) SetKeyframe(kf Keyframe) {
	for i := range td.Keyframes {
		if math.Abs(td.Keyframes[i].Time-kf.Time) < replaceEpsilon {
			td.Keyframes[i] = kf
			td.sortKeyframes()
			return
		}
	}
	td.Keyframes = append(td.Keyframes, kf)
	td.sortKeyframes()
}

// RemoveKeyframe deletes the keyframe within replaceEpsilon of t and
// reports whether one was found.
func (td *TimelineData) RemoveKeyframe(t float64) bool {
	for i := range td.Keyframes {
		if math.Abs(td.Keyframes[i].Time-t) < replaceEpsilon {
			td.Keyframes = append(td.Keyframes[:i], td.Keyframes[i+1:]...)
			return true
		}
	}
	return false
}

// LastKeyframeTime returns the greatest keyframe time, or 0 when the
// track is empty.
func (td *TimelineData) LastKeyframeTime() float64 {
	last := 0.0
	for _, kf := range td.Keyframes {
		if kf.Time > last {
			last = kf.Time
		}
	}
	return last
}

func (td *TimelineData) sortKeyframes() {
	sort.Slice(td.Keyframes, func(i, j int) bool {
		return td.Keyframes[i].Time < td.Keyframes[j].Time
	})
}
