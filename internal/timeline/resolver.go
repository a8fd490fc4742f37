package timeline

import "sort"

// Resolution locates a query time within a keyframe list. Prev is the
// latest keyframe at or before the query, Next the earliest strictly
// after it. Both nil means the list was empty and the caller should
// fall back to static properties.
type Resolution struct {
	Prev     *Keyframe
	Next     *Keyframe
	Progress float64 // position inside [Prev.Time, Next.Time], 0..1
}

// Resolve finds the bounding keyframe pair for t. The list is assumed
// sorted ascending by time; if it is not, a sorted copy is searched so
// the caller's slice is never reordered behind its back.
func Resolve(keyframes []Keyframe, t float64) Resolution {
	if len(keyframes) == 0 {
		return Resolution{}
	}

	kfs := keyframes
	if !sort.SliceIsSorted(kfs, func(i, j int) bool { return kfs[i].Time < kfs[j].Time }) {
		kfs = make([]Keyframe, len(keyframes))
		copy(kfs, keyframes)
		sort.Slice(kfs, func(i, j int) bool { return kfs[i].Time < kfs[j].Time })
	}

	// First keyframe strictly after t.
	idx := sort.Search(len(kfs), func(i int) bool { return kfs[i].Time > t })

	var res Resolution
	if idx > 0 {
		res.Prev = &kfs[idx-1]
	}
	if idx < len(kfs) {
		res.Next = &kfs[idx]
	}

	if res.Prev != nil && res.Next != nil {
		span := res.Next.Time - res.Prev.Time
		if span <= 0 {
			// Duplicate times should not survive track edits, but a
			// zero span must snap to Next rather than divide to NaN.
			res.Progress = 1
		} else {
			res.Progress = (t - res.Prev.Time) / span
		}
	}

	return res
}
