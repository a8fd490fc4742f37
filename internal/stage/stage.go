// Package stage owns the mutable editor state the engine reads: the
// element collection, the cached timeline duration, and the session
// binding exactly one time driver to the shared position.
package stage

import (
	"errors"
	"sync"

	"github.com/zinecanvas/engine/internal/timeline"
)

var (
	ErrElementNotFound = errors.New("element not found")
	ErrDuplicateID     = errors.New("element id already on stage")
	ErrInvalidWindow   = errors.New("exit point must be after entry point")
)

// Stage is the element collection plus the derived timeline duration.
// All mutations go through its setters; the duration cache is
// invalidated on timeline-affecting edits only, never on time updates,
// so high-frequency scroll streams do not trigger recomputation.
type Stage struct {
	mu       sync.RWMutex
	elements []*timeline.Element
	byID     map[string]*timeline.Element
	duration float64
	dirty    bool
}

// New creates an empty stage.
func New() *Stage {
	return &Stage{
		byID:  make(map[string]*timeline.Element),
		dirty: true,
	}
}

// Add puts an element on the stage.
func (s *Stage) Add(el *timeline.Element) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.byID[el.ID]; ok {
		return ErrDuplicateID
	}
	s.elements = append(s.elements, el)
	s.byID[el.ID] = el
	s.dirty = true
	return nil
}

// Remove deletes an element and its timeline data with it.
func (s *Stage) Remove(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.byID[id]; !ok {
		return ErrElementNotFound
	}
	delete(s.byID, id)
	for i, el := range s.elements {
		if el.ID == id {
			s.elements = append(s.elements[:i], s.elements[i+1:]...)
			break
		}
	}
	s.dirty = true
	return nil
}

// Element looks up an element by id.
func (s *Stage) Element(id string) (*timeline.Element, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	el, ok := s.byID[id]
	return el, ok
}

// Elements returns the elements in stacking order. The slice is a
// copy; the elements are shared.
func (s *Stage) Elements() []*timeline.Element {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*timeline.Element, len(s.elements))
	copy(out, s.elements)
	return out
}

// Duration returns the derived timeline length, recomputing it only
// when element timeline data changed since the last call.
func (s *Stage) Duration() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.dirty {
		s.duration = timeline.TotalDuration(s.elements)
		s.dirty = false
	}
	return s.duration
}

// SetKeyframe records a keyframe for an element, creating its timeline
// data lazily at the given current position when this is the first
// timeline edit.
func (s *Stage) SetKeyframe(id string, kf timeline.Keyframe, now float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	el, ok := s.byID[id]
	if !ok {
		return ErrElementNotFound
	}
	if el.Timeline == nil {
		el.Timeline = timeline.NewTimelineData(now)
	}
	el.Timeline.SetKeyframe(kf)
	s.dirty = true
	return nil
}

// RemoveKeyframe deletes an element's keyframe near t.
func (s *Stage) RemoveKeyframe(id string, t float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	el, ok := s.byID[id]
	if !ok {
		return ErrElementNotFound
	}
	if el.Timeline == nil || !el.Timeline.RemoveKeyframe(t) {
		return ErrElementNotFound
	}
	s.dirty = true
	return nil
}

// SetWindow sets an element's entry and exit points, creating timeline
// data lazily. A non-nil exit at or before the entry is rejected
// rather than stored, since such a window would make visibility
// degenerate.
func (s *Stage) SetWindow(id string, entry float64, exit *float64, now float64) error {
	if exit != nil && *exit <= entry {
		return ErrInvalidWindow
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	el, ok := s.byID[id]
	if !ok {
		return ErrElementNotFound
	}
	if el.Timeline == nil {
		el.Timeline = timeline.NewTimelineData(now)
	}
	el.Timeline.EntryPoint = entry
	el.Timeline.ExitPoint = exit
	s.dirty = true
	return nil
}

// SetPersist flips an element's persist flag, creating timeline data
// lazily.
func (s *Stage) SetPersist(id string, persist bool, now float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	el, ok := s.byID[id]
	if !ok {
		return ErrElementNotFound
	}
	if el.Timeline == nil {
		el.Timeline = timeline.NewTimelineData(now)
	}
	el.Timeline.Persist = persist
	return nil
}

// ElementState pairs an element with its evaluation at some instant.
type ElementState struct {
	Element *timeline.Element
	timeline.Evaluation
}

// EvaluateAll evaluates every element at t in stacking order. Hidden
// elements are included with Visible false so callers can distinguish
// "hidden" from "absent".
func (s *Stage) EvaluateAll(t float64) []ElementState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]ElementState, 0, len(s.elements))
	for _, el := range s.elements {
		out = append(out, ElementState{Element: el, Evaluation: timeline.Evaluate(el, t)})
	}
	return out
}
