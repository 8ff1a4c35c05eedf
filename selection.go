package territory

import (
	"fmt"
	"sort"
)

// PaintMode is what a paint-drag gesture does to the tiles it passes over
type PaintMode int

const (
	PaintNone PaintMode = iota
	PaintAdd
	PaintRemove
)

func (m PaintMode) String() string {
	switch m {
	case PaintAdd:
		return "add"
	case PaintRemove:
		return "remove"
	}
	return "none"
}

// Selection is the live set of tiles an operator is building into a
// territory. Between any two calls it's either empty or a single connected
// region of the graph; every mutation is checked before it's applied.
//
// A Selection is not safe for concurrent use.
type Selection struct {
	graph     *Graph
	conflicts Conflicts
	members   map[int]bool
	listeners []func([]int)
	strict    bool

	// paint-drag gesture state
	mode    PaintMode
	last    int
	hasLast bool
}

// SelectionOption configures a Selection
type SelectionOption func(*Selection)

// WithConflicts sets where assigned-elsewhere tiles are looked up
func WithConflicts(c Conflicts) SelectionOption {
	return func(s *Selection) {
		s.conflicts = c
	}
}

// WithStrictInvariant makes a disconnected selection panic instead of being
// repaired. Meant for tests.
func WithStrictInvariant() SelectionOption {
	return func(s *Selection) {
		s.strict = true
	}
}

// noConflicts is used when no conflict source is configured
type noConflicts struct{}

func (noConflicts) IsAssigned(int) bool { return false }

// NewSelection returns an empty selection over the given graph
func NewSelection(g *Graph, opts ...SelectionOption) *Selection {
	s := &Selection{
		graph:     g,
		conflicts: noConflicts{},
		members:   map[int]bool{},
	}
	for _, o := range opts {
		o(s)
	}
	if s.conflicts == nil {
		s.conflicts = noConflicts{}
	}
	return s
}

// OnChange registers fn to be called with the full sorted selection after
// every mutation.
func (s *Selection) OnChange(fn func(indices []int)) {
	s.listeners = append(s.listeners, fn)
}

// Len returns the number of selected tiles
func (s *Selection) Len() int {
	return len(s.members)
}

// Contains returns if tile i is selected
func (s *Selection) Contains(i int) bool {
	return s.members[i]
}

// Indices returns the selected tiles, sorted low -> high
func (s *Selection) Indices() []int {
	return sortedKeys(s.members)
}

// Mode returns the mode of the active paint gesture (PaintNone if none)
func (s *Selection) Mode() PaintMode {
	return s.mode
}

// eligible returns if tile i may take part in a selection at all
func (s *Selection) eligible(i int) bool {
	return s.graph.Has(i) && !s.graph.Excluded(i) && !s.conflicts.IsAssigned(i)
}

// CanSelect returns if tile i could be added: it must be selectable at all
// & either the selection is empty or i touches a selected tile.
func (s *Selection) CanSelect(i int) bool {
	if !s.eligible(i) {
		return false
	}
	if len(s.members) == 0 {
		return true
	}
	for _, n := range s.graph.Neighbours(i) {
		if s.members[n] {
			return true
		}
	}
	return false
}

// CanDeselect returns if tile i could be removed without splitting the
// selection into more than one region.
func (s *Selection) CanDeselect(i int) bool {
	if !s.members[i] || s.conflicts.IsAssigned(i) {
		return false
	}
	if len(s.members) == 1 {
		return true
	}

	rest := make(map[int]bool, len(s.members)-1)
	for j := range s.members {
		if j != i {
			rest[j] = true
		}
	}
	return s.graph.Connected(rest)
}

// Toggle selects i if it can be selected, otherwise deselects it if it can
// be deselected. Anything else is a no-op.
func (s *Selection) Toggle(i int) {
	if s.members[i] {
		if s.CanDeselect(i) {
			s.remove(i)
		} else {
			logger.Debug("deselect rejected", "tile", i)
		}
		return
	}
	if s.CanSelect(i) {
		s.add(i)
	} else {
		logger.Debug("select rejected", "tile", i)
	}
}

// PaintBegin starts a paint-drag gesture on tile i. Starting on an
// unselected tile adds tiles, starting on a selected one removes them.
func (s *Selection) PaintBegin(i int) {
	s.PaintEnd()
	if s.members[i] {
		s.mode = PaintRemove
	} else {
		s.mode = PaintAdd
	}
	s.PaintTile(i)
}

// PaintTile applies the gesture's mode to tile i. Repeated events over the
// same tile are ignored, as are tiles that fail the usual checks.
func (s *Selection) PaintTile(i int) {
	if s.mode == PaintNone {
		return
	}
	if s.hasLast && s.last == i {
		return
	}
	s.last = i
	s.hasLast = true

	switch s.mode {
	case PaintAdd:
		if !s.members[i] && s.CanSelect(i) {
			s.add(i)
		}
	case PaintRemove:
		if s.CanDeselect(i) {
			s.remove(i)
		}
	}
}

// PaintEnd finishes the active paint gesture (if any)
func (s *Selection) PaintEnd() {
	s.mode = PaintNone
	s.hasLast = false
}

// SetAll replaces the selection with the given tiles, as when reloading a
// saved territory. The growth rule is not applied but unknown, excluded &
// assigned tiles are dropped. If what remains isn't connected only the
// largest region is kept.
func (s *Selection) SetAll(tiles []int) {
	s.PaintEnd()

	next := map[int]bool{}
	for _, i := range tiles {
		if s.eligible(i) {
			next[i] = true
		}
	}
	if dropped := len(tiles) - len(next); dropped > 0 {
		logger.Debug("dropped tiles from bulk load", "requested", len(tiles), "kept", len(next))
	}
	if !s.graph.Connected(next) {
		next = s.largest(next)
		logger.Warn("bulk loaded selection is not connected, keeping largest region", "kept", len(next))
	}

	if equalSets(s.members, next) {
		return
	}
	s.members = next
	s.notify()
}

// Clear empties the selection
func (s *Selection) Clear() {
	s.PaintEnd()
	if len(s.members) == 0 {
		return
	}
	s.members = map[int]bool{}
	s.notify()
}

// add i & announce it
func (s *Selection) add(i int) {
	s.members[i] = true
	s.check()
	s.notify()
}

// remove i & announce it
func (s *Selection) remove(i int) {
	delete(s.members, i)
	s.check()
	s.notify()
}

// check verifies the selection is still one region. Our pre-checks should
// make this impossible, so it's a bug if it ever fires.
func (s *Selection) check() {
	if s.graph.Connected(s.members) {
		return
	}
	if s.strict {
		panic(fmt.Sprintf("selection is disconnected: %v", s.graph.Components(s.members)))
	}
	s.members = s.largest(s.members)
	logger.Warn("selection became disconnected, kept largest region", "kept", len(s.members))
}

// largest returns the biggest connected region of `set`
func (s *Selection) largest(set map[int]bool) map[int]bool {
	comps := s.graph.Components(set)
	out := map[int]bool{}
	if len(comps) == 0 {
		return out
	}
	for _, i := range comps[0] {
		out[i] = true
	}
	return out
}

// notify tells every listener about the current selection
func (s *Selection) notify() {
	if len(s.listeners) == 0 {
		return
	}
	indices := s.Indices()
	for _, fn := range s.listeners {
		fn(append([]int{}, indices...))
	}
}

// equalSets returns if a & b hold the same members
func equalSets(a, b map[int]bool) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !b[i] {
			return false
		}
	}
	return true
}

// sortedCopy returns a sorted copy of in with duplicates removed
func sortedCopy(in []int) []int {
	out := append([]int{}, in...)
	sort.Ints(out)
	n := 0
	for i, v := range out {
		if i > 0 && v == out[n-1] {
			continue
		}
		out[n] = v
		n++
	}
	return out[:n]
}
