package territory

import (
	"sort"
)

// Assignment records who owns a tile & what pattern they show on it
type Assignment struct {
	OwnerID    string
	Pattern    string // image reference, may be empty
	Adjustment PatternAdjustment
}

// OwnerRecord is the persisted form of a sponsor's territory: every tile
// they own plus the pattern drawn over them.
type OwnerRecord struct {
	OwnerID    string
	Tiles      []int
	Pattern    string
	Adjustment PatternAdjustment
}

// Assignments holds tiles already committed to other owners.
// It's read only to the editor & replaced wholesale when data is reloaded.
type Assignments struct {
	byTile map[int]Assignment
}

// NewAssignments returns an empty set of assignments
func NewAssignments() *Assignments {
	return &Assignments{byTile: map[int]Assignment{}}
}

// SetAssigned replaces every assignment with the given ones.
// This never touches a live selection; it only gates later select/deselect
// attempts.
func (a *Assignments) SetAssigned(in map[int]Assignment) {
	a.byTile = make(map[int]Assignment, len(in))
	for i, as := range in {
		a.byTile[i] = as
	}
}

// IsAssigned returns if tile i is owned by someone
func (a *Assignments) IsAssigned(i int) bool {
	_, ok := a.byTile[i]
	return ok
}

// Lookup returns the assignment of tile i
func (a *Assignments) Lookup(i int) (Assignment, bool) {
	as, ok := a.byTile[i]
	return as, ok
}

// Len returns the number of assigned tiles
func (a *Assignments) Len() int {
	return len(a.byTile)
}

// Owners returns the distinct owner ids, sorted
func (a *Assignments) Owners() []string {
	seen := map[string]bool{}
	out := []string{}
	for _, as := range a.byTile {
		if seen[as.OwnerID] {
			continue
		}
		seen[as.OwnerID] = true
		out = append(out, as.OwnerID)
	}
	sort.Strings(out)
	return out
}

// FeedFromOwners flattens owner records into tile -> assignment, leaving out
// the owner currently being edited so their own territory never blocks them.
// If two owners claim a tile the record listed first wins.
func FeedFromOwners(records []OwnerRecord, editing string) map[int]Assignment {
	out := map[int]Assignment{}
	for _, r := range records {
		if r.OwnerID == editing {
			continue
		}
		for _, i := range r.Tiles {
			if _, ok := out[i]; ok {
				logger.Warn("tile claimed by more than one owner", "tile", i, "owner", r.OwnerID)
				continue
			}
			out[i] = Assignment{OwnerID: r.OwnerID, Pattern: r.Pattern, Adjustment: r.Adjustment}
		}
	}
	return out
}
