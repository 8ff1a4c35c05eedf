package territory

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAssignmentsReplacedWholesale(t *testing.T) {
	as := NewAssignments()
	as.SetAssigned(map[int]Assignment{1: {OwnerID: "a"}, 2: {OwnerID: "a"}})
	assert.True(t, as.IsAssigned(1))
	assert.Equal(t, 2, as.Len())

	as.SetAssigned(map[int]Assignment{3: {OwnerID: "b", Pattern: "b.png"}})
	assert.False(t, as.IsAssigned(1))
	assert.False(t, as.IsAssigned(2))
	assert.Equal(t, 1, as.Len())

	got, ok := as.Lookup(3)
	assert.True(t, ok)
	assert.Equal(t, "b.png", got.Pattern)

	_, ok = as.Lookup(1)
	assert.False(t, ok)
}

func TestAssignmentsCopiesInput(t *testing.T) {
	in := map[int]Assignment{1: {OwnerID: "a"}}
	as := NewAssignments()
	as.SetAssigned(in)

	in[2] = Assignment{OwnerID: "b"}
	assert.False(t, as.IsAssigned(2))
}

func TestAssignmentsOwners(t *testing.T) {
	as := NewAssignments()
	as.SetAssigned(map[int]Assignment{
		1: {OwnerID: "zed"},
		2: {OwnerID: "acme"},
		3: {OwnerID: "zed"},
	})

	assert.Equal(t, []string{"acme", "zed"}, as.Owners())
}

func TestFeedFromOwnersSkipsEditedOwner(t *testing.T) {
	adj := DefaultAdjustment()
	adj.Gamma = 1.4
	records := []OwnerRecord{
		{OwnerID: "acme", Tiles: []int{1, 2}, Pattern: "acme.png", Adjustment: adj},
		{OwnerID: "zed", Tiles: []int{5, 6}},
		{OwnerID: "late", Tiles: []int{2, 9}},
	}

	feed := FeedFromOwners(records, "zed")

	assert.Len(t, feed, 3)
	assert.Equal(t, "acme", feed[1].OwnerID)
	assert.Equal(t, 1.4, feed[1].Adjustment.Gamma)
	assert.Equal(t, "acme", feed[2].OwnerID) // first claim wins
	assert.Equal(t, "late", feed[9].OwnerID)
	_, ok := feed[5]
	assert.False(t, ok)
}
