package territory

// Conflicts reports tiles that are committed to some other owner
type Conflicts interface {
	// IsAssigned returns if tile i belongs to someone else
	IsAssigned(i int) bool
}

// TierClassifier labels tiles with a pricing tier.
// The label is opaque to us; it only decides the base colour of a tile.
type TierClassifier interface {
	// Tier returns the tier of tile i, false if the classifier doesn't know it
	Tier(i int) (string, bool)
}

// Renderer consumes everything an editing session wants drawn
type Renderer interface {
	// SelectionChanged is called with the full (sorted) selection after
	// every mutation
	SelectionChanged(indices []int)

	// TileVisual is called when the visual state of tile i changes
	TileVisual(i int, v Visual)

	// TileUVs sets per-vertex texture coordinates for tile i, one per
	// boundary vertex in boundary order
	TileUVs(i int, uvs []UV)
}
