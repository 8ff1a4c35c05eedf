package territory

// VisualKind tags what a tile looks like
type VisualKind int

const (
	VisualBase     VisualKind = iota // tier colour
	VisualAssigned                   // someone else's pattern
	VisualSelected                   // in the live selection, no preview
	VisualPreview                    // in the live selection, showing the pattern being edited
)

func (k VisualKind) String() string {
	switch k {
	case VisualAssigned:
		return "assigned"
	case VisualSelected:
		return "selected"
	case VisualPreview:
		return "preview"
	}
	return "base"
}

// Visual is the current look of a tile. Only the fields for its Kind are set;
// a renderer picks the material from this alone.
type Visual struct {
	Kind VisualKind

	// VisualBase
	Color string

	// VisualAssigned
	OwnerID string

	// VisualAssigned, VisualPreview
	Pattern string
	Params  RenderParams
}

// BaseVisual is a tile drawn in its tier colour
func BaseVisual(color string) Visual {
	return Visual{Kind: VisualBase, Color: color}
}

// AssignedVisual is a tile showing another owner's pattern
func AssignedVisual(as Assignment) Visual {
	return Visual{
		Kind:    VisualAssigned,
		OwnerID: as.OwnerID,
		Pattern: as.Pattern,
		Params:  Adapt(as.Pattern, as.Adjustment),
	}
}

// SelectedVisual is a selected tile
func SelectedVisual() Visual {
	return Visual{Kind: VisualSelected}
}

// PreviewVisual is a selected tile showing the pattern being edited
func PreviewVisual(texture string, adj PatternAdjustment) Visual {
	return Visual{
		Kind:    VisualPreview,
		Pattern: texture,
		Params:  Adapt(texture, adj),
	}
}
