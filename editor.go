package territory

// Editor is a single operator's editing session: one sponsor's territory
// being built on top of a fixed graph, with everyone else's territory
// blocking the way.
//
// All methods run to completion synchronously; an Editor is not safe for
// concurrent use.
type Editor struct {
	cfg        *Config
	graph      *Graph
	assigned   *Assignments
	selection  *Selection
	classifier TierClassifier
	renderer   Renderer

	owner   string
	preview *preview

	// last visual handed to the renderer, per tile
	visuals map[int]Visual
	muted   bool
}

// preview is the pattern currently being tried out on the selection
type preview struct {
	texture string
	aspect  float64
	adj     PatternAdjustment
}

// EditorOption configures an Editor
type EditorOption func(*Editor)

// WithClassifier sets the tier classifier. Without one each tile's own Tier
// label is used.
func WithClassifier(c TierClassifier) EditorOption {
	return func(e *Editor) {
		e.classifier = c
	}
}

// WithRenderer sets who is told about selection, visual & UV changes
func WithRenderer(r Renderer) EditorOption {
	return func(e *Editor) {
		e.renderer = r
	}
}

// WithSelectionOptions passes options through to the editor's Selection
func WithSelectionOptions(opts ...SelectionOption) EditorOption {
	return func(e *Editor) {
		e.selection = NewSelection(e.graph, append([]SelectionOption{WithConflicts(e.assigned)}, opts...)...)
	}
}

// NewEditor starts an editing session over the given graph
func NewEditor(g *Graph, cfg *Config, opts ...EditorOption) *Editor {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	e := &Editor{
		cfg:      cfg,
		graph:    g,
		assigned: NewAssignments(),
		visuals:  map[int]Visual{},
	}
	e.selection = NewSelection(g, WithConflicts(e.assigned))
	for _, o := range opts {
		o(e)
	}
	e.selection.OnChange(e.selectionChanged)
	e.refresh(g.Indices())
	return e
}

// Graph returns the graph being edited
func (e *Editor) Graph() *Graph {
	return e.graph
}

// Selection returns the live selection
func (e *Editor) Selection() *Selection {
	return e.selection
}

// Assignments returns tiles owned by others
func (e *Editor) Assignments() *Assignments {
	return e.assigned
}

// Owner returns the owner whose territory is being edited
func (e *Editor) Owner() string {
	return e.owner
}

// Switch changes which owner is being edited. The selection is cleared,
// assignments are rebuilt from `feed` without `owner`'s own tiles & the
// owner's saved tiles are loaded.
func (e *Editor) Switch(owner string, saved []int, feed []OwnerRecord) {
	e.muted = true
	e.selection.Clear()
	e.owner = owner
	e.preview = nil
	e.assigned.SetAssigned(FeedFromOwners(feed, owner))
	e.selection.SetAll(saved)
	e.muted = false

	logger.Debug("switched owner", "owner", owner, "selected", e.selection.Len(), "assigned", e.assigned.Len())
	if e.renderer != nil {
		e.renderer.SelectionChanged(e.selection.Indices())
	}
	e.refresh(e.graph.Indices())
	e.pushUVs()
}

// Reload replaces assignments (eg. after data was re-fetched) keeping the
// current owner & selection.
func (e *Editor) Reload(feed []OwnerRecord) {
	e.assigned.SetAssigned(FeedFromOwners(feed, e.owner))
	e.refresh(e.graph.Indices())
}

// Toggle selects or deselects tile i
func (e *Editor) Toggle(i int) {
	e.selection.Toggle(i)
}

// PaintBegin starts a paint-drag on tile i
func (e *Editor) PaintBegin(i int) {
	e.selection.PaintBegin(i)
}

// PaintTile continues a paint-drag over tile i
func (e *Editor) PaintTile(i int) {
	e.selection.PaintTile(i)
}

// PaintEnd finishes a paint-drag
func (e *Editor) PaintEnd() {
	e.selection.PaintEnd()
}

// Clear empties the selection
func (e *Editor) Clear() {
	e.selection.Clear()
}

// SetPreview shows `texture` over the selection with the given adjustment.
// aspect is the texture's width / height; <= 0 uses the configured default.
func (e *Editor) SetPreview(texture string, aspect float64, adj PatternAdjustment) {
	if aspect <= 0 {
		aspect = e.cfg.TextureAspect
	}
	e.preview = &preview{texture: texture, aspect: aspect, adj: adj}
	e.refresh(e.selection.Indices())
	e.pushUVs()
}

// ClearPreview goes back to plain selected tiles
func (e *Editor) ClearPreview() {
	e.preview = nil
	e.refresh(e.selection.Indices())
}

// Project computes the texture mapping of the current selection, using the
// preview's adjustment & aspect if one is set. Nil if nothing is selected.
func (e *Editor) Project() *Projection {
	adj := DefaultAdjustment()
	aspect := e.cfg.TextureAspect
	if e.preview != nil {
		adj = e.preview.adj
		aspect = e.preview.aspect
	}
	return ProjectTiles(e.graph, e.selection.Indices(), e.cfg.Up(), adj, aspect)
}

// Record returns the current owner's territory ready to be saved
func (e *Editor) Record() OwnerRecord {
	rec := OwnerRecord{
		OwnerID:    e.owner,
		Tiles:      e.selection.Indices(),
		Adjustment: DefaultAdjustment(),
	}
	if e.preview != nil {
		rec.Pattern = e.preview.texture
		rec.Adjustment = e.preview.adj
	}
	return rec
}

// Visual returns what tile i should look like right now
func (e *Editor) Visual(i int) Visual {
	if e.selection.Contains(i) {
		if e.preview != nil {
			return PreviewVisual(e.preview.texture, e.preview.adj)
		}
		return SelectedVisual()
	}
	if as, ok := e.assigned.Lookup(i); ok {
		return AssignedVisual(as)
	}
	return BaseVisual(e.tierColor(i))
}

// Tier returns the tier of tile i
func (e *Editor) Tier(i int) string {
	if e.classifier != nil {
		if tier, ok := e.classifier.Tier(i); ok {
			return tier
		}
	}
	if t := e.graph.Tile(i); t != nil {
		return t.Tier
	}
	return ""
}

func (e *Editor) tierColor(i int) string {
	if c, ok := e.cfg.TierColors[e.Tier(i)]; ok {
		return c
	}
	return e.cfg.DefaultColor
}

// selectionChanged is our Selection listener
func (e *Editor) selectionChanged(indices []int) {
	if e.muted {
		return
	}
	if e.renderer != nil {
		e.renderer.SelectionChanged(indices)
	}

	// anything that was or now is selected may look different
	touched := append([]int{}, indices...)
	for i, v := range e.visuals {
		if v.Kind == VisualSelected || v.Kind == VisualPreview {
			touched = append(touched, i)
		}
	}
	e.refresh(touched)
	e.pushUVs()
}

// refresh recomputes visuals for the given tiles, telling the renderer
// about any that changed.
func (e *Editor) refresh(tiles []int) {
	for _, i := range sortedCopy(tiles) {
		v := e.Visual(i)
		if old, ok := e.visuals[i]; ok && old == v {
			continue
		}
		e.visuals[i] = v
		if e.renderer != nil {
			e.renderer.TileVisual(i, v)
		}
	}
}

// pushUVs sends the projection of the selection to the renderer while a
// preview is showing.
func (e *Editor) pushUVs() {
	if e.renderer == nil || e.preview == nil {
		return
	}
	p := e.Project()
	if p == nil {
		return
	}
	for _, i := range p.Tiles() {
		e.renderer.TileUVs(i, p.UVs[i])
	}
}
