package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/alecthomas/kong"
	"github.com/dustin/go-humanize"

	"github.com/voidshard/territory"
)

const desc = `Edits a sponsor's territory on the planet & saves it.

Loads the tessellation & every saved territory, switches to the given owner (their saved tiles
become the selection, everyone else's tiles are blocked) then applies the requested edits in
order: --clear, each --toggle, then one paint-drag over the --paint tiles. Edits that would
break the territory into pieces, or touch excluded / assigned tiles, are skipped.`

var cli struct {
	Config   string `short:"c" help:"config file (yaml)"`
	Tiles    string `short:"t" required:"" help:"tessellation file (yaml)"`
	Database string `short:"d" help:"clusters database, defaults to the configured one"`
	Owner    string `short:"o" required:"" help:"owner whose territory is being edited"`

	// edits, applied in this order
	Clear  bool  `help:"start from an empty territory"`
	Toggle []int `help:"tiles to toggle, one at a time"`
	Paint  []int `help:"tiles visited by one paint-drag, the first decides add/remove"`

	// pattern shown on the territory
	Pattern    string  `short:"p" help:"pattern image for the territory"`
	Scale      float64 `default:"1" help:"pattern scale, < 1 repeats, > 1 crops"`
	OffsetX    float64 `help:"pattern x offset"`
	OffsetY    float64 `help:"pattern y offset"`
	Gamma      float64 `default:"1" help:"pattern gamma"`
	Saturation float64 `default:"1" help:"pattern saturation"`

	DryRun  bool `help:"print the result without saving"`
	Verbose bool `short:"v" help:"log every change"`
}

// logRenderer logs what a renderer would be told
type logRenderer struct{}

func (logRenderer) SelectionChanged(indices []int) {
	slog.Debug("selection changed", "tiles", indices)
}

func (logRenderer) TileVisual(i int, v territory.Visual) {
	slog.Debug("tile visual", "tile", i, "kind", v.Kind.String())
}

func (logRenderer) TileUVs(i int, uvs []territory.UV) {
	slog.Debug("tile uvs", "tile", i, "vertices", len(uvs))
}

func main() {
	kong.Parse(&cli, kong.Name("cluster"), kong.Description(desc))

	if cli.Verbose {
		l := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
		slog.SetDefault(l)
		territory.SetLogger(l)
	}

	cfg := territory.DefaultConfig()
	if cli.Config != "" {
		var err error
		cfg, err = territory.LoadConfig(cli.Config)
		if err != nil {
			panic(err)
		}
	}
	if cli.Database != "" {
		cfg.Database = cli.Database
	}

	tiles, err := territory.OpenTiles(cli.Tiles)
	if err != nil {
		panic(err)
	}
	g := territory.BuildGraph(tiles, cfg)

	dbpath, err := cfg.DatabasePath()
	if err != nil {
		panic(err)
	}
	store, err := territory.OpenStore(dbpath)
	if err != nil {
		panic(err)
	}
	defer store.Close()

	feed, err := store.Feed()
	if err != nil {
		panic(err)
	}
	saved, err := store.Cluster(cli.Owner)
	if err != nil {
		panic(err)
	}

	var opts []territory.EditorOption
	if cli.Verbose {
		opts = append(opts, territory.WithRenderer(logRenderer{}))
	}
	ed := territory.NewEditor(g, cfg, opts...)

	savedTiles := []int{}
	if saved != nil {
		savedTiles = saved.Tiles
	}
	ed.Switch(cli.Owner, savedTiles, feed)
	fmt.Printf("loaded %s tiles (%s excluded, %s owned by others), %s owned by %s\n",
		humanize.Comma(int64(g.Len())),
		humanize.Comma(int64(len(g.ExcludedIndices()))),
		humanize.Comma(int64(ed.Assignments().Len())),
		humanize.Comma(int64(ed.Selection().Len())),
		cli.Owner,
	)

	pattern, adj := patternFromFlags(saved)
	if pattern != "" {
		aspect := 0.0
		if tex, err := territory.LoadTexture(pattern); err == nil {
			aspect = territory.ImageAspect(tex)
		} else {
			fmt.Printf("unable to read %s, assuming default aspect: %v\n", pattern, err)
		}
		ed.SetPreview(pattern, aspect, adj)
	}

	if cli.Clear {
		ed.Clear()
	}
	for _, i := range cli.Toggle {
		before := ed.Selection().Len()
		ed.Toggle(i)
		if ed.Selection().Len() == before {
			fmt.Printf("toggle %d: skipped\n", i)
		}
	}
	if len(cli.Paint) > 0 {
		ed.PaintBegin(cli.Paint[0])
		fmt.Printf("paint: %s\n", ed.Selection().Mode())
		for _, i := range cli.Paint[1:] {
			ed.PaintTile(i)
		}
		ed.PaintEnd()
	}

	rec := ed.Record()
	fmt.Printf("territory of %s: %s tiles %v\n", cli.Owner, humanize.Comma(int64(len(rec.Tiles))), rec.Tiles)

	if cli.DryRun {
		fmt.Println("dry-run detected: not saving")
		return
	}

	rev, err := store.SaveCluster(rec)
	if err != nil {
		panic(err)
	}
	fmt.Printf("saved %s revision %s to %s\n", cli.Owner, rev, store.Filename())
}

// patternFromFlags decides the pattern & adjustment: flags win over what
// was saved.
func patternFromFlags(saved *territory.OwnerRecord) (string, territory.PatternAdjustment) {
	pattern := cli.Pattern
	adj := territory.DefaultAdjustment()
	if saved != nil {
		if pattern == "" {
			pattern = saved.Pattern
		}
		adj = saved.Adjustment
	}

	if cli.Scale != 1 {
		adj.Scale = cli.Scale
	}
	if cli.OffsetX != 0 {
		adj.OffsetX = cli.OffsetX
	}
	if cli.OffsetY != 0 {
		adj.OffsetY = cli.OffsetY
	}
	if cli.Gamma != 1 {
		adj.Gamma = cli.Gamma
	}
	if cli.Saturation != 1 {
		adj.Saturation = cli.Saturation
	}
	return pattern, adj
}
