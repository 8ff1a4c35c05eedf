package main

import (
	"fmt"
	"image"
	"log/slog"
	"os"

	"github.com/alecthomas/kong"
	"github.com/dustin/go-humanize"

	"github.com/voidshard/territory"
)

const desc = `Renders a saved territory in texture space to a png.

Every tile of the owner's territory is drawn where the projection puts it, filled with the
(colour adjusted, repeating) pattern image & outlined. Useful for checking how an uploaded
image wraps over a territory without starting the game.`

var cli struct {
	Config   string `short:"c" help:"config file (yaml)"`
	Tiles    string `short:"t" required:"" help:"tessellation file (yaml)"`
	Database string `short:"d" help:"clusters database, defaults to the configured one"`
	Owner    string `short:"o" required:"" help:"owner whose territory to render"`

	Image  string `short:"i" help:"pattern image, defaults to the saved one (checkerboard if none)"`
	Output string `short:"O" help:"where to write the png. Defaults to <owner>.uv.png. Overwrites output file if it exists."`
	Size   int    `default:"1024" help:"longest side of the output in px"`

	Verbose bool `short:"v" help:"debug logging"`
}

func main() {
	kong.Parse(&cli, kong.Name("uv-render"), kong.Description(desc))

	if cli.Verbose {
		territory.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
	}
	if cli.Output == "" {
		cli.Output = fmt.Sprintf("%s.uv.png", cli.Owner)
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

	if !fileExists(cli.Tiles) {
		panic(fmt.Sprintf("tessellation file not found: %s", cli.Tiles))
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

	rec, err := store.Cluster(cli.Owner)
	if err != nil {
		panic(err)
	}
	if rec == nil || len(rec.Tiles) == 0 {
		panic(fmt.Sprintf("%s has no saved territory", cli.Owner))
	}

	src := cli.Image
	if src == "" {
		src = rec.Pattern
	}

	var tex image.Image
	aspect := cfg.TextureAspect
	if src != "" {
		tex, err = territory.LoadTexture(src)
		if err != nil {
			panic(err)
		}
		aspect = territory.ImageAspect(tex)
	}

	p := territory.ProjectTiles(g, rec.Tiles, cfg.Up(), rec.Adjustment, aspect)
	if p == nil {
		panic(fmt.Sprintf("none of %s's tiles are in %s", cli.Owner, cli.Tiles))
	}

	lo, hi := p.Span()
	fmt.Printf("projected %s tiles, uv (%.3f,%.3f) -> (%.3f,%.3f), unlit=%v\n",
		humanize.Comma(int64(len(p.UVs))), lo.U, lo.V, hi.U, hi.V,
		territory.Adapt(src, rec.Adjustment).Unlit,
	)

	err = territory.SavePreview(cli.Output, territory.RenderPreview(p, tex, cli.Size))
	if err != nil {
		panic(err)
	}

	fmt.Printf("wrote %s\n", cli.Output)
}

// fileExists checks if a regular file exists & can be stat'd
func fileExists(filename string) bool {
	info, err := os.Stat(filename)
	if err != nil {
		return false
	}
	return !info.IsDir()
}
