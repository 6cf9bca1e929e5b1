package command

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/yndnr/tunevault-go/internal/cli/output"
	"github.com/yndnr/tunevault-go/internal/core/domain"
)

// InfoCommand returns the info command.
func InfoCommand() *cli.Command {
	return &cli.Command{
		Name:      "info",
		Usage:     "Show a track, album, artist or playlist",
		ArgsUsage: "REFERENCE (track:ID, album/ID or a catalogue URL)",
		Action:    infoShow,
	}
}

type assetView struct {
	ID       string        `json:"id" yaml:"id"`
	Title    string        `json:"title" yaml:"title"`
	Artist   string        `json:"artist" yaml:"artist"`
	Album    string        `json:"album,omitempty" yaml:"album,omitempty"`
	Duration time.Duration `json:"duration" yaml:"duration"`
	Formats  []string      `json:"formats" yaml:"formats"`
	Fallback string        `json:"fallback,omitempty" yaml:"fallback,omitempty"`
}

type entityView struct {
	Kind   domain.EntityKind `json:"kind" yaml:"kind"`
	ID     string            `json:"id" yaml:"id"`
	Name   string            `json:"name" yaml:"name"`
	Assets []assetView       `json:"assets" yaml:"assets"`
}

func newAssetView(a domain.AssetDescriptor) assetView {
	v := assetView{
		ID:       a.ID,
		Title:    a.Title,
		Artist:   a.Artist,
		Album:    a.Album,
		Duration: a.Duration,
		Formats:  []string{},
	}
	for _, enc := range domain.Encodings() {
		if a.Size(enc) > 0 {
			v.Formats = append(v.Formats, string(enc))
		}
	}
	if a.Fallback != nil {
		v.Fallback = a.Fallback.ID
	}
	return v
}

func newEntityView(e domain.Entity) entityView {
	assets := e.Assets()
	v := entityView{
		Kind:   e.Kind(),
		ID:     e.EntityID(),
		Name:   e.DisplayName(),
		Assets: make([]assetView, 0, len(assets)),
	}
	for _, a := range assets {
		v.Assets = append(v.Assets, newAssetView(a))
	}
	return v
}

func (v entityView) Table() *output.Table {
	t := output.NewTable("#", "ID", "TITLE", "ARTIST", "LENGTH", "FORMATS", "FALLBACK")
	for i, a := range v.Assets {
		t.AddRow(strconv.Itoa(i+1), a.ID, a.Title, a.Artist,
			output.FormatDuration(a.Duration), strings.Join(a.Formats, ","), a.Fallback)
	}
	return t
}

func infoShow(c *cli.Context) error {
	if c.NArg() < 1 {
		return fmt.Errorf("reference is required")
	}

	rt, err := GetRuntime(c)
	if err != nil {
		return err
	}
	formatter, format, err := rt.Formatter()
	if err != nil {
		return err
	}

	ref, err := domain.ParseReference(c.Args().First())
	if err != nil {
		return err
	}

	entity, err := rt.Catalogue.Lookup(rt.Context(), ref)
	if err != nil {
		return err
	}

	view := newEntityView(entity)
	if format == output.FormatTable {
		fmt.Fprintf(c.App.Writer, "%s %s: %s (%d tracks)\n\n", view.Kind, view.ID, view.Name, len(view.Assets))
	}
	return formatter.Format(c.App.Writer, view)
}
