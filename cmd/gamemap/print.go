package main

import (
	"fmt"
	"sort"
	"strings"

	"github.com/camoto-project/gamemap"
)

func printInfo(h gamemap.FormatHandler, m *gamemap.Map2D) {
	md := h.Metadata()
	fmt.Printf("format:   %s (%s)\n", md.ID, md.Title)
	fmt.Printf("games:    %s\n", strings.Join(md.Games, ", "))
	if m.MapSize != nil {
		fmt.Printf("map size: %d x %d tiles\n", m.MapSize.X, m.MapSize.Y)
	}
	if m.TileSize != nil {
		fmt.Printf("tiles:    %d x %d px\n", m.TileSize.X, m.TileSize.Y)
	}
	fmt.Printf("viewport: %d x %d px\n", m.Viewport.X, m.Viewport.Y)

	for i, l := range m.Layers {
		switch {
		case l.Tiled != nil:
			fmt.Printf("layer %d:  %s (tiled)\n", i, l.Tiled.Title)
		case l.List != nil:
			fmt.Printf("layer %d:  %s (%d items)\n", i, l.List.Title, len(l.List.Items))
		}
	}

	for _, id := range sortedKeys(m.Attributes) {
		a := m.Attributes[id]
		fmt.Printf("%-14s %v\n", a.Title+":", a.Value)
	}
}

func printText(m *gamemap.Map2D, layer int) error {
	tl := m.TiledLayerAt(layer)
	if tl == nil {
		return fmt.Errorf("layer %d is not a tiled layer", layer)
	}

	var sb strings.Builder
	for _, row := range tl.Tiles {
		for _, c := range row {
			if c == gamemap.NoTile {
				sb.WriteByte('.')
			} else {
				sb.WriteByte(byte('!' + int(c)%94))
			}
		}
		sb.WriteByte('\n')
	}
	fmt.Print(sb.String())
	return nil
}

// dumpView flattens the model into plain data yaml can handle; layer
// capability functions and display closures have no serial form.
type mapDump struct {
	Metadata   map[string]string   `yaml:"metadata,omitempty"`
	Attributes map[string]attrDump `yaml:"attributes,omitempty"`
	Viewport   gamemap.Size        `yaml:"viewport"`
	MapSize    *gamemap.Size       `yaml:"mapSize,omitempty"`
	TileSize   *gamemap.Size       `yaml:"tileSize,omitempty"`
	Layers     []layerDump         `yaml:"layers"`
}

type attrDump struct {
	Title string `yaml:"title"`
	Value any    `yaml:"value"`
}

type layerDump struct {
	Title string     `yaml:"title"`
	Kind  string     `yaml:"kind"`
	Tiles []string   `yaml:"tiles,omitempty"`
	Items []itemDump `yaml:"items,omitempty"`
}

type itemDump struct {
	Pos    gamemap.Point   `yaml:"pos"`
	Code   int             `yaml:"code"`
	Path   []gamemap.Point `yaml:"path,omitempty"`
	Values map[string]any  `yaml:"values,omitempty"`
}

func dumpView(m *gamemap.Map2D) mapDump {
	d := mapDump{
		Metadata:   m.Metadata,
		Attributes: make(map[string]attrDump, len(m.Attributes)),
		Viewport:   m.Viewport,
		MapSize:    m.MapSize,
		TileSize:   m.TileSize,
	}
	for id, a := range m.Attributes {
		d.Attributes[id] = attrDump{Title: a.Title, Value: a.Value}
	}

	for _, l := range m.Layers {
		switch {
		case l.Tiled != nil:
			ld := layerDump{Title: l.Tiled.Title, Kind: "tiled"}
			for _, row := range l.Tiled.Tiles {
				cells := make([]string, len(row))
				for x, c := range row {
					cells[x] = c.String()
				}
				ld.Tiles = append(ld.Tiles, strings.Join(cells, " "))
			}
			d.Layers = append(d.Layers, ld)
		case l.List != nil:
			ld := layerDump{Title: l.List.Title, Kind: "list"}
			for _, it := range l.List.Items {
				itd := itemDump{Pos: it.Pos, Code: it.Code, Values: it.AttributeValues}
				if it.Path != nil {
					itd.Path = it.Path.Points
				}
				ld.Items = append(ld.Items, itd)
			}
			d.Layers = append(d.Layers, ld)
		}
	}
	return d
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
