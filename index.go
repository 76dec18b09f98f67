package main

import (
	"io/fs"
	"path/filepath"
	"sort"
	"strings"

	"github.com/paulmach/orb/maptile"
)

// BuildIndex 递归扫描输入目录, 收集所有可解析的瓦片
func BuildIndex(root, ext string, pattern *GridPattern) ([]Tile, error) {
	suffix := "." + strings.TrimPrefix(ext, ".")
	var tiles []Tile
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(d.Name(), suffix) {
			return nil
		}
		if tile, ok := pattern.Parse(path); ok {
			tiles = append(tiles, tile)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return tiles, nil
}

// MaxRows 每个级别实际出现的最大行号
func MaxRows(tiles []Tile) map[maptile.Zoom]uint32 {
	res := make(map[maptile.Zoom]uint32)
	for _, t := range tiles {
		if top, ok := res[t.T.Z]; !ok || t.T.Y > top {
			res[t.T.Z] = t.T.Y
		}
	}
	return res
}

// InvertRows 按级别翻转行号: new_row = max_row(z) - row
func InvertRows(tiles []Tile) []Tile {
	return flipRows(tiles, MaxRows(tiles))
}

// flipRows rows above the level maximum are left as they are.
func flipRows(tiles []Tile, maxRows map[maptile.Zoom]uint32) []Tile {
	res := make([]Tile, len(tiles))
	for i, t := range tiles {
		res[i] = t
		if top, ok := maxRows[t.T.Z]; ok && t.T.Y <= top {
			res[i].T.Y = top - t.T.Y
		}
	}
	return res
}

// groupByZoom 按级别分组, 级别升序
func groupByZoom(tiles []Tile) ([]maptile.Zoom, map[maptile.Zoom][]Tile) {
	groups := make(map[maptile.Zoom][]Tile)
	var zooms []maptile.Zoom
	for _, t := range tiles {
		if _, ok := groups[t.T.Z]; !ok {
			zooms = append(zooms, t.T.Z)
		}
		groups[t.T.Z] = append(groups[t.T.Z], t)
	}
	sort.Slice(zooms, func(i, j int) bool { return zooms[i] < zooms[j] })
	return zooms, groups
}
