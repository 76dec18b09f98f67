package main

import (
	"os"
	"path/filepath"
	"sort"
	"testing"

	"github.com/paulmach/orb/maptile"
	"github.com/stretchr/testify/require"
)

func rowsAt(tiles []Tile, z maptile.Zoom) []uint32 {
	var rows []uint32
	for _, t := range tiles {
		if t.T.Z == z {
			rows = append(rows, t.T.Y)
		}
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i] < rows[j] })
	return rows
}

func levelTiles(z maptile.Zoom, rows ...uint32) []Tile {
	tiles := make([]Tile, 0, len(rows))
	for _, r := range rows {
		tiles = append(tiles, Tile{T: maptile.New(0, r, z)})
	}
	return tiles
}

func TestBuildIndex(t *testing.T) {
	root := t.TempDir()
	writeTile(t, root, 0, 0, 0, "a")
	writeTile(t, root, 2, 3, 1, "b")
	nested := filepath.Join(root, "deep", "er", "EPSG_3031-GIBS_1", "12_34")
	require.NoError(t, os.MkdirAll(nested, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(nested, "4_5.png"), nil, 0o644))

	// not tiles
	require.NoError(t, os.WriteFile(filepath.Join(root, "README.md"), []byte("x"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "EPSG_3031-GIBS_0", "00_00", "1_1.jpg"), nil, 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "EPSG_3031-GIBS_0", "00_00", "x_1.png"), nil, 0o644))
	require.NoError(t, os.MkdirAll(filepath.Join(root, "EPSG_3031-GIBS_0", "00_00", "9_9.png"), 0o755))

	tiles, err := BuildIndex(root, PNG, gwcPattern(t))
	require.NoError(t, err)
	require.Len(t, tiles, 3)

	got := map[maptile.Tile]string{}
	for _, tile := range tiles {
		got[tile.T] = tile.Source
	}
	require.Equal(t, map[maptile.Tile]string{
		maptile.New(0, 0, 0): filepath.Join(root, "EPSG_3031-GIBS_0", "00_00", "0_0.png"),
		maptile.New(3, 1, 2): filepath.Join(root, "EPSG_3031-GIBS_2", "00_00", "3_1.png"),
		maptile.New(4, 5, 1): filepath.Join(nested, "4_5.png"),
	}, got)
}

func TestBuildIndexKeepsDuplicates(t *testing.T) {
	root := t.TempDir()
	writeTile(t, root, 1, 2, 3, "a")
	dup := filepath.Join(root, "EPSG_3031-GIBS_1", "01_01")
	require.NoError(t, os.MkdirAll(dup, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dup, "2_3.png"), []byte("b"), 0o644))

	tiles, err := BuildIndex(root, ".png", gwcPattern(t))
	require.NoError(t, err)
	require.Len(t, tiles, 2)
	require.Equal(t, tiles[0].T, tiles[1].T)
}

func TestBuildIndexMissingRoot(t *testing.T) {
	_, err := BuildIndex(filepath.Join(t.TempDir(), "nope"), PNG, gwcPattern(t))
	require.Error(t, err)
	require.True(t, os.IsNotExist(err))
}

func TestMaxRowsPerLevel(t *testing.T) {
	tiles := append(levelTiles(0, 0, 1, 2), levelTiles(1, 0, 1)...)
	tiles = append(tiles, levelTiles(5, 7)...)

	require.Equal(t, map[maptile.Zoom]uint32{0: 2, 1: 1, 5: 7}, MaxRows(tiles))
	require.Empty(t, MaxRows(nil))
}

func TestInvertRowsPerLevel(t *testing.T) {
	tiles := append(levelTiles(0, 0, 1, 2), levelTiles(1, 0, 1)...)

	inverted := InvertRows(tiles)
	require.Len(t, inverted, len(tiles))
	require.Equal(t, []uint32{0, 1, 2}, rowsAt(inverted, 0))
	require.Equal(t, []uint32{1, 0}, []uint32{inverted[3].T.Y, inverted[4].T.Y})

	// input is left untouched
	require.Equal(t, []uint32{0, 1}, []uint32{tiles[3].T.Y, tiles[4].T.Y})
}

func TestInvertRowsSparse(t *testing.T) {
	inverted := InvertRows(levelTiles(3, 4, 6, 10))
	require.Equal(t, []uint32{6, 4, 0}, []uint32{inverted[0].T.Y, inverted[1].T.Y, inverted[2].T.Y})
}

func TestInvertRowsRoundTrip(t *testing.T) {
	tiles := append(levelTiles(2, 0, 1, 2, 3), levelTiles(4, 3, 0, 2, 1)...)
	maxRows := MaxRows(tiles)

	twice := flipRows(flipRows(tiles, maxRows), maxRows)
	require.Equal(t, tiles, twice)
}

func TestGroupByZoom(t *testing.T) {
	tiles := append(levelTiles(3, 1), levelTiles(0, 1, 2)...)
	tiles = append(tiles, levelTiles(3, 0)...)

	zooms, groups := groupByZoom(tiles)
	require.Equal(t, []maptile.Zoom{0, 3}, zooms)
	require.Equal(t, []uint32{1, 0}, []uint32{groups[3][0].T.Y, groups[3][1].T.Y})
	require.Len(t, groups[0], 2)
}
