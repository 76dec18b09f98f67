package main

import (
	"path/filepath"
	"strconv"
	"strings"
)

// OutputTemplate 输出路径模板, 支持 {matrix} {row} {col} {ext}, 以及 {z} {y} {x}
type OutputTemplate string

// Path 获取瓦片输出路径
func (m OutputTemplate) Path(root string, t Tile) string {
	z := strconv.Itoa(int(t.T.Z))
	x := strconv.Itoa(int(t.T.X))
	y := strconv.Itoa(int(t.T.Y))
	r := strings.NewReplacer(
		"{matrix}", z, "{z}", z,
		"{col}", x, "{x}", x,
		"{row}", y, "{y}", y,
		"{ext}", strings.TrimPrefix(filepath.Ext(t.Source), "."),
	)
	return filepath.Join(root, filepath.FromSlash(r.Replace(string(m))))
}
