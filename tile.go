package main

import (
	"errors"
	"fmt"
	"path/filepath"
	"regexp"
	"strconv"

	"github.com/paulmach/orb/maptile"
)

// GWCPattern 默认 GeoWebCache 瓦片路径规则 (GIBS EPSG:3031 网格)
const GWCPattern = `EPSG_3031-GIBS_(?P<matrix>\d+)/\d+_\d+/(?P<col>\d+)_(?P<row>\d+)\.png`

// ZYXTemplate 默认输出路径模板
const ZYXTemplate = "{matrix}/{row}/{col}.{ext}"

// 默认输入输出目录
const (
	DefaultInputDir  = "tiles/itslive_ant_epsg3031_gwc"
	DefaultOutputDir = "tiles/itslive_ant_epsg3031_zyx"
)

// PNG 默认瓦片扩展名
const PNG = "png"

// ErrBadPattern 网格规则不可用
var ErrBadPattern = errors.New("invalid grid pattern")

// Tile 瓦片记录, T.Z 为矩阵级别, T.X 为列, T.Y 为行
type Tile struct {
	T      maptile.Tile
	Source string
}

func (t Tile) String() string {
	return fmt.Sprintf("tile(z:%d, x:%d, y:%d) %s", t.T.Z, t.T.X, t.T.Y, t.Source)
}

// GridPattern 瓦片路径解析器
type GridPattern struct {
	re     *regexp.Regexp
	matrix int
	col    int
	row    int
}

// NewGridPattern 编译路径规则, 规则必须包含 matrix, col, row 三个命名分组
func NewGridPattern(expr string) (*GridPattern, error) {
	re, err := regexp.Compile(expr)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadPattern, err)
	}
	p := &GridPattern{
		re:     re,
		matrix: re.SubexpIndex("matrix"),
		col:    re.SubexpIndex("col"),
		row:    re.SubexpIndex("row"),
	}
	if p.matrix < 0 || p.col < 0 || p.row < 0 {
		return nil, fmt.Errorf("%w: %q must name the groups matrix, col and row", ErrBadPattern, expr)
	}
	return p, nil
}

// Parse 从路径中解析瓦片坐标, 不匹配时返回 false
func (p *GridPattern) Parse(path string) (Tile, bool) {
	m := p.re.FindStringSubmatch(filepath.ToSlash(path))
	if m == nil {
		return Tile{}, false
	}
	z, err := strconv.ParseUint(m[p.matrix], 10, 32)
	if err != nil {
		return Tile{}, false
	}
	x, err := strconv.ParseUint(m[p.col], 10, 32)
	if err != nil {
		return Tile{}, false
	}
	y, err := strconv.ParseUint(m[p.row], 10, 32)
	if err != nil {
		return Tile{}, false
	}
	return Tile{
		T:      maptile.New(uint32(x), uint32(y), maptile.Zoom(z)),
		Source: path,
	}, true
}
