package main

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
)

// ErrTileExists 输出路径已存在, 转换结果不是单射
var ErrTileExists = errors.New("output tile already exists")

func pathExists(path string) bool {
	_, err := os.Lstat(path)
	return !errors.Is(err, fs.ErrNotExist)
}

// EmitTile 将瓦片原样复制到模板路径, 目标已存在时返回 ErrTileExists
func EmitTile(tile Tile, root string, tmpl OutputTemplate) (string, error) {
	dst := tmpl.Path(root, tile)
	if pathExists(dst) {
		return dst, fmt.Errorf("%w: %s (from %s)", ErrTileExists, dst, tile.Source)
	}
	if err := os.MkdirAll(filepath.Dir(dst), os.ModePerm); err != nil {
		return dst, err
	}
	return dst, copyFile(tile.Source, dst)
}

// copyFile never replaces dst.
func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	info, err := in.Stat()
	if err != nil {
		return err
	}
	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_EXCL, info.Mode().Perm())
	if err != nil {
		if errors.Is(err, fs.ErrExist) {
			return fmt.Errorf("%w: %s (from %s)", ErrTileExists, dst, src)
		}
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return fmt.Errorf("copy %s to %s: %w", src, dst, err)
	}
	return out.Close()
}
