package main

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

const manifestSchema = `
CREATE TABLE IF NOT EXISTS runs (
	id       TEXT PRIMARY KEY,
	input    TEXT NOT NULL,
	output   TEXT NOT NULL,
	started  TEXT NOT NULL,
	finished TEXT,
	tiles    INTEGER NOT NULL DEFAULT 0
);
CREATE TABLE IF NOT EXISTS tiles (
	run_id       TEXT NOT NULL REFERENCES runs(id),
	zoom_level   INTEGER NOT NULL,
	tile_column  INTEGER NOT NULL,
	tile_row     INTEGER NOT NULL,
	src_tile_row INTEGER NOT NULL,
	source       TEXT NOT NULL,
	target       TEXT NOT NULL,
	UNIQUE (run_id, target)
);`

// Manifest 转换记录, 每个输出瓦片一行, 仅用于审计
type Manifest struct {
	db     *sql.DB
	insert *sql.Stmt
	runID  string
	count  int64
}

// OpenManifest 打开或创建记录库
func OpenManifest(path string) (*Manifest, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, os.ModePerm); err != nil {
			return nil, err
		}
	}
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}
	if _, err := db.Exec(manifestSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("init manifest %s: %w", path, err)
	}
	insert, err := db.Prepare(`INSERT INTO tiles (run_id, zoom_level, tile_column, tile_row, src_tile_row, source, target) VALUES (?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		db.Close()
		return nil, err
	}
	return &Manifest{db: db, insert: insert}, nil
}

// Begin 登记一次转换任务
func (m *Manifest) Begin(runID, input, output string) error {
	_, err := m.db.Exec(`INSERT INTO runs (id, input, output, started) VALUES (?, ?, ?, ?)`,
		runID, input, output, time.Now().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("manifest begin run %s: %w", runID, err)
	}
	m.runID = runID
	m.count = 0
	return nil
}

// Record 记录一个已输出的瓦片, srcRow 为翻转前的行号
func (m *Manifest) Record(tile Tile, srcRow uint32, target string) error {
	_, err := m.insert.Exec(m.runID, tile.T.Z, tile.T.X, tile.T.Y, srcRow, tile.Source, target)
	if err != nil {
		return fmt.Errorf("manifest record %s: %w", target, err)
	}
	m.count++
	return nil
}

// Finish 标记任务完成
func (m *Manifest) Finish() error {
	_, err := m.db.Exec(`UPDATE runs SET finished = ?, tiles = ? WHERE id = ?`,
		time.Now().Format(time.RFC3339), m.count, m.runID)
	return err
}

// Close 关闭记录库
func (m *Manifest) Close() error {
	m.insert.Close()
	return m.db.Close()
}

// ManifestSafeFun 安全退出时关闭记录库
func (m *Manifest) ManifestSafeFun() {
	if err := m.Close(); err != nil {
		log.Warnf("close manifest error ~ %s", err)
		return
	}
	log.Infof("manifest closed, run %s is unfinished", m.runID)
}
