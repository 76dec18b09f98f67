package main

import (
	"fmt"
	"time"

	"github.com/paulmach/orb/maptile"
	"github.com/teris-io/shortid"
	pb "gopkg.in/cheggaaa/pb.v1"
)

func InitTask() error {
	start := time.Now()

	pattern, err := NewGridPattern(conf.Input.Pattern)
	if err != nil {
		return err
	}
	task := NewTask(conf.Input.Directory, conf.Output.Directory, pattern, OutputTemplate(conf.Output.Template))
	task.Extension = conf.Input.Extension
	task.Progress = conf.Output.Progress

	if conf.Manifest.Path != "" {
		m, err := OpenManifest(conf.Manifest.Path)
		if err != nil {
			return err
		}
		defer m.Close()
		// 注册安全退出
		SafeExitInst.Register(m.ManifestSafeFun)
		task.Manifest = m
	}

	if err := task.Run(); err != nil {
		return err
	}

	secs := time.Since(start).Seconds()
	log.Infof("%.3fs finished, %d tiles written to %s", secs, task.Current, task.OutputDir)
	return nil
}

// Task 转换任务
type Task struct {
	ID        string
	InputDir  string
	OutputDir string
	Extension string
	Pattern   *GridPattern
	Template  OutputTemplate
	Manifest  *Manifest
	Progress  bool
	Total     int64
	Current   int64
}

// NewTask 创建转换任务
func NewTask(input, output string, pattern *GridPattern, tmpl OutputTemplate) *Task {
	id, err := shortid.Generate()
	if err != nil {
		id = fmt.Sprintf("%x", time.Now().UnixNano())
	}
	return &Task{
		ID:        id,
		InputDir:  input,
		OutputDir: output,
		Extension: PNG,
		Pattern:   pattern,
		Template:  tmpl,
	}
}

// Run 扫描, 翻转行号, 按级别依次输出; 遇到第一个错误即中止
func (task *Task) Run() error {
	log.Infof("Task %s: %s -> %s", task.ID, task.InputDir, task.OutputDir)
	tiles, err := BuildIndex(task.InputDir, task.Extension, task.Pattern)
	if err != nil {
		return fmt.Errorf("scan %s: %w", task.InputDir, err)
	}
	task.Total = int64(len(tiles))
	task.Current = 0
	log.Infof("Task %s: %d tiles indexed", task.ID, task.Total)

	if task.Manifest != nil {
		if err := task.Manifest.Begin(task.ID, task.InputDir, task.OutputDir); err != nil {
			return err
		}
	}

	maxRows := MaxRows(tiles)
	zooms, sources := groupByZoom(tiles)
	_, inverted := groupByZoom(InvertRows(tiles))
	for _, z := range zooms {
		if err := task.emitLayer(z, maxRows[z], sources[z], inverted[z]); err != nil {
			return err
		}
	}

	if task.Manifest != nil {
		return task.Manifest.Finish()
	}
	return nil
}

// emitLayer 输出指定层级, src 与 dst 一一对应
func (task *Task) emitLayer(z maptile.Zoom, maxRow uint32, src, dst []Tile) error {
	log.Infof("Task %s zoom %d: %d tiles, max row %d", task.ID, z, len(dst), maxRow)
	var bar *pb.ProgressBar
	if task.Progress {
		bar = pb.New(len(dst)).Prefix(fmt.Sprintf("Zoom %d : ", z))
		bar.SetRefreshRate(time.Second)
		bar.Start()
	}

	abort := func(err error) error {
		if bar != nil {
			bar.Finish()
		}
		return err
	}
	for i, tile := range dst {
		target, err := EmitTile(tile, task.OutputDir, task.Template)
		if err != nil {
			return abort(err)
		}
		if task.Manifest != nil {
			if err := task.Manifest.Record(tile, src[i].T.Y, target); err != nil {
				return abort(err)
			}
		}
		task.Current++
		log.Debugf("tile(z:%d, x:%d, y:%d -> %d) %s", z, tile.T.X, src[i].T.Y, tile.T.Y, target)
		if bar != nil {
			bar.Increment()
		}
	}

	if bar != nil {
		bar.FinishPrint(fmt.Sprintf("Task %s Zoom %d finished ~", task.ID, z))
	}
	return nil
}
