package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/spf13/viper"
)

var conf *Conf

type Conf struct {
	App struct {
		Version string `mapstructure:"version"`
		Title   string `mapstructure:"title"`
	} `mapstructure:"app"`
	Input struct {
		Directory string `mapstructure:"directory"`
		Extension string `mapstructure:"extension"`
		Pattern   string `mapstructure:"pattern"`
	} `mapstructure:"input"`
	Output struct {
		Directory      string `mapstructure:"directory"`
		Template       string `mapstructure:"template"`
		LogDir         string `mapstructure:"logDir"`
		OutputTerminal bool   `mapstructure:"outputTerminal"`
		Progress       bool   `mapstructure:"progress"`
	} `mapstructure:"output"`
	Manifest struct {
		Path string `mapstructure:"path"`
	} `mapstructure:"manifest"`
}

// InitConf 初始化配置
func InitConf(cfgFile string, explicit bool, args []string) {
	c, err := loadConf(cfgFile, explicit)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	// 命令行参数优先
	if len(args) > 0 {
		c.Input.Directory = args[0]
	}
	if len(args) > 1 {
		c.Output.Directory = args[1]
	}
	conf = c
}

// loadConf 读取配置文件; 未指定且不存在时使用默认值
func loadConf(cfgFile string, explicit bool) (*Conf, error) {
	v := viper.New()
	v.SetConfigType("toml")
	v.SetEnvPrefix("gwc2zyx")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv() // read in environment variables that match

	// 设置默认值
	v.SetDefault("app.version", "v 0.1.0")
	v.SetDefault("app.title", "GWC to ZYX Tile Reindexer")
	v.SetDefault("input.directory", DefaultInputDir)
	v.SetDefault("input.extension", PNG)
	v.SetDefault("input.pattern", GWCPattern)
	v.SetDefault("output.directory", DefaultOutputDir)
	v.SetDefault("output.template", ZYXTemplate)
	v.SetDefault("output.logDir", "")
	v.SetDefault("output.outputTerminal", true)
	v.SetDefault("output.progress", true)
	v.SetDefault("manifest.path", "")

	if cfgFile != "" {
		_, err := os.Stat(cfgFile)
		switch {
		case err == nil:
			v.SetConfigFile(cfgFile)
			if err := v.ReadInConfig(); err != nil {
				return nil, fmt.Errorf("read config file(%s) error, details: %w", cfgFile, err)
			}
		case errors.Is(err, fs.ErrNotExist) && !explicit:
		default:
			return nil, fmt.Errorf("config file(%s) not exist", cfgFile)
		}
	}

	var c Conf
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("配置文件解析失败: %w", err)
	}
	return &c, nil
}
