package main

import (
	"flag"
	"fmt"
	"os"
)

const defaultConfigPath = "./conf/conf.toml"

var (
	hf         bool
	configPath string
	configSet  bool
	logLevel   string
)

func InitFlag() {
	flag.BoolVar(&hf, "h", false, "this help")
	flag.StringVar(&configPath, "c", defaultConfigPath, "set config `file`")
	flag.StringVar(&logLevel, "l", "info", "set log level (default: info)")
	flag.Usage = usage
	flag.Parse()

	if hf {
		flag.Usage()
		os.Exit(0)
	}
	flag.Visit(func(f *flag.Flag) {
		if f.Name == "c" {
			configSet = true
		}
	})
}

func usage() {
	fmt.Fprintf(os.Stderr, `gwc2zyx version: gwc2zyx/v0.1.0
Usage: gwc2zyx [-h] [-c filename] [-l logLevel] [input_dir [output_dir]]
`)
	flag.PrintDefaults()
}
