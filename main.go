package main

import "flag"

func main() {
	// 初始化控制台
	InitFlag()
	// 初始化配置
	InitConf(configPath, configSet, flag.Args())
	// 初始化日志
	InitLog(logLevel)
	// 开始安全退出任务
	InitSafeExit()
	// 开始任务
	if err := InitTask(); err != nil {
		log.Fatalf("%s failed: %s", conf.App.Title, err)
	}
}
