package main

import (
	"os"

	"paili/common/log"
)

// 加载配置 -> 启动 HTTP / nats / 监控
// 也可以直接在命令行分析手牌: analyzer analyze 123456789m123p1s --json

func main() {
	if err := newRootCmd().Execute(); err != nil {
		log.Error("error happen: %v", err)
		os.Exit(1)
	}
}
