package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/iWorld-y/sales_agent/app/sales_agent/pkg/config"
	"github.com/iWorld-y/sales_agent/app/sales_agent/pkg/logger"
	"github.com/iWorld-y/sales_agent/app/sales_agent/pkg/storage"
)

const usage = `usage: sales_agent [-conf configs/config.yaml] <command> [flags]

commands:
  report     generate a prospect report and append it to the history
  keywords   print or replace the monitored alert keywords
  alerts     scan keywords and email the matches
`

func main() {
	confPath := flag.String("conf", "configs/config.yaml", "config path")
	flag.Usage = func() { fmt.Fprint(os.Stderr, usage) }
	flag.Parse()

	if flag.NArg() < 1 {
		flag.Usage()
		os.Exit(2)
	}

	// 1. 加载配置
	cfg, err := config.LoadConfig(*confPath)
	if err != nil {
		log.Fatalf("无法加载配置文件: %v", err)
	}

	// 2. 初始化日志
	if err := logger.InitLogger(cfg.Log.Level, cfg.Log.File); err != nil {
		log.Fatalf("无法初始化日志: %v", err)
	}

	// 3. 初始化存储
	store, err := storage.New(cfg.Storage)
	if err != nil {
		logger.Log.Fatalf("无法初始化存储: %v", err)
	}
	defer store.Close()

	a := newApp(cfg, store, os.Stdout)
	if err := a.run(context.Background(), flag.Arg(0), flag.Args()[1:]); err != nil {
		failure(a.out, "%v", err)
		store.Close()
		os.Exit(1)
	}
}
