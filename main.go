// @title 考试补救推荐 API
// @version 1.0
// @description 基于内部考试成绩的个性化补救资源推荐与学习计划服务。

// @host localhost:8080
// @BasePath /api
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

package main

import (
	"flag"
	"log"

	"github.com/trahulprabhu38/major-project-sub000/internal/app"
	"github.com/trahulprabhu38/major-project-sub000/internal/config"
	"github.com/trahulprabhu38/major-project-sub000/pkg/configwatcher"
	"github.com/trahulprabhu38/major-project-sub000/pkg/logger"
)

func main() {
	// 命令行参数
	migrateOnly := flag.Bool("migrate-only", false, "只执行数据库迁移，完成后退出")
	migrate := flag.Bool("migrate", false, "启动时强制执行数据库迁移（即使是 release 模式）")
	flag.Parse()

	cfg, err := config.LoadConfig("configs")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	cfg.ForceMigrate = *migrate || *migrateOnly
	cfg.MigrateOnly = *migrateOnly

	application := app.NewApp(cfg)
	defer logger.Sync()

	if *migrateOnly {
		log.Println("数据库迁移完成，退出程序")
		return
	}

	// 推荐引擎的默认参数支持热更新
	go configwatcher.WatchConfig("configs/config.yaml", func(updated *config.Config) {
		updated.Recommender.ApplyDefaults()
		*application.Config = *updated
	})

	application.Run()
}
