// 手动初始化演示账号脚本
//
// 创建（或复用）演示账号；演示账号没有任何题目时写入示例题目和最近 30 天的尝试记录。
// 重复执行是安全的。服务端也可以通过 -seed 参数在启动时完成同样的工作。
//
// 用法: go run scripts/seed_demo.go [-samples=false]

package main

import (
	"context"
	"dsa_tracker_backend/internal/config"
	"dsa_tracker_backend/internal/repository"
	"dsa_tracker_backend/internal/service"
	"dsa_tracker_backend/pkg/database"
	"dsa_tracker_backend/pkg/logger"
	"flag"
	"log"

	"github.com/joho/godotenv"
)

func main() {
	samples := flag.Bool("samples", true, "演示账号为空时写入示例数据")
	flag.Parse()

	_ = godotenv.Load()

	cfg, err := config.LoadConfig("configs")
	if err != nil {
		log.Fatalf("无法读取配置文件: %v", err)
	}

	logger.InitLogger(cfg)
	defer logger.Log.Sync()

	db, err := database.InitDB(&cfg.Database, cfg.Server.Mode)
	if err != nil {
		log.Fatalf("数据库连接失败: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		log.Fatalf("数据库迁移失败: %v", err)
	}

	userRepo := repository.NewUserRepository(db)
	problemRepo := repository.NewProblemRepository(db)
	attemptRepo := repository.NewAttemptRepository(db)
	problems := service.NewProblemService(problemRepo)
	attempts := service.NewAttemptService(db, problemRepo, attemptRepo)
	seed := service.NewSeedService(userRepo, problemRepo, problems, attempts, cfg.Demo)

	log.Println("初始化演示账号...")
	result, err := seed.Bootstrap(context.Background(), *samples)
	if err != nil {
		log.Fatalf("初始化失败: %v", err)
	}
	log.Printf("完成！演示账号 %s (id=%d)，新增题目 %d 道，尝试 %d 次", result.Demo.Email, result.Demo.ID, result.Problems, result.Attempts)
}
