package main

import (
	"log"

	"github.com/gin-gonic/gin"
	"github.com/recipehub/internal/config"
	"github.com/recipehub/internal/db"
	"github.com/recipehub/internal/router"
	"github.com/recipehub/internal/service"
)

func main() {
	cfg := config.Load()
	gin.SetMode(cfg.GinMode)

	// 初始化数据库
	if err := db.Init(cfg.DatabasePath); err != nil {
		log.Fatalf("failed to initialize database: %v", err)
	}

	// 空库时种入默认单位
	if err := service.NewUnitService(db.DB).SeedDefaults(service.DefaultUnits()); err != nil {
		log.Fatalf("failed to seed units: %v", err)
	}

	// 设置并运行 Gin 服务器
	r := router.SetupRouter(db.DB, cfg)
	if err := r.Run(cfg.ListenAddr); err != nil {
		log.Fatalf("failed to run server: %v", err)
	}
}
