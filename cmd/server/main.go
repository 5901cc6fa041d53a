package main

import (
	"fmt"
	"log"

	"rh-documentos/internal/config"
	"rh-documentos/internal/database"
	"rh-documentos/internal/server"
	"rh-documentos/internal/storage"
	"rh-documentos/pkg/logger"

	"go.uber.org/zap"
)

func main() {
	cfg := config.Load()

	zlog, err := logger.New(cfg.Env)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer zlog.Sync()

	database.Init(cfg.DBDSN, cfg.AdminUsername, cfg.AdminPassword)

	if err := storage.Init(cfg.UploadDir); err != nil {
		zlog.Fatal("failed to init storage", zap.Error(err))
	}

	// recolhe arquivos órfãos de operações interrompidas
	if inUse, err := database.DocumentoArquivos(); err == nil {
		if removed, err := storage.Sweep(inUse); err == nil && removed > 0 {
			zlog.Info("removed orphaned upload files", zap.Int("count", removed))
		}
	}

	r := server.NewRouter(cfg, zlog)

	addr := fmt.Sprintf(":%s", cfg.ServerPort)
	zlog.Info("starting server", zap.String("addr", addr))
	if err := r.Run(addr); err != nil {
		zlog.Fatal("server error", zap.Error(err))
	}
}
