package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/Atomiksnip3r04/Gestore-spese/internal/config"
	"github.com/Atomiksnip3r04/Gestore-spese/internal/database"
	"github.com/Atomiksnip3r04/Gestore-spese/internal/router"

	"github.com/joho/godotenv"
)

func main() {
	// .env is optional, real deployments set GS_* variables directly
	_ = godotenv.Load()

	cfg, err := config.Load("config.yaml")
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	// ensure basic directories exist
	if err := ensureDir(filepath.Dir(cfg.Database.Path)); err != nil {
		log.Fatalf("create data dir: %v", err)
	}
	if err := ensureDir(cfg.App.UploadDir); err != nil {
		log.Fatalf("create upload dir: %v", err)
	}

	// init database
	db, err := database.Init(cfg.Database)
	if err != nil {
		log.Fatalf("init database: %v", err)
	}

	// run migrations
	if err := database.AutoMigrate(db); err != nil {
		log.Fatalf("migrate database: %v", err)
	}

	// setup router
	r := router.SetupRouter(cfg, db)

	addr := fmt.Sprintf("%s:%d", cfg.Server.Address, cfg.Server.Port)
	log.Printf("server listening on %s", addr)
	if err := r.Run(addr); err != nil {
		log.Fatalf("run server: %v", err)
	}
}

func ensureDir(dir string) error {
	if dir == "" || dir == "." {
		return nil
	}
	return os.MkdirAll(dir, 0o755)
}
