package main

import (
	"log"

	"user-service/confs"
	"user-service/db"
	"user-service/logger"
	"user-service/server"
)

func main() {
	// load config
	cfg, err := confs.LoadConfig()
	if err != nil {
		log.Fatalf("Error loading config: %v", err)
	}

	zlog, err := logger.New(cfg.LogLevel)
	if err != nil {
		log.Fatalf("Error building logger: %v", err)
	}
	defer func() { _ = zlog.Sync() }()

	// connect to database Postgres
	database, err := db.Connect(cfg, zlog)
	if err != nil {
		zlog.Fatalw("failed to connect to database", "error", err)
	}

	// run server
	srv := server.NewServer(cfg, database, zlog)
	if err := srv.Start(); err != nil {
		zlog.Fatalw("server stopped", "error", err)
	}
}
