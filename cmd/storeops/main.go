package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"storeops/infrastructure/audit"
	"storeops/infrastructure/cache"
	httpserver "storeops/infrastructure/http"
	"storeops/infrastructure/sqlite"
)

func main() {
	addr := getenv("APP_ADDR", ":8080")
	dbName := getenv("MEMORY_DB_NAME", "storeops")

	db, err := sqlite.OpenMemoryDB(dbName)
	if err != nil {
		log.Fatalf("open db: %v", err)
	}
	defer db.Close()

	if err := sqlite.ApplyMigrations(context.Background(), db); err != nil {
		log.Fatalf("apply migrations: %v", err)
	}

	sessionCache := cache.NewSessionCache()
	auditSvc := audit.NewService()

	server := httpserver.NewServer(addr, db, sessionCache, auditSvc)
	if err := server.Start(); err != nil {
		log.Fatalf("start server: %v", err)
	}
	log.Printf("storeops listening on %s", addr)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	if err := server.Stop(); err != nil {
		log.Printf("graceful shutdown error: %v", err)
	}
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
