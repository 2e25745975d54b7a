package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"cubechess/internal/server/game"
	httpserver "cubechess/internal/server/http"
	"cubechess/internal/storage"
)

func main() {
	addr := flag.String("addr", getenv("CUBECHESS_ADDR", ":2888"), "listen address")
	dbDir := flag.String("db", getenv("CUBECHESS_DB", ""), "badger directory for saved games (empty = in-memory)")
	webDir := flag.String("web", getenv("CUBECHESS_WEB", ""), "optional directory with static front-end files")
	flag.Parse()

	if err := run(*addr, *dbDir, *webDir); err != nil {
		log.Fatal(err)
	}
	log.Println("server stopped")
}

// run 返回前一定会关闭 store
func run(addr, dbDir, webDir string) error {
	store, err := storage.Open(dbDir)
	if err != nil {
		return fmt.Errorf("open storage %q: %w", dbDir, err)
	}
	defer func() {
		if err := store.Close(); err != nil {
			log.Printf("close storage: %v", err)
		}
	}()

	srv := httpserver.NewServer(game.NewManager(store), webDir)

	go func() {
		sig := make(chan os.Signal, 1)
		signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
		<-sig
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Close(ctx); err != nil {
			log.Printf("shutdown: %v", err)
		}
	}()

	return srv.Listen(addr)
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
