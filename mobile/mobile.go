package mobile

import (
	"log"

	"cubechess/internal/server/game"
	httpserver "cubechess/internal/server/http"
	"cubechess/internal/storage"
)

// StartServer starts the local HTTP server in the background.
// dbDir: directory for saved games, empty keeps games in memory
// webDir: physical path to the extracted web assets
// port: port to listen on, e.g. "2888"
func StartServer(dbDir string, webDir string, port string) {
	store, err := storage.Open(dbDir)
	if err != nil {
		log.Printf("Failed to open storage: %v", err)
		return
	}
	srv := httpserver.NewServer(game.NewManager(store), webDir)

	// Run in background so it doesn't block the Android UI thread
	go func() {
		defer store.Close()
		if err := srv.Listen("127.0.0.1:" + port); err != nil {
			log.Printf("Server Error: %v", err)
		}
	}()
}
