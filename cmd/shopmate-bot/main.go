package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"shopmate/internal/config"
	"shopmate/internal/database"
	"shopmate/internal/remote"
	"shopmate/internal/storage"
	"shopmate/internal/store"
	"shopmate/internal/telegram"
)

// syncPersister pushes every committed collection snapshot to the remote
// document store, so other devices pick it up on their next poll.
type syncPersister struct {
	syncer *remote.Syncer
}

func (p syncPersister) SaveCollection(key string, data []byte) error {
	return p.syncer.Push(context.Background(), key, data)
}

func main() {
	// 1. Load Configuration
	cfg, err := config.NewFromEnv()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// 2. Local persistence
	local, err := storage.NewLocal(cfg.DataDir)
	if err != nil {
		log.Fatalf("Failed to open data directory: %v", err)
	}

	opts := []store.Option{store.WithPersister(local)}

	// 3. Remote sync (optional)
	syncCtx, stopSync := context.WithCancel(context.Background())
	defer stopSync()

	var syncer *remote.Syncer
	if cfg.SyncEnabled {
		db, err := database.New(cfg.DatabasePath)
		if err != nil {
			log.Fatalf("Failed to initialize database: %v", err)
		}
		defer db.Close()

		repo := remote.NewRepository(db.SQL, cfg.UserID)
		syncer = remote.NewSyncer(repo, cfg.SyncInterval)
		opts = append(opts, store.WithPersister(syncPersister{syncer}))
	}

	// 4. Load collections
	st := store.New(opts...)
	for _, key := range store.AllKeys {
		data, err := local.LoadCollection(key)
		if err != nil {
			log.Fatalf("Failed to load %s: %v", key, err)
		}
		if data == nil {
			continue
		}
		if err := st.Load(key, data); err != nil {
			log.Fatalf("Failed to load %s: %v", key, err)
		}
	}

	// 5. Initialize Telegram Bot
	bot, err := telegram.NewBot(cfg, st)
	if err != nil {
		log.Fatalf("Failed to initialize Telegram Bot: %v", err)
	}

	if syncer != nil {
		go syncer.Run(syncCtx)
		go func() {
			for u := range syncer.Updates() {
				if err := bot.ApplyRemote(u.Key, u.Data); err != nil {
					log.Printf("Failed to apply synced %s: %v", u.Key, err)
				}
			}
		}()
	}

	// 6. Start Server with Graceful Shutdown
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	bot.RegisterHandlers()

	srv := &http.Server{
		Addr:    ":" + port,
		Handler: nil,
	}

	go func() {
		log.Printf("Telegram Bot Server listening on port %s", port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	stopSync()

	ctxShutdown, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctxShutdown); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server exiting")
}
