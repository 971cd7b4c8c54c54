package main

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/lab1702/rtype-server/internal/config"
	"github.com/lab1702/rtype-server/internal/instance"
	"github.com/lab1702/rtype-server/internal/transport"
)

func main() {
	cfg, err := config.Parse(os.Args[1:])
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	log.Printf("Starting R-Type server: udp=:%s spectator=:%s tickRate=%d bossSpawnWave=%d",
		cfg.UDPPort, cfg.SpectatorPort, cfg.TickRate, cfg.BossSpawnWave)

	manager := instance.NewManager(instance.Config{
		BossSpawnWave: cfg.BossSpawnWave,
		Seed:          time.Now().UnixNano(),
		PlayerTimeout: cfg.PlayerTimeout(),
	})

	gameServer, err := transport.NewServer(":"+cfg.UDPPort, manager, cfg.TickRate)
	if err != nil {
		log.Fatalf("udp listen: %v", err)
	}
	go gameServer.Run()

	spectatorServer := transport.NewSpectatorServer(manager, cfg.TickRate)
	go spectatorServer.Run()

	mux := http.NewServeMux()
	mux.HandleFunc("/spectate", spectatorServer.ServeHTTP)
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})
	mux.HandleFunc("/api/rooms", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]int{
			"roomCount":    manager.GetInstanceCount(),
			"totalPlayers": manager.GetTotalPlayerCount(),
		})
	})

	httpSrv := &http.Server{
		Addr:         ":" + cfg.SpectatorPort,
		Handler:      mux,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("spectator server failed: %v", err)
		}
	}()

	log.Printf("Spectator feed at http://localhost:%s/spectate", cfg.SpectatorPort)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigChan
	log.Printf("Shutting down server (signal: %v)...", sig)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	gameServer.Shutdown()
	if err := httpSrv.Shutdown(ctx); err != nil {
		log.Printf("spectator server shutdown error: %v", err)
	}

	log.Println("Server stopped")
	os.Exit(0)
}
