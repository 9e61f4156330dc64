package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
)

func main() {
	addr := flag.String("addr", ":8080", "HTTP listen address")
	configPath := flag.String("config", "", "Optional JSON config file overriding the defaults")
	flag.Parse()

	if *configPath != "" {
		cfg, err := LoadConfigFile(*configPath)
		if err != nil {
			log.Fatalf("[backend] %v", err)
		}
		configStore.Update(cfg)
		log.Printf("[backend] loaded config from %s", *configPath)
	}

	controller := NewGameController(DefaultGameSettings(), log.Default())
	hub := NewHub()
	ghostHub := NewHub()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	controller.SetGhostPublisher(
		func() bool { return ghostHub.HasClients() && GetConfig().GhostMode },
		func(payload ghostPayload) {
			ghostHub.Publish("ghost", payload)
		},
	)

	go hub.Run(ctx.Done())
	go ghostHub.Run(ctx.Done())
	go runTicker(ctx, controller, hub)

	server := &http.Server{
		Addr:    *addr,
		Handler: newRouter(controller, hub, ghostHub),
	}
	serverErrCh := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErrCh <- err
		}
		close(serverErrCh)
	}()

	sigCtx, stopSignals := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stopSignals()

	log.Printf("[backend] listening on %s", *addr)
	var runErr error
	select {
	case <-sigCtx.Done():
		log.Printf("[backend] shutdown signal received: %v", sigCtx.Err())
	case err, ok := <-serverErrCh:
		if ok {
			runErr = err
			log.Printf("[backend] server error: %v", err)
		}
	}

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelShutdown()
	if err := server.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Printf("[backend] graceful shutdown failed: %v", err)
		if closeErr := server.Close(); closeErr != nil && !errors.Is(closeErr, http.ErrServerClosed) {
			log.Printf("[backend] forced close failed: %v", closeErr)
		}
	}

	cancel()
	controller.Shutdown()
	if runErr != nil {
		log.Printf("[backend] exiting after server error: %v", runErr)
		os.Exit(1)
	}
}

// runTicker drives AI turns and pushes every applied move to websocket clients.
func runTicker(ctx context.Context, controller *GameController, hub *Hub) {
	ticker := time.NewTicker(50 * time.Millisecond)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if !controller.Tick() {
				continue
			}
			if entry, ok := controller.LatestHistoryEntry(); ok {
				hub.Publish("history", historyPayload{History: []historyEntryDTO{historyEntryToDTO(entry)}})
			}
			hub.Publish("status", controllerStatus(controller))
		}
	}
}
