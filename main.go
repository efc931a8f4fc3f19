package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"audio-bridge/cmd"
	"audio-bridge/internal/config"
	"audio-bridge/internal/player"
	"audio-bridge/internal/server"
)

func main() {
	args, err := cmd.ParseArgs()
	if err != nil {
		fmt.Println("[ERROR]", err)
		cmd.PrintUsageAndExit()
	}

	cfg, err := config.Load(args.ConfigPath)
	if err != nil {
		fmt.Println("[ERROR]", err)
		os.Exit(1)
	}
	if args.Addr != "" {
		cfg.Addr = args.Addr
	}

	platform := player.NewPlatform(func() player.Engine {
		return player.NewStaticEngine(cfg.Durations)
	}, cfg.EventBuffer)

	api := server.NewAPI(platform)
	events := server.NewEventServer(platform)
	router := server.SetupRouter(api, events)

	srv := &http.Server{
		Addr:    cfg.Addr,
		Handler: router,
	}

	go func() {
		fmt.Printf("[Main] Listening on %s\n", cfg.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			fmt.Println("[ERROR]", err)
			os.Exit(1)
		}
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig

	fmt.Println("[Main] Shutting down")
	platform.DisposeAll()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		fmt.Println("[ERROR]", err)
	}
	fmt.Println("[Main] Stopped")
}
