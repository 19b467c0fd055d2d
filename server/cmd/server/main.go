package main

import (
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/automoto/animsync/assets"
	cfg "github.com/automoto/animsync/config"
	"github.com/automoto/animsync/server/core"
	"github.com/automoto/animsync/shared/protocol"
)

func main() {
	configPath := flag.String("config", "", "Path to server config YAML (optional)")
	port := flag.Uint("port", 0, "Server port (overrides config)")
	tickRate := flag.Int("tickrate", 0, "Server tick rate (overrides config)")
	name := flag.String("name", "", "Server display name (overrides config)")
	demo := flag.Bool("demo", true, "Run demo nodes so observers always see traffic")
	flag.Parse()

	conf, err := cfg.LoadServer(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if *port != 0 {
		conf.Port = int(*port)
	}
	if *tickRate != 0 {
		conf.TickRate = *tickRate
	}
	if *name != "" {
		conf.Name = *name
	}
	conf.Demo = *demo

	if err := protocol.RegisterComponents(); err != nil {
		log.Fatalf("Failed to register components: %v", err)
	}

	server := core.NewServer(conf, assets.DefaultClips())

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		log.Println("Shutting down server...")
		server.Stop()
		os.Exit(0)
	}()

	log.Printf("Starting server %q on port %d (tick rate: %d/s, version: %s)",
		conf.Name, conf.Port, conf.TickRate, cfg.Version)
	if err := server.Start(uint(conf.Port)); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}
