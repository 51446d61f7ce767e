package main

import (
	"context"
	"log"
	"os"

	"rehearse/internal/config"
	"rehearse/internal/daemonrun"
)

func main() {
	cfg, _, _, err := config.Load("")
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	if err := daemonrun.Run(context.Background(), cfg, daemonrun.Options{}); err != nil {
		log.Printf("rehearsed: %v", err)
		os.Exit(1)
	}
}
