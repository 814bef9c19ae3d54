package main

import (
	"context"
	"log"

	"github.com/smelnikov/authsvc/internal/server"
	"github.com/smelnikov/authsvc/internal/server/config"
)

func main() {

	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	app, err := server.NewApp(ctx, cfg)
	if err != nil {
		log.Printf("%v", err)
		return
	}

	app.Run(ctx)

}
