package main

import (
	"context"
	"flag"
	"log"

	"github.com/smelnikov/authsvc/internal/client/cli"
	"github.com/smelnikov/authsvc/internal/client/client"
)

func main() {

	addr := flag.String("addr", "127.0.0.1:3000", "auth server gRPC address")
	flag.Parse()

	api, err := client.NewAuthClient(*addr)
	if err != nil {
		log.Fatalf("%v", err)
	}
	defer api.Close()

	app := cli.NewApp(api)

	if err := app.Run(context.Background(), flag.Arg(0)); err != nil {
		log.Fatalf("%v", err)
	}
}
