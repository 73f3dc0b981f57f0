package main

import (
	"context"
	"log"
	"os"

	"github.com/dmitrijs2005/dogcatalog/internal/client/cli"
	"github.com/dmitrijs2005/dogcatalog/internal/client/config"
)

func main() {

	ctx := context.Background()

	cfg, err := config.LoadConfig(os.Args[1:])
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	cli.NewApp(cfg).Run(ctx)

}
