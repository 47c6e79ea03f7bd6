package main

import (
	"context"
	"log"
	"os"

	"github.com/mkorotovs/pocketvine/internal/buildinfo"
	"github.com/mkorotovs/pocketvine/internal/cli"
	"github.com/mkorotovs/pocketvine/internal/config"
)

func main() {

	buildinfo.PrintBuildData(os.Stdout)

	ctx := context.Background()
	cfg := config.LoadConfig()
	app, err := cli.NewApp(cfg)

	if err != nil {
		log.Fatalf("%v", err)
		return
	}

	app.Run(ctx)

}
