package main

import (
	"log"
	"os"

	"github.com/cousoworks/tech-store/cmd/storectl/app"
	"github.com/cousoworks/tech-store/configs"
)

func main() {
	cfgDir := os.Getenv("STORECTL_CONFIG_DIR")
	if cfgDir == "" {
		cfgDir = "configs"
	}

	cfg, err := configs.Load(cfgDir)
	if err != nil {
		log.Fatal(err)
	}

	if err := app.Run(cfg); err != nil {
		log.Fatal(err)
	}
}
