package main

import (
	"flag"
	"log"
	"os"

	"sales-crm/internal/api"
	"sales-crm/internal/config"
	"sales-crm/internal/logger"
)

func main() {
	configFile := flag.String("config", "", "path to a YAML config file")
	flag.Parse()

	cfg, err := config.Load(*configFile)
	if err != nil {
		log.Fatalln(err)
	}
	if cfg.TLSEnabled() {
		_, certErr := os.Stat(cfg.Server.CertFile)
		_, keyErr := os.Stat(cfg.Server.KeyFile)
		if os.IsNotExist(certErr) || os.IsNotExist(keyErr) {
			log.Fatalln("Key and cert files do not exist")
		}
	}

	serverApi := api.NewApi(cfg, logger.New(cfg.Log))
	serverApi.Start()
}
