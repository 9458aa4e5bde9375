package main

import (
	"embed"
	"flag"
	"log"

	"ninjazombie/internal/config"
	"ninjazombie/internal/history"
	"ninjazombie/internal/server"
)

//go:embed web/static
var static embed.FS

func main() {
	configPath := flag.String("config", "settings.yaml", "settings file")
	port := flag.Int("port", 0, "server port (overrides settings)")
	dbPath := flag.String("db", "", `match history database (overrides settings, "off" disables)`)
	flag.Parse()

	settings, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("config error: %v", err)
	}
	if *port != 0 {
		settings.Server.Port = *port
	}
	switch *dbPath {
	case "":
	case "off":
		settings.Server.Database = ""
	default:
		settings.Server.Database = *dbPath
	}

	var store *history.Store
	if settings.Server.Database != "" {
		store, err = history.Open(settings.Server.Database)
		if err != nil {
			log.Fatalf("history error: %v", err)
		}
		defer store.Close()
	}

	srv := server.New(settings, store, static)
	defer srv.Close()
	if err := srv.Start(); err != nil {
		log.Printf("server error: %v", err)
	}
}
