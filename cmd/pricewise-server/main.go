package main

import (
	"flag"
	"net/http"
	"pricewise-backend/lib/configutil"
	"pricewise-backend/lib/serpapi"
	"pricewise-backend/lib/serviceutil"
	"pricewise-backend/lib/sqliteutil"
	"pricewise-backend/services/accounts"
	"pricewise-backend/services/accounts/db"
	"pricewise-backend/services/search"
	"pricewise-backend/services/webui"
)

type Config struct {
	Port     int                 `json:"port"`
	Database string              `json:"database"`
	Serpapi  serpapi.Config      `json:"serpapi"`
	Smtp     accounts.SmtpConfig `json:"smtp"`
}

func main() {
	verbose := flag.Bool("v", false, "Enable verbose logging/instrumentation.")
	flag.Parse()

	ctx := serviceutil.SignalContext()

	InitTelemetry(ctx, *verbose)

	cfg, err := configutil.ReadConfig[Config]("config.json5")
	if err != nil {
		serviceutil.Fatal("read config", err)
	}
	if cfg.Port == 0 {
		cfg.Port = 8000
	}
	if cfg.Database == "" {
		cfg.Database = "pricewise.db"
	}

	database, err := sqliteutil.OpenDB(db.Schema, cfg.Database)
	if err != nil {
		serviceutil.Fatal("open database", err)
	}

	searchService := search.NewService(serpapi.NewClient(cfg.Serpapi))
	accountsService := accounts.NewService(database, accounts.Options{Smtp: cfg.Smtp})

	mux := http.NewServeMux()
	webui.NewService(searchService, accountsService).Register(mux)

	go serviceutil.StartHttpServer(cfg.Port, mux)
	<-ctx.Done()
}
