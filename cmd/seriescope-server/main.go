package main

import (
	"flag"
	"net/http"
	"time"

	"seriescope/lib/configutil"
	"seriescope/lib/pagecache"
	"seriescope/lib/serviceutil"
	"seriescope/services/showdash"
)

type Config struct {
	Port int `json:"port"`
	// CachePath is the sqlite page cache location. Empty means an
	// in-memory cache that dies with the process.
	CachePath string `json:"cache_path"`
	CacheTTL  string `json:"cache_ttl"`
	UserAgent string `json:"user_agent"`
	// Timeout bounds each outbound page request, not the whole scrape.
	Timeout string `json:"timeout"`
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
	port := cfg.Port
	if port == 0 {
		port = 8000
	}
	ttl := time.Hour * 6
	if cfg.CacheTTL != "" {
		ttl, err = time.ParseDuration(cfg.CacheTTL)
		if err != nil {
			serviceutil.Fatal("parse cache_ttl", err)
		}
	}
	var timeout time.Duration
	if cfg.Timeout != "" {
		timeout, err = time.ParseDuration(cfg.Timeout)
		if err != nil {
			serviceutil.Fatal("parse timeout", err)
		}
	}

	var cache pagecache.Cache
	if cfg.CachePath != "" {
		sqlite, err := pagecache.OpenSqlite(cfg.CachePath, ttl)
		if err != nil {
			serviceutil.Fatal("open page cache", err)
		}
		defer sqlite.Close()
		cache = sqlite
	} else {
		cache = pagecache.NewMemory(256, ttl)
	}

	service := showdash.NewService(showdash.Options{
		Cache:     cache,
		UserAgent: cfg.UserAgent,
		Timeout:   timeout,
	})

	mux := http.NewServeMux()
	service.RegisterRoutes(mux)

	go serviceutil.StartHttpServer(port, mux)
	<-ctx.Done()
}
