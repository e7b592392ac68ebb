package main

import (
	"flag"
	"log"
	"net/http"
	"time"

	"github.com/joho/godotenv"

	"github.com/ecosort/wastescan"
	"github.com/ecosort/wastescan/internal/config"
	"github.com/ecosort/wastescan/internal/server"
	"github.com/ecosort/wastescan/pkg/vision"
)

func main() {
	var configPath string
	flag.StringVar(&configPath, "config", "", "path to a JSON config file (optional)")
	flag.Parse()

	// .env is optional; env vars win over the config file either way
	if err := godotenv.Load(); err == nil {
		log.Printf("loaded environment from .env")
	}

	cfg := config.Default()
	if configPath != "" {
		loaded, err := config.LoadFromFile(configPath)
		if err != nil {
			log.Fatalf("config: %v", err)
		}
		cfg = loaded
	}
	cfg.ApplyEnv()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("config: %v", err)
	}

	pipeline := wastescan.NewWithOptions(wastescan.Options{
		Detector:         vision.Config{Parallel: cfg.Detector.Parallel},
		MaxScanDimension: cfg.Detector.MaxScanDimension,
	})

	srv := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      server.New(cfg, pipeline).Handler(),
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeoutSec) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeoutSec) * time.Second,
	}

	log.Printf("wastescan %s listening on %s", wastescan.Version, cfg.Server.Addr)
	log.Fatal(srv.ListenAndServe())
}
