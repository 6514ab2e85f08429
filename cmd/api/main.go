package main

import (
	"log"
	"net/http"
	"os"

	"github.com/joho/godotenv"

	"github.com/renoveta/badrum-estimator/internal/catalog"
	"github.com/renoveta/badrum-estimator/internal/estimate"
	httpapi "github.com/renoveta/badrum-estimator/internal/http"
	"github.com/renoveta/badrum-estimator/internal/pricing"
	"github.com/renoveta/badrum-estimator/internal/storage"
)

type Config struct {
	Address     string
	RulesPath   string
	CatalogPath string
	DBPath      string
}

func main() {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("skip .env (reason: %v)", err)
	}
	cfg := loadConfig()

	rules, err := catalog.LoadScopeRules(cfg.RulesPath)
	if err != nil {
		log.Printf("use default scope rules (reason: %v)", err)
		rules = estimate.DefaultScopeRules()
	}

	priceCatalog, err := catalog.LoadPriceCatalog(cfg.CatalogPath)
	if err != nil {
		log.Printf("use default price catalog (reason: %v)", err)
		priceCatalog = pricing.DefaultCatalog()
	}

	store, err := storage.OpenSQLite(cfg.DBPath)
	if err != nil {
		log.Fatalf("open sqlite: %v", err)
	}
	defer store.Close()
	if err := store.EnsureSchema(); err != nil {
		log.Fatalf("ensure schema: %v", err)
	}

	rot := estimate.ROTConfigFromEnv()
	opts := &estimate.Options{
		Rules:  rules,
		Pricer: pricing.NewEngine(priceCatalog),
		ROT:    &rot,
	}

	srv := httpapi.NewServer(opts, &httpapi.EstimatesRepo{Store: store})

	log.Printf("API listening on %s", cfg.Address)
	if err := http.ListenAndServe(cfg.Address, srv.Routes()); err != nil {
		log.Fatalf("server error: %v", err)
	}
}

func loadConfig() Config {
	return Config{
		Address:     getEnv("API_ADDRESS", ":8080"),
		RulesPath:   getEnv("RULES_PATH", "configs/scope_rules.yaml"),
		CatalogPath: getEnv("CATALOG_PATH", "configs/price_catalog.json"),
		DBPath:      getEnv("DB_PATH", "data/estimates.db"),
	}
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
