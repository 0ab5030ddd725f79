package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/joho/godotenv"

	"smartpantry/internal/advisor"
	"smartpantry/internal/budget"
	"smartpantry/internal/config"
	"smartpantry/internal/expiry"
	"smartpantry/internal/export"
	pantryHttp "smartpantry/internal/http"
	advisorHandler "smartpantry/internal/http/advisor"
	budgetHandler "smartpantry/internal/http/budget"
	exportHandler "smartpantry/internal/http/export"
	importHandler "smartpantry/internal/http/importcsv"
	inventoryHandler "smartpantry/internal/http/inventory"
	locationHandler "smartpantry/internal/http/location"
	"smartpantry/internal/importer"
	"smartpantry/internal/inventory"
	invStore "smartpantry/internal/inventory/store"
	"smartpantry/internal/llm"
	"smartpantry/internal/location"
	"smartpantry/internal/product"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	gen, err := llm.New(cfg.OpenAI.APIKey, cfg.OpenAI.Model, cfg.OpenAI.Timeout)
	if err != nil {
		slog.Error("failed to initialize text generation client", "error", err)
		os.Exit(1)
	}

	catalog := product.NewCache(product.NewClient(cfg.Products.BaseURL, cfg.Products.Timeout))

	var (
		inventoryService = inventory.NewService(invStore.New(), catalog, expiry.NewEstimator(gen))
		budgetService    = budget.NewService(inventoryService, gen)
		locationService  = location.NewService()
		advisorService   = advisor.NewService(inventoryService, budgetService, locationService, gen)
		exportService    = export.NewService(inventoryService)
		receiptParser    = importer.NewParser()
	)

	var (
		inventoryH = inventoryHandler.NewHandler(inventoryService)
		budgetH    = budgetHandler.NewHandler(budgetService)
		locationH  = locationHandler.NewHandler(locationService)
		advisorH   = advisorHandler.NewHandler(advisorService)
		importH    = importHandler.NewHandler(receiptParser, inventoryService)
		exportH    = exportHandler.NewHandler(exportService)
	)

	router := pantryHttp.New(inventoryH, budgetH, locationH, advisorH, importH, exportH, cfg.CORS.AllowedOrigins)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	slog.Info("starting server", "app", cfg.App.Name, "port", port)

	if err := http.ListenAndServe(port, router); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}
