// Command ratescan runs the rate-extraction pipeline once and prints the
// offers as JSON. Useful for prompt tweaking without going through the API.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"os"
	"time"

	"github.com/dlow/fd-tracker/internal/logger"
	"github.com/dlow/fd-tracker/internal/rates"
)

func main() {
	log := logger.New()

	sortFlag := flag.String("sort", string(rates.DefaultSortKey), "Sort key: rate_desc, rate_asc, deposit_asc, bank_asc")
	modelFlag := flag.String("model", "gemini-2.5-flash", "Gemini model name")
	staticOnly := flag.Bool("static", false, "Skip model calls and print the static fallback dataset")
	flag.Parse()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	var pipeline *rates.Pipeline
	if *staticOnly {
		pipeline = rates.NewPipelineWithStrategies(log)
	} else {
		gen, err := rates.NewGeminiGenerator(ctx, *modelFlag)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to create Gemini client")
		}
		pipeline = rates.NewPipeline(gen, log)
	}

	offers := pipeline.Scan(ctx)
	rates.SortOffers(offers, rates.SortKey(*sortFlag))

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(offers); err != nil {
		log.Fatal().Err(err).Msg("Failed to encode offers")
	}
}
