package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/alexanderkazanski/ufc-database/internal/ingest/ufcstats"
)

// Manual test utility to verify the ufcstats.com scraper works end to end
// without touching the database. Fetches the first event-list page, then
// the fights of the most recent event.
func main() {
	log.Println("Testing ufcstats.com Scraper")
	log.Println("============================")

	ctx, cancel := context.WithTimeout(context.Background(), 120*time.Second)
	defer cancel()

	client, err := ufcstats.NewClient()
	if err != nil {
		log.Fatalf("Failed to create client: %v", err)
	}
	defer client.Close()

	doc, err := client.FetchEventList(ctx, 1)
	if err != nil {
		log.Fatalf("Failed to fetch event list: %v", err)
	}

	events := ufcstats.ParseEventList(doc)
	log.Printf("Found %d events", len(events))
	if len(events) == 0 {
		log.Println("No events parsed, dumping nothing and exiting")
		os.Exit(1)
	}

	for i, event := range events {
		if i >= 5 {
			break
		}
		fmt.Printf("  %s | %s | %s\n", event.Name, event.Date, event.Location)
	}

	latest := events[0]
	log.Printf("Fetching fights for: %s", latest.Name)

	eventDoc, err := client.FetchPage(ctx, latest.URL)
	if err != nil {
		log.Fatalf("Failed to fetch event page: %v", err)
	}

	fights := ufcstats.ParseEventFights(eventDoc)
	log.Printf("Found %d fights", len(fights))

	for _, fight := range fights {
		fmt.Printf("  %s (%s) vs %s (%s) | %s | %s | R%s %s\n",
			fight.Fighter1Name, fight.Fighter1Result,
			fight.Fighter2Name, fight.Fighter2Result,
			fight.WeightClass, fight.Method, fight.Round, fight.Time)
	}

	log.Println("✅ Scraper test complete")
}
