package ufcstats

import (
	"context"
	"fmt"
	"log"

	"github.com/alexanderkazanski/ufc-database/internal/ingest"
	"github.com/alexanderkazanski/ufc-database/internal/ingest/parse"
	"github.com/alexanderkazanski/ufc-database/internal/store"
)

// Options controls how much of each event the ingester fetches. Fighter
// profiles and fight detail pages each cost one page load per fighter or
// bout, so large backfills usually disable them on the first pass.
type Options struct {
	Pages           int  // event-list pages to walk, 0 means just the first
	MaxEvents       int  // stop after this many events, 0 means no limit
	FighterProfiles bool // fetch each fighter's profile page
	FightDetails    bool // fetch per-round stats for each bout
	FighterHistory  bool // store each fighter's career table, needs FighterProfiles
}

// HistoryStore persists a fighter's scraped career record.
type HistoryStore interface {
	ReplaceByIdentityKey(ctx context.Context, identityKey string, entries []*store.FighterHistory) error
}

// Ingester walks ufcstats.com and feeds assembled rows to the importer.
type Ingester struct {
	client   *Client
	importer *ingest.Importer
	history  HistoryStore

	// profileCache avoids re-fetching a fighter who appears on several
	// cards in the same run. historyStored tracks which fighters already
	// had their career table written this run.
	profileCache  map[string]*FighterProfile
	historyCache  map[string][]FighterHistoryEntry
	historyStored map[string]bool

	onEvent func(ctx context.Context, eventName string, counts ingest.Counts)
}

func NewIngester(client *Client, importer *ingest.Importer) *Ingester {
	return &Ingester{
		client:        client,
		importer:      importer,
		profileCache:  make(map[string]*FighterProfile),
		historyCache:  make(map[string][]FighterHistoryEntry),
		historyStored: make(map[string]bool),
	}
}

// SetHistoryStore enables career-table persistence for scraped fighters.
func (i *Ingester) SetHistoryStore(hs HistoryStore) {
	i.history = hs
}

// OnEventImported registers a callback invoked after each event's rows
// are imported, with the counts produced by that event alone.
func (i *Ingester) OnEventImported(fn func(ctx context.Context, eventName string, counts ingest.Counts)) {
	i.onEvent = fn
}

// IngestEvents scrapes completed events and imports every bout found.
// Row assembly errors skip the bout; importer semantics decide what is
// fatal beyond that.
func (i *Ingester) IngestEvents(ctx context.Context, opts Options) (ingest.Counts, error) {
	var total ingest.Counts

	pages := opts.Pages
	if pages < 1 {
		pages = 1
	}

	eventCount := 0
	for page := 1; page <= pages; page++ {
		doc, err := i.client.FetchEventList(ctx, page)
		if err != nil {
			return total, fmt.Errorf("fetching event list page %d: %w", page, err)
		}

		events := ParseEventList(doc)
		log.Printf("✓ Found %d events on page %d", len(events), page)

		for _, event := range events {
			if opts.MaxEvents > 0 && eventCount >= opts.MaxEvents {
				return total, nil
			}
			eventCount++

			counts, err := i.ingestEvent(ctx, event, opts)
			total = addCounts(total, counts)
			if err != nil {
				return total, err
			}
		}
	}

	return total, nil
}

func (i *Ingester) ingestEvent(ctx context.Context, event EventListing, opts Options) (ingest.Counts, error) {
	log.Printf("[ingest] Scraping event: %s (%s)", event.Name, event.Date)

	doc, err := i.client.FetchPage(ctx, event.URL)
	if err != nil {
		log.Printf("⊘ Skipping event %q: %v", event.Name, err)
		return ingest.Counts{Skipped: 1}, nil
	}

	fights := ParseEventFights(doc)
	log.Printf("✓ Found %d fights at %s", len(fights), event.Name)

	wantHistory := opts.FighterHistory && i.history != nil

	var rows []*ingest.Row
	for _, fight := range fights {
		var p1, p2 *FighterProfile
		if opts.FighterProfiles {
			p1 = i.fighterProfile(ctx, fight.Fighter1URL, wantHistory)
			p2 = i.fighterProfile(ctx, fight.Fighter2URL, wantHistory)
		}

		var detail map[string]string
		if opts.FightDetails && fight.DetailURL != "" {
			detailDoc, err := i.client.FetchPage(ctx, fight.DetailURL)
			if err != nil {
				log.Printf("⊘ Fight detail %s: %v", fight.DetailURL, err)
			} else {
				detail = ParseFightDetail(detailDoc)
			}
		}

		rows = append(rows, BuildRow(event, fight, p1, p2, detail))
	}

	counts, err := i.importer.ImportRows(ctx, rows)
	if err != nil {
		return counts, err
	}

	// Career tables are written after the import so every fighter row
	// already exists under its identity key.
	if wantHistory {
		for _, fight := range fights {
			i.storeFighterHistory(ctx, fight.Fighter1URL)
			i.storeFighterHistory(ctx, fight.Fighter2URL)
		}
	}

	if i.onEvent != nil {
		i.onEvent(ctx, event.Name, counts)
	}
	return counts, nil
}

// storeFighterHistory persists one fighter's parsed career table, once per
// run. Failures are logged and do not abort the event.
func (i *Ingester) storeFighterHistory(ctx context.Context, url string) {
	if url == "" || i.historyStored[url] {
		return
	}
	entries, ok := i.historyCache[url]
	if !ok {
		return
	}

	if err := i.history.ReplaceByIdentityKey(ctx, url, historyRecords(entries)); err != nil {
		log.Printf("⊘ Fighter history %s: %v", url, err)
		return
	}
	i.historyStored[url] = true
}

// historyRecords converts parsed career rows to storable form, with the
// shared placeholder policy nulling empty and "---" values.
func historyRecords(entries []FighterHistoryEntry) []*store.FighterHistory {
	records := make([]*store.FighterHistory, 0, len(entries))
	for _, e := range entries {
		records = append(records, &store.FighterHistory{
			OpponentName: parse.AsCleanString(e.OpponentName),
			OpponentURL:  parse.AsCleanString(e.OpponentURL),
			Result:       parse.AsCleanString(e.Result),
			KD:           parse.AsCleanString(e.KD),
			Str:          parse.AsCleanString(e.Str),
			TD:           parse.AsCleanString(e.TD),
			Sub:          parse.AsCleanString(e.Sub),
			Method:       parse.AsCleanString(e.Method),
			Round:        parse.AsCleanString(e.Round),
			Time:         parse.AsCleanString(e.Time),
			EventName:    parse.AsCleanString(e.EventName),
			EventURL:     parse.AsCleanString(e.EventURL),
			EventDate:    parse.AsCleanString(e.EventDate),
		})
	}
	return records
}

// fighterProfile fetches and caches one fighter page. A failed fetch is
// logged and the bout proceeds without profile data. The career table is
// parsed from the same document when requested.
func (i *Ingester) fighterProfile(ctx context.Context, url string, wantHistory bool) *FighterProfile {
	if url == "" {
		return nil
	}
	if cached, ok := i.profileCache[url]; ok {
		return cached
	}

	doc, err := i.client.FetchPage(ctx, url)
	if err != nil {
		log.Printf("⊘ Fighter profile %s: %v", url, err)
		return nil
	}

	profile := ParseFighterProfile(doc)
	i.profileCache[url] = &profile
	if wantHistory {
		i.historyCache[url] = ParseFighterHistory(doc)
	}
	return &profile
}

func addCounts(a, b ingest.Counts) ingest.Counts {
	return ingest.Counts{
		Events:   a.Events + b.Events,
		Fighters: a.Fighters + b.Fighters,
		Fights:   a.Fights + b.Fights,
		Rounds:   a.Rounds + b.Rounds,
		Skipped:  a.Skipped + b.Skipped,
	}
}
