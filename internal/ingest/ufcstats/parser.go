package ufcstats

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/alexanderkazanski/ufc-database/internal/ingest"
	"github.com/alexanderkazanski/ufc-database/internal/ingest/parse"
)

// EventListing is one row of the completed-events table.
type EventListing struct {
	Name     string
	URL      string
	Date     string
	Location string
}

// FightListing is one bout row on an event page, raw text throughout.
type FightListing struct {
	Fighter1Name   string
	Fighter1URL    string
	Fighter1Result string
	Fighter2Name   string
	Fighter2URL    string
	Fighter2Result string
	KD1, KD2       string
	Str1, Str2     string
	TD1, TD2       string
	Sub1, Sub2     string
	WeightClass    string
	Method         string
	Round          string
	Time           string
	DetailURL      string
}

// FighterProfile holds the labelled attributes scraped from a fighter page.
// Keys follow the site's labels (Height, Weight, Reach, STANCE, DOB, SLpM,
// Str. Acc., SApM, Str. Def, TD Avg., TD Acc., TD Def., Sub. Avg.).
type FighterProfile struct {
	Name     string
	Nickname string
	Record   string
	Attrs    map[string]string
}

// FighterHistoryEntry is one bout row of the career table on a fighter
// page, raw text throughout. Stats carry the fighter's own side of each
// paired cell.
type FighterHistoryEntry struct {
	Result       string
	OpponentName string
	OpponentURL  string
	KD           string
	Str          string
	TD           string
	Sub          string
	EventName    string
	EventURL     string
	EventDate    string
	Method       string
	Round        string
	Time         string
}

var roundHeaderPattern = regexp.MustCompile(`Round\s+(\d+)`)

// ParseEventList extracts the events from a listing page. The date lives in
// a span inside the name cell; the second column is the location.
func ParseEventList(doc *goquery.Document) []EventListing {
	var events []EventListing
	doc.Find("table.b-statistics__table-events tbody tr.b-statistics__table-row").Each(func(i int, row *goquery.Selection) {
		link := row.Find("td.b-statistics__table-col a.b-link").First()
		name := strings.TrimSpace(link.Text())
		url, _ := link.Attr("href")
		if name == "" || url == "" {
			return
		}

		date := strings.TrimSpace(row.Find("span.b-statistics__date").First().Text())
		location := strings.TrimSpace(row.Find("td.b-statistics__table-col").Last().Text())

		events = append(events, EventListing{
			Name:     name,
			URL:      url,
			Date:     date,
			Location: location,
		})
	})
	return events
}

// ParseEventFights extracts the bout rows from an event page. Cells are
// positional: flag, fighters, KD, Str, TD, Sub, weight class, method,
// round, time. Two-line cells carry fighter 1 on the first line and
// fighter 2 on the second.
func ParseEventFights(doc *goquery.Document) []FightListing {
	var fights []FightListing
	doc.Find("table.b-fight-details__table tbody tr.b-fight-details__table-row").Each(func(i int, row *goquery.Selection) {
		cells := row.Find("td.b-fight-details__table-col")
		if cells.Length() < 10 {
			return
		}

		fight := FightListing{}

		fightersCell := cells.Eq(1)
		links := fightersCell.Find("a.b-link")
		if links.Length() >= 2 {
			fight.Fighter1Name = strings.TrimSpace(links.Eq(0).Text())
			fight.Fighter1URL, _ = links.Eq(0).Attr("href")
			fight.Fighter2Name = strings.TrimSpace(links.Eq(1).Text())
			fight.Fighter2URL, _ = links.Eq(1).Attr("href")
		}
		fight.Fighter1Result, fight.Fighter2Result = parseResultFlags(fightersCell)

		fight.KD1, fight.KD2 = cellPair(cells.Eq(2))
		fight.Str1, fight.Str2 = cellPair(cells.Eq(3))
		fight.TD1, fight.TD2 = cellPair(cells.Eq(4))
		fight.Sub1, fight.Sub2 = cellPair(cells.Eq(5))
		fight.WeightClass = strings.TrimSpace(cells.Eq(6).Find("p").First().Text())
		fight.Method = cellLines(cells.Eq(7))
		fight.Round = strings.TrimSpace(cells.Eq(8).Text())
		fight.Time = strings.TrimSpace(cells.Eq(9).Text())

		if href, ok := row.Attr("data-link"); ok {
			fight.DetailURL = href
		} else if href, ok := cells.Eq(0).Find("a").First().Attr("href"); ok {
			fight.DetailURL = href
		}

		if fight.Fighter1Name != "" || fight.Fighter2Name != "" {
			fights = append(fights, fight)
		}
	})
	return fights
}

// parseResultFlags reads the W/L/D markers. Green flags mean a win, gray a
// draw or no contest, anything else a loss.
func parseResultFlags(cell *goquery.Selection) (string, string) {
	results := []string{"N/A", "N/A"}
	cell.Find("i").Each(func(i int, icon *goquery.Selection) {
		if i > 1 {
			return
		}
		class, _ := icon.Attr("class")
		switch {
		case strings.Contains(class, "b-fight-details__person-status_style_green"):
			results[i] = "W"
		case strings.Contains(class, "b-fight-details__person-status_style_gray"):
			results[i] = "D"
		default:
			results[i] = "L"
		}
	})
	return results[0], results[1]
}

// cellPair splits a two-paragraph cell into fighter 1 and fighter 2 values.
func cellPair(cell *goquery.Selection) (string, string) {
	paragraphs := cell.Find("p")
	first := strings.TrimSpace(paragraphs.Eq(0).Text())
	second := strings.TrimSpace(paragraphs.Eq(1).Text())
	return first, second
}

// cellLines joins a cell's paragraphs with newlines, preserving the
// method/detail split.
func cellLines(cell *goquery.Selection) string {
	var lines []string
	cell.Find("p").Each(func(i int, p *goquery.Selection) {
		if text := strings.TrimSpace(p.Text()); text != "" {
			lines = append(lines, text)
		}
	})
	return strings.Join(lines, "\n")
}

// ParseFighterProfile extracts name, nickname, and the labelled attribute
// list from a fighter page.
func ParseFighterProfile(doc *goquery.Document) FighterProfile {
	profile := FighterProfile{Attrs: make(map[string]string)}

	profile.Name = strings.TrimSpace(doc.Find("span.b-content__title-highlight").First().Text())
	profile.Nickname = strings.TrimSpace(doc.Find("p.b-content__Nickname").First().Text())
	profile.Record = strings.TrimSpace(doc.Find("span.b-content__title-record").First().Text())

	doc.Find("li.b-list__box-list-item").Each(func(i int, item *goquery.Selection) {
		label := strings.TrimSpace(item.Find("i.b-list__box-item-title").First().Text())
		label = strings.TrimSuffix(label, ":")
		if label == "" {
			return
		}
		// Item text is "<label>: <value>"; strip the label portion.
		value := strings.TrimSpace(item.Text())
		if idx := strings.Index(value, ":"); idx >= 0 {
			value = strings.TrimSpace(value[idx+1:])
		}
		profile.Attrs[label] = value
	})

	return profile
}

// ParseFighterHistory extracts the career table from a fighter page. The
// row layout matches the event fight table except that the second column
// lists the fighter first and the opponent second, and the event column
// replaces the weight class.
func ParseFighterHistory(doc *goquery.Document) []FighterHistoryEntry {
	var history []FighterHistoryEntry
	doc.Find("table.b-fight-details__table tbody tr.b-fight-details__table-row").Each(func(i int, row *goquery.Selection) {
		cells := row.Find("td.b-fight-details__table-col")
		if cells.Length() < 10 {
			return
		}

		entry := FighterHistoryEntry{
			Result: strings.TrimSpace(cells.Eq(0).Text()),
			Method: cellLines(cells.Eq(7)),
			Round:  strings.TrimSpace(cells.Eq(8).Text()),
			Time:   strings.TrimSpace(cells.Eq(9).Text()),
		}

		links := cells.Eq(1).Find("a.b-link")
		if links.Length() >= 2 {
			entry.OpponentName = strings.TrimSpace(links.Eq(1).Text())
			entry.OpponentURL, _ = links.Eq(1).Attr("href")
		} else if links.Length() == 1 {
			entry.OpponentName = strings.TrimSpace(links.Eq(0).Text())
			entry.OpponentURL, _ = links.Eq(0).Attr("href")
		}

		entry.KD, _ = cellPair(cells.Eq(2))
		entry.Str, _ = cellPair(cells.Eq(3))
		entry.TD, _ = cellPair(cells.Eq(4))
		entry.Sub, _ = cellPair(cells.Eq(5))

		eventCell := cells.Eq(6)
		if link := eventCell.Find("a.b-link").First(); link.Length() > 0 {
			entry.EventName = strings.TrimSpace(link.Text())
			entry.EventURL, _ = link.Attr("href")
		}
		paragraphs := eventCell.Find("p")
		if paragraphs.Length() > 1 {
			entry.EventDate = strings.TrimSpace(paragraphs.Eq(paragraphs.Length() - 1).Text())
		}

		if entry.OpponentName != "" || entry.EventName != "" {
			history = append(history, entry)
		}
	})
	return history
}

// ParseFightDetail reads the per-round stats tables of a fight page into
// wide block columns. Round N of fighter 1 becomes block 2N-1, fighter 2
// block 2N, matching the layout the importer reconstructs.
func ParseFightDetail(doc *goquery.Document) map[string]string {
	stats := make(map[string]string)

	// The totals table has no round headers; the per-round table interleaves
	// "Round N" head rows with one data row of paired paragraphs.
	doc.Find("table.b-fight-details__table").Each(func(i int, table *goquery.Selection) {
		round := 0
		table.Find("tr").Each(func(j int, row *goquery.Selection) {
			head := strings.TrimSpace(row.Find("th").Text())
			if m := roundHeaderPattern.FindStringSubmatch(head); m != nil {
				round = parse.AsInt(m[1], 0)
				return
			}
			if round == 0 {
				return
			}

			cells := row.Find("td")
			if cells.Length() < 10 {
				return
			}
			// Cell order after the fighter-names cell: KD, Sig_Str,
			// Sig_Str_Pct, Total_Str, TD, TD_Pct, Sub_Att, Rev, Ctrl.
			fields := []string{"KD", "Sig_Str", "Sig_Str_Pct", "Total_Str", "TD", "TD_Pct", "Sub_Att", "Rev", "Ctrl"}
			for f, field := range fields {
				v1, v2 := cellPair(cells.Eq(f + 1))
				stats[blockColumn(round, 1, field)] = v1
				stats[blockColumn(round, 2, field)] = v2
			}
		})
	})

	return stats
}

func blockColumn(round, slot int, field string) string {
	block := (round-1)*2 + slot
	return fmt.Sprintf("F%d_Totals_%s", block, field)
}

// BuildRow assembles a wide importer row from an event listing, one of its
// fight listings, the two fighter profiles, and the fight detail stats.
// Profiles and detail stats may be nil when those pages were not fetched.
func BuildRow(event EventListing, fight FightListing, p1, p2 *FighterProfile, detail map[string]string) *ingest.Row {
	row := ingest.NewRow()
	row.Set("Event Name", event.Name)
	row.Set("Event Date", event.Date)
	row.Set("Event Location", event.Location)

	row.Set("Fighter 1 Name", fight.Fighter1Name)
	row.Set("Fighter 1 URL", fight.Fighter1URL)
	row.Set("Fighter 1 Result", fight.Fighter1Result)
	row.Set("Fighter 2 Name", fight.Fighter2Name)
	row.Set("Fighter 2 URL", fight.Fighter2URL)
	row.Set("Fighter 2 Result", fight.Fighter2Result)

	row.Set("Weight Class", fight.WeightClass)
	row.Set("Method", fight.Method)
	row.Set("Round", fight.Round)
	row.Set("Time", fight.Time)
	row.Set("Fight Detail URL", fight.DetailURL)

	row.Set("Fighter 1 KD", fight.KD1)
	row.Set("Fighter 2 KD", fight.KD2)
	row.Set("Fighter 1 Str", fight.Str1)
	row.Set("Fighter 2 Str", fight.Str2)
	row.Set("Fighter 1 TD", fight.TD1)
	row.Set("Fighter 2 TD", fight.TD2)
	row.Set("Fighter 1 Sub", fight.Sub1)
	row.Set("Fighter 2 Sub", fight.Sub2)

	setProfile(row, 1, p1)
	setProfile(row, 2, p2)

	if detail != nil {
		for _, col := range sortedKeys(detail) {
			row.Set(col, detail[col])
		}
	}

	return row
}

// Profile labels on the site mapped to importer columns, in render order.
var profileColumns = []struct{ label, column string }{
	{"Height", "Height"},
	{"Weight", "Weight"},
	{"Reach", "Reach"},
	{"STANCE", "STANCE"},
	{"DOB", "DOB"},
	{"SLpM", "Career_SLpM"},
	{"Str. Acc.", "Career_Str. Acc."},
	{"SApM", "Career_SApM"},
	{"Str. Def", "Career_Str. Def"},
	{"TD Avg.", "Career_TD Avg."},
	{"TD Acc.", "Career_TD Acc."},
	{"TD Def.", "Career_TD Def."},
	{"Sub. Avg.", "Career_Sub. Avg."},
}

func setProfile(row *ingest.Row, slot int, profile *FighterProfile) {
	if profile == nil {
		return
	}
	prefix := fmt.Sprintf("Fighter %d ", slot)
	if profile.Nickname != "" {
		row.Set(prefix+"Nickname", strings.Trim(profile.Nickname, `"`))
	}
	for _, pc := range profileColumns {
		if value, ok := profile.Attrs[pc.label]; ok {
			row.Set(prefix+pc.column, value)
		}
	}
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
