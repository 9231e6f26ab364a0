package providers

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"golang.org/x/net/html"

	"github.com/courtside/tennis-stats-api/internal/models"
)

const maxHistoryRows = 50

var errPlayerNotFound = errors.New("player page not found")

// TennisAbstractSource scrapes a player's career match table.
type TennisAbstractSource struct {
	baseURL string
	client  *Client
}

func NewTennisAbstractSource(baseURL string, opts ...ClientOption) *TennisAbstractSource {
	return &TennisAbstractSource{baseURL: baseURL, client: NewClient(opts...)}
}

func (s *TennisAbstractSource) Name() string { return "tennisabstract" }

func (s *TennisAbstractSource) FetchHistory(ctx context.Context, player string) ([]models.MatchRecord, error) {
	var lastErr error = errPlayerNotFound
	for _, slug := range playerSlugs(player) {
		params := url.Values{}
		params.Set("p", slug)
		params.Set("f", "ACareer")

		body, err := s.client.GetBody(ctx, s.baseURL, params)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			lastErr = err
			continue
		}
		page := string(body)
		if !strings.Contains(page, "Career") {
			continue
		}
		records, err := ParseCareerTable(page)
		if err != nil {
			return nil, fmt.Errorf("slug %s: %w", slug, err)
		}
		return records, nil
	}
	return nil, lastErr
}

// playerSlugs lists the URL slugs to try: the full name run together, then
// the last name alone.
func playerSlugs(player string) []string {
	strip := strings.NewReplacer(" ", "", "-", "")
	name := strings.Join(strings.Fields(player), " ")
	if name == "" {
		return nil
	}
	slugs := []string{strip.Replace(name)}
	if fields := strings.Fields(name); len(fields) > 1 {
		slugs = append(slugs, strip.Replace(fields[len(fields)-1]))
	}
	return slugs
}

// column aliases by header text.
var careerColumns = map[string][]string{
	"date":     {"date"},
	"surface":  {"surface", "surf"},
	"result":   {"res.", "result", "res"},
	"opponent": {"opponent", "opp"},
	"score":    {"score"},
	"aces":     {"ace", "aces"},
	"df":       {"df", "double_faults"},
	"winners":  {"win.", "winners"},
}

// ParseCareerTable reads match rows from the first table with a Date column.
// Rows that cannot be read are skipped. At most fifty rows are returned.
func ParseCareerTable(page string) ([]models.MatchRecord, error) {
	doc, err := html.Parse(strings.NewReader(page))
	if err != nil {
		return nil, err
	}

	for _, table := range findAll(doc, "table") {
		rows := tableRows(table)
		if len(rows) < 2 {
			continue
		}
		cols := headerIndex(rows[0])
		if _, ok := cols["date"]; !ok {
			continue
		}

		var out []models.MatchRecord
		for _, cells := range rows[1:] {
			if rec, ok := parseCareerRow(cols, cells); ok {
				out = append(out, rec)
				if len(out) == maxHistoryRows {
					break
				}
			}
		}
		return out, nil
	}
	return nil, errors.New("no match table")
}

func headerIndex(header []string) map[string]int {
	idx := make(map[string]int)
	for i, h := range header {
		h = strings.ToLower(strings.TrimSpace(h))
		for field, aliases := range careerColumns {
			if _, done := idx[field]; done {
				continue
			}
			for _, a := range aliases {
				if h == a {
					idx[field] = i
				}
			}
		}
	}
	return idx
}

func parseCareerRow(cols map[string]int, cells []string) (models.MatchRecord, bool) {
	cell := func(field string) string {
		i, ok := cols[field]
		if !ok || i >= len(cells) {
			return ""
		}
		return strings.TrimSpace(cells[i])
	}

	date, err := models.ParseDate(cell("date"))
	if err != nil {
		return models.MatchRecord{}, false
	}
	surface, err := models.ParseSurface(cell("surface"))
	if err != nil {
		return models.MatchRecord{}, false
	}

	won, opponent, score, ok := splitResult(cell("result"))
	if !ok {
		return models.MatchRecord{}, false
	}
	if o := cell("opponent"); o != "" {
		opponent = o
	}
	if s := cell("score"); s != "" {
		score = s
	}
	opponent = CleanPlayerName(opponent)
	if opponent == "" {
		return models.MatchRecord{}, false
	}

	rec := models.MatchRecord{
		Date:         date,
		Opponent:     opponent,
		Surface:      surface,
		Result:       models.ResultLoss,
		Aces:         cellInt(cell("aces")),
		DoubleFaults: cellInt(cell("df")),
		Winners:      cellInt(cell("winners")),
	}
	if won {
		rec.Result = models.ResultWin
	}
	rec.GamesWon, rec.GamesLost, rec.SetsWon, rec.SetsLost = ParseScore(score, won)
	rec.TiebreaksWon, rec.TiebreaksLost = CountTiebreaks(score, won)
	return rec, true
}

// splitResult reads "d. Djokovic 7-6 6-3" or "l. Novak Djokovic 6-4 6-4".
// A bare "W" or "L" yields only the outcome.
func splitResult(s string) (won bool, opponent, score string, ok bool) {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return false, "", "", false
	}
	switch strings.ToLower(fields[0]) {
	case "d.":
		won = true
	case "l.":
	case "w":
		return true, "", "", true
	case "l":
		return false, "", "", true
	default:
		return false, "", "", false
	}

	rest := fields[1:]
	i := 0
	for i < len(rest) && !setScore.MatchString(rest[i]) {
		i++
	}
	return won, strings.Join(rest[:i], " "), strings.Join(rest[i:], " "), true
}

func cellInt(s string) int {
	s = strings.TrimSuffix(strings.TrimSpace(s), "%")
	if s == "" {
		return 0
	}
	if n, err := strconv.Atoi(s); err == nil && n >= 0 {
		return n
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil && f >= 0 {
		return int(f)
	}
	return 0
}

func findAll(n *html.Node, tag string) []*html.Node {
	var out []*html.Node
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == tag {
			out = append(out, n)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return out
}

// tableRows returns the text of each cell, row by row.
func tableRows(table *html.Node) [][]string {
	var rows [][]string
	for _, tr := range findAll(table, "tr") {
		var cells []string
		for c := tr.FirstChild; c != nil; c = c.NextSibling {
			if c.Type == html.ElementNode && (c.Data == "td" || c.Data == "th") {
				cells = append(cells, nodeText(c))
			}
		}
		if len(cells) > 0 {
			rows = append(rows, cells)
		}
	}
	return rows
}

func nodeText(n *html.Node) string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return strings.Join(strings.Fields(b.String()), " ")
}
