package providers

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/chromedp/chromedp"
	"golang.org/x/net/html"

	"github.com/courtside/tennis-stats-api/internal/models"
)

const maxScrapedMatches = 10

// PageFetcher returns the HTML of a page.
type PageFetcher interface {
	Fetch(ctx context.Context, url string) (string, error)
}

// HTTPFetcher fetches pages with a plain GET.
type HTTPFetcher struct {
	Client *Client
}

func (f HTTPFetcher) Fetch(ctx context.Context, url string) (string, error) {
	body, err := f.Client.GetBody(ctx, url, nil)
	if err != nil {
		return "", err
	}
	return string(body), nil
}

// ChromeFetcher renders pages in headless Chrome, for schedules that are
// filled in by script.
type ChromeFetcher struct {
	UserAgent string
	Settle    time.Duration
}

func (f ChromeFetcher) Fetch(ctx context.Context, url string) (string, error) {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.Flag("no-sandbox", true),
	)
	if f.UserAgent != "" {
		opts = append(opts, chromedp.UserAgent(f.UserAgent))
	}

	allocCtx, cancel := chromedp.NewExecAllocator(ctx, opts...)
	defer cancel()
	ctx, cancel = chromedp.NewContext(allocCtx)
	defer cancel()

	settle := f.Settle
	if settle <= 0 {
		settle = 2 * time.Second
	}

	var page string
	err := chromedp.Run(ctx,
		chromedp.Navigate(url),
		chromedp.Sleep(settle),
		chromedp.OuterHTML("html", &page),
	)
	if err != nil {
		return "", fmt.Errorf("render %s: %w", url, err)
	}
	return page, nil
}

// ScheduleScraper reads "A vs B" lines off a public schedule page.
type ScheduleScraper struct {
	url     string
	fetcher PageFetcher
}

func NewScheduleScraper(url string, fetcher PageFetcher) *ScheduleScraper {
	return &ScheduleScraper{url: url, fetcher: fetcher}
}

func (s *ScheduleScraper) Name() string { return "espn" }

func (s *ScheduleScraper) FetchToday(ctx context.Context) ([]models.MatchPairing, error) {
	page, err := s.fetcher.Fetch(ctx, s.url)
	if err != nil {
		return nil, err
	}
	lines, err := textLines(page)
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}
	return ParseScheduleLines(lines), nil
}

var (
	versus        = regexp.MustCompile(`(?i)\s+vs?\.?\s+`)
	scheduleNoise = []string{"time", "score", "results", "rankings", "latest"}
)

// ParseScheduleLines extracts at most ten distinct matchups from page text.
func ParseScheduleLines(lines []string) []models.MatchPairing {
	var out []models.MatchPairing
	seen := make(map[string]bool)

	for _, line := range lines {
		line = strings.TrimSpace(line)
		if len(line) < 5 || hasNoise(line) {
			continue
		}
		parts := versus.Split(line, 2)
		if len(parts) != 2 {
			continue
		}
		p1, p2 := CleanPlayerName(parts[0]), CleanPlayerName(parts[1])
		if !scrapedName(p1) || !scrapedName(p2) {
			continue
		}
		p1, p2 = models.DisplayName(p1), models.DisplayName(p2)

		key := models.NormalizeName(p1) + "|" + models.NormalizeName(p2)
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, models.MatchPairing{Player1: p1, Player2: p2})
		if len(out) == maxScrapedMatches {
			break
		}
	}
	return out
}

func hasNoise(line string) bool {
	lower := strings.ToLower(line)
	for _, w := range scheduleNoise {
		if strings.Contains(lower, w) {
			return true
		}
	}
	return false
}

func scrapedName(name string) bool {
	return len(name) > 2 && strings.Count(name, " ") <= 2
}

// blockElements end a line of visible text.
var blockElements = map[string]bool{
	"p": true, "div": true, "br": true, "li": true, "tr": true, "td": true, "th": true,
	"h1": true, "h2": true, "h3": true, "h4": true, "h5": true, "h6": true,
	"section": true, "article": true, "header": true, "footer": true,
}

// textLines flattens the visible text of an HTML document into lines,
// breaking at block elements and dropping scripts and styles.
func textLines(page string) ([]string, error) {
	doc, err := html.Parse(strings.NewReader(page))
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && (n.Data == "script" || n.Data == "style" || n.Data == "noscript") {
			return
		}
		if n.Type == html.TextNode {
			buf.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
		if n.Type == html.ElementNode && blockElements[n.Data] {
			buf.WriteByte('\n')
		}
	}
	walk(doc)

	var lines []string
	for _, line := range strings.Split(buf.String(), "\n") {
		if line = strings.Join(strings.Fields(line), " "); line != "" {
			lines = append(lines, line)
		}
	}
	return lines, nil
}
