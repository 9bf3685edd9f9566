// Package website derives digital-footprint signals from a business's
// public site. One fetch of the root page, no link following.
package website

import (
	"context"
	"fmt"
	"net/http"
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
)

// Signals holds everything Extract derives from a single page fetch.
// When Accessible is false, Error is set and all other fields are zero.
type Signals struct {
	Accessible      bool
	Title           string
	CopyrightYears  []int
	LatestCopyright int // 0 when no plausible year was found
	HasBlog         bool
	HasCareers      bool
	LastUpdated     time.Time // zero when no date was found
	TextLength      int
	Error           string
}

const (
	fetchTimeout = 10 * time.Second

	// Some sites refuse requests without a browser-looking UA.
	userAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 " +
		"(KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36"

	// Plausibility window for copyright years. Kept as literal bounds
	// rather than relative to the scan date.
	copyrightYearMin = 1990
	copyrightYearMax = 2024
)

var (
	reCopyrightWord = regexp.MustCompile(`copyright.*?(\d{4})`)
	reCopyrightSign = regexp.MustCompile(`©.*?(\d{4})`)
	reBlogHref      = regexp.MustCompile(`(?i)blog|news`)
	reCareersHref   = regexp.MustCompile(`(?i)career|job|hiring`)

	// Ordered from explicit "last updated" phrasing down to bare dates.
	// Bare dates match far more than true update metadata, so the precise
	// patterns get first claim.
	datePatterns = []*regexp.Regexp{
		regexp.MustCompile(`last updated:?\s*(\d{1,2}/\d{1,2}/\d{4})`),
		regexp.MustCompile(`updated:?\s*(\d{1,2}/\d{1,2}/\d{4})`),
		regexp.MustCompile(`(\d{1,2}/\d{1,2}/\d{4})`),
	}
)

// Extractor fetches pages and derives Signals from them.
type Extractor struct {
	client *http.Client
}

func NewExtractor() *Extractor {
	return &Extractor{client: &http.Client{Timeout: fetchTimeout}}
}

// Extract fetches rawURL once and derives signals from its markup and text.
// It is total: every failure comes back as Accessible=false with Error set,
// never as an error value or panic.
func (e *Extractor) Extract(ctx context.Context, rawURL string) Signals {
	url := normalizeURL(rawURL)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return inaccessible(err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := e.client.Do(req)
	if err != nil {
		return inaccessible(err)
	}
	defer resp.Body.Close()

	if ct := resp.Header.Get("Content-Type"); ct != "" &&
		!strings.Contains(ct, "html") && !strings.Contains(ct, "text") {
		return inaccessible(fmt.Errorf("non-HTML content type %q", ct))
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return inaccessible(fmt.Errorf("parsing %s: %w", url, err))
	}

	text := strings.ToLower(doc.Text())

	sig := Signals{
		Accessible:     true,
		Title:          strings.TrimSpace(doc.Find("title").First().Text()),
		CopyrightYears: copyrightYears(text),
		LastUpdated:    lastUpdated(text),
		TextLength:     utf8.RuneCountInString(text),
	}
	for _, year := range sig.CopyrightYears {
		if year > sig.LatestCopyright {
			sig.LatestCopyright = year
		}
	}
	sig.HasBlog, sig.HasCareers = linkSignals(doc)
	return sig
}

func normalizeURL(rawURL string) string {
	if strings.HasPrefix(rawURL, "http://") || strings.HasPrefix(rawURL, "https://") {
		return rawURL
	}
	return "https://" + rawURL
}

func inaccessible(err error) Signals {
	return Signals{Error: err.Error()}
}

// copyrightYears collects plausible years near "copyright" or "©" mentions.
// The text is expected to be lower-cased already.
func copyrightYears(text string) []int {
	var years []int
	for _, re := range []*regexp.Regexp{reCopyrightWord, reCopyrightSign} {
		for _, m := range re.FindAllStringSubmatch(text, -1) {
			year, err := strconv.Atoi(m[1])
			if err != nil {
				continue
			}
			if year >= copyrightYearMin && year <= copyrightYearMax {
				years = append(years, year)
			}
		}
	}
	return years
}

// linkSignals reports whether any hyperlink target looks like a blog/news
// or careers/hiring page. Presence only; the scan stops once both are seen.
func linkSignals(doc *goquery.Document) (hasBlog, hasCareers bool) {
	doc.Find("a[href], link[href]").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		href, _ := s.Attr("href")
		if !hasBlog && reBlogHref.MatchString(href) {
			hasBlog = true
		}
		if !hasCareers && reCareersHref.MatchString(href) {
			hasCareers = true
		}
		return !(hasBlog && hasCareers)
	})
	return hasBlog, hasCareers
}

// lastUpdated tries each date pattern in order and returns the first
// parseable MM/DD/YYYY match of the first pattern that matches at all.
// A candidate that fails to parse is dropped and the next pattern tried.
func lastUpdated(text string) time.Time {
	for _, re := range datePatterns {
		m := re.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		t, err := time.Parse("1/2/2006", m[1])
		if err != nil {
			continue
		}
		return t
	}
	return time.Time{}
}
