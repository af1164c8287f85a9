// Package ingest normalizes job posting content handed to the relevance
// ranker. Postings registered by URL arrive as HTML and are stripped to
// plain text; pasted descriptions pass through cleanup only.
package ingest

import (
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

var multiSpace = regexp.MustCompile(`[ \t]+`)

// FetchPostingText downloads a job posting page and reduces it to plain
// text suitable for keyword extraction.
func FetchPostingText(client *http.Client, url string) (string, error) {
	if client == nil {
		client = http.DefaultClient
	}

	resp, err := client.Get(url)
	if err != nil {
		return "", fmt.Errorf("failed to fetch posting: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("posting fetch returned status %d", resp.StatusCode)
	}

	return ExtractText(resp.Body)
}

// ExtractText strips an HTML document down to its visible text
func ExtractText(r io.Reader) (string, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return "", fmt.Errorf("failed to parse posting HTML: %w", err)
	}

	// Scripts, styles and navigation chrome carry no posting content
	doc.Find("script, style, nav, header, footer, noscript").Remove()

	var sb strings.Builder
	doc.Find("body").Each(func(_ int, sel *goquery.Selection) {
		sb.WriteString(sel.Text())
	})

	text := sb.String()
	if text == "" {
		text = doc.Text()
	}
	return CleanText(text), nil
}

// CleanText normalizes whitespace in posting text: CRLF to LF, runs of
// spaces collapsed, at most one blank line between paragraphs.
func CleanText(content string) string {
	if content == "" {
		return ""
	}

	content = strings.ReplaceAll(content, "\r\n", "\n")
	content = strings.ReplaceAll(content, "\r", "\n")

	lines := strings.Split(content, "\n")
	cleaned := make([]string, 0, len(lines))
	blankRun := 0
	for _, line := range lines {
		line = strings.TrimSpace(multiSpace.ReplaceAllString(line, " "))
		if line == "" {
			blankRun++
			if blankRun > 1 {
				continue
			}
		} else {
			blankRun = 0
		}
		cleaned = append(cleaned, line)
	}

	return strings.TrimSpace(strings.Join(cleaned, "\n"))
}
