package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

type WebFetchInput struct {
	URL      string `json:"url" jsonschema_description:"HTTP or HTTPS URL to fetch."`
	Selector string `json:"selector,omitempty" jsonschema_description:"Optional CSS selector to scope extraction (default: body)."`
	Extract  string `json:"extract,omitempty" jsonschema_description:"What to extract from matched elements: text, html, or links (default: text)."`
}

var WebFetchInputSchema = GenerateSchema[WebFetchInput]()

const webFetchRuneCap = 20_000

// webFetchClient is swappable so tests can point the tool at a local server
// without real network access.
var webFetchClient = &http.Client{Timeout: 15 * time.Second}

// NewWebFetchTool returns the web_fetch definition.
func NewWebFetchTool() ToolDefinition {
	return ToolDefinition{
		Name: "web_fetch",
		Description: `Fetch a web page and extract content from it with a CSS selector.

extract=text returns the visible text of matched elements, extract=html their inner HTML, extract=links the href targets of anchor tags within them.`,
		InputSchema: WebFetchInputSchema,
		Function: func(ctx context.Context, input json.RawMessage) (string, error) {
			var in WebFetchInput
			if err := json.Unmarshal(input, &in); err != nil {
				return "", err
			}
			return fetchAndExtract(ctx, in)
		},
	}
}

func fetchAndExtract(ctx context.Context, in WebFetchInput) (string, error) {
	u, err := url.Parse(in.URL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return "", fmt.Errorf("invalid url: %q", in.URL)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("User-Agent", "Mozilla/5.0 (compatible; sage-agent/1.0)")

	resp, err := webFetchClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetch failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("fetch failed: %s returned status %d", u.Host, resp.StatusCode)
	}
	ct := resp.Header.Get("Content-Type")
	if ct != "" && !strings.Contains(ct, "text/html") && !strings.Contains(ct, "text/plain") {
		return "", fmt.Errorf("unsupported content type: %s", ct)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return "", fmt.Errorf("parse failed: %w", err)
	}

	selector := in.Selector
	if selector == "" {
		selector = "body"
	}
	sel := doc.Find(selector)
	if sel.Length() == 0 {
		// A miss is information for the model, not a protocol failure.
		return fmt.Sprintf("no elements found matching selector: %s", selector), nil
	}

	var out string
	switch in.Extract {
	case "", "text":
		var parts []string
		sel.Each(func(_ int, s *goquery.Selection) {
			if t := strings.TrimSpace(s.Text()); t != "" {
				parts = append(parts, t)
			}
		})
		out = strings.Join(parts, "\n\n")
	case "html":
		var parts []string
		sel.Each(func(_ int, s *goquery.Selection) {
			if h, err := s.Html(); err == nil {
				parts = append(parts, strings.TrimSpace(h))
			}
		})
		out = strings.Join(parts, "\n\n")
	case "links":
		var links []string
		sel.Find("a[href]").Each(func(_ int, a *goquery.Selection) {
			href, _ := a.Attr("href")
			if ref, err := u.Parse(href); err == nil {
				links = append(links, ref.String())
			}
		})
		b, err := json.Marshal(links)
		if err != nil {
			return "", err
		}
		out = string(b)
	default:
		return "", fmt.Errorf("unknown extract mode: %q", in.Extract)
	}

	if r := []rune(out); len(r) > webFetchRuneCap {
		out = string(r[:webFetchRuneCap]) + "\n-- truncated --"
	}
	return out, nil
}
