// Package fetch downloads job postings and reduces them to the description text.
package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"

	"github.com/Cordxll/Resume-Builder/internal/ingestion"
)

// Defaults
const (
	DefaultTimeout   = 30 * time.Second
	DefaultUserAgent = "Mozilla/5.0 (compatible; ResumeBuilder/1.0)"
	DefaultMaxBytes  = 5 << 20
)

// MinContentLength is the shortest description accepted from a plain HTTP fetch.
// Anything shorter is treated as a page that renders its content with JavaScript.
const MinContentLength = 300

// Posting is a fetched job posting
type Posting struct {
	URL      string   `json:"url"`
	Platform Platform `json:"platform"`
	Text     string   `json:"text"`
	// Rendered is set when the text came from a headless browser
	Rendered bool `json:"rendered,omitempty"`
}

// Error represents an error during URL fetching
type Error struct {
	URL        string
	Message    string
	StatusCode int
	Cause      error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("fetch error for %s: %s: %v", e.URL, e.Message, e.Cause)
	}
	return fmt.Sprintf("fetch error for %s: %s", e.URL, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Renderer returns the HTML of a page after its scripts have run
type Renderer interface {
	Render(ctx context.Context, url string) (string, error)
}

// Options configures the fetch behavior
type Options struct {
	Timeout   time.Duration
	UserAgent string
	MaxBytes  int64
	Client    *http.Client
	// Renderer is tried when the HTTP response yields too little text; nil disables it
	Renderer Renderer
	Logger   *zap.Logger
}

// DefaultOptions returns sensible defaults for fetching
func DefaultOptions() *Options {
	return &Options{
		Timeout:   DefaultTimeout,
		UserAgent: DefaultUserAgent,
		MaxBytes:  DefaultMaxBytes,
	}
}

func (o *Options) withDefaults() *Options {
	out := DefaultOptions()
	if o == nil {
		out.Logger = zap.NewNop()
		return out
	}
	if o.Timeout > 0 {
		out.Timeout = o.Timeout
	}
	if o.UserAgent != "" {
		out.UserAgent = o.UserAgent
	}
	if o.MaxBytes > 0 {
		out.MaxBytes = o.MaxBytes
	}
	out.Client = o.Client
	out.Renderer = o.Renderer
	out.Logger = o.Logger
	if out.Logger == nil {
		out.Logger = zap.NewNop()
	}
	return out
}

// JobPosting fetches rawURL and extracts the job description
func JobPosting(ctx context.Context, rawURL string, opts *Options) (*Posting, error) {
	o := opts.withDefaults()

	parsed, err := url.Parse(rawURL)
	if err != nil || (parsed.Scheme != "http" && parsed.Scheme != "https") || parsed.Host == "" {
		return nil, &Error{URL: rawURL, Message: "invalid URL", Cause: err}
	}

	platform := DetectPlatform(rawURL)
	html, err := download(ctx, rawURL, o)
	if err != nil {
		return nil, err
	}
	text, err := ExtractMainText(html, PlatformContentSelectors(platform), PlatformNoiseSelectors(platform)...)
	if err != nil {
		return nil, &Error{URL: rawURL, Message: "failed to extract text", Cause: err}
	}

	posting := &Posting{URL: rawURL, Platform: platform, Text: text}
	if tooShort(text) && o.Renderer != nil {
		o.Logger.Info("posting text is short, rendering with browser",
			zap.String("url", rawURL), zap.Int("chars", len(text)))
		rendered, err := o.Renderer.Render(ctx, rawURL)
		if err != nil {
			return nil, &Error{URL: rawURL, Message: "browser rendering failed", Cause: err}
		}
		text, err = ExtractMainText(rendered, PlatformContentSelectors(platform), PlatformNoiseSelectors(platform)...)
		if err != nil {
			return nil, &Error{URL: rawURL, Message: "failed to extract text", Cause: err}
		}
		posting.Text = text
		posting.Rendered = true
	}
	if strings.TrimSpace(posting.Text) == "" {
		return nil, &Error{URL: rawURL, Message: "page has no readable text"}
	}
	return posting, nil
}

func tooShort(text string) bool {
	return len(strings.TrimSpace(text)) < MinContentLength
}

func download(ctx context.Context, rawURL string, o *Options) (string, error) {
	client := o.Client
	if client == nil {
		client = &http.Client{Timeout: o.Timeout}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return "", &Error{URL: rawURL, Message: "failed to create request", Cause: err}
	}
	req.Header.Set("User-Agent", o.UserAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml")

	resp, err := client.Do(req)
	if err != nil {
		return "", &Error{URL: rawURL, Message: "HTTP request failed", Cause: err}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return "", &Error{URL: rawURL, Message: fmt.Sprintf("HTTP status %d", resp.StatusCode), StatusCode: resp.StatusCode}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, o.MaxBytes+1))
	if err != nil {
		return "", &Error{URL: rawURL, Message: "failed to read response body", Cause: err}
	}
	if int64(len(body)) > o.MaxBytes {
		return "", &Error{URL: rawURL, Message: fmt.Sprintf("response exceeds %d bytes", o.MaxBytes)}
	}
	return string(body), nil
}

// ExtractMainText returns the cleaned text of the first element matching
// contentSelectors, or of the whole body when none match. Elements matching
// noiseSelectors are removed first.
func ExtractMainText(html string, contentSelectors []string, noiseSelectors ...string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", fmt.Errorf("failed to parse HTML: %w", err)
	}

	doc.Find(".ad, .advertisement, .ads, .sidebar, .popup").Remove()
	if len(noiseSelectors) > 0 {
		doc.Find(strings.Join(noiseSelectors, ", ")).Remove()
	}

	content := doc.Find("body")
	for _, selector := range contentSelectors {
		if selection := doc.Find(selector); selection.Length() > 0 {
			content = selection.First()
			break
		}
	}

	fragment, err := goquery.OuterHtml(content)
	if err != nil {
		return "", fmt.Errorf("failed to read content: %w", err)
	}
	text, err := ingestion.StripHTML(fragment)
	if err != nil {
		return "", err
	}
	return ingestion.CleanText(text), nil
}
