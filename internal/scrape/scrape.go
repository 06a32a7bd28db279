package scrape

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"xkcdd/internal/comics"
	"xkcdd/internal/ui"

	"github.com/PuerkitoBio/goquery"
)

// Fixed element ids on a comic page.
const (
	selComicImage = "#comic img"
	selTitle      = "#ctitle"
	selTranscript = "#transcript"
)

// MissingFieldError reports which page element (or attribute) a comic page
// was missing. Extraction is all or nothing, so one of these means the
// whole record was discarded.
type MissingFieldError struct {
	Selector string
	Attr     string
}

func (e *MissingFieldError) Error() string {
	if e.Attr != "" {
		return fmt.Sprintf("element %q has no %q attribute", e.Selector, e.Attr)
	}
	return fmt.Sprintf("no element matches %q", e.Selector)
}

type Scraper struct {
	client *http.Client
	log    *ui.Logger
}

func NewScraper(client *http.Client, log *ui.Logger) *Scraper {
	return &Scraper{client: client, log: log}
}

// FetchDocument GETs a page once and parses it. Non-2xx responses and
// network errors are logged and returned; there is no retry.
func (s *Scraper) FetchDocument(ctx context.Context, url string) (*goquery.Document, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		s.log.Errorf("Error fetching %s: %v\n", url, err)
		return nil, err
	}

	resp, err := s.client.Do(req)
	if err != nil {
		s.log.Errorf("Error fetching %s: %v\n", url, err)
		return nil, err
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		err := fmt.Errorf("HTTP %d", resp.StatusCode)
		s.log.Errorf("Error fetching %s: %v\n", url, err)
		return nil, err
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		s.log.Errorf("Error parsing %s: %v\n", url, err)
		return nil, err
	}

	return doc, nil
}

// ExtractComic pulls the image reference, title and transcript out of a
// parsed comic page. Partial records are never returned.
func (s *Scraper) ExtractComic(doc *goquery.Document) (comics.Comic, error) {
	img := doc.Find(selComicImage).First()
	if img.Length() == 0 {
		return comics.Comic{}, s.missing(&MissingFieldError{Selector: selComicImage})
	}

	src, ok := img.Attr("src")
	if !ok || strings.TrimSpace(src) == "" {
		return comics.Comic{}, s.missing(&MissingFieldError{Selector: selComicImage, Attr: "src"})
	}

	title := doc.Find(selTitle)
	if title.Length() == 0 {
		return comics.Comic{}, s.missing(&MissingFieldError{Selector: selTitle})
	}

	transcript := doc.Find(selTranscript)
	if transcript.Length() == 0 {
		return comics.Comic{}, s.missing(&MissingFieldError{Selector: selTranscript})
	}

	return comics.Comic{
		ImageURL:   strings.TrimSpace(src),
		Title:      strings.TrimSpace(title.Text()),
		Transcript: transcript.Text(),
	}, nil
}

func (s *Scraper) missing(err *MissingFieldError) error {
	s.log.Errorf("Error extracting comic data: %v\n", err)
	return err
}
