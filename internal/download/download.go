package download

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"strings"

	"xkcdd/internal/ui"
)

type Downloader struct {
	client *http.Client
	log    *ui.Logger
}

func New(client *http.Client, log *ui.Logger) *Downloader {
	return &Downloader{client: client, log: log}
}

// Normalize turns a protocol-relative image reference (leading //) into an
// https URL. Absolute references pass through unmodified.
func Normalize(imageURL string) string {
	if strings.HasPrefix(imageURL, "//") {
		return "https:" + imageURL
	}
	return imageURL
}

// FetchImage downloads the raw image bytes with a single GET. Byte
// progress is reported through the handle, which may be nil.
func (d *Downloader) FetchImage(ctx context.Context, imageURL string, ph *ui.ProgressHandle) ([]byte, error) {
	u := Normalize(imageURL)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		d.log.Errorf("Error downloading image from %s: %v\n", u, err)
		return nil, err
	}

	req.Header.Set("Accept", "image/avif,image/webp,image/apng,image/*,*/*;q=0.8")

	resp, err := d.client.Do(req)
	if err != nil {
		d.log.Errorf("Error downloading image from %s: %v\n", u, err)
		return nil, err
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		err := fmt.Errorf("HTTP %d", resp.StatusCode)
		d.log.Errorf("Error downloading image from %s: %v\n", u, err)
		return nil, err
	}

	ph.SetTotal(resp.ContentLength)

	var buf bytes.Buffer
	if resp.ContentLength > 0 {
		buf.Grow(int(resp.ContentLength))
	}

	if _, err := copyWithProgress(&buf, resp.Body, func(done int64) {
		ph.SetCurrent(done)
	}); err != nil {
		d.log.Errorf("Error downloading image from %s: %v\n", u, err)
		return nil, err
	}

	ph.MarkDone()
	return buf.Bytes(), nil
}
