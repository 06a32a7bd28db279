package pipeline

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"xkcdd/internal/download"
	"xkcdd/internal/scrape"
	"xkcdd/internal/ui"
)

var imageBytes = []byte{0x89, 'P', 'N', 'G', 0x0d, 0x0a, 0x1a, 0x0a, 1, 2, 3}

// newComicServer serves a comic page at /353 and at the root, with the
// image hosted on the same server.
func newComicServer(t *testing.T) *httptest.Server {
	t.Helper()

	mux := http.NewServeMux()
	var ts *httptest.Server

	page := func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprintf(w, `<html><body>
<div id="ctitle">Test Comic</div>
<div id="comic"><img src="%s/comics/test_comic.png"/></div>
<div id="transcript">An inline transcript.</div>
</body></html>`, ts.URL)
	}
	mux.HandleFunc("/", page)
	mux.HandleFunc("/353", page)
	mux.HandleFunc("/comics/test_comic.png", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write(imageBytes)
	})

	ts = httptest.NewServer(mux)
	t.Cleanup(ts.Close)
	return ts
}

func newPipeline(ts *httptest.Server) *Pipeline {
	log := ui.NewLogger(false)
	return New(
		scrape.NewScraper(ts.Client(), log),
		download.New(ts.Client(), log),
		log,
		nil,
		ts.URL+"/",
	)
}

func listFiles(t *testing.T, dir string) []string {
	t.Helper()
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	var names []string
	for _, e := range entries {
		names = append(names, e.Name())
	}
	return names
}

func TestFetchIndexEndToEnd(t *testing.T) {
	ts := newComicServer(t)
	dir := t.TempDir()

	res := newPipeline(ts).FetchIndex(context.Background(), 353, dir)
	if !res.OK {
		t.Fatalf("run failed at %s stage", res.Stage)
	}
	if res.Title != "Test Comic" {
		t.Errorf("Title = %q", res.Title)
	}

	names := listFiles(t, dir)
	if len(names) != 2 {
		t.Fatalf("want exactly 2 files, got %v", names)
	}

	img, err := os.ReadFile(filepath.Join(dir, "Test Comic.png"))
	if err != nil {
		t.Fatalf("image file: %v", err)
	}
	if !bytes.Equal(img, imageBytes) {
		t.Fatal("saved image differs from served bytes")
	}

	transcript, err := os.ReadFile(filepath.Join(dir, "Test Comic_transcript.txt"))
	if err != nil {
		t.Fatalf("transcript file: %v", err)
	}
	if !bytes.Contains(transcript, []byte("inline transcript")) {
		t.Fatalf("transcript content = %q", transcript)
	}
}

func TestFetchLatestSkipsTranscript(t *testing.T) {
	ts := newComicServer(t)
	dir := t.TempDir()

	res := newPipeline(ts).FetchLatest(context.Background(), dir)
	if !res.OK {
		t.Fatalf("run failed at %s stage", res.Stage)
	}

	names := listFiles(t, dir)
	if len(names) != 1 || names[0] != "Test Comic.png" {
		t.Fatalf("want only the image file, got %v", names)
	}
}

func TestExtractFailureShortCircuits(t *testing.T) {
	var imageHits int

	mux := http.NewServeMux()
	mux.HandleFunc("/999", func(w http.ResponseWriter, _ *http.Request) {
		// page without a transcript element
		fmt.Fprint(w, `<html><body>
<div id="ctitle">Broken</div>
<div id="comic"><img src="/comics/test_comic.png"/></div>
</body></html>`)
	})
	mux.HandleFunc("/comics/test_comic.png", func(w http.ResponseWriter, _ *http.Request) {
		imageHits++
		_, _ = w.Write(imageBytes)
	})
	ts := httptest.NewServer(mux)
	defer ts.Close()

	dir := t.TempDir()

	res := newPipeline(ts).FetchIndex(context.Background(), 999, dir)
	if res.OK {
		t.Fatal("want failure, got success")
	}
	if res.Stage != StageExtract {
		t.Fatalf("Stage = %q, want %q", res.Stage, StageExtract)
	}
	if imageHits != 0 {
		t.Fatalf("image endpoint hit %d times after failed extraction", imageHits)
	}
	if names := listFiles(t, dir); len(names) != 0 {
		t.Fatalf("extraction failure must write nothing, got %v", names)
	}
}

func TestImage404LeavesNoFiles(t *testing.T) {
	mux := http.NewServeMux()
	var srv *httptest.Server
	mux.HandleFunc("/7", func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprintf(w, `<html><body>
<div id="ctitle">Test Comic</div>
<div id="comic"><img src="%s/comics/test_comic.png"/></div>
<div id="transcript">An inline transcript.</div>
</body></html>`, srv.URL)
	})
	mux.HandleFunc("/comics/test_comic.png", func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "gone", http.StatusNotFound)
	})
	srv = httptest.NewServer(mux)
	defer srv.Close()

	dir := t.TempDir()
	res := newPipeline(srv).FetchIndex(context.Background(), 7, dir)
	if res.OK {
		t.Fatal("want failure, got success")
	}
	if res.Stage != StageDownload {
		t.Fatalf("Stage = %q, want %q", res.Stage, StageDownload)
	}
	if names := listFiles(t, dir); len(names) != 0 {
		t.Fatalf("failed download must leave no files, no orphan transcript; got %v", names)
	}
}

func TestFailedDownloadReleasesProgress(t *testing.T) {
	mux := http.NewServeMux()
	var srv *httptest.Server
	mux.HandleFunc("/7", func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprintf(w, `<html><body>
<div id="ctitle">Test Comic</div>
<div id="comic"><img src="%s/comics/test_comic.png"/></div>
<div id="transcript">An inline transcript.</div>
</body></html>`, srv.URL)
	})
	mux.HandleFunc("/comics/test_comic.png", func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "gone", http.StatusNotFound)
	})
	srv = httptest.NewServer(mux)
	defer srv.Close()

	log := ui.NewLogger(false)
	pm := ui.NewProgressManager()
	p := New(
		scrape.NewScraper(srv.Client(), log),
		download.New(srv.Client(), log),
		log,
		pm,
		srv.URL+"/",
	)

	res := p.FetchIndex(context.Background(), 7, t.TempDir())
	if res.OK || res.Stage != StageDownload {
		t.Fatalf("want download-stage failure, got %+v", res)
	}

	// the registered bar must be released even though the download
	// failed, otherwise Close blocks forever
	closed := make(chan struct{})
	go func() {
		pm.Close()
		close(closed)
	}()

	select {
	case <-closed:
	case <-time.After(5 * time.Second):
		t.Fatal("ProgressManager.Close did not return after a failed download")
	}
}

func TestFetchFailure(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "down", http.StatusInternalServerError)
	}))
	defer ts.Close()

	dir := t.TempDir()
	res := newPipeline(ts).FetchLatest(context.Background(), dir)
	if res.OK || res.Stage != StageFetch {
		t.Fatalf("want fetch-stage failure, got %+v", res)
	}
	if names := listFiles(t, dir); len(names) != 0 {
		t.Fatalf("fetch failure must write nothing, got %v", names)
	}
}
