package pipeline

import (
	"context"
	"path/filepath"

	"xkcdd/internal/comics"
	"xkcdd/internal/download"
	"xkcdd/internal/scrape"
	"xkcdd/internal/store"
	"xkcdd/internal/ui"
)

// Stage names reported in a failed Result.
const (
	StageFetch          = "fetch"
	StageExtract        = "extract"
	StageDownload       = "download"
	StageSaveImage      = "save-image"
	StageSaveTranscript = "save-transcript"
)

// Result summarizes one pipeline run. Stage names the first failed step
// when OK is false.
type Result struct {
	OK    bool
	Stage string
	Title string
}

// Pipeline sequences fetch, extract, download and save for one comic.
// Each run is single-shot; the first failing step short-circuits the rest
// and partial progress is left as-is.
type Pipeline struct {
	scraper    *scrape.Scraper
	downloader *download.Downloader
	log        *ui.Logger
	progress   *ui.ProgressManager
	baseURL    string
}

func New(scraper *scrape.Scraper, downloader *download.Downloader, log *ui.Logger, progress *ui.ProgressManager, baseURL string) *Pipeline {
	if baseURL == "" {
		baseURL = comics.BaseURL
	}
	return &Pipeline{
		scraper:    scraper,
		downloader: downloader,
		log:        log,
		progress:   progress,
		baseURL:    baseURL,
	}
}

// FetchIndex downloads comic n into dir, persisting both the image and
// the transcript.
func (p *Pipeline) FetchIndex(ctx context.Context, n int, dir string) Result {
	comic, data, res := p.fetchComic(ctx, comics.PageURL(p.baseURL, n))
	if !res.OK {
		return res
	}

	if res := p.saveImage(comic, data, dir); !res.OK {
		return res
	}

	transcriptPath := filepath.Join(dir, comic.TranscriptName())
	if err := store.SaveTranscript(comic.Transcript, transcriptPath); err != nil {
		p.log.Errorf("Error saving transcript to %s: %v\n", transcriptPath, err)
		return fail(StageSaveTranscript, comic.Title)
	}

	p.log.Infof("Successfully downloaded comic %d: %s\n", n, comic.Title)
	return Result{OK: true, Title: comic.Title}
}

// FetchLatest downloads the current comic from the site root into dir.
// Only the image is persisted, not the transcript.
func (p *Pipeline) FetchLatest(ctx context.Context, dir string) Result {
	comic, data, res := p.fetchComic(ctx, p.baseURL)
	if !res.OK {
		return res
	}

	if res := p.saveImage(comic, data, dir); !res.OK {
		return res
	}

	p.log.Infof("Successfully downloaded current comic: %s\n", comic.Title)
	return Result{OK: true, Title: comic.Title}
}

func (p *Pipeline) fetchComic(ctx context.Context, pageURL string) (comics.Comic, []byte, Result) {
	doc, err := p.scraper.FetchDocument(ctx, pageURL)
	if err != nil {
		return comics.Comic{}, nil, fail(StageFetch, "")
	}

	comic, err := p.scraper.ExtractComic(doc)
	if err != nil {
		return comics.Comic{}, nil, fail(StageExtract, "")
	}

	var ph *ui.ProgressHandle
	if p.progress != nil {
		ph = p.progress.Register(comics.SanitizeTitle(comic.Title))
	}

	data, err := p.downloader.FetchImage(ctx, comic.ImageURL, ph)
	if err != nil {
		ph.Abort()
		return comics.Comic{}, nil, fail(StageDownload, comic.Title)
	}

	return comic, data, Result{OK: true, Title: comic.Title}
}

func (p *Pipeline) saveImage(comic comics.Comic, data []byte, dir string) Result {
	imagePath := filepath.Join(dir, comic.ImageName())
	if err := store.SaveImage(data, imagePath); err != nil {
		p.log.Errorf("Error saving image to %s: %v\n", imagePath, err)
		return fail(StageSaveImage, comic.Title)
	}
	return Result{OK: true, Title: comic.Title}
}

func fail(stage, title string) Result {
	return Result{OK: false, Stage: stage, Title: title}
}
