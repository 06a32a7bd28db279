package comics

import (
	"strconv"
	"strings"
)

// BaseURL is the comic site root; the latest comic lives at the root,
// a specific comic at BaseURL + index.
const BaseURL = "https://xkcd.com/"

// Comic is one scraped comic page, flat and single-use.
type Comic struct {
	ImageURL   string
	Title      string
	Transcript string
}

// invalidFilenameChars are stripped from titles before use as a file basename.
const invalidFilenameChars = `/\?%*:|"<>.`

// SanitizeTitle removes characters that are invalid in filenames.
// Strings without any of them pass through unchanged.
func SanitizeTitle(title string) string {
	var b strings.Builder
	b.Grow(len(title))
	for _, r := range title {
		if strings.ContainsRune(invalidFilenameChars, r) {
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// Ext returns the text after the final '.' in a URL. A URL with no dot
// yields the whole string; callers get whatever degenerate extension the
// site handed out.
func Ext(url string) string {
	if i := strings.LastIndexByte(url, '.'); i >= 0 {
		return url[i+1:]
	}
	return url
}

// PageURL builds the page address for a comic index.
func PageURL(base string, index int) string {
	return base + strconv.Itoa(index)
}

// ImageName returns the basename for the saved image file.
func (c Comic) ImageName() string {
	return SanitizeTitle(c.Title) + "." + Ext(c.ImageURL)
}

// TranscriptName returns the basename for the saved transcript file.
func (c Comic) TranscriptName() string {
	return SanitizeTitle(c.Title) + "_transcript.txt"
}
