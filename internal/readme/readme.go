package readme

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"text/template"

	"xkcdd/internal/store"
	"xkcdd/internal/ui"
)

// ErrNoImage is returned when the newest daily directory has no PNG to
// feature; the README is left untouched in that case.
var ErrNoImage = errors.New("no PNG files in newest daily directory")

var tmpl = template.Must(template.New("readme").Parse(`# xkcd Daily

#### {{.Date}}

## {{.Title}}

![{{.Title}}]({{.Image}})

---

*This README is automatically updated with the latest xkcd comic.*
`))

type comicRef struct {
	Date  string
	Title string
	Image string
}

// Update rewrites <root>/README.md to feature the first PNG found in the
// most recent daily directory.
func Update(root string, log *ui.Logger) error {
	ref, err := mostRecent(root, log)
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, ref); err != nil {
		return err
	}

	readmePath := filepath.Join(root, "README.md")
	if err := os.WriteFile(readmePath, buf.Bytes(), 0644); err != nil {
		log.Errorf("Error writing %s: %v\n", readmePath, err)
		return err
	}

	log.Infof("README updated successfully with comic: %s\n", ref.Title)
	return nil
}

func mostRecent(root string, log *ui.Logger) (comicRef, error) {
	day, dir, err := store.NewestDay(root)
	if err != nil {
		log.Errorf("No comic found to update README: %v\n", err)
		return comicRef{}, err
	}

	pngs, err := store.Images(dir)
	if err != nil {
		return comicRef{}, err
	}
	if len(pngs) == 0 {
		log.Errorf("No PNG files found in %s\n", dir)
		return comicRef{}, ErrNoImage
	}

	image := pngs[0]
	title := strings.TrimSuffix(filepath.Base(image), filepath.Ext(image))

	rel, err := filepath.Rel(root, image)
	if err != nil {
		return comicRef{}, err
	}

	// GitHub needs spaces in the image reference percent-escaped.
	rel = strings.ReplaceAll(filepath.ToSlash(rel), " ", "%20")

	return comicRef{Date: day, Title: title, Image: rel}, nil
}
