package display

import (
	"errors"
	"image"
	"image/color"
	"image/png"
	"math/rand"
	"os"
	"path/filepath"

	_ "image/gif"
	_ "image/jpeg"
)

// Panel is the rendering capability a physical e-paper driver provides.
// The image preparation above stays testable without one.
type Panel interface {
	SetBorder(c color.Color)
	Render(frame *image.Paletted) error
}

// PNGPanel is the headless Panel: it writes the prepared frame to a PNG
// file instead of driving a peripheral.
type PNGPanel struct {
	Path   string
	border color.Color
}

func (p *PNGPanel) SetBorder(c color.Color) {
	p.border = c
}

func (p *PNGPanel) Render(frame *image.Paletted) error {
	f, err := os.Create(p.Path)
	if err != nil {
		return err
	}

	encodeErr := png.Encode(f, frame)
	closeErr := f.Close()
	if encodeErr != nil {
		return encodeErr
	}
	return closeErr
}

// ErrNoComics is returned when no cached comic images exist to pick from.
var ErrNoComics = errors.New("no cached comic images")

// ChooseRandom picks one file uniformly at random from the accumulated
// image paths and decodes it. The second return is the chosen basename.
func ChooseRandom(paths []string) (image.Image, string, error) {
	if len(paths) == 0 {
		return nil, "", ErrNoComics
	}

	path := paths[rand.Intn(len(paths))]

	f, err := os.Open(path)
	if err != nil {
		return nil, "", err
	}
	defer func() {
		_ = f.Close()
	}()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, "", err
	}

	return img, filepath.Base(path), nil
}
