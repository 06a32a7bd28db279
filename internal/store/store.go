package store

import (
	"errors"
	"os"
	"path/filepath"
	"sort"
	"time"
)

// ErrNoDays is returned when the data root holds no daily directories.
var ErrNoDays = errors.New("no daily directories found")

const dayFormat = "2006-01-02"

// DataDir returns the partition root for downloaded artifacts.
func DataDir(root string) string {
	return filepath.Join(root, "data")
}

// DailyDir ensures and returns <root>/data/<YYYY-MM-DD> for the given
// time. Creating it twice for the same date is a no-op.
func DailyDir(root string, t time.Time) (string, error) {
	dir := filepath.Join(DataDir(root), t.Format(dayFormat))
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", err
	}
	return dir, nil
}

// SaveImage writes raw image bytes to path. No atomic rename; a failed
// write can leave a truncated file behind.
func SaveImage(data []byte, path string) error {
	return os.WriteFile(path, data, 0644)
}

// SaveTranscript writes transcript text to path as UTF-8.
func SaveTranscript(text, path string) error {
	return os.WriteFile(path, []byte(text), 0644)
}

// NewestDay picks the most recent daily directory under <root>/data by
// sorting directory names descending. This is a plain string sort; it is
// date-correct only because the names are zero-padded YYYY-MM-DD.
func NewestDay(root string) (day string, dir string, err error) {
	entries, err := os.ReadDir(DataDir(root))
	if err != nil {
		return "", "", err
	}

	var days []string
	for _, e := range entries {
		if e.IsDir() {
			days = append(days, e.Name())
		}
	}
	if len(days) == 0 {
		return "", "", ErrNoDays
	}

	sort.Sort(sort.Reverse(sort.StringSlice(days)))
	day = days[0]
	return day, filepath.Join(DataDir(root), day), nil
}

// Images lists the *.png files in a daily directory.
func Images(dir string) ([]string, error) {
	return filepath.Glob(filepath.Join(dir, "*.png"))
}

// AllImages lists every image file accumulated under <root>/data, across
// all daily directories.
func AllImages(root string) ([]string, error) {
	var out []string
	for _, pattern := range []string{"*.png", "*.jpg", "*.jpeg", "*.gif"} {
		matches, err := filepath.Glob(filepath.Join(DataDir(root), "*", pattern))
		if err != nil {
			return nil, err
		}
		out = append(out, matches...)
	}
	sort.Strings(out)
	return out, nil
}
