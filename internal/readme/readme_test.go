package readme

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"xkcdd/internal/ui"
)

func seed(t *testing.T, root, day, imageName string) {
	t.Helper()
	dir := filepath.Join(root, "data", day)
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatal(err)
	}
	if imageName != "" {
		if err := os.WriteFile(filepath.Join(dir, imageName), []byte{1}, 0644); err != nil {
			t.Fatal(err)
		}
	}
}

func TestUpdatePicksNewestDay(t *testing.T) {
	root := t.TempDir()
	seed(t, root, "2024-01-05", "Old Comic.png")
	seed(t, root, "2024-01-20", "Test Comic.png")
	seed(t, root, "2023-12-31", "Older Comic.png")

	if err := Update(root, ui.NewLogger(false)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	b, err := os.ReadFile(filepath.Join(root, "README.md"))
	if err != nil {
		t.Fatalf("README not written: %v", err)
	}
	content := string(b)

	for _, want := range []string{
		"# xkcd Daily",
		"#### 2024-01-20",
		"## Test Comic",
		"![Test Comic](data/2024-01-20/Test%20Comic.png)",
		"automatically updated",
	} {
		if !strings.Contains(content, want) {
			t.Errorf("README missing %q:\n%s", want, content)
		}
	}
}

func TestUpdateNoImagesWritesNothing(t *testing.T) {
	root := t.TempDir()
	seed(t, root, "2024-01-20", "")

	err := Update(root, ui.NewLogger(false))
	if !errors.Is(err, ErrNoImage) {
		t.Fatalf("want ErrNoImage, got %v", err)
	}

	if _, err := os.Stat(filepath.Join(root, "README.md")); !os.IsNotExist(err) {
		t.Fatal("README must not be written when no PNG exists")
	}
}

func TestUpdateNoDataDir(t *testing.T) {
	root := t.TempDir()

	if err := Update(root, ui.NewLogger(false)); err == nil {
		t.Fatal("want error for missing data directory, got nil")
	}
	if _, err := os.Stat(filepath.Join(root, "README.md")); !os.IsNotExist(err) {
		t.Fatal("README must not be written when data/ is missing")
	}
}
