package download

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"xkcdd/internal/ui"
)

func TestNormalize(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"//imgs.example.com/a.png", "https://imgs.example.com/a.png"},
		{"https://imgs.example.com/a.png", "https://imgs.example.com/a.png"},
		{"http://imgs.example.com/a.png", "http://imgs.example.com/a.png"},
	}
	for _, c := range cases {
		if got := Normalize(c.in); got != c.want {
			t.Errorf("Normalize(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestFetchImage(t *testing.T) {
	payload := []byte{0x89, 'P', 'N', 'G', 1, 2, 3, 4}

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write(payload)
	}))
	defer ts.Close()

	d := New(ts.Client(), ui.NewLogger(false))
	got, err := d.FetchImage(context.Background(), ts.URL+"/a.png", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !bytes.Equal(got, payload) {
		t.Fatalf("downloaded bytes differ from served bytes")
	}
}

func TestFetchImageNon200(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "nope", http.StatusNotFound)
	}))
	defer ts.Close()

	d := New(ts.Client(), ui.NewLogger(false))
	if _, err := d.FetchImage(context.Background(), ts.URL+"/a.png", nil); err == nil {
		t.Fatal("want error for HTTP 404, got nil")
	}
}
