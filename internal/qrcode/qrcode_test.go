package qrcode

import (
	"bytes"
	"image/png"
	"testing"
)

func TestJoinURL(t *testing.T) {
	got := JoinURL("localhost:8080", "abc def")
	want := "http://localhost:8080/lobby.html?game=abc+def"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestGenerate(t *testing.T) {
	data, err := Generate(JoinURL("localhost:8080", "g1"))
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("not a png: %v", err)
	}
	if b := img.Bounds(); b.Dx() != size || b.Dy() != size {
		t.Errorf("size: got %dx%d, want %dx%d", b.Dx(), b.Dy(), size, size)
	}
}
