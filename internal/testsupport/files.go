package testsupport

import (
	"image"
	"image/color"
	"image/gif"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// WriteFile fills the target path with the requested number of bytes using a
// simple repeating pattern. A size <= 0 writes a single byte.
func WriteFile(t testing.TB, path string, size int64) {
	t.Helper()

	if size <= 0 {
		size = 1
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir for %s: %v", path, err)
	}
	data := make([]byte, size)
	for i := range data {
		data[i] = 0x42
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

// WriteImage encodes a width x height image at path using the encoder that
// matches the file extension (png, jpg/jpeg, gif).
func WriteImage(t testing.TB, path string, width, height int) {
	t.Helper()

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir for %s: %v", path, err)
	}
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, color.RGBA{R: uint8(x * 7), G: uint8(y * 5), B: 0x80, A: 0xff})
		}
	}

	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create %s: %v", path, err)
	}
	defer f.Close()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".png":
		err = png.Encode(f, img)
	case ".jpg", ".jpeg":
		err = jpeg.Encode(f, img, &jpeg.Options{Quality: 80})
	case ".gif":
		err = gif.Encode(f, img, nil)
	default:
		t.Fatalf("WriteImage: unsupported extension for %s", path)
	}
	if err != nil {
		t.Fatalf("encode %s: %v", path, err)
	}
}

// WriteLibrary creates a media library under root. Each entry is a
// root-relative "Program/Station/Category/File" path; image extensions get a
// small 32x18 image and anything else gets filler bytes.
func WriteLibrary(t testing.TB, root string, files ...string) {
	t.Helper()

	if err := os.MkdirAll(root, 0o755); err != nil {
		t.Fatalf("mkdir library: %v", err)
	}
	for _, rel := range files {
		path := filepath.Join(root, filepath.FromSlash(rel))
		switch strings.ToLower(filepath.Ext(rel)) {
		case ".png", ".jpg", ".jpeg", ".gif":
			WriteImage(t, path, 32, 18)
		default:
			WriteFile(t, path, 16)
		}
	}
}

// DefaultLibrary is a small two-program library used across tests.
var DefaultLibrary = []string{
	"Cardio/Bike/Warmup/easy_spin.png",
	"Cardio/Bike/Warmup/cadence.jpg",
	"Cardio/Rower/Form/catch.png",
	"Strength/Squat/Form/depth.gif",
	"Strength/Squat/Form/stance.jpeg",
	"Strength/Bench/Setup/grip.png",
}
