package utils

import (
	"bytes"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"testing"
)

func TestSha512String(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"", "cf83e1357eefb8bdf1542850d66d8007d620e4050b5715dc83f4a921d36ce9ce47d0d13c5d85f2b0ff8318d2877eec2f63b931bd47417a81a538327af927da3e"},
		{"abc", "ddaf35a193617abacc417349ae20413112e6fa4e89a97ea20a9eeee64b55d39a2192992a274fc1a836ba3c23a3feebbd454d4423643ce80e2a9ac94fa54ca49f"},
	}
	for _, tt := range tests {
		if got := Sha512String(tt.in); got != tt.want {
			t.Errorf("Sha512String(%q) = %s, want %s", tt.in, got, tt.want)
		}
	}
}

func TestRandSalt(t *testing.T) {
	a := RandSalt(60)
	b := RandSalt(60)
	if a == b {
		t.Error("two salts came out identical")
	}
	if len(a) < 60 {
		t.Errorf("salt too short: %d", len(a))
	}
}

func TestCreateThumb(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 100, 50))
	for x := 0; x < 100; x++ {
		for y := 0; y < 50; y++ {
			src.Set(x, y, color.RGBA{uint8(x), uint8(y), 0, 255})
		}
	}
	var in bytes.Buffer
	if err := png.Encode(&in, src); err != nil {
		t.Fatal(err)
	}

	var out bytes.Buffer
	result, err := CreateThumb(32, &in, &out)
	if err != nil {
		t.Fatalf("CreateThumb: %v", err)
	}
	if result.OldX != 100 || result.OldY != 50 {
		t.Errorf("original size = %dx%d, want 100x50", result.OldX, result.OldY)
	}
	if result.NewX != 32 || result.NewY != 16 {
		t.Errorf("thumb size = %dx%d, want 32x16", result.NewX, result.NewY)
	}
	if result.ThumbSize != int64(out.Len()) {
		t.Errorf("reported size %d != written %d", result.ThumbSize, out.Len())
	}
	decoded, err := jpeg.Decode(&out)
	if err != nil {
		t.Fatalf("thumb is not a valid JPEG: %v", err)
	}
	if decoded.Bounds().Dx() != 32 {
		t.Errorf("decoded width = %d", decoded.Bounds().Dx())
	}
}

func TestCreateThumbRejectsGarbage(t *testing.T) {
	var out bytes.Buffer
	if _, err := CreateThumb(32, bytes.NewReader([]byte("not an image")), &out); err == nil {
		t.Error("expected an error for non-image input")
	}
}
