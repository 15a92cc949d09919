package imaging

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/jpeg"
	"math"
	"strings"

	_ "image/gif"
	_ "image/png"

	"github.com/kolesa-team/go-webp/decoder"
	"github.com/kolesa-team/go-webp/webp"
	"golang.org/x/image/draw"
)

const (
	DefaultMaxWidth = 1024
	DefaultQuality  = 80

	encodedPrefix = "data:image/jpeg;base64,"
)

// CodecError reports a payload the codec could not decode or re-encode.
type CodecError struct {
	Op  string
	Err error
}

func (e *CodecError) Error() string { return fmt.Sprintf("image %s failed: %v", e.Op, e.Err) }

func (e *CodecError) Unwrap() error { return e.Err }

// Codec downscales and re-encodes uploaded raster images into the base64
// JPEG form the mobile-generator service expects. Output is deterministic
// for a given source and configuration.
type Codec struct {
	maxWidth int
	quality  int
}

func NewCodec(maxWidth, quality int) *Codec {
	if maxWidth <= 0 {
		maxWidth = DefaultMaxWidth
	}
	if quality <= 0 || quality > 100 {
		quality = DefaultQuality
	}
	return &Codec{maxWidth: maxWidth, quality: quality}
}

// Compressed is the transport-ready representation of an uploaded image.
type Compressed struct {
	Encoded string // data:image/jpeg;base64,<payload>
	Format  string
	Width   int
	Height  int
	SizeKB  int
}

// Compress decodes src, scales it down so the width does not exceed the
// configured maximum (aspect ratio preserved, height rounded to nearest),
// and re-encodes the result as JPEG wrapped in a data URI.
func (c *Codec) Compress(src []byte) (*Compressed, error) {
	img, err := decodeImage(src)
	if err != nil {
		return nil, &CodecError{Op: "decode", Err: err}
	}

	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if w > c.maxWidth {
		w, h = FitWidth(w, h, c.maxWidth)
		dst := image.NewRGBA(image.Rect(0, 0, w, h))
		draw.CatmullRom.Scale(dst, dst.Bounds(), img, b, draw.Src, nil)
		img = dst
	}

	var out bytes.Buffer
	if err := jpeg.Encode(&out, img, &jpeg.Options{Quality: c.quality}); err != nil {
		return nil, &CodecError{Op: "encode", Err: err}
	}

	payload := base64.StdEncoding.EncodeToString(out.Bytes())
	return &Compressed{
		Encoded: encodedPrefix + payload,
		Format:  "jpeg",
		Width:   w,
		Height:  h,
		SizeKB:  payloadKB(len(payload)),
	}, nil
}

// FitWidth scales (w, h) so the width becomes at most max, keeping the
// aspect ratio. Heights round to the nearest pixel and never drop below 1.
func FitWidth(w, h, max int) (int, int) {
	if w <= max {
		return w, h
	}
	scaled := int(math.Round(float64(h) * float64(max) / float64(w)))
	if scaled < 1 {
		scaled = 1
	}
	return max, scaled
}

// ImageInfo describes an already-encoded image without decoding it.
type ImageInfo struct {
	Format string
	SizeKB int
}

// Info reads the format tag and approximate decoded size out of a data URI
// produced by Compress (or by any compatible encoder).
func Info(encoded string) (ImageInfo, error) {
	rest, ok := strings.CutPrefix(encoded, "data:image/")
	if !ok {
		return ImageInfo{}, &CodecError{Op: "inspect", Err: fmt.Errorf("not a base64 image data URI")}
	}
	format, payload, ok := strings.Cut(rest, ";base64,")
	if !ok {
		return ImageInfo{}, &CodecError{Op: "inspect", Err: fmt.Errorf("missing base64 payload")}
	}
	return ImageInfo{Format: format, SizeKB: payloadKB(len(payload))}, nil
}

// payloadKB estimates the byte size of a base64 payload (3 bytes per 4
// characters) in kilobytes, rounded to nearest.
func payloadKB(n int) int {
	return int(math.Round(float64(n) * 3 / 4 / 1024))
}

func decodeImage(data []byte) (image.Image, error) {
	if isWEBP(data) {
		return webp.Decode(bytes.NewReader(data), &decoder.Options{})
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	return img, nil
}

func isWEBP(data []byte) bool {
	if len(data) < 12 {
		return false
	}
	return string(data[0:4]) == "RIFF" && string(data[8:12]) == "WEBP"
}
