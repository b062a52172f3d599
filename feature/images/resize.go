package images

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/jpeg"
	"path/filepath"
	"strings"

	_ "image/gif"
	_ "image/png"

	"github.com/rwcarlsen/goexif/exif"
	xdraw "golang.org/x/image/draw"
)

// MaxUploadBytes is the platform's media upload ceiling.
const MaxUploadBytes = 25 << 20

// Recompression search space: full scale at descending quality first, so
// minimal quality loss is preferred over shrinking dimensions.
var (
	scaleFactors  = []float64{1.0, 0.9, 0.8, 0.7, 0.6, 0.5, 0.4, 0.3}
	jpegQualities = []int{90, 85, 80, 75, 70, 65, 60}
)

// PrepareForUpload ensures an image payload fits under maxBytes.
//
// Payloads already under the ceiling pass through byte-for-byte with
// resized=false. Oversized payloads are re-encoded as JPEG: the EXIF
// orientation is baked into the pixels (the re-encode discards the tag),
// transparency is flattened, then scale factors crossed with quality levels
// are tried until one combination fits; the first success wins. The returned
// filename keeps the original stem with a .jpg extension.
func PrepareForUpload(data []byte, filename, mimeType string, maxBytes int) (out []byte, outName, outMime string, resized bool, err error) {
	if len(data) <= maxBytes {
		return data, filename, mimeType, false, nil
	}

	decoded, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, "", "", false, fmt.Errorf("decode image %q: %w", filename, err)
	}
	src := flattenOpaque(applyOrientation(decoded, orientationOf(data)))

	stem := strings.TrimSuffix(filename, filepath.Ext(filename))
	if stem == "" {
		stem = "event_image"
	}
	target := stem + ".jpg"
	bounds := src.Bounds()

	for _, scale := range scaleFactors {
		candidate := image.Image(src)
		if scale != 1.0 {
			w := max(1, int(float64(bounds.Dx())*scale))
			h := max(1, int(float64(bounds.Dy())*scale))
			dst := image.NewRGBA(image.Rect(0, 0, w, h))
			xdraw.CatmullRom.Scale(dst, dst.Bounds(), src, bounds, xdraw.Src, nil)
			candidate = dst
		}

		for _, quality := range jpegQualities {
			var buf bytes.Buffer
			if err := jpeg.Encode(&buf, candidate, &jpeg.Options{Quality: quality}); err != nil {
				return nil, "", "", false, fmt.Errorf("re-encode image %q: %w", filename, err)
			}
			if buf.Len() <= maxBytes {
				return buf.Bytes(), target, "image/jpeg", true, nil
			}
		}
	}

	return nil, "", "", false, fmt.Errorf("image %q cannot be shrunk below %d bytes", filename, maxBytes)
}

// orientationOf reads the EXIF orientation tag, returning 1 (no transform)
// for images without usable metadata.
func orientationOf(data []byte) int {
	meta, err := exif.Decode(bytes.NewReader(data))
	if err != nil {
		return 1
	}
	tag, err := meta.Get(exif.Orientation)
	if err != nil {
		return 1
	}
	orientation, err := tag.Int(0)
	if err != nil {
		return 1
	}
	return orientation
}

// applyOrientation remaps pixels per the EXIF orientation value so the
// re-encoded JPEG displays upright without the tag. Orientations 5-8 swap
// width and height.
func applyOrientation(src image.Image, orientation int) image.Image {
	if orientation <= 1 || orientation > 8 {
		return src
	}

	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	var dst *image.RGBA
	if orientation >= 5 {
		dst = image.NewRGBA(image.Rect(0, 0, h, w))
	} else {
		dst = image.NewRGBA(image.Rect(0, 0, w, h))
	}

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			c := src.At(b.Min.X+x, b.Min.Y+y)
			switch orientation {
			case 2: // mirrored
				dst.Set(w-1-x, y, c)
			case 3: // rotated 180
				dst.Set(w-1-x, h-1-y, c)
			case 4: // mirrored, rotated 180
				dst.Set(x, h-1-y, c)
			case 5: // mirrored, rotated 270 CW
				dst.Set(y, x, c)
			case 6: // rotated 90 CW
				dst.Set(h-1-y, x, c)
			case 7: // mirrored, rotated 90 CW
				dst.Set(h-1-y, w-1-x, c)
			case 8: // rotated 270 CW
				dst.Set(y, w-1-x, c)
			}
		}
	}
	return dst
}

// flattenOpaque composites the source onto white so transparency survives the
// JPEG encode (which has no alpha channel) as a deliberate background instead
// of whatever the encoder makes of unmultiplied pixels.
func flattenOpaque(src image.Image) *image.RGBA {
	b := src.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Bounds(), image.NewUniform(color.White), image.Point{}, draw.Src)
	draw.Draw(dst, dst.Bounds(), src, b.Min, draw.Over)
	return dst
}
