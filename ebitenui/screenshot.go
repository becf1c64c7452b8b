package ebitenui

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
)

// Screenshot queues a labeled capture of the next drawn frame. Files land in
// ScreenshotDir as <time>-<seq>-<label>.png.
func (b *Board) Screenshot(label string) {
	b.screenshotQueue = append(b.screenshotQueue, label)
}

// flushScreenshots writes every queued capture from screen.
func (b *Board) flushScreenshots(screen *ebiten.Image) {
	if len(b.screenshotQueue) == 0 {
		return
	}
	labels := b.screenshotQueue
	b.screenshotQueue = b.screenshotQueue[:0]

	if err := os.MkdirAll(b.ScreenshotDir, 0o755); err != nil {
		b.logger().Error("create screenshot dir", "dir", b.ScreenshotDir, "err", err)
		return
	}
	img := frameImage(screen)
	stamp := time.Now().Format("20060102-150405")
	for _, label := range labels {
		b.shots++
		path := filepath.Join(b.ScreenshotDir, shotName(stamp, b.shots, label))
		if err := savePNG(path, img); err != nil {
			b.logger().Error("save screenshot", "label", label, "err", err)
			continue
		}
		b.logger().Debug("screenshot saved", "label", label, "path", path)
	}
}

// frameImage reads screen into a straight-alpha image.
func frameImage(screen *ebiten.Image) *image.NRGBA {
	r := screen.Bounds()
	pix := make([]byte, 4*r.Dx()*r.Dy())
	screen.ReadPixels(pix)
	return unpremultiply(pix, r.Dx(), r.Dy())
}

// unpremultiply converts ebiten's premultiplied RGBA bytes to NRGBA.
func unpremultiply(pix []byte, w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	n := min(len(pix), len(img.Pix)) / 4
	for i := range n {
		o := i * 4
		c := color.NRGBAModel.Convert(color.RGBA{R: pix[o], G: pix[o+1], B: pix[o+2], A: pix[o+3]}).(color.NRGBA)
		img.Pix[o], img.Pix[o+1], img.Pix[o+2], img.Pix[o+3] = c.R, c.G, c.B, c.A
	}
	return img
}

func savePNG(path string, img image.Image) error {
	var buf bytes.Buffer
	enc := png.Encoder{CompressionLevel: png.BestSpeed}
	if err := enc.Encode(&buf, img); err != nil {
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return os.WriteFile(path, buf.Bytes(), 0o644)
}

// shotName builds a file name from the capture time, a per-board sequence
// number and a slug of the label.
func shotName(stamp string, seq int, label string) string {
	slug := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '.':
			return r
		case r >= 'A' && r <= 'Z':
			return r + ('a' - 'A')
		default:
			return '-'
		}
	}, strings.TrimSpace(label))
	slug = strings.Trim(slug, "-.")
	if slug == "" {
		slug = "frame"
	}
	return fmt.Sprintf("%s-%03d-%s.png", stamp, seq, slug)
}
