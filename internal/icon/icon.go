// Package icon produces the square PNG thumbnail Tabletop Simulator
// shows next to a saved object in its object browser.
package icon

import (
	"bytes"
	"fmt"
	"image/color"
	"io"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/disintegration/imaging"
)

// Size is the edge length of the icons the simulator displays.
const Size = 256

// FromReader decodes an image and scales it into a Size x Size PNG,
// cropping from the center when the aspect ratio differs.
func FromReader(r io.Reader) ([]byte, error) {
	img, err := imaging.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("decoding icon image: %w", err)
	}
	thumb := imaging.Fill(img, Size, Size, imaging.Center, imaging.Lanczos)

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, thumb, imaging.PNG); err != nil {
		return nil, fmt.Errorf("encoding icon: %w", err)
	}
	return buf.Bytes(), nil
}

// FromFile turns a local image file into icon bytes.
func FromFile(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening icon file: %w", err)
	}
	defer f.Close()
	return FromReader(f)
}

// Fetch downloads an image and turns it into icon bytes.
func Fetch(url string) ([]byte, error) {
	slog.Debug("Downloading icon", "url", url)

	client := &http.Client{Timeout: 30 * time.Second}
	resp, err := client.Get(url)
	if err != nil {
		return nil, fmt.Errorf("downloading icon: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("icon URL returned status %d", resp.StatusCode)
	}
	return FromReader(resp.Body)
}

// Resolve turns an icon reference, either an http(s) URL or a local
// file path, into icon bytes. An empty reference produces the
// placeholder so builds never fail for want of an icon.
func Resolve(ref string) ([]byte, error) {
	switch {
	case ref == "":
		return Placeholder()
	case strings.HasPrefix(ref, "http://"), strings.HasPrefix(ref, "https://"):
		return Fetch(ref)
	default:
		return FromFile(ref)
	}
}

// Placeholder renders a flat slate-blue icon.
func Placeholder() ([]byte, error) {
	img := imaging.New(Size, Size, color.NRGBA{R: 0x3a, G: 0x5a, B: 0x8c, A: 0xff})

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.PNG); err != nil {
		return nil, fmt.Errorf("encoding placeholder icon: %w", err)
	}
	return buf.Bytes(), nil
}
