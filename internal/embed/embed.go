// Package embed renders the share snippets for a DevCard.
package embed

import (
	"fmt"
	"net/url"
)

// Orientation is the card layout.
type Orientation string

const (
	Vertical   Orientation = "vertical"
	Horizontal Orientation = "horizontal"
)

// Size is the iframe size in pixels.
type Size struct {
	Width  int
	Height int
}

// ParseOrientation accepts "vertical" or "horizontal".
func ParseOrientation(s string) (Orientation, error) {
	switch o := Orientation(s); o {
	case Vertical, Horizontal:
		return o, nil
	}
	return "", fmt.Errorf("unknown layout %q: want %q or %q", s, Vertical, Horizontal)
}

// Size returns the fixed dimensions for the orientation. Anything but
// Horizontal renders as Vertical.
func (o Orientation) Size() Size {
	if o == Horizontal {
		return Size{Width: 720, Height: 360}
	}
	return Size{Width: 356, Height: 560}
}

func (o Orientation) normalize() Orientation {
	if o == Horizontal {
		return Horizontal
	}
	return Vertical
}

// Snippet returns the iframe HTML embedding the card of handle.
func Snippet(baseURL, handle string, o Orientation) string {
	o = o.normalize()
	size := o.Size()
	return fmt.Sprintf(
		`<iframe src="%s/embed/devcard/%s?layout=%s" width="%d" height="%d" style="border:0;border-radius:28px;" loading="lazy"></iframe>`,
		baseURL, url.PathEscape(handle), o, size.Width, size.Height,
	)
}

// DownloadURL returns the cover image reference for handle.
func DownloadURL(baseURL, handle string, o Orientation) string {
	return fmt.Sprintf("%s/api/devcard/%s?variant=%s", baseURL, url.PathEscape(handle), o.normalize())
}
