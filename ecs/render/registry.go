package render

import (
	"image/color"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"golang.org/x/image/colornames"
)

var images = map[string]*ebiten.Image{}

// Color resolves a colornames name, falling back when it is unknown.
func Color(name string, fallback color.Color) color.Color {
	if c, ok := colornames.Map[strings.ToLower(strings.TrimSpace(name))]; ok {
		return c
	}
	return fallback
}

// tileImage returns a cached solid square used to draw tiles.
func tileImage(name string, fallback color.Color) *ebiten.Image {
	if img, ok := images[name]; ok {
		return img
	}
	img := ebiten.NewImage(tilePixels, tilePixels)
	img.Fill(Color(name, fallback))
	images[name] = img
	return img
}
