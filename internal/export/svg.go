// Package export renders recorded runs as standalone SVG documents.
package export

import (
	"fmt"
	"math"
	"strings"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/san-kum/dynmotion/internal/sim"
	"github.com/san-kum/dynmotion/internal/value"
)

type Point struct {
	X, Y float64
}

type bounds struct {
	minX, maxX, minY, maxY float64
}

func (b *bounds) include(p Point) {
	b.minX = min(b.minX, p.X)
	b.maxX = max(b.maxX, p.X)
	b.minY = min(b.minY, p.Y)
	b.maxY = max(b.maxY, p.Y)
}

// pad widens the box by ten percent on each side and guards flat ranges.
func (b *bounds) pad() {
	rangeX := b.maxX - b.minX
	rangeY := b.maxY - b.minY
	if rangeX == 0 {
		rangeX = 1
	}
	if rangeY == 0 {
		rangeY = 1
	}
	b.minX -= rangeX * 0.1
	b.maxX += rangeX * 0.1
	b.minY -= rangeY * 0.1
	b.maxY += rangeY * 0.1
}

func (b *bounds) project(p Point, width, height int) (float64, float64) {
	x := (p.X - b.minX) / (b.maxX - b.minX) * float64(width)
	y := float64(height) - (p.Y-b.minY)/(b.maxY-b.minY)*float64(height)
	return x, y
}

func header(sb *strings.Builder, width, height int) {
	fmt.Fprintf(sb, `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
`, width, height, width, height)
}

func path(sb *strings.Builder, points []Point, b *bounds, width, height int, stroke string) {
	fmt.Fprintf(sb, `<path fill="none" stroke="%s" stroke-width="1.5" d="`, stroke)
	for i, p := range points {
		x, y := b.project(p, width, height)
		if i == 0 {
			fmt.Fprintf(sb, "M%.1f,%.1f", x, y)
		} else {
			fmt.Fprintf(sb, " L%.1f,%.1f", x, y)
		}
	}
	sb.WriteString("\"/>\n")
}

// TrajectoryToSVG draws a single polyline scaled to fit the canvas.
func TrajectoryToSVG(points []Point, width, height int, strokeColor string) string {
	if len(points) < 2 {
		return ""
	}

	b := bounds{points[0].X, points[0].X, points[0].Y, points[0].Y}
	for _, p := range points {
		b.include(p)
	}
	b.pad()

	var sb strings.Builder
	header(&sb, width, height)
	path(&sb, points, &b, width, height, strokeColor)
	sb.WriteString("</svg>")
	return sb.String()
}

// Palette returns n evenly spaced hues.
func Palette(n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = colorful.Hsv(math.Mod(float64(i)*360/float64(max(n, 1))+120, 360), 0.7, 1).Hex()
	}
	return out
}

// ResultToSVG plots every column of a run against time, sharing one scale.
func ResultToSVG(result *sim.Result, width, height int) string {
	if result == nil || len(result.Samples) < 2 {
		return ""
	}

	width0 := len(result.Samples[0])
	curves := make([][]Point, width0)
	b := bounds{result.Times[0], result.Times[0], result.Samples[0][0], result.Samples[0][0]}
	for c := range curves {
		col := result.Column(c)
		curves[c] = make([]Point, len(col))
		for i, v := range col {
			p := Point{X: result.Times[i], Y: v}
			curves[c][i] = p
			b.include(p)
		}
	}
	b.pad()

	colors := Palette(len(curves))
	var sb strings.Builder
	header(&sb, width, height)
	for c, pts := range curves {
		path(&sb, pts, &b, width, height, colors[c])
	}
	sb.WriteString("</svg>")
	return sb.String()
}

// SwatchesToSVG lays out colors as a horizontal strip, one cell per frame.
func SwatchesToSVG(colors []value.Color, width, height int) string {
	if len(colors) == 0 {
		return ""
	}

	var sb strings.Builder
	header(&sb, width, height)
	cell := float64(width) / float64(len(colors))
	for i, c := range colors {
		fmt.Fprintf(&sb, `<rect x="%.2f" y="0" width="%.2f" height="%d" fill="%s" fill-opacity="%.3f"/>
`, float64(i)*cell, cell+0.5, height, c.Hex(), value.Clamp(float64(c.A)/255, 0, 1))
	}
	sb.WriteString("</svg>")
	return sb.String()
}
