package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// canvas is a fixed-size grid of single-width cells, each with a style.
// Drawing outside the bounds is clipped.
type canvas struct {
	w, h   int
	runes  [][]rune
	styles [][]int

	registry []lipgloss.Style
	keys     map[string]int
}

func newCanvas(w, h int) *canvas {
	c := &canvas{w: w, h: h, keys: make(map[string]int)}
	c.runes = make([][]rune, h)
	c.styles = make([][]int, h)
	for y := range h {
		c.runes[y] = []rune(strings.Repeat(" ", w))
		c.styles[y] = make([]int, w)
	}
	c.style("", lipgloss.NewStyle())
	return c
}

// style registers st under key and returns its id. Registering an existing
// key returns the existing id.
func (c *canvas) style(key string, st lipgloss.Style) int {
	if id, ok := c.keys[key]; ok {
		return id
	}
	id := len(c.registry)
	c.registry = append(c.registry, st)
	c.keys[key] = id
	return id
}

func (c *canvas) inside(x, y int) bool {
	return x >= 0 && x < c.w && y >= 0 && y < c.h
}

func (c *canvas) set(x, y int, r rune, st int) {
	if !c.inside(x, y) {
		return
	}
	c.runes[y][x] = r
	c.styles[y][x] = st
}

// fill paints the rectangle [x0,x1) × [y0,y1).
func (c *canvas) fill(x0, y0, x1, y1 int, r rune, st int) {
	for y := max(y0, 0); y < min(y1, c.h); y++ {
		for x := max(x0, 0); x < min(x1, c.w); x++ {
			c.runes[y][x] = r
			c.styles[y][x] = st
		}
	}
}

// text writes s starting at (x, y), truncated to maxW columns.
func (c *canvas) text(x, y int, s string, maxW, st int) {
	if maxW <= 0 || y < 0 || y >= c.h {
		return
	}
	if ansi.StringWidth(s) > maxW {
		s = ansi.Truncate(s, maxW, "…")
	}
	for _, r := range s {
		c.set(x, y, r, st)
		x++
	}
}

// lines renders the canvas, one string per row, merging runs of equal style.
func (c *canvas) lines() []string {
	out := make([]string, c.h)
	for y := range c.h {
		var b strings.Builder
		start := 0
		for x := 1; x <= c.w; x++ {
			if x < c.w && c.styles[y][x] == c.styles[y][start] {
				continue
			}
			st := c.registry[c.styles[y][start]]
			b.WriteString(st.Render(string(c.runes[y][start:x])))
			start = x
		}
		out[y] = b.String()
	}
	return out
}
