package export

import (
	"fmt"
	"strings"
)

// CorrelationSVG renders a sampled correlation function as an SVG
// polyline with a dashed line marking the mean-field background n^2.
func CorrelationSVG(rs, cs []float64, n float64, width, height int, strokeColor string) string {
	if len(rs) < 2 || len(rs) != len(cs) {
		return ""
	}

	minY, maxY := cs[0], cs[0]
	for _, c := range cs {
		if c < minY {
			minY = c
		}
		if c > maxY {
			maxY = c
		}
	}
	background := n * n
	if background < minY {
		minY = background
	}
	if background > maxY {
		maxY = background
	}

	rangeY := maxY - minY
	if rangeY == 0 {
		rangeY = 1
	}
	minY -= rangeY * 0.1
	maxY += rangeY * 0.1
	rangeY = maxY - minY

	minX, maxX := rs[0], rs[len(rs)-1]
	rangeX := maxX - minX
	if rangeX == 0 {
		rangeX = 1
	}

	toX := func(r float64) float64 { return (r - minX) / rangeX * float64(width) }
	toY := func(c float64) float64 { return float64(height) - (c-minY)/rangeY*float64(height) }

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
`, width, height, width, height))

	by := toY(background)
	sb.WriteString(fmt.Sprintf(`<line x1="0" y1="%.1f" x2="%d" y2="%.1f" stroke="#555555" stroke-width="1" stroke-dasharray="6,4"/>
`, by, width, by))

	sb.WriteString(fmt.Sprintf(`<path fill="none" stroke="%s" stroke-width="1.5" d="M`, strokeColor))
	for i := range rs {
		x := toX(rs[i])
		y := toY(cs[i])
		if i == 0 {
			sb.WriteString(fmt.Sprintf("%.1f,%.1f", x, y))
		} else {
			sb.WriteString(fmt.Sprintf(" L%.1f,%.1f", x, y))
		}
	}
	sb.WriteString(`"/>
</svg>`)
	return sb.String()
}
