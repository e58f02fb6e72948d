package server

import (
	"fmt"
	"html/template"
	"strings"

	"maldreth/internal/layout"
)

const (
	svgSize    = 640
	svgPadding = 80

	nodeRadius         = 30
	nodeRadiusSelected = 38
	nodeFill           = "#7ac142"
	nodeFillSelected   = "#5a9f17"
	edgeStroke         = "#787878"
)

// renderSVG turns a positioned diagram into an inline SVG document. Node
// labels link back to the lifecycle view with the stage preselected.
func renderSVG(diagram layout.Diagram) template.HTML {
	center := float64(svgSize) / 2
	scale := (center - svgPadding) / diagram.Radius

	px := func(v float64) float64 { return center + v*scale }

	var b strings.Builder
	fmt.Fprintf(&b, `<svg viewBox="0 0 %d %d" role="img" aria-label="Research data lifecycle">`+"\n", svgSize, svgSize)

	for _, edge := range diagram.Edges {
		dash := ""
		if edge.Dashed {
			dash = ` stroke-dasharray="6 4"`
		}
		fmt.Fprintf(&b,
			`<line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f" stroke="%s" stroke-opacity="0.6" stroke-width="1.5"%s/>`+"\n",
			px(edge.X1), px(edge.Y1), px(edge.X2), px(edge.Y2), edgeStroke, dash)
	}

	for _, node := range diagram.Nodes {
		radius := float64(nodeRadius)
		fill := nodeFill
		opacity := "0.8"
		if node.Selected {
			radius = nodeRadiusSelected
			fill = nodeFillSelected
			opacity = "1"
		}
		name := template.HTMLEscapeString(node.Name)
		title := template.HTMLEscapeString(node.Description)

		fmt.Fprintf(&b, `<a href="/lifecycle?stage=%d">`+"\n", node.StageID)
		fmt.Fprintf(&b,
			`<circle cx="%.1f" cy="%.1f" r="%.0f" fill="%s" fill-opacity="%s"><title>%s</title></circle>`+"\n",
			px(node.X), px(node.Y), radius, fill, opacity, title)
		fmt.Fprintf(&b,
			`<text x="%.1f" y="%.1f" text-anchor="middle" dominant-baseline="middle" font-size="11" fill="#1a1a1a">%s</text>`+"\n",
			px(node.X), px(node.Y), name)
		b.WriteString("</a>\n")
	}

	b.WriteString("</svg>")
	return template.HTML(b.String())
}
