// Package svg is the render surface: it draws a geometry scene as SVG.
package svg

import (
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
	"time"

	svgo "github.com/ajstarks/svgo"

	"github.com/okian/chartkit/internal/domain/geometry"
	"github.com/okian/chartkit/pkg/metrics"
)

// DefaultStyle is the stylesheet embedded in every document.
const DefaultStyle = `
text { font-family: Roboto, "Helvetica Neue", Helvetica, Arial, sans-serif; font-size: 10px; }
.bar { fill: #5b7db1; }
.bar.weekend { fill: #a9bcd9; }
.annotation { font-size: 9px; }
.tooltip text { font-size: 11px; }
`

// Render writes scene to w as a standalone SVG document.
func Render(w io.Writer, scene geometry.Scene) error {
	start := time.Now()
	ew := &errWriter{w: w}
	canvas := svgo.New(ew)
	width, height := px(scene.Width), px(scene.Height)
	canvas.Start(width, height, attr("id", scene.ID), fmt.Sprintf(`viewBox="0 0 %d %d"`, width, height))
	canvas.Style("text/css", DefaultStyle)
	for _, g := range scene.Groups {
		group(canvas, g)
	}
	canvas.End()
	if ew.err != nil {
		return fmt.Errorf("render %s: %w", scene.ID, ew.err)
	}
	metrics.RecordRender(chartName(scene.ID), float64(time.Since(start).Microseconds())/1000)
	return nil
}

func group(canvas *svgo.SVG, g geometry.Group) {
	var attrs []string
	if g.ID != "" {
		attrs = append(attrs, attr("id", g.ID))
	}
	if g.Class != "" {
		attrs = append(attrs, attr("class", g.Class))
	}
	if g.Transform != "" {
		attrs = append(attrs, attr("transform", g.Transform))
	}
	if g.Hidden {
		attrs = append(attrs, attr("display", "none"))
	}
	canvas.Group(attrs...)
	for _, p := range g.Primitives {
		primitive(canvas, p)
	}
	for _, c := range g.Groups {
		group(canvas, c)
	}
	canvas.Gend()
}

func primitive(canvas *svgo.SVG, p geometry.Primitive) {
	switch v := p.(type) {
	case geometry.Circle:
		circle(canvas, v)
	case geometry.Rect:
		if v.Rx > 0 {
			rx := px(v.Rx)
			canvas.Roundrect(px(v.X), px(v.Y), px(v.Width), px(v.Height), rx, rx, style(v.Style, v.Tags)...)
			return
		}
		d := "M" + num(v.X) + " " + num(v.Y) + "h" + num(v.Width) + "v" + num(v.Height) + "h" + num(-v.Width) + "Z"
		canvas.Path(d, style(v.Style, v.Tags)...)
	case geometry.Line:
		d := "M" + num(v.X1) + " " + num(v.Y1) + "L" + num(v.X2) + " " + num(v.Y2)
		canvas.Path(d, style(v.Style, nil)...)
	case geometry.Polyline:
		if d := polyline(v.Points); d != "" {
			canvas.Path(d, style(v.Style, nil)...)
		}
	case geometry.Text:
		attrs := append(style(v.Style, nil), attr("text-anchor", string(v.Anchor)))
		canvas.Text(px(v.X), px(v.Y), v.Content, attrs...)
	}
}

// circle writes a circle at float precision so points line up with paths;
// svgo's Circle only takes whole pixels.
func circle(canvas *svgo.SVG, c geometry.Circle) {
	attrs := append([]string{attr("cx", num(c.CX)), attr("cy", num(c.CY)), attr("r", num(c.R))}, style(c.Style, nil)...)
	fmt.Fprintf(canvas.Writer, "<circle %s/>\n", strings.Join(attrs, " "))
}

// polyline builds a path through points, breaking it at non-finite values.
func polyline(points []geometry.Point) string {
	var b strings.Builder
	inLine := false
	for _, p := range points {
		if !finite(p.X) || !finite(p.Y) {
			inLine = false
			continue
		}
		if inLine {
			b.WriteString("L")
		} else {
			b.WriteString("M")
			inLine = true
		}
		b.WriteString(num(p.X) + " " + num(p.Y))
	}
	return b.String()
}

func style(s geometry.Style, tags []string) []string {
	var attrs []string
	class := strings.TrimSpace(strings.Join(append([]string{s.Class}, tags...), " "))
	if class != "" {
		attrs = append(attrs, attr("class", class))
	}
	if s.Fill != "" {
		attrs = append(attrs, attr("fill", s.Fill))
	}
	if s.Stroke != "" {
		attrs = append(attrs, attr("stroke", s.Stroke))
	}
	if s.StrokeWidth > 0 {
		attrs = append(attrs, attr("stroke-width", num(s.StrokeWidth)))
	}
	return attrs
}

func attr(name, value string) string {
	return name + `="` + escape(value) + `"`
}

var attrEscaper = strings.NewReplacer(`&`, "&amp;", `<`, "&lt;", `>`, "&gt;", `"`, "&quot;")

func escape(s string) string { return attrEscaper.Replace(s) }

func num(v float64) string {
	return strconv.FormatFloat(v, 'g', 6, 64)
}

func px(v float64) int {
	return int(math.Round(v))
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// chartName strips the session suffix from a scene id for metric labels.
func chartName(id string) string {
	name, _, _ := strings.Cut(id, "-")
	return name
}

// errWriter keeps the first write error; svgo itself does not report them.
type errWriter struct {
	w   io.Writer
	err error
}

func (e *errWriter) Write(p []byte) (int, error) {
	if e.err != nil {
		return len(p), nil
	}
	n, err := e.w.Write(p)
	if err != nil {
		e.err = err
	}
	return n, err
}
