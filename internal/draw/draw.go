// Package draw renders a trapezoidal decomposition, its obstacle polygons,
// and a planned path to a PNG and, on iTerm, straight into the terminal —
// diagnostic tooling only, never on the path a planner actually runs.
package draw

import (
	"math"
	"os"

	"github.com/fogleman/gg"
	imgcat "github.com/martinlindhe/imgcat/lib"

	"github.com/trapplan/motionplan/geom"
	"github.com/trapplan/motionplan/internal/dbg"
	"github.com/trapplan/motionplan/trapmap"
)

const padding = 40

// TrapezoidMap renders every live trapezoid in m, filled and labeled with a
// readable name, and saves the result to path (also printing it inline if
// the terminal is iTerm).
func TrapezoidMap(m *trapmap.Map, scale float64, path string) error {
	traps := m.Set.All()
	minX, minY, maxX, maxY := bounds(traps)

	width := int(scale*(maxX-minX)) + padding*2
	height := int(scale*(maxY-minY)) + padding*2
	c := gg.NewContext(width, height)
	c.SetRGB(0, 0, 0)
	c.DrawRectangle(0, 0, float64(width), float64(height))
	c.Fill()

	// Flip so the origin is bottom-left, like the input coordinates.
	c.Translate(0, float64(height))
	c.Scale(1, -1)
	c.Translate(padding, padding)
	c.Scale(scale, scale)
	c.Translate(-minX, -minY)
	c.SetLineWidth(2 / scale)

	for _, t := range traps {
		fillTrapezoid(c, t)
	}
	for _, t := range traps {
		strokeTrapezoid(c, t, scale)
	}

	return save(c, path)
}

func fillTrapezoid(c *gg.Context, t *trapmap.Trapezoid) {
	outline(c, t)
	c.SetRGBA(0.3, 0.2, 1, 0.5)
	c.Fill()
}

func strokeTrapezoid(c *gg.Context, t *trapmap.Trapezoid, scale float64) {
	outline(c, t)
	c.SetRGB(0, 1, 0)
	c.Stroke()

	center := t.Vertices()
	var cx, cy float64
	for _, v := range center {
		cx += v.X
		cy += v.Y
	}
	n := float64(len(center))
	cx, cy = c.TransformPoint(cx/n, cy/n)
	c.Push()
	c.Identity()
	c.Scale(1/scale, 1/scale)
	c.SetRGB(1, 1, 1)
	c.DrawStringAnchored(dbg.Name(t), cx/scale, cy/scale, 0.5, 0.5)
	c.Pop()
}

func outline(c *gg.Context, t *trapmap.Trapezoid) {
	verts := t.Vertices()
	c.MoveTo(verts[0].X, verts[0].Y)
	for _, v := range verts[1:] {
		c.LineTo(v.X, v.Y)
	}
	c.ClosePath()
}

// Polygons renders a flat list of polygons (obstacles, C-space expansions,
// the vehicle footprint) as filled, outlined shapes.
func Polygons(polys []geom.Polygon, scale float64, path string) error {
	var pts []geom.Point
	for _, p := range polys {
		pts = append(pts, p.Points...)
	}
	minX, minY, maxX, maxY := boundPoints(pts)

	width := int(scale*(maxX-minX)) + padding*2
	height := int(scale*(maxY-minY)) + padding*2
	c := gg.NewContext(width, height)
	c.SetRGB(0, 0, 0)
	c.DrawRectangle(0, 0, float64(width), float64(height))
	c.Fill()
	c.SetFillRuleEvenOdd()

	c.Translate(0, float64(height))
	c.Scale(1, -1)
	c.Translate(padding, padding)
	c.Scale(scale, scale)
	c.Translate(-minX, -minY)
	c.SetLineWidth(2 / scale)

	for _, poly := range polys {
		if len(poly.Points) == 0 {
			continue
		}
		c.MoveTo(poly.Points[0].X, poly.Points[0].Y)
		for _, p := range poly.Points[1:] {
			c.LineTo(p.X, p.Y)
		}
		c.ClosePath()
	}
	c.SetRGB(0, 0.5, 0)
	c.FillPreserve()
	c.SetRGB(0, 1, 1)
	c.Stroke()

	return save(c, path)
}

// Path overlays a planned path as a polyline of waypoints atop whatever is
// already drawn in c — callers compose this with TrapezoidMap/Polygons by
// drawing to the same context before saving, or by re-rendering a
// background image first. Kept standalone since a path is meaningful with
// either backdrop.
func Path(c *gg.Context, waypoints []geom.Point) {
	if len(waypoints) == 0 {
		return
	}
	c.SetRGB(1, 0, 0)
	c.SetLineWidth(3)
	c.MoveTo(waypoints[0].X, waypoints[0].Y)
	for _, p := range waypoints[1:] {
		c.LineTo(p.X, p.Y)
	}
	c.Stroke()
	for _, p := range waypoints {
		c.DrawCircle(p.X, p.Y, 2)
		c.Fill()
	}
}

func bounds(traps []*trapmap.Trapezoid) (minX, minY, maxX, maxY float64) {
	var pts []geom.Point
	for _, t := range traps {
		pts = append(pts, t.Vertices()...)
	}
	return boundPoints(pts)
}

func boundPoints(pts []geom.Point) (minX, minY, maxX, maxY float64) {
	minX, minY = math.Inf(1), math.Inf(1)
	maxX, maxY = math.Inf(-1), math.Inf(-1)
	for _, p := range pts {
		minX = math.Min(minX, p.X)
		minY = math.Min(minY, p.Y)
		maxX = math.Max(maxX, p.X)
		maxY = math.Max(maxY, p.Y)
	}
	if math.IsInf(minX, 1) {
		return 0, 0, 1, 1
	}
	return minX, minY, maxX, maxY
}

func save(c *gg.Context, path string) error {
	if err := c.SavePNG(path); err != nil {
		return err
	}
	imgcat.CatFile(path, os.Stdout)
	return nil
}
