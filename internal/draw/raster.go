package draw

import (
	"math"
	"slices"
)

// toPixel scales a logical point to sub-pixel coordinates.
func (c *Canvas) toPixel(p Point) (x, y float64) {
	return p.X * c.scaleX, p.Y * c.scaleY
}

// SetFloat plots one logical point in the current ink.
func (c *Canvas) SetFloat(x, y float64) {
	px, py := c.toPixel(Point{X: x, Y: y})
	c.plot(int(math.Round(px)), int(math.Round(py)))
}

// DrawLine draws a segment between two logical points (Bresenham).
func (c *Canvas) DrawLine(p1, p2 Point) {
	fx1, fy1 := c.toPixel(p1)
	fx2, fy2 := c.toPixel(p2)
	x, y := int(math.Round(fx1)), int(math.Round(fy1))
	x2, y2 := int(math.Round(fx2)), int(math.Round(fy2))

	dx, dy := abs(x2-x), -abs(y2-y)
	sx, sy := 1, 1
	if x > x2 {
		sx = -1
	}
	if y > y2 {
		sy = -1
	}

	e := dx + dy
	for {
		c.plot(x, y)
		if x == x2 && y == y2 {
			return
		}
		e2 := 2 * e
		if e2 >= dy {
			e += dy
			x += sx
		}
		if e2 <= dx {
			e += dx
			y += sy
		}
	}
}

// DrawPolygon outlines a closed polygon, filling it first when filled is set.
func (c *Canvas) DrawPolygon(points []Point, filled bool) {
	n := len(points)
	if n < 3 {
		return
	}
	if filled {
		c.fillPolygon(points)
	}
	for i := 0; i < n; i++ {
		c.DrawLine(points[i], points[(i+1)%n])
	}
}

// fillPolygon fills by scanline in sub-pixel space, sampling each row at its centre.
func (c *Canvas) fillPolygon(points []Point) {
	c.scaledBuf = c.scaledBuf[:0]
	minY, maxY := math.Inf(1), math.Inf(-1)
	for _, p := range points {
		x, y := c.toPixel(p)
		c.scaledBuf = append(c.scaledBuf, Point{X: x, Y: y})
		minY = min(minY, y)
		maxY = max(maxY, y)
	}

	pts := c.scaledBuf
	for y := int(math.Floor(minY)); y <= int(math.Ceil(maxY)); y++ {
		scanY := float64(y) + 0.5
		xs := c.intersectionBuf[:0]
		for i, a := range pts {
			b := pts[(i+1)%len(pts)]
			if (a.Y <= scanY) == (b.Y <= scanY) {
				continue
			}
			xs = append(xs, a.X+(scanY-a.Y)/(b.Y-a.Y)*(b.X-a.X))
		}
		slices.Sort(xs)
		c.intersectionBuf = xs

		for i := 0; i+1 < len(xs); i += 2 {
			for x := int(math.Ceil(xs[i])); x <= int(math.Floor(xs[i+1])); x++ {
				c.plot(x, y)
			}
		}
	}
}

// BorrowPoints returns a scratch slice of n points, valid until the next call.
func (c *Canvas) BorrowPoints(n int) []Point {
	if cap(c.polygonBuf) < n {
		c.polygonBuf = make([]Point, n)
	}
	return c.polygonBuf[:n]
}
