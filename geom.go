package gesture

import (
	"math"

	"honnef.co/go/curve"
)

func (p Point) pt() curve.Point {
	return curve.Pt(p.X, p.Y)
}

// Angle returns the angle in degrees of the vector from p1 to p2, in the
// range (-180, 180]. With y increasing downward, 90 points down the screen.
func Angle(p1, p2 Point) float64 {
	deg := p2.pt().Sub(p1.pt()).Angle() * 180 / math.Pi
	if deg <= -180 {
		deg += 360
	}
	return deg
}

// Distance returns the Euclidean distance between p1 and p2.
func Distance(p1, p2 Point) float64 {
	return p1.pt().Distance(p2.pt())
}

// DirectionFromAngle buckets an angle in degrees into a direction.
//
// Buckets are evaluated in the order down [45,135), left (>=135 or <=-135),
// up (-135,-45), right [-45,45]; the first match wins. The ranges only touch
// at their closed ends, so the order decides the 135 and -135 boundaries in
// favor of left and -45 in favor of right.
func DirectionFromAngle(angle float64) Direction {
	switch {
	case angle >= 45 && angle < 135:
		return DirectionDown
	case angle >= 135 || angle <= -135:
		return DirectionLeft
	case angle < -45 && angle > -135:
		return DirectionUp
	case angle >= -45 && angle <= 45:
		return DirectionRight
	}
	// NaN
	return DirectionNone
}

// Scale returns the ratio of the current two-finger spread to the starting
// spread. It returns 0 when either sample does not hold exactly two points or
// the starting points coincide.
func Scale(start, move []Point) float64 {
	if len(start) != 2 || len(move) != 2 {
		return 0
	}
	move = pairByID(start, move)
	d0 := Distance(start[0], start[1])
	if d0 == 0 {
		return 0
	}
	return Distance(move[0], move[1]) / d0
}

// Rotation returns the change in degrees of the angle between the two
// fingers, measured from point 1 to point 0. The result is normalized into
// (-180, 180]. It returns 0 unless both samples hold exactly two points.
func Rotation(start, move []Point) float64 {
	if len(start) != 2 || len(move) != 2 {
		return 0
	}
	move = pairByID(start, move)
	return normalizeDegrees(Angle(move[1], move[0]) - Angle(start[1], start[0]))
}

// Center returns the midpoint of the first two points, or the single point
// when only one is present.
func Center(points []Point) Point {
	switch len(points) {
	case 0:
		return Point{}
	case 1:
		return points[0]
	}
	m := points[0].pt().Midpoint(points[1].pt())
	return Point{X: m.X, Y: m.Y}
}

// pairByID reorders move so that move[i] is the same contact as start[i].
// It falls back to positional order when the IDs cannot be matched one to
// one, which is always the case for surfaces that do not report IDs.
func pairByID(start, move []Point) []Point {
	if len(start) != len(move) || len(start) < 2 {
		return move
	}
	paired := make([]Point, len(start))
	used := make([]bool, len(move))
	for i, sp := range start {
		found := false
		for j, mp := range move {
			if !used[j] && mp.ID == sp.ID {
				paired[i] = mp
				used[j] = true
				found = true
				break
			}
		}
		if !found {
			return move
		}
	}
	return paired
}

// primaryPair returns the first start point and its counterpart in move.
func primaryPair(start, move []Point) (Point, Point) {
	a := start[0]
	for _, p := range move {
		if p.ID == a.ID {
			return a, p
		}
	}
	return a, move[0]
}

func normalizeDegrees(deg float64) float64 {
	for deg > 180 {
		deg -= 360
	}
	for deg <= -180 {
		deg += 360
	}
	return deg
}
