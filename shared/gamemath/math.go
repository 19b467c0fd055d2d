// Package gamemath holds the small float32 helpers shared by the animation
// core. It must stay free of engine dependencies so both the server and the
// headless client can use it.
package gamemath

import "math"

// Clamp limits v to [min, max].
func Clamp(v, min, max float32) float32 {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}

// Clamp01 limits v to [0, 1].
func Clamp01(v float32) float32 {
	return Clamp(v, 0, 1)
}

// Lerp interpolates linearly from a to b by t in [0, 1].
func Lerp(a, b, t float32) float32 {
	return a + (b-a)*t
}

// MoveToward steps current toward target by at most maxDelta, never
// overshooting.
func MoveToward(current, target, maxDelta float32) float32 {
	if current < target {
		current += maxDelta
		if current > target {
			current = target
		}
	} else if current > target {
		current -= maxDelta
		if current < target {
			current = target
		}
	}
	return current
}

// Mod wraps v into [0, length). Negative inputs wrap from the top end.
func Mod(v, length float32) float32 {
	if length <= 0 {
		return 0
	}
	m := float32(math.Mod(float64(v), float64(length)))
	if m < 0 {
		m += length
	}
	return m
}

// ApproxEqual reports whether a and b differ by no more than eps.
func ApproxEqual(a, b, eps float32) bool {
	d := a - b
	if d < 0 {
		d = -d
	}
	return d <= eps
}

// Vec2 is a 2D vector.
type Vec2 struct {
	X, Y float32
}

// Add returns v + o.
func (v Vec2) Add(o Vec2) Vec2 {
	return Vec2{v.X + o.X, v.Y + o.Y}
}

// Scale returns v scaled by s.
func (v Vec2) Scale(s float32) Vec2 {
	return Vec2{v.X * s, v.Y * s}
}

// LerpVec2 interpolates linearly from a to b by t.
func LerpVec2(a, b Vec2, t float32) Vec2 {
	return Vec2{Lerp(a.X, b.X, t), Lerp(a.Y, b.Y, t)}
}
