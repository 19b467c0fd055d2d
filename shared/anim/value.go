// Package anim is the animation core shared by the server and the headless
// client: keyframed value curves, per-attribute animation bindings, the
// track-multiplexing AnimationController and its two codecs (the quantized
// network form and the full-fidelity persistence form). It has no dependency
// on the entity layer; targets are reached through the AttributeTarget
// contract.
package anim

import (
	"github.com/automoto/animsync/shared/gamemath"
	"github.com/automoto/animsync/shared/wire"
	"github.com/tanema/gween/ease"
)

// ValueType identifies the declared type of an attribute or curve value.
type ValueType uint8

const (
	TypeFloat ValueType = iota
	TypeInt
	TypeBool
	TypeVec2
	TypeString
)

func (t ValueType) String() string {
	switch t {
	case TypeFloat:
		return "float"
	case TypeInt:
		return "int"
	case TypeBool:
		return "bool"
	case TypeVec2:
		return "vec2"
	case TypeString:
		return "string"
	}
	return "unknown"
}

// Value is a typed attribute value. The zero Value is a float 0. Values are
// comparable, which the replication diff relies on.
type Value struct {
	Type  ValueType
	Float float32
	Int   int32
	Bool  bool
	Vec2  gamemath.Vec2
	Str   string
}

func FloatValue(v float32) Value { return Value{Type: TypeFloat, Float: v} }

func IntValue(v int32) Value { return Value{Type: TypeInt, Int: v} }

func BoolValue(v bool) Value { return Value{Type: TypeBool, Bool: v} }

func Vec2Value(v gamemath.Vec2) Value { return Value{Type: TypeVec2, Vec2: v} }

func StringValue(v string) Value { return Value{Type: TypeString, Str: v} }

// Interpolate blends from a to b by t in [0, 1] using fn as the easing
// kernel (nil means linear). Discrete types (bool, string) hold a until t
// reaches 1; ints are eased and rounded.
func Interpolate(a, b Value, t float32, fn ease.TweenFunc) Value {
	if a.Type != b.Type {
		return a
	}
	u := gamemath.Clamp01(t)
	if fn != nil {
		u = fn(u, 0, 1, 1)
	}
	switch a.Type {
	case TypeFloat:
		return FloatValue(gamemath.Lerp(a.Float, b.Float, u))
	case TypeVec2:
		return Vec2Value(gamemath.LerpVec2(a.Vec2, b.Vec2, u))
	case TypeInt:
		return IntValue(int32(gamemath.Lerp(float32(a.Int), float32(b.Int), u) + 0.5))
	default:
		if t >= 1 {
			return b
		}
		return a
	}
}

// WriteValue appends v to the wire buffer using its declared type. The type
// itself is not encoded; readers recover it from attribute metadata.
func WriteValue(w *wire.Writer, v Value) {
	switch v.Type {
	case TypeFloat:
		w.WriteFloat(v.Float)
	case TypeInt:
		w.WriteInt(v.Int)
	case TypeBool:
		w.WriteBool(v.Bool)
	case TypeVec2:
		w.WriteFloat(v.Vec2.X)
		w.WriteFloat(v.Vec2.Y)
	case TypeString:
		w.WriteString(v.Str)
	}
}

// ReadValue reads a value of declared type t from the wire buffer.
func ReadValue(r *wire.Reader, t ValueType) (Value, error) {
	switch t {
	case TypeFloat:
		f, err := r.ReadFloat()
		return FloatValue(f), err
	case TypeInt:
		i, err := r.ReadInt()
		return IntValue(i), err
	case TypeBool:
		b, err := r.ReadBool()
		return BoolValue(b), err
	case TypeVec2:
		x, err := r.ReadFloat()
		if err != nil {
			return Value{}, err
		}
		y, err := r.ReadFloat()
		return Vec2Value(gamemath.Vec2{X: x, Y: y}), err
	case TypeString:
		s, err := r.ReadString()
		return StringValue(s), err
	}
	return Value{}, wire.ErrUnexpectedEnd
}
