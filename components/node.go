package components

import (
	"github.com/automoto/animsync/shared/anim"
	"github.com/automoto/animsync/shared/gamemath"
	"github.com/yohamta/donburi"
)

// nodeAttributes is the shared attribute table for every node. The animation
// and replication layers hold these pointers; indices are stable and define
// the attribute's identity in the delta encoding.
var nodeAttributes = []*anim.AttributeInfo{
	{Name: "Position", Type: anim.TypeVec2, Network: true},
	{Name: "Rotation", Type: anim.TypeFloat, Network: true},
	{Name: "Scale", Type: anim.TypeVec2},
	{Name: "Opacity", Type: anim.TypeFloat, Network: true},
	{Name: "Visible", Type: anim.TypeBool, Network: true},
	{Name: "Label", Type: anim.TypeString},
}

// NodeData is a scene object's animatable state. It implements the attribute
// reflection contract: animations and received deltas write through
// SetAttribute, and ApplyAttributes settles derived state once per batch.
type NodeData struct {
	Position gamemath.Vec2
	Rotation float32
	Scale    gamemath.Vec2
	Opacity  float32
	Visible  bool
	Label    string

	// Revision increments on every applied batch so systems can cheaply
	// detect settled changes.
	Revision uint64

	Children []donburi.Entity

	pendingApply bool
}

var Node = donburi.NewComponentType[NodeData]()

// NewNodeData returns a visible, opaque node at the origin.
func NewNodeData() NodeData {
	return NodeData{
		Scale:   gamemath.Vec2{X: 1, Y: 1},
		Opacity: 1,
		Visible: true,
	}
}

func (n *NodeData) AttributeInfos() []*anim.AttributeInfo {
	return nodeAttributes
}

func (n *NodeData) Attribute(name string) (anim.Value, bool) {
	switch name {
	case "Position":
		return anim.Vec2Value(n.Position), true
	case "Rotation":
		return anim.FloatValue(n.Rotation), true
	case "Scale":
		return anim.Vec2Value(n.Scale), true
	case "Opacity":
		return anim.FloatValue(n.Opacity), true
	case "Visible":
		return anim.BoolValue(n.Visible), true
	case "Label":
		return anim.StringValue(n.Label), true
	}
	return anim.Value{}, false
}

func (n *NodeData) SetAttribute(name string, v anim.Value) bool {
	switch name {
	case "Position":
		n.Position = v.Vec2
	case "Rotation":
		n.Rotation = v.Float
	case "Scale":
		n.Scale = v.Vec2
	case "Opacity":
		n.Opacity = v.Float
	case "Visible":
		n.Visible = v.Bool
	case "Label":
		n.Label = v.Str
	default:
		return false
	}
	n.pendingApply = true
	return true
}

// ApplyAttributes settles a batch of staged writes: opacity is clamped and
// the revision bumped. Calling it with nothing staged is a no-op.
func (n *NodeData) ApplyAttributes() {
	if !n.pendingApply {
		return
	}
	n.pendingApply = false
	n.Opacity = gamemath.Clamp01(n.Opacity)
	n.Revision++
}

// AddChild links a child entity under this node. Idempotent.
func (n *NodeData) AddChild(child donburi.Entity) {
	for _, c := range n.Children {
		if c == child {
			return
		}
	}
	n.Children = append(n.Children, child)
}

// RemoveChild unlinks a child entity.
func (n *NodeData) RemoveChild(child donburi.Entity) {
	for i, c := range n.Children {
		if c == child {
			n.Children = append(n.Children[:i], n.Children[i+1:]...)
			return
		}
	}
}

// NodeAttributeInfos exposes the shared table for receivers decoding deltas.
func NodeAttributeInfos() []*anim.AttributeInfo {
	return nodeAttributes
}
