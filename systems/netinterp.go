package systems

import (
	"github.com/automoto/animsync/components"
	"github.com/automoto/animsync/shared/netcomponents"
	"github.com/automoto/animsync/tags"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

// NewNetInterpSystem smooths replicated transforms into remote nodes: each
// new snapshot restarts a blend from the currently displayed pose, finishing
// one snapshot interval later.
func NewNetInterpSystem(tickRate int, dt float32) func(e *ecs.ECS) {
	step := float64(dt) * float64(tickRate)
	return func(e *ecs.ECS) {
		tags.Remote.Each(e.World, func(entry *donburi.Entry) {
			if !entry.HasComponent(components.NetInterp) ||
				!entry.HasComponent(netcomponents.NetTransform) ||
				!entry.HasComponent(components.Node) {
				return
			}
			interp := components.NetInterp.Get(entry)
			net := netcomponents.NetTransform.Get(entry)
			node := components.Node.Get(entry)

			if !interp.Initialized {
				interp.PrevX, interp.PrevY, interp.PrevRot = net.X, net.Y, net.Rotation
				interp.TargetX, interp.TargetY, interp.TargetRot = net.X, net.Y, net.Rotation
				interp.T = 1
				interp.Initialized = true
			} else if net.X != interp.TargetX || net.Y != interp.TargetY || net.Rotation != interp.TargetRot {
				interp.PrevX = float64(node.Position.X)
				interp.PrevY = float64(node.Position.Y)
				interp.PrevRot = float64(node.Rotation)
				interp.TargetX, interp.TargetY, interp.TargetRot = net.X, net.Y, net.Rotation
				interp.T = 0
			}

			interp.T += step
			if interp.T > 1 {
				interp.T = 1
			}
			t := interp.T
			node.Position.X = float32(interp.PrevX + (interp.TargetX-interp.PrevX)*t)
			node.Position.Y = float32(interp.PrevY + (interp.TargetY-interp.PrevY)*t)
			node.Rotation = float32(interp.PrevRot + (interp.TargetRot-interp.PrevRot)*t)
		})
	}
}
