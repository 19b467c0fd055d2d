package systems

import (
	"bytes"

	"github.com/automoto/animsync/components"
	"github.com/automoto/animsync/shared/netcomponents"
	"github.com/automoto/animsync/tags"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

// UpdateNetAnimations feeds replicated animation buffers into the local
// controllers of remote entities. The last applied buffer is remembered so an
// unchanged component costs one compare, not a decode.
func UpdateNetAnimations(e *ecs.ECS) {
	tags.Remote.Each(e.World, func(entry *donburi.Entry) {
		if !entry.HasComponent(components.Animator) || !entry.HasComponent(netcomponents.NetAnimations) {
			return
		}
		a := components.Animator.Get(entry)
		net := netcomponents.NetAnimations.Get(entry)
		if a.Controller == nil || bytes.Equal(net.Data, a.AppliedNet) {
			return
		}
		a.Controller.SetNetAnimationsAttr(net.Data)
		a.AppliedNet = append(a.AppliedNet[:0], net.Data...)
	})
}
