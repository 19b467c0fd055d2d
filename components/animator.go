package components

import (
	"github.com/automoto/animsync/shared/anim"
	"github.com/automoto/animsync/shared/netstate"
	"github.com/yohamta/donburi"
)

// AnimatorData ties one node to its animation machinery: the controller
// multiplexing clip playbacks, the attribute-animation driver, and on the
// server the replication bookkeeping.
type AnimatorData struct {
	Controller *anim.AnimationController
	Animatable *anim.Animatable

	// NetState is lazily created on the server when the first connection
	// subscribes; nil on clients.
	NetState *netstate.NetworkState

	// AppliedNet is the last animation buffer a client decoded, kept to
	// skip redundant decodes of an unchanged component.
	AppliedNet []byte
}

var Animator = donburi.NewComponentType[AnimatorData]()

// SetAnimationEnabled toggles attribute animation on entity and every node
// beneath it in the hierarchy. Controllers are unaffected.
func SetAnimationEnabled(world donburi.World, entity donburi.Entity, on bool) {
	if !world.Valid(entity) {
		return
	}
	entry := world.Entry(entity)
	if entry.HasComponent(Animator) {
		a := Animator.Get(entry)
		if a.Animatable != nil {
			a.Animatable.SetEnabled(on)
		}
	}
	if entry.HasComponent(Node) {
		for _, child := range Node.Get(entry).Children {
			SetAnimationEnabled(world, child, on)
		}
	}
}
