package systems

import (
	"github.com/automoto/animsync/components"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

// NewAnimatorSystem advances animation for every entity with an Animator:
// attribute animations first, then the controller's clip playbacks. dt is the
// fixed step of the owning loop.
func NewAnimatorSystem(dt float32) func(e *ecs.ECS) {
	return func(e *ecs.ECS) {
		components.Animator.Each(e.World, func(entry *donburi.Entry) {
			a := components.Animator.Get(entry)
			if a.Animatable != nil {
				a.Animatable.UpdateAttributeAnimations(dt)
			}
			// An animated write may have destroyed the entity.
			if !entry.Valid() {
				return
			}
			if a.Controller != nil {
				a.Controller.Update(dt)
			}
		})
	}
}
