package components

import "github.com/yohamta/donburi"

// EntityRef is a liveness handle backed by donburi's generational entity
// ids. It satisfies the animation layer's Ref contract: a removed entity
// reports dead without dangling state.
type EntityRef struct {
	World  donburi.World
	Entity donburi.Entity
}

func (r EntityRef) Alive() bool {
	return r.World != nil && r.World.Valid(r.Entity)
}
