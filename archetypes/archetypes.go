package archetypes

import (
	"github.com/automoto/animsync/components"
	cfg "github.com/automoto/animsync/config"
	"github.com/automoto/animsync/shared/anim"
	"github.com/automoto/animsync/shared/netcomponents"
	"github.com/automoto/animsync/tags"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

var (
	// ServerNode is an authoritative animated object the server replicates.
	ServerNode = newArchetype(
		tags.Replicated,
		components.Node,
		components.Animator,
		netcomponents.NetTransform,
		netcomponents.NetAnimations,
	)
	// RemoteNode is a client-side mirror of a replicated object.
	RemoteNode = newArchetype(
		tags.Remote,
		components.Node,
		components.Animator,
		components.NetInterp,
		netcomponents.NetTransform,
		netcomponents.NetAnimations,
	)
)

type archetype struct {
	components []donburi.IComponentType
}

func newArchetype(cs ...donburi.IComponentType) *archetype {
	return &archetype{
		components: cs,
	}
}

func (a *archetype) Spawn(ecs *ecs.ECS, cs ...donburi.IComponentType) *donburi.Entry {
	e := ecs.World.Entry(ecs.Create(
		cfg.Default,
		append(a.components, cs...)...,
	))
	return e
}

// SpawnServerNode creates an authoritative node with its animation machinery
// wired: a controller resolving from clips and an animatable for per-
// attribute curves, both guarded by the entity's liveness.
func SpawnServerNode(e *ecs.ECS, clips *anim.ClipLibrary, label string) *donburi.Entry {
	entry := ServerNode.Spawn(e)
	initAnimator(e.World, entry, clips, label)
	return entry
}

// SpawnRemoteNode creates the client-side mirror of a replicated node.
func SpawnRemoteNode(e *ecs.ECS, clips *anim.ClipLibrary, label string) *donburi.Entry {
	entry := RemoteNode.Spawn(e)
	initAnimator(e.World, entry, clips, label)
	return entry
}

func initAnimator(world donburi.World, entry *donburi.Entry, clips *anim.ClipLibrary, label string) {
	node := components.NewNodeData()
	node.Label = label
	components.Node.Set(entry, &node)

	ref := components.EntityRef{World: world, Entity: entry.Entity()}
	nodePtr := components.Node.Get(entry)
	components.Animator.Set(entry, &components.AnimatorData{
		Controller: anim.NewAnimationController(clips, nodePtr, ref),
		Animatable: anim.NewAnimatable(nodePtr, ref),
	})
}
