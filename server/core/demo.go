package core

import (
	"github.com/automoto/animsync/archetypes"
	"github.com/automoto/animsync/components"
	"github.com/automoto/animsync/shared/anim"
	"github.com/automoto/animsync/shared/gamemath"
	"github.com/automoto/animsync/shared/netcomponents"
	"github.com/automoto/animsync/tags"
	"github.com/leap-fish/necs/esync/srvsync"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
	"github.com/yohamta/donburi"
)

// Clips the demo cycles through on layer 0.
var demoCycle = []string{"Idle", "Walk", "Run", "Wave"}

const demoCycleInterval float32 = 4.0

// DemoDirector keeps a couple of replicated nodes animating without any
// connected client driving them, so an observer always has traffic to watch.
// The nodes drift along a tweened path and cycle through the clip set.
type DemoDirector struct {
	server   *Server
	entities []donburi.Entity
	path     *gween.Sequence
	cycleAge float32
	cycleIdx int
}

func NewDemoDirector(s *Server, clips *anim.ClipLibrary) *DemoDirector {
	d := &DemoDirector{server: s}

	for i := 0; i < 2; i++ {
		entry := archetypes.SpawnServerNode(s.ecs, clips, demoLabel(i))
		entry.AddComponent(tags.Demo)

		node := components.Node.Get(entry)
		node.Position.Y = float32(40 + i*80)

		netcomponents.NetTransform.Set(entry, &netcomponents.NetTransformData{
			Y: float64(node.Position.Y),
		})
		netcomponents.NetAnimations.Set(entry, &netcomponents.NetAnimationsData{})

		a := components.Animator.Get(entry)
		a.Controller.Play(demoCycle[0], 0, true, 0.25)
		// A permanent additive layer on top of whatever the cycle plays.
		a.Controller.Play("Sway", 1, true, 0.5)
		a.Controller.SetBlendMode("Sway", anim.BlendAdditive)

		entity := entry.Entity()
		if err := srvsync.NetworkSync(s.world, &entity,
			srvsync.WithInterp(netcomponents.NetTransform),
			netcomponents.NetAnimations,
		); err == nil {
			d.entities = append(d.entities, entity)
		}
	}

	// Drift right, hold, drift back.
	d.path = gween.NewSequence()
	d.path.Add(
		gween.New(0, 200, 6, ease.InOutQuad),
		gween.New(200, 200, 2, ease.Linear),
		gween.New(200, 0, 6, ease.InOutQuad),
	)

	return d
}

func demoLabel(i int) string {
	return "demo-" + string(rune('a'+i))
}

// Update advances the drift path and the clip cycle by dt.
func (d *DemoDirector) Update(dt float32) {
	x, _, seqDone := d.path.Update(dt)
	if seqDone {
		d.path.Reset()
	}

	for _, entity := range d.entities {
		if !d.server.world.Valid(entity) {
			continue
		}
		entry := d.server.world.Entry(entity)
		node := components.Node.Get(entry)
		pos := gamemath.Vec2{X: x, Y: node.Position.Y}
		if node.SetAttribute("Position", anim.Vec2Value(pos)) {
			node.ApplyAttributes()
		}
	}

	d.cycleAge += dt
	if d.cycleAge < demoCycleInterval {
		return
	}
	d.cycleAge = 0
	d.cycleIdx = (d.cycleIdx + 1) % len(demoCycle)
	next := demoCycle[d.cycleIdx]

	for _, entity := range d.entities {
		if !d.server.world.Valid(entity) {
			continue
		}
		a := components.Animator.Get(d.server.world.Entry(entity))
		looped := next != "Wave"
		a.Controller.PlayExclusive(next, 0, looped, 0.25)
		if !looped {
			a.Controller.SetAutoFade(next, 0.25)
		}
	}
}
