package network

import (
	"log"

	"github.com/automoto/animsync/archetypes"
	"github.com/automoto/animsync/components"
	"github.com/automoto/animsync/shared/anim"
	"github.com/automoto/animsync/shared/messages"
	"github.com/automoto/animsync/shared/netcomponents"
	"github.com/automoto/animsync/shared/netstate"
	"github.com/automoto/animsync/shared/wire"
	"github.com/leap-fish/necs/esync"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

// Applier mirrors server snapshots and attribute deltas into the local
// world. Entities appearing in a snapshot are spawned as remote nodes with
// their own animation machinery; entities that stop appearing are removed.
type Applier struct {
	world      donburi.World
	ecs        *ecs.ECS
	clips      *anim.ClipLibrary
	presentIDs map[esync.NetworkId]bool
}

func NewApplier(e *ecs.ECS, clips *anim.ClipLibrary) *Applier {
	return &Applier{
		world:      e.World,
		ecs:        e,
		clips:      clips,
		presentIDs: make(map[esync.NetworkId]bool),
	}
}

// ApplySnapshot applies one world snapshot: creates missing remote entities,
// overwrites their synced components and removes entities the server no
// longer lists. Transform smoothing is not done here; the interpolation
// system picks up target changes on its next run.
func (ap *Applier) ApplySnapshot(snapshot esync.WorldSnapshot) {
	clear(ap.presentIDs)

	for _, ent := range snapshot {
		ap.presentIDs[ent.Id] = true

		var compData []any
		for _, componentBytes := range ent.State {
			instance, err := esync.Mapper.Deserialize(componentBytes)
			if err != nil {
				continue
			}
			compData = append(compData, instance)
		}

		entity := esync.FindByNetworkId(ap.world, ent.Id)
		if !ap.world.Valid(entity) {
			entry := archetypes.SpawnRemoteNode(ap.ecs, ap.clips, "")
			entry.AddComponent(esync.NetworkIdComponent)
			esync.NetworkIdComponent.SetValue(entry, ent.Id)
			entity = entry.Entity()
		}

		entry := ap.world.Entry(entity)
		for _, data := range compData {
			applyComponentToEntry(entry, data)
		}
	}

	esync.NetworkEntityQuery.Each(ap.world, func(entry *donburi.Entry) {
		id := esync.GetNetworkId(entry)
		if id == nil {
			return
		}
		if !ap.presentIDs[*id] {
			entry.Remove()
		}
	})
}

// ApplyDeltas applies pending attribute deltas onto their target nodes. A
// delta for an entity the client has not spawned yet is dropped; the next
// snapshot carries the entity and its state converges through later deltas.
func (ap *Applier) ApplyDeltas(deltas []messages.AttributeDelta) {
	for _, delta := range deltas {
		entity := esync.FindByNetworkId(ap.world, delta.NetworkID)
		if !ap.world.Valid(entity) {
			continue
		}
		entry := ap.world.Entry(entity)
		if !entry.HasComponent(components.Node) {
			continue
		}
		node := components.Node.Get(entry)

		r := wire.NewReader(delta.Data)
		if err := netstate.ReadDelta(r, components.NodeAttributeInfos(), node.SetAttribute); err != nil {
			log.Printf("[client] bad attribute delta for %d: %v", delta.NetworkID, err)
		}
		node.ApplyAttributes()
	}
}

func applyComponentToEntry(entry *donburi.Entry, data any) {
	switch v := data.(type) {
	case netcomponents.NetTransformData:
		if !entry.HasComponent(netcomponents.NetTransform) {
			entry.AddComponent(netcomponents.NetTransform)
		}
		netcomponents.NetTransform.SetValue(entry, v)
	case netcomponents.NetAnimationsData:
		if !entry.HasComponent(netcomponents.NetAnimations) {
			entry.AddComponent(netcomponents.NetAnimations)
		}
		netcomponents.NetAnimations.SetValue(entry, v)
	}
}
