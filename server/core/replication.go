package core

import (
	"github.com/automoto/animsync/components"
	"github.com/automoto/animsync/shared/messages"
	"github.com/automoto/animsync/shared/netcomponents"
	"github.com/automoto/animsync/shared/netstate"
	"github.com/automoto/animsync/shared/wire"
	"github.com/leap-fish/necs/esync"
	"github.com/leap-fish/necs/router"
	"github.com/yohamta/donburi"
)

// ensureNetState lazily builds the replication bookkeeping for an entity and
// subscribes every live connection, so late-spawned nodes still owe everyone
// their full state.
func (s *Server) ensureNetState(entry *donburi.Entry) *netstate.NetworkState {
	a := components.Animator.Get(entry)
	if a.NetState != nil {
		return a.NetState
	}
	node := components.Node.Get(entry)
	a.NetState = netstate.New(node)

	s.mu.RLock()
	for client := range s.clientEntities {
		a.NetState.AddConnection(client.Id())
	}
	s.mu.RUnlock()
	return a.NetState
}

// registerConnection subscribes a new connection to every replicated node.
func (s *Server) registerConnection(id string) {
	components.Animator.Each(s.world, func(entry *donburi.Entry) {
		if !entry.HasComponent(components.Node) {
			return
		}
		a := components.Animator.Get(entry)
		if a.NetState == nil {
			node := components.Node.Get(entry)
			a.NetState = netstate.New(node)
		}
		a.NetState.AddConnection(id)
	})
}

func (s *Server) unregisterConnection(id string) {
	components.Animator.Each(s.world, func(entry *donburi.Entry) {
		a := components.Animator.Get(entry)
		if a.NetState != nil {
			a.NetState.RemoveConnection(id)
		}
	})
}

// publishNetState pushes each node's settled transform into its synced
// component and re-encodes animation buffers whose controllers changed.
func (s *Server) publishNetState() {
	components.Animator.Each(s.world, func(entry *donburi.Entry) {
		if !entry.HasComponent(components.Node) {
			return
		}
		node := components.Node.Get(entry)
		a := components.Animator.Get(entry)

		if entry.HasComponent(netcomponents.NetTransform) {
			netcomponents.NetTransform.Set(entry, &netcomponents.NetTransformData{
				X:        float64(node.Position.X),
				Y:        float64(node.Position.Y),
				Rotation: float64(node.Rotation),
			})
		}
		if a.Controller != nil && entry.HasComponent(netcomponents.NetAnimations) {
			if a.Controller.ConsumeNetDirty() {
				netcomponents.NetAnimations.Set(entry, &netcomponents.NetAnimationsData{
					Data: a.Controller.NetAnimationsAttr(),
				})
			}
		}
	})
}

// prepareNetworkUpdates diffs every replicated node's attributes, marking
// changes dirty per connection. Attributes animated by the node's own
// animatable are exempt: the animation buffer already replicates them.
func (s *Server) prepareNetworkUpdates() {
	components.Animator.Each(s.world, func(entry *donburi.Entry) {
		if !entry.HasComponent(components.Node) {
			return
		}
		ns := s.ensureNetState(entry)
		a := components.Animator.Get(entry)
		if a.Animatable != nil {
			ns.PrepareNetworkUpdate(a.Animatable.IsAnimatedNetworkAttribute)
		} else {
			ns.PrepareNetworkUpdate(nil)
		}
	})
}

// flushAttributeDeltas sends each connection the attributes it is owed.
func (s *Server) flushAttributeDeltas() {
	s.mu.RLock()
	clients := make([]*router.NetworkClient, 0, len(s.clientEntities))
	for client := range s.clientEntities {
		clients = append(clients, client)
	}
	s.mu.RUnlock()
	if len(clients) == 0 {
		return
	}

	components.Animator.Each(s.world, func(entry *donburi.Entry) {
		a := components.Animator.Get(entry)
		if a.NetState == nil {
			return
		}
		nid := esync.GetNetworkId(entry)
		if nid == nil {
			return
		}
		for _, client := range clients {
			rs := a.NetState.Connection(client.Id())
			if rs == nil || !rs.Dirty.Any() {
				continue
			}
			var w wire.Writer
			if a.NetState.WriteDelta(&w, rs) == 0 {
				continue
			}
			s.sendTo(client, messages.AttributeDelta{
				NetworkID: *nid,
				Data:      w.Bytes(),
			})
		}
	})
}
