package core

import (
	"log"
	"sync"

	"github.com/automoto/animsync/archetypes"
	"github.com/automoto/animsync/components"
	cfg "github.com/automoto/animsync/config"
	"github.com/automoto/animsync/shared/anim"
	"github.com/automoto/animsync/shared/messages"
	"github.com/automoto/animsync/shared/netcomponents"
	"github.com/automoto/animsync/systems"
	"github.com/leap-fish/necs/esync"
	"github.com/leap-fish/necs/esync/srvsync"
	"github.com/leap-fish/necs/router"
	"github.com/leap-fish/necs/transports"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

// Server owns the authoritative scene: animated nodes, their controllers,
// and the replication state of every connection.
type Server struct {
	world     donburi.World
	ecs       *ecs.ECS
	loop      *GameLoop
	transport *transports.WsServerTransport
	config    cfg.ServerConfig
	clips     *anim.ClipLibrary
	demo      *DemoDirector

	// Track which network client owns which entity
	clientEntities map[*router.NetworkClient]donburi.Entity
	commands       []func()
	mu             sync.RWMutex
}

// NewServer creates a server with the given clip library.
func NewServer(conf cfg.ServerConfig, clips *anim.ClipLibrary) *Server {
	world := donburi.NewWorld()

	s := &Server{
		world:          world,
		ecs:            ecs.NewECS(world),
		config:         conf,
		clips:          clips,
		clientEntities: make(map[*router.NetworkClient]donburi.Entity),
	}
	s.loop = NewGameLoop(s, conf.TickRate)
	s.ecs.AddSystem(systems.NewAnimatorSystem(s.loop.Dt()))

	// Set up the world for esync
	srvsync.UseEsync(world)

	s.setupRouterCallbacks()

	if conf.Demo {
		s.demo = NewDemoDirector(s, clips)
	}

	// Restore saved animation state for labelled nodes (the demo nodes).
	if err := systems.InitPersistence(conf.Name); err == nil {
		_ = systems.LoadAnimations(s.ecs)
	}

	return s
}

// Start begins the server on the given port
func (s *Server) Start(port uint) error {
	go s.loop.Run()

	s.transport = transports.NewWsServerTransport(port, "", nil)
	return s.transport.Start()
}

// Stop gracefully shuts down the server
func (s *Server) Stop() {
	s.loop.Stop()
	if err := systems.SaveAnimations(s.ecs); err != nil {
		log.Printf("Failed to save animation state: %v", err)
	}
}

// World returns the ECS world
func (s *Server) World() donburi.World {
	return s.world
}

// ClientCount returns the number of connected clients
func (s *Server) ClientCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.clientEntities)
}

func (s *Server) setupRouterCallbacks() {
	router.OnConnect(func(client *router.NetworkClient) {
		s.onConnect(client)
	})

	router.OnDisconnect(func(client *router.NetworkClient, err error) {
		s.onDisconnect(client, err)
	})

	router.On(func(client *router.NetworkClient, req messages.JoinRequest) {
		s.onJoinRequest(client, req)
	})

	// Animation commands queue for the next tick so they run on the loop
	// goroutine.
	router.On(func(client *router.NetworkClient, msg messages.PlayAnimation) {
		s.queue(client, func(ctrl *anim.AnimationController) {
			if msg.Exclusive {
				ctrl.PlayExclusive(msg.Name, msg.Layer, msg.Looped, msg.FadeIn)
			} else {
				ctrl.Play(msg.Name, msg.Layer, msg.Looped, msg.FadeIn)
			}
		})
	})
	router.On(func(client *router.NetworkClient, msg messages.StopAnimation) {
		s.queue(client, func(ctrl *anim.AnimationController) {
			ctrl.Stop(msg.Name, msg.FadeOut)
		})
	})
	router.On(func(client *router.NetworkClient, msg messages.FadeAnimation) {
		s.queue(client, func(ctrl *anim.AnimationController) {
			ctrl.Fade(msg.Name, msg.TargetWeight, msg.FadeTime)
		})
	})
	router.On(func(client *router.NetworkClient, msg messages.SetAnimationTime) {
		s.queue(client, func(ctrl *anim.AnimationController) {
			ctrl.SetTime(msg.Name, msg.Time)
		})
	})
	router.On(func(client *router.NetworkClient, msg messages.SetAnimationSpeed) {
		s.queue(client, func(ctrl *anim.AnimationController) {
			ctrl.SetSpeed(msg.Name, msg.Speed)
		})
	})

	router.OnError(func(client *router.NetworkClient, err error) {
		log.Printf("Client error: %v", err)
	})
}

// queue defers a controller command to the next tick, resolving the client's
// entity at execution time.
func (s *Server) queue(client *router.NetworkClient, fn func(*anim.AnimationController)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.commands = append(s.commands, func() {
		entity, ok := s.clientEntities[client]
		if !ok || !s.world.Valid(entity) {
			return
		}
		entry := s.world.Entry(entity)
		a := components.Animator.Get(entry)
		if a.Controller != nil {
			fn(a.Controller)
		}
	})
}

// ProcessCommands runs the queued animation commands. Called from the loop.
func (s *Server) ProcessCommands() {
	s.mu.Lock()
	pending := s.commands
	s.commands = nil
	s.mu.Unlock()

	for _, fn := range pending {
		fn()
	}
}

func (s *Server) onConnect(client *router.NetworkClient) {
	log.Printf("Client connected: %s", client.Id())

	entry := archetypes.SpawnServerNode(s.ecs, s.clips, "client-"+client.Id())
	entity := entry.Entity()

	node := components.Node.Get(entry)
	node.Position.X = 100
	node.Position.Y = 100

	netcomponents.NetTransform.Set(entry, &netcomponents.NetTransformData{
		X: float64(node.Position.X),
		Y: float64(node.Position.Y),
	})
	netcomponents.NetAnimations.Set(entry, &netcomponents.NetAnimationsData{})

	// Idle by default so a fresh client has something moving.
	components.Animator.Get(entry).Controller.Play("Idle", 0, true, 0.25)

	err := srvsync.NetworkSync(s.world, &entity,
		srvsync.WithInterp(netcomponents.NetTransform),
		netcomponents.NetAnimations,
	)
	if err != nil {
		log.Printf("Failed to setup network sync for node: %v", err)
		return
	}

	s.mu.Lock()
	s.clientEntities[client] = entity
	s.mu.Unlock()

	// Every replicated node owes this connection its full attribute state.
	s.registerConnection(client.Id())

	log.Printf("Node spawned for client %s", client.Id())
}

func (s *Server) onDisconnect(client *router.NetworkClient, err error) {
	if err != nil {
		log.Printf("Client %s disconnected with error: %v", client.Id(), err)
	} else {
		log.Printf("Client %s disconnected", client.Id())
	}

	s.mu.Lock()
	entity, exists := s.clientEntities[client]
	if exists {
		delete(s.clientEntities, client)
	}
	s.mu.Unlock()

	s.unregisterConnection(client.Id())

	if exists && s.world.Valid(entity) {
		s.world.Remove(entity)
		log.Printf("Node removed for client %s", client.Id())
	}
}

func (s *Server) onJoinRequest(client *router.NetworkClient, req messages.JoinRequest) {
	if req.Version != cfg.Version {
		s.sendTo(client, messages.JoinRejected{
			Reason: "version mismatch: server " + cfg.Version + ", client " + req.Version,
		})
		return
	}

	s.mu.RLock()
	entity, ok := s.clientEntities[client]
	s.mu.RUnlock()
	if !ok || !s.world.Valid(entity) {
		s.sendTo(client, messages.JoinRejected{Reason: "no entity for connection"})
		return
	}

	var networkID esync.NetworkId
	if nid := esync.GetNetworkId(s.world.Entry(entity)); nid != nil {
		networkID = *nid
	}
	s.sendTo(client, messages.JoinAccepted{
		NetworkID:  networkID,
		ServerName: s.config.Name,
		TickRate:   s.config.TickRate,
	})
	log.Printf("Client %s (%s) joined", client.Id(), req.ClientName)
}

// sendTo delivers a direct message to one client.
func (s *Server) sendTo(client *router.NetworkClient, msg any) {
	if err := client.SendMessage(msg); err != nil {
		log.Printf("Failed to send %T to %s: %v", msg, client.Id(), err)
	}
}
