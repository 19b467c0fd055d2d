package core

import (
	"log"
	"time"

	"github.com/leap-fish/necs/esync/srvsync"
)

type GameLoop struct {
	server   *Server
	tickRate int
	dt       float32
	running  bool
	stopChan chan struct{}
}

func NewGameLoop(server *Server, tickRate int) *GameLoop {
	return &GameLoop{
		server:   server,
		tickRate: tickRate,
		dt:       1 / float32(tickRate),
		stopChan: make(chan struct{}),
	}
}

// Dt returns the fixed step in seconds.
func (g *GameLoop) Dt() float32 {
	return g.dt
}

func (g *GameLoop) Run() {
	g.running = true
	ticker := time.NewTicker(time.Second / time.Duration(g.tickRate))
	defer ticker.Stop()

	log.Printf("Server loop started at %d ticks/second", g.tickRate)

	for {
		select {
		case <-g.stopChan:
			g.running = false
			log.Println("Server loop stopped")
			return
		case <-ticker.C:
			g.tick()
		}
	}
}

func (g *GameLoop) Stop() {
	close(g.stopChan)
}

func (g *GameLoop) tick() {
	s := g.server

	s.ProcessCommands()
	if s.demo != nil {
		s.demo.Update(g.dt)
	}

	// Advance every animator, then publish the results: changed animation
	// buffers ride component sync, changed attributes go out as per-client
	// deltas.
	s.ecs.Update()
	s.publishNetState()
	s.prepareNetworkUpdates()
	s.flushAttributeDeltas()

	if err := srvsync.DoSync(); err != nil {
		log.Printf("Sync error: %v", err)
	}
}
