// Command animsync-client is a headless observer: it joins a server, mirrors
// the replicated scene into a local world, runs the same animation systems
// the server runs, and periodically logs what its nodes are doing. It also
// exercises the command path by cycling animations on its own node.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/automoto/animsync/assets"
	"github.com/automoto/animsync/components"
	cfg "github.com/automoto/animsync/config"
	"github.com/automoto/animsync/network"
	"github.com/automoto/animsync/shared/messages"
	"github.com/automoto/animsync/shared/protocol"
	"github.com/automoto/animsync/systems"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

const clientTickRate = 60

var commandCycle = []string{"Walk", "Run", "Wave", "Idle"}

func main() {
	addr := flag.String("addr", "localhost:7777", "Server address")
	name := flag.String("name", "observer", "Client name")
	logEvery := flag.Duration("log", 2*time.Second, "Scene log interval")
	flag.Parse()

	if err := protocol.RegisterComponents(); err != nil {
		log.Fatalf("Failed to register components: %v", err)
	}

	clips := assets.DefaultClips()
	world := donburi.NewWorld()
	e := ecs.NewECS(world)

	dt := float32(1) / clientTickRate
	e.AddSystem(systems.UpdateNetAnimations)
	e.AddSystem(systems.NewAnimatorSystem(dt))

	client := network.NewClient()
	applier := network.NewApplier(e, clips)
	client.Connect(*addr, cfg.Version, *name)
	defer client.Disconnect()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	ticker := time.NewTicker(time.Second / clientTickRate)
	defer ticker.Stop()
	logTicker := time.NewTicker(*logEvery)
	defer logTicker.Stop()
	cmdTicker := time.NewTicker(5 * time.Second)
	defer cmdTicker.Stop()

	interpInstalled := false
	cmdIdx := 0

	for {
		select {
		case <-sigChan:
			log.Println("Shutting down client...")
			return

		case <-ticker.C:
			if err := client.LastError(); err != nil {
				log.Fatalf("Client error: %v", err)
			}
			if snap := client.LatestSnapshot(); snap != nil {
				applier.ApplySnapshot(*snap)
			}
			applier.ApplyDeltas(client.DrainDeltas())

			// The interpolation step depends on the server tick rate, which
			// is only known after the join handshake.
			if !interpInstalled && client.TickRate() > 0 {
				e.AddSystem(systems.NewNetInterpSystem(client.TickRate(), dt))
				interpInstalled = true
			}
			e.Update()

		case <-logTicker.C:
			logScene(world)

		case <-cmdTicker.C:
			if client.State() != network.StateJoined {
				continue
			}
			next := commandCycle[cmdIdx%len(commandCycle)]
			cmdIdx++
			err := client.SendMessage(messages.PlayAnimation{
				Name:      next,
				Looped:    next != "Wave",
				Exclusive: true,
				FadeIn:    0.25,
			})
			if err != nil {
				log.Printf("[client] failed to send play command: %v", err)
			}
		}
	}
}

func logScene(world donburi.World) {
	count := 0
	components.Node.Each(world, func(entry *donburi.Entry) {
		node := components.Node.Get(entry)
		line := fmt.Sprintf("pos=(%.1f, %.1f) rot=%.2f opacity=%.2f",
			node.Position.X, node.Position.Y, node.Rotation, node.Opacity)
		if entry.HasComponent(components.Animator) {
			a := components.Animator.Get(entry)
			if a.Controller != nil {
				for _, ctrl := range a.Controller.Controls() {
					line += fmt.Sprintf(" %s(w=%.2f t=%.2f)",
						ctrl.Name, a.Controller.Weight(ctrl.Name), a.Controller.Time(ctrl.Name))
				}
			}
		}
		log.Printf("[scene] node %q %s", node.Label, line)
		count++
	})
	if count == 0 {
		log.Println("[scene] no replicated nodes yet")
	}
}
