package messages

import "github.com/leap-fish/necs/esync"

// AttributeDelta carries one entity's changed replicated attributes to one
// client. The payload is the netstate delta encoding; which attributes it
// holds depends on what that client has already received.
type AttributeDelta struct {
	NetworkID esync.NetworkId
	Data      []byte
}
