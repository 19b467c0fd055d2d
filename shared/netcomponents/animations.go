package netcomponents

import "github.com/yohamta/donburi"

// NetAnimationsData carries the controller's encoded animation attribute.
// The buffer is opaque at this layer; the animation package encodes and
// decodes it. No interpolation: the receiver's own controller does the
// smoothing.
type NetAnimationsData struct {
	Data []byte
}

var NetAnimations = donburi.NewComponentType[NetAnimationsData]()
