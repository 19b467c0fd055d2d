package messages

// Animation commands sent from client to server. The server validates the
// target entity and forwards the command to its animation controller; the
// resulting state replicates back to every client.

// PlayAnimation starts or retargets a clip on the client's entity.
type PlayAnimation struct {
	Name      string
	Layer     uint8
	Looped    bool
	Exclusive bool    // fade out other clips on the same layer
	FadeIn    float32 // seconds
}

// StopAnimation fades a clip out.
type StopAnimation struct {
	Name    string
	FadeOut float32
}

// FadeAnimation moves a clip's blend weight toward a target.
type FadeAnimation struct {
	Name         string
	TargetWeight float32
	FadeTime     float32
}

// SetAnimationTime snaps a clip's playback position.
type SetAnimationTime struct {
	Name string
	Time float32
}

// SetAnimationSpeed changes a clip's playback rate.
type SetAnimationSpeed struct {
	Name  string
	Speed float32
}
