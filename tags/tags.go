package tags

import "github.com/yohamta/donburi"

var (
	Replicated = donburi.NewTag().SetName("Replicated")
	Remote     = donburi.NewTag().SetName("Remote")
	Demo       = donburi.NewTag().SetName("Demo")
)
