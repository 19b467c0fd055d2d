package netcomponents

import "github.com/yohamta/donburi"

type NetTransformData struct {
	X, Y     float64
	Rotation float64
}

var NetTransform = donburi.NewComponentType[NetTransformData]()

// LerpNetTransform interpolates between two transform snapshots
func LerpNetTransform(from, to NetTransformData, t float64) *NetTransformData {
	return &NetTransformData{
		X:        from.X + (to.X-from.X)*t,
		Y:        from.Y + (to.Y-from.Y)*t,
		Rotation: from.Rotation + (to.Rotation-from.Rotation)*t,
	}
}
