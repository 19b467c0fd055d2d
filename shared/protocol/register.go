package protocol

import (
	"github.com/automoto/animsync/shared/netcomponents"
	"github.com/leap-fish/necs/esync"
)

// Sync ID constants - ID 1 is reserved by necs for NetworkId
const (
	SyncIDNetTransform  uint = 10
	SyncIDNetAnimations uint = 11
)

// Interpolation IDs (uint8 for WithInterpFn)
const (
	InterpIDNetTransform uint8 = 10
)

// RegisterComponents registers all network components with necs for
// serialization. This must be called by both server and client before any
// network operations.
func RegisterComponents() error {
	// Transform interpolates for smooth client-side rendering
	if err := esync.RegisterComponent(
		SyncIDNetTransform,
		netcomponents.NetTransformData{},
		netcomponents.NetTransform,
		esync.WithInterpFn(InterpIDNetTransform, netcomponents.LerpNetTransform),
	); err != nil {
		return err
	}

	// Animations: no interpolation, the receiving controller smooths weights
	// and clocks itself
	if err := esync.RegisterComponent(
		SyncIDNetAnimations,
		netcomponents.NetAnimationsData{},
		netcomponents.NetAnimations,
	); err != nil {
		return err
	}

	return nil
}
