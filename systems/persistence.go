package systems

import (
	"encoding/json"
	"log"

	"github.com/automoto/animsync/components"
	"github.com/automoto/animsync/shared/anim"
	"github.com/quasilyte/gdata"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

// SavedAnimations is one entity's persisted animation state: the flat
// playback list plus the externally registered states.
type SavedAnimations struct {
	Label      string       `json:"label"`
	Animations []anim.Value `json:"animations"`
	NodeStates []anim.Value `json:"nodeStates"`
}

var gdataManager *gdata.Manager
var gdataInitialized bool

// InitPersistence initializes the gdata manager for animation state storage
func InitPersistence(appName string) error {
	m, err := gdata.Open(gdata.Config{
		AppName: appName,
	})
	if err != nil {
		log.Printf("Warning: Could not initialize persistence: %v", err)
		return err
	}
	gdataManager = m
	gdataInitialized = true
	return nil
}

// SaveAnimations persists every labelled animator's state to disk under one
// item.
func SaveAnimations(e *ecs.ECS) error {
	if !gdataInitialized || gdataManager == nil {
		return nil
	}

	var saved []SavedAnimations
	components.Animator.Each(e.World, func(entry *donburi.Entry) {
		if !entry.HasComponent(components.Node) {
			return
		}
		node := components.Node.Get(entry)
		a := components.Animator.Get(entry)
		if node.Label == "" || a.Controller == nil {
			return
		}
		saved = append(saved, SavedAnimations{
			Label:      node.Label,
			Animations: a.Controller.AnimationsAttr(),
			NodeStates: a.Controller.NodeAnimationStatesAttr(),
		})
	})

	data, err := json.Marshal(saved)
	if err != nil {
		log.Printf("Warning: Could not serialize animation state: %v", err)
		return err
	}
	if err := gdataManager.SaveItem("animations", data); err != nil {
		log.Printf("Warning: Could not save animation state: %v", err)
		return err
	}
	return nil
}

// LoadAnimations restores persisted animation state onto animators whose
// node labels match. Entries with no matching entity are ignored.
func LoadAnimations(e *ecs.ECS) error {
	if !gdataInitialized || gdataManager == nil {
		return nil
	}

	data, err := gdataManager.LoadItem("animations")
	if err != nil {
		log.Printf("Warning: Could not load animation state: %v", err)
		return nil
	}
	if data == nil {
		return nil
	}

	var saved []SavedAnimations
	if err := json.Unmarshal(data, &saved); err != nil {
		log.Printf("Warning: Could not parse saved animation state: %v", err)
		return err
	}

	byLabel := make(map[string]SavedAnimations, len(saved))
	for _, s := range saved {
		byLabel[s.Label] = s
	}

	components.Animator.Each(e.World, func(entry *donburi.Entry) {
		if !entry.HasComponent(components.Node) {
			return
		}
		node := components.Node.Get(entry)
		a := components.Animator.Get(entry)
		s, ok := byLabel[node.Label]
		if !ok || a.Controller == nil {
			return
		}
		a.Controller.SetAnimationsAttr(s.Animations)
		a.Controller.SetNodeAnimationStatesAttr(s.NodeStates)
	})
	return nil
}
