package ecs

import (
	"github.com/phanxgames/mindmap"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

// GraphEventType is the Donburi event type for mindmap graph events.
// Subscribe to this in your ECS systems to mirror structural edits.
var GraphEventType = events.NewEventType[mindmap.GraphEvent]()

type donburiSink struct {
	world donburi.World
}

// NewDonburiSink creates an EventSink backed by a Donburi world.
// Graph events are published to GraphEventType and can be consumed with
// events.Subscribe and ProcessEvents.
func NewDonburiSink(world donburi.World) mindmap.EventSink {
	return &donburiSink{world: world}
}

func (s *donburiSink) EmitEvent(event mindmap.GraphEvent) {
	GraphEventType.Publish(s.world, event)
}
