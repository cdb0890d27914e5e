package ecs

import (
	"fmt"

	"github.com/phanxgames/modular"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

// PositionData is a node's global position as seen by ECS systems.
type PositionData struct {
	X, Y float64
}

// Position is the component written by PositionSync.
var Position = donburi.NewComponentType[PositionData]()

// NodeMoved is published whenever a synced node's global position changes.
type NodeMoved struct {
	NodeID uint32
	Name   string
	X, Y   float64
	DX, DY float64
}

// NodeMovedEvent is the Donburi event type for NodeMoved. Subscribe to it in
// your systems and drain it with ProcessEvents.
var NodeMovedEvent = events.NewEventType[NodeMoved]()

// PositionSync is a Behavior that mirrors its node into a Donburi entity. Start
// creates the entity; every Run writes the node's global position into its
// Position component and publishes NodeMoved if the position changed.
//
// Attach it last so it observes the position after the node's other behaviors
// have run that frame.
type PositionSync struct {
	world  donburi.World
	entity donburi.Entity
	last   modular.Vec2
}

var _ modular.Behavior = (*PositionSync)(nil)

// NewPositionSync creates a PositionSync writing into world.
func NewPositionSync(world donburi.World) *PositionSync {
	return &PositionSync{world: world}
}

// Entity returns the entity created by Start.
func (p *PositionSync) Entity() donburi.Entity {
	return p.entity
}

func (p *PositionSync) Start(n *modular.Node) error {
	p.entity = p.world.Create(Position)
	x, y := n.GlobalCoordinates()
	Position.SetValue(p.world.Entry(p.entity), PositionData{X: x, Y: y})
	p.last = modular.Vec2{X: x, Y: y}
	return nil
}

func (p *PositionSync) Run(n *modular.Node, _ modular.Events) error {
	if !p.world.Valid(p.entity) {
		return fmt.Errorf("%w: entity for %q no longer exists", modular.ErrStructure, n.Name)
	}
	x, y := n.GlobalCoordinates()
	Position.SetValue(p.world.Entry(p.entity), PositionData{X: x, Y: y})
	if x != p.last.X || y != p.last.Y {
		NodeMovedEvent.Publish(p.world, NodeMoved{
			NodeID: n.ID,
			Name:   n.Name,
			X:      x,
			Y:      y,
			DX:     x - p.last.X,
			DY:     y - p.last.Y,
		})
	}
	p.last = modular.Vec2{X: x, Y: y}
	return nil
}
