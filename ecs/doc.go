// Package ecs bridges modular scene nodes into a [Donburi] world.
//
// [PositionSync] is a behavior that mirrors its node's global position into a
// [Position] component each frame and publishes a [NodeMoved] event whenever
// the position changes. Subscribe to [NodeMovedEvent] and drain it with
// ProcessEvents to react to movement.
//
// Usage:
//
//	sync := ecs.NewPositionSync(world)
//	if err := node.AddBehavior(sync); err != nil {
//		return err
//	}
//	ecs.NodeMovedEvent.Subscribe(world, onMoved)
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
