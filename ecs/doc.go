// Package ecs provides ECS adapters for mindmap's graph event stream.
//
// The primary adapter is [NewDonburiSink], which bridges editor graph events
// (node added, deleted, reparented, edge detached, edits) into a [Donburi]
// world as typed events. Subscribe to [GraphEventType] in your ECS systems
// to receive them.
//
// Usage:
//
//	sink := ecs.NewDonburiSink(world)
//	editor.SetEventSink(sink)
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
