// Package ecs bridges adventure's gameplay events into a [Donburi] world.
//
// [NewDonburiSink] publishes every event as a typed Donburi event. Subscribe
// to [GameEventType] in your ECS systems to receive them, or attach a
// [Scoreboard], which keeps a running tally in a Donburi component.
//
// Usage:
//
//	world := donburi.NewWorld()
//	sink := ecs.NewDonburiSink(world)
//	board := ecs.NewScoreboard(world)
//	engine := adventure.NewEngine(cfg, assets, renderer, input, clock, sink, log)
//	// once per frame:
//	sink.Flush()
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
