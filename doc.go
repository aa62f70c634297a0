// Package adventure is the runtime core of a top-down tile-world action game
// built on [Ebitengine].
//
// The core owns the simulation clock, the entity registry, the player, the
// Playing/GameOver state machine, the interaction rules between the player,
// hazards and pickups, and a script host that injects timed world events.
// Windowing, input devices and GPU submission sit behind the [Renderer] and
// [Input] interfaces, so everything but the thin Ebitengine adapters runs in
// tests without a GPU.
//
// # Quick start
//
//	cfg, _ := adventure.LoadConfig("adventure.yaml")
//	log, _ := adventure.NewLogger(cfg.LogLevel)
//	renderer := adventure.NewCommandRenderer(cfg, log)
//	engine := adventure.NewEngine(cfg, os.DirFS(cfg.Assets.Dir), renderer,
//		adventure.NewEbitenInput(nil), adventure.NewSystemClock(), nil, log)
//	if err := engine.Initialize(); err != nil {
//		// missing or malformed map, tileset or sprite sheets
//	}
//	adventure.Run(adventure.NewGame(engine, renderer, cfg, log))
//
// # Frames
//
// [Engine.Frame] runs one iteration: it measures the elapsed time, drains
// input, applies a staged state transition, then calls the current state's
// HandleInput, Update and Render in that order. [Engine.ChangeState] only
// stages; the swap happens at the next frame boundary.
//
// # World
//
// Hazards ([TemporaryEffect]) and pickups ([Pickup]) live in the
// [EntityRegistry]; the [Player] lives beside it in the [World]. Each
// Playing update resolves, in order, pickup acquisition, the player's
// directional attack, and hazard expiry with its lethality check.
//
// # Scripts
//
// Script units are declared by YAML manifests in the assets' scripts
// directory. Each manifest names a type from a [ScriptCatalog]:
//
//	name: bombs
//	type: random_bomb
//	params:
//	  min_interval: 2s
//	  max_interval: 5s
//	  radius: 50
//
// Units see the world only through [WorldHandle].
//
// Gameplay events go to an [EventSink]; package adventure/ecs forwards them
// into a [Donburi] world.
//
// [Ebitengine]: https://ebitengine.org
// [Donburi]: https://github.com/yohamta/donburi
package adventure
