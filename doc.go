// Package battery is a 3D background node for [Ebitengine]: a matcap-shaded
// battery mesh that floats behind a page, driven by navigation events,
// viewport geometry, scroll progress, and the frame clock.
//
// # Quick start
//
// The simplest way to get started is [Run] with a [Stage]:
//
//	cfg := battery.DefaultConfig()
//	stage := battery.NewStage(cfg, nil)
//	stage.Layout(960, 640)
//	b, err := stage.NewBattery(cfg, assets)
//	if err != nil {
//		log.Fatal(err)
//	}
//	_ = stage.Navigator().Start(battery.PageHome)
//	battery.Run(stage, battery.RunConfig{Title: "Battery", Width: 960, Height: 640})
//
// # Lifecycle
//
// [Battery] listens on the [Bus] for PAGE, PAGE_OUT, and LOAD. On PAGE it
// rebinds its scroll [Track] to the page's anchor element and forwards the
// page to the [Animator], which materializes the mesh on the home page. On
// PAGE_OUT the track is released and the mesh dematerializes: scale tweens
// to zero, then the mesh is parked one viewport height below the origin.
//
// # Layout
//
// A resize is measured after the current turn ([Scheduler.AfterCurrentTurn])
// and the mesh and track re-measure one microtask later, once the new
// position and scale are in place. See [ComputeLayout] for the desktop and
// mobile rules.
//
// # Frame
//
// Every tick [Battery.Render] forwards the clock to the mesh shader, tilts
// the node with the mouse, spins it with time, and, while a track is bound,
// lifts it with scroll progress.
//
// # Scripted runs
//
// A [ScriptRunner] loaded with [LoadScript] replays navigation, scrolling,
// pointer sweeps, and resizes one step per frame, and can queue
// [Stage.Screenshot] captures. Set Stage.ShowStats for an FPS and page
// overlay.
//
// Tweens run on [gween]; matrices use [mathgl].
//
// [Ebitengine]: https://ebitengine.org
// [gween]: https://github.com/tanema/gween
// [mathgl]: https://github.com/go-gl/mathgl
package battery
