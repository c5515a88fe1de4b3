// Package testing provides test support for ringview.
//
// # Deterministic Time
//
// Inject a [FakeClock] into an indicator and advance it frame by frame:
//
//	clk := ringtest.NewFakeClock()
//	ind := progress.New(surface, cfg, progress.WithClock(clk))
//	ind.SetValueAnimated(80, time.Second)
//	ringtest.Pump(clk, ind, cfg.FrameDelay, 100)
//
// # Surfaces
//
// [RecordingSurface] counts redraw requests so tests can assert that a command
// did (or did not) invalidate the surface.
//
// # Trace Snapshots
//
// Record state transitions into a [Trace] and compare against a golden file:
//
//	trace.MatchesFile(t, "testdata/spin_then_value.trace.json")
//
// Update golden files with:
//
//	RINGVIEW_UPDATE_SNAPSHOTS=1 go test ./...
//
// # Import Alias
//
// Since this package has the same name as the standard library testing
// package, import it with an alias:
//
//	import ringtest "github.com/go-drift/ringview/pkg/testing"
package testing
