// Package capture turns a composition into PNG bytes, one export at a time.
//
// An [Orchestrator] runs a small state machine for every export:
//
//	Idle -> Staging -> ResourceWait -> Rasterizing -> Done -> Idle
//	                        |               |
//	                        +----> Failed <-+-> Idle
//
// Staging mounts the composition into a transient render target. In debug
// mode the composition is already mounted in a persistent target, so Staging
// is skipped. ResourceWait blocks until every image and font of the mounted
// subtree is ready; images are bounded by a timeout, fonts are not. The
// rasterizer is then called exactly once.
//
// While an export runs, further requests are rejected with EXPORT_IN_FLIGHT;
// nothing is queued. Whatever the outcome, the staged subtree is unmounted and
// the orchestrator is Idle again when Capture returns.
package capture
