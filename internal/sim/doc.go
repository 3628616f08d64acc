// Package sim drives the physics world frame by frame.
//
// Each frame is strictly sequential:
//
//  1. poll the [Input] for this frame's [Signal]
//  2. apply the force field if the signal is active
//  3. run the collision pass, then the integration pass
//  4. hand a [Frame] to the [Presenter]
//  5. sleep for the fixed period
//
// There is no catch-up when a frame overruns; the lost time is dropped.
// [Engine.Simulate] runs the same step without pacing or presentation
// and records samples for storage and plotting.
//
// Engine instances are NOT thread-safe.
package sim
