// Package analysis provides frequency analysis of recorded run series.
//
//   - [PowerSpectrum]: magnitude spectrum of a real series
//   - [Analyze]: spectrum of a sampled series with its frequency resolution
//
// Kinetic energy of a settling pile oscillates as bodies bounce; the
// dominant frequency of that series is a quick summary of a run:
//
//	spec := analysis.Analyze(energy, dt)
//	freq, _ := spec.Dominant()
package analysis
