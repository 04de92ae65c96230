// Package interp provides the interpolation primitives behind curve
// lookup and variable-speed playback.
//
//   - [Linear] and [Table]: 2-point linear interpolation, the control-rate
//     lookup used by curves and envelopes
//   - [Hermite4]: 4-point cubic Hermite, used for audio-rate reads
//   - [LagrangeInterpolator]: order-selectable reader over a whole slice
package interp
