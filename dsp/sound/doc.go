// Package sound provides the multichannel sample buffer used throughout
// the engine.
//
// A [Buffer] has a fixed channel count and sample rate and a growable
// sequence of frames stored interleaved. Operations that combine two
// buffers never alias their operands: slices, concatenations and
// products are independent copies.
//
// Length mismatches are never errors. [Buffer.Dub] extends the receiver
// with silence when the dubbed material runs past its end, [Buffer.Slice]
// clamps to the buffer bounds, and [Buffer.Fill] loops or truncates to an
// exact frame count.
package sound
