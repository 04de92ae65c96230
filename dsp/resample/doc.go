// Package resample converts sample streams by rational ratios with a
// Kaiser-windowed polyphase FIR.
//
// Quality modes trade CPU for stopband attenuation:
//
//	mode            taps/phase   kaiser beta
//	QualityFast     16           5.0
//	QualityBalanced 32           7.5
//	QualityBest     64           9.0
//
// [Stretch] is the one-shot form used for variable-speed playback: it
// compensates the filter latency and returns exactly round(len*ratio)
// samples.
package resample
