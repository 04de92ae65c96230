// Package seq places generated grains on an output timeline.
//
// A [Timeline] turns a step curve into onset times. [Render] asks a
// [Voice] for one buffer per onset, generating concurrently, and then
// dubs the results into the output in onset order so the mix does not
// depend on scheduling.
package seq
