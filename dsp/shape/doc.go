// Package shape evaluates named curve shapes and materializes them into
// [curve.Curve] tables.
//
// Every deterministic kind is defined as a continuous function on [0,1]
// normalized to [0,1], sampled symmetrically (x = i/(n-1)) so the first
// and last table entries are the shape's endpoints. A range maps the
// normalized value v onto low + (high-low)*v, with both bounds evaluated
// lazily at each table position; bounds may themselves be curves.
//
// The Random kind draws each table entry uniformly from [low, high] using
// an injectable random source. It is the only stochastic kind; every other
// kind is a pure function of its parameters.
package shape
