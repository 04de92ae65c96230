// Package curve implements read-only control curves and the bounds that
// parameterize shapes and generators.
//
// A [Curve] is a materialized table sampled by normalized phase with
// linear interpolation. The same curve can drive an amplitude envelope
// (multiplied into every frame) or act as an LFO read once per grain to
// choose a synthesis parameter.
//
// A [Bound] is either a constant or a curve, evaluated lazily at the point
// of use. Curves satisfy Bound, so a shape's range may itself be another
// shape.
package curve
