// Package filter provides biquad sections and cascades, RBJ and
// Butterworth coefficient design, and Linkwitz-Riley crossovers.
//
// Sections use Direct Form II Transposed. Coefficients are normalized so
// that a0 == 1:
//
//	y  = B0*x + d0
//	d0 = B1*x - A1*y + d1
//	d1 = B2*x - A2*y
package filter
