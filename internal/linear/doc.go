// Package linear holds linear state-space descriptions (A, B, C, D) obtained
// by linearising a non-linear model around an operating point, together with
// their zero-order-hold discretisation for digital control design.
package linear
