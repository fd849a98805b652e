// Package kernel holds the value objects shared by every aggregate of the fulfillment
// domain: identifiers (UUID) and monetary amounts (Money).
//
// Both types are immutable and validate themselves; a zero UUID is never a valid
// reference, and Money keeps exact decimal arithmetic so that order totals equal the
// sum of their lines to the cent.
package kernel
