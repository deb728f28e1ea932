// Package registration stitches beacon reports from independently oriented
// 3-D scanners into one global frame.
//
// Responsibilities: the closed catalog of 24 axis-aligned rotations, exact
// integer overlap detection between two beacon clouds, and the registrar
// that resolves every scanner relative to a reference scanner.
// Key types: Position, Rotation, Scanner, OverlapInfo, Region.
//
// All arithmetic is exact integer arithmetic. Scanner values are never
// mutated; transforms return new values.
package registration
