// Package boundary extracts critical curves from classified sweep records.
//
// Two families of extractors are provided:
//
//   - [FindCrossing] / [FindCrossings]: continuous — the coordinate where an
//     aggregated response curve crosses a target value, by linear
//     interpolation between bracketing samples.
//   - [TransitionMidpoint], [PairMidpoints], [ChangePoints]: discrete — the
//     midpoint(s) between adjacent samples whose sector labels change.
//
// All extractors treat "no boundary found" as a valid result, distinct from
// an error.
package boundary
