// Package dynamo provides core primitives for integrating dynamical systems
// over the cosmological scale factor.
//
// The package defines the fundamental interfaces and types shared by the
// solver and the physical models:
//
//   - [State]: vector representing system state
//   - [System]: interface for ODE systems (dX/da = f(X, a))
//   - [Stepper]: numerical stepper interface
//   - [AdaptiveStepper]: stepper with error-controlled step sizing
//
// # Thread Safety
//
// State values are plain slices and are not safe for concurrent mutation.
// Steppers may keep scratch buffers; use one stepper per goroutine.
package dynamo
