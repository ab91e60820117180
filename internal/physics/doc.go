// Package physics provides the cosmological model under study.
//
// [Siamese] implements the phase-difference equation of the Siamese-universe
// scenario as a [dynamo.System] over the scale factor, with the effective
// Hubble damping and the primordial-rotation source term. The model also
// implements [dynamo.Configurable] so parameter sweeps can set m_phi, k_rot,
// q and H0 by name.
package physics
