package physics

import (
	"fmt"
	"math"

	"github.com/jmrivas/phasecrit/internal/dynamo"
)

// Siamese is the damped, driven phase-difference oscillator
//
//	Δφ″ + 3H(a)·Δφ′ + m_φ²·Δφ = S_rot(a)
//
// with the effective LQC Hubble rate H(a) = H0·a^(-3/2) and rotational
// source S_rot(a) = k_rot·a^(-q). State is (Δφ, Δφ′).
type Siamese struct {
	MPhi float64
	KRot float64
	Q    float64
	H0   float64
}

func NewSiamese() *Siamese {
	return &Siamese{
		MPhi: 1.0,
		KRot: 0.0,
		Q:    1.0,
		H0:   1.0,
	}
}

func (s *Siamese) StateDim() int {
	return 2
}

// Hubble is the effective expansion rate at scale factor a.
// Matter-like scaling H ∝ a^(-3/2).
func (s *Siamese) Hubble(a float64) float64 {
	return s.H0 * math.Sqrt(math.Pow(a, -3))
}

// Source is the rotational driving term at scale factor a.
func (s *Siamese) Source(a float64) float64 {
	return s.KRot * math.Pow(a, -s.Q)
}

func (s *Siamese) Derive(x dynamo.State, a float64) dynamo.State {
	phi := x[0]
	phidot := x[1]

	h := s.Hubble(a)
	src := s.Source(a)

	return dynamo.State{
		phidot,
		-3.0*h*phidot - s.MPhi*s.MPhi*phi + src,
	}
}

func (s *Siamese) GetParams() map[string]float64 {
	return map[string]float64{
		"m_phi": s.MPhi,
		"k_rot": s.KRot,
		"q":     s.Q,
		"H0":    s.H0,
	}
}

func (s *Siamese) SetParam(name string, value float64) error {
	switch name {
	case "m_phi":
		if value <= 0 {
			return fmt.Errorf("%w: m_phi must be positive, got %g", dynamo.ErrParameterBounds, value)
		}
		s.MPhi = value
	case "k_rot":
		s.KRot = value
	case "q":
		s.Q = value
	case "H0":
		if value <= 0 {
			return fmt.Errorf("%w: H0 must be positive, got %g", dynamo.ErrParameterBounds, value)
		}
		s.H0 = value
	default:
		return fmt.Errorf("unknown param: %s", name)
	}
	return nil
}
