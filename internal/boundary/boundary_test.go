package boundary_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/jmrivas/phasecrit/internal/boundary"
	"github.com/jmrivas/phasecrit/internal/sector"
)

var _ = Describe("FindCrossing", func() {
	It("interpolates a linear response onto the target", func() {
		coords := []float64{0, 1, 2, 3}
		resp := []float64{0.1, 0.3, 0.7, 0.9}

		crit, ok := boundary.FindCrossing(coords, resp, 0.5)
		Expect(ok).To(BeTrue())
		Expect(crit).To(BeNumerically("~", 1.5, 1e-12))
	})

	It("does not treat a sample exactly on the target as a crossing", func() {
		coords := []float64{0, 1, 2}
		resp := []float64{0.1, 0.5, 0.9}

		_, ok := boundary.FindCrossing(coords, resp, 0.5)
		Expect(ok).To(BeFalse())
	})

	It("reports no crossing when the response never reaches the target", func() {
		coords := []float64{0, 1, 2}
		resp := []float64{0.1, 0.2, 0.3}

		_, ok := boundary.FindCrossing(coords, resp, 0.5)
		Expect(ok).To(BeFalse())
	})

	It("returns the first crossing of a non-monotonic response", func() {
		coords := []float64{0, 1, 2, 3}
		resp := []float64{0.2, 0.8, 0.2, 0.8}

		crit, ok := boundary.FindCrossing(coords, resp, 0.5)
		Expect(ok).To(BeTrue())
		Expect(crit).To(BeNumerically("~", 0.5, 1e-12))

		all := boundary.FindCrossings(coords, resp, 0.5)
		Expect(all).To(HaveLen(3))
	})

	It("ignores flat segments before the crossing", func() {
		coords := []float64{0, 1, 2}
		resp := []float64{0.4, 0.4, 0.6}

		crit, ok := boundary.FindCrossing(coords, resp, 0.5)
		Expect(ok).To(BeTrue())
		Expect(crit).To(BeNumerically("~", 1.5, 1e-12))
	})

	It("handles empty and single-sample input", func() {
		_, ok := boundary.FindCrossing(nil, nil, 0.5)
		Expect(ok).To(BeFalse())

		_, ok = boundary.FindCrossing([]float64{1}, []float64{0.9}, 0.5)
		Expect(ok).To(BeFalse())
	})
})

var _ = Describe("TransitionMidpoint", func() {
	labels := func(s string) []sector.Label {
		out := make([]sector.Label, len(s))
		for i, c := range s {
			out[i] = sector.Label(string(c))
		}
		return out
	}

	It("brackets a clean A to C transition", func() {
		coords := []float64{0, 1, 2, 3, 4}
		crit, ok := boundary.TransitionMidpoint(coords, labels("AAACC"), sector.A, sector.C)
		Expect(ok).To(BeTrue())
		Expect(crit).To(Equal(2.5))
	})

	It("reports no boundary when either sector is absent", func() {
		coords := []float64{0, 1, 2}

		_, ok := boundary.TransitionMidpoint(coords, labels("AAA"), sector.A, sector.C)
		Expect(ok).To(BeFalse())

		_, ok = boundary.TransitionMidpoint(coords, labels("CCC"), sector.A, sector.C)
		Expect(ok).To(BeFalse())
	})

	It("refuses interleaved regions", func() {
		coords := []float64{0, 1, 2, 3}
		_, ok := boundary.TransitionMidpoint(coords, labels("ACAC"), sector.A, sector.C)
		Expect(ok).To(BeFalse())
	})

	It("tolerates a third sector between the regions", func() {
		coords := []float64{0, 1, 2, 3}
		crit, ok := boundary.TransitionMidpoint(coords, labels("AABC"), sector.A, sector.C)
		Expect(ok).To(BeTrue())
		Expect(crit).To(Equal(2.0))
	})
})

var _ = Describe("PairMidpoints", func() {
	It("flags only exact adjacent pairs", func() {
		coords := []float64{0, 1, 2}
		labels := []sector.Label{sector.A, sector.B, sector.C}

		// A/B then B/C: no adjacent {A, C} pair exists.
		Expect(boundary.PairMidpoints(coords, labels, sector.A, sector.C)).To(BeEmpty())
		Expect(boundary.PairMidpoints(coords, labels, sector.A, sector.B)).To(Equal([]float64{0.5}))
	})

	It("is unordered in the pair", func() {
		coords := []float64{0, 1, 2}
		labels := []sector.Label{sector.C, sector.A, sector.C}

		points := boundary.PairMidpoints(coords, labels, sector.A, sector.C)
		Expect(points).To(Equal([]float64{0.5, 1.5}))
	})

	It("returns nothing for identical pair sectors", func() {
		coords := []float64{0, 1}
		labels := []sector.Label{sector.A, sector.A}
		Expect(boundary.PairMidpoints(coords, labels, sector.A, sector.A)).To(BeEmpty())
	})
})

var _ = Describe("ChangePoints", func() {
	It("flags every label change", func() {
		coords := []float64{0, 1, 2, 3}
		labels := []sector.Label{sector.A, sector.B, sector.B, sector.C}

		Expect(boundary.ChangePoints(coords, labels)).To(Equal([]float64{0.5, 2.5}))
	})

	It("returns nothing for a uniform row", func() {
		coords := []float64{0, 1, 2}
		labels := []sector.Label{sector.A, sector.A, sector.A}
		Expect(boundary.ChangePoints(coords, labels)).To(BeEmpty())
	})
})
