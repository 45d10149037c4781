package sim_test

import (
	"context"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gonum.org/v1/gonum/mat"

	"github.com/san-kum/kinsim/internal/kinetics"
	"github.com/san-kum/kinsim/internal/sim"
)

// End-to-end run of the isomerization A <=> B with unit rate constants
// from y0 = [1, 0].
var _ = Describe("isomerization A <=> B", func() {
	var (
		y *sim.Trajectory
		r *sim.RateTrajectory
	)

	BeforeEach(func() {
		a := mat.NewDense(2, 2, []float64{
			-1, 1,
			1, -1,
		})
		scheme, err := kinetics.NewScheme([]string{"A", "B"}, a, nil)
		Expect(err).NotTo(HaveOccurred())

		dydt, err := kinetics.NewRateFunc(scheme, []float64{1, 1}, kinetics.Options{})
		Expect(err).NotTo(HaveOccurred())

		y, r, err = sim.Simulate(context.Background(), dydt, []float64{1, 0}, sim.Options{})
		Expect(err).NotTo(HaveOccurred())
	})

	It("estimates ten half-lives for the span", func() {
		// halflife = max(max(y0)/2, ln 2, 1/min(nonzero y0)) / min(k) = 1
		Expect(y.TMin()).To(Equal(0.0))
		Expect(y.TMax()).To(BeNumerically("~", 10.0, 1e-12))
	})

	It("reproduces the initial state at TMin", func() {
		y0 := y.At(y.TMin())
		Expect(y0[0]).To(BeNumerically("~", 1.0, 1e-9))
		Expect(y0[1]).To(BeNumerically("~", 0.0, 1e-9))
	})

	It("relaxes to the symmetric equilibrium", func() {
		final := y.At(y.TMax())
		Expect(final[0]).To(BeNumerically("~", 0.5, 1e-4))
		Expect(final[1]).To(BeNumerically("~", 0.5, 1e-4))

		rate := r.At(y.TMax())
		Expect(rate[0]).To(BeNumerically("~", 0.0, 1e-4))
		Expect(rate[1]).To(BeNumerically("~", 0.0, 1e-4))
	})

	It("conserves mass along the whole trajectory", func() {
		times := make([]float64, 0, 50)
		for i := 0; i < 50; i++ {
			times = append(times, y.TMin()+float64(i)*(y.TMax()-y.TMin())/49)
		}
		m := y.Over(times)
		_, cols := m.Dims()
		for j := 0; j < cols; j++ {
			Expect(m.At(0, j) + m.At(1, j)).To(BeNumerically("~", 1.0, 1e-6))
		}
	})

	It("agrees between scalar and vectorized rate queries", func() {
		t := y.TMax() / 2
		scalar := r.At(t)
		vector := r.Over([]float64{t})
		Expect(scalar[0]).To(Equal(vector.At(0, 0)))
		Expect(scalar[1]).To(Equal(vector.At(1, 0)))
	})
})
