package pond_test

import (
	"errors"
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/pondmodel/internal/dynamo"
	"github.com/san-kum/pondmodel/internal/pond"
)

var _ = Describe("Dynamics", func() {
	var p pond.Params

	BeforeEach(func() {
		p = pond.DefaultParams()
	})

	It("uses the default pond geometry", func() {
		Expect(p.WeirHeight).To(Equal(5.0))
		Expect(p.WeirWidth).To(Equal(2.0))
		Expect(p.Alpha).To(Equal(10.0))
		Expect(p.C).To(BeNumerically("~", math.Pow(math.Tan(10*math.Pi/180), 2)/math.Pi, 1e-15))
		Expect(p.Limit()).To(BeNumerically("~", 0.66, 1e-12))
	})

	DescribeTable("has a fixed point at zero head and zero inflow",
		func(t float64, q pond.Params) {
			dx, err := pond.Dynamics(t, dynamo.State{0}, dynamo.Control{0}, q)
			Expect(err).NotTo(HaveOccurred())
			Expect(dx).To(HaveLen(1))
			Expect(dx[0]).To(BeZero())
		},
		Entry("t=0", 0.0, pond.DefaultParams()),
		Entry("t=110", 110.0, pond.DefaultParams()),
		Entry("wide weir", 3.0, pond.NewParams(2, 6, 25)),
		Entry("explicit c", 0.0, pond.DefaultParams().WithC(0.5)),
	)

	Describe("domain guard", func() {
		It("rejects a head above 0.33 of the weir width", func() {
			_, err := pond.Dynamics(0, dynamo.State{0.34 * p.WeirWidth}, dynamo.Control{0}, p)
			Expect(err).To(MatchError(dynamo.ErrDomainViolation))

			var de *dynamo.DomainError
			Expect(errors.As(err, &de)).To(BeTrue())
			Expect(de.Index).To(Equal(0))
			Expect(de.Upper).To(BeNumerically("~", 0.66, 1e-12))
		})

		It("accepts a head below the bound", func() {
			_, err := pond.Dynamics(0, dynamo.State{0.32 * p.WeirWidth}, dynamo.Control{0}, p)
			Expect(err).NotTo(HaveOccurred())
		})

		It("rejects the bound itself", func() {
			_, err := pond.Dynamics(0, dynamo.State{p.Limit()}, dynamo.Control{0}, p)
			Expect(errors.Is(err, dynamo.ErrDomainViolation)).To(BeTrue())
		})

		It("rejects negative and NaN heads", func() {
			for _, h := range []float64{-1e-9, math.NaN()} {
				_, err := pond.Dynamics(0, dynamo.State{h}, dynamo.Control{1}, p)
				Expect(errors.Is(err, dynamo.ErrDomainViolation)).To(BeTrue(), "h=%v", h)
			}
		})

		It("rejects 0.68 m for the default pond", func() {
			_, err := pond.Dynamics(0, dynamo.State{0.68}, dynamo.Control{0}, p)
			Expect(errors.Is(err, dynamo.ErrDomainViolation)).To(BeTrue())
		})
	})

	It("reports wrong vector lengths as a dimension mismatch", func() {
		_, err := pond.Dynamics(0, dynamo.State{0.1, 0.2}, dynamo.Control{1}, p)
		Expect(errors.Is(err, dynamo.ErrDimensionMismatch)).To(BeTrue())
		Expect(errors.Is(err, dynamo.ErrDomainViolation)).To(BeFalse())

		_, err = pond.Dynamics(0, dynamo.State{0.1}, nil, p)
		Expect(errors.Is(err, dynamo.ErrDimensionMismatch)).To(BeTrue())
	})

	It("is near steady state at the operating point", func() {
		dx, err := pond.Dynamics(10, dynamo.State{0.28805}, dynamo.Control{1}, p)
		Expect(err).NotTo(HaveOccurred())
		Expect(math.Abs(dx[0])).To(BeNumerically("<", 1e-6))
	})

	It("fills when inflow exceeds outflow and drains otherwise", func() {
		dx, err := pond.Dynamics(0, dynamo.State{0.1}, dynamo.Control{1}, p)
		Expect(err).NotTo(HaveOccurred())
		Expect(dx[0]).To(BeNumerically(">", 0))

		dx, err = pond.Dynamics(0, dynamo.State{0.5}, dynamo.Control{1}, p)
		Expect(err).NotTo(HaveOccurred())
		Expect(dx[0]).To(BeNumerically("<", 0))
	})

	It("matches the closed form", func() {
		h, q := 0.4, 0.7
		want := p.C * (q - 3.33*(p.WeirWidth-0.2*h)*math.Pow(h, 1.5)) / math.Pow(h+p.WeirHeight, 2)

		dx, err := pond.Dynamics(0, dynamo.State{h}, dynamo.Control{q}, p)
		Expect(err).NotTo(HaveOccurred())
		Expect(dx[0]).To(BeNumerically("~", want, 1e-15))
	})

	It("ignores time", func() {
		a, err := pond.Dynamics(0, dynamo.State{0.2}, dynamo.Control{0.3}, p)
		Expect(err).NotTo(HaveOccurred())
		b, err := pond.Dynamics(1e6, dynamo.State{0.2}, dynamo.Control{0.3}, p)
		Expect(err).NotTo(HaveOccurred())
		Expect(a.Equal(b)).To(BeTrue())
	})

	It("is deterministic", func() {
		x, u := dynamo.State{0.28805}, dynamo.Control{1}
		first, err := pond.Dynamics(10, x, u, p)
		Expect(err).NotTo(HaveOccurred())
		for i := 0; i < 100; i++ {
			again, err := pond.Dynamics(10, x, u, p)
			Expect(err).NotTo(HaveOccurred())
			Expect(math.Float64bits(again[0])).To(Equal(math.Float64bits(first[0])))
		}
	})

	It("does not modify its arguments", func() {
		x, u := dynamo.State{0.3}, dynamo.Control{1.5}
		before := p

		_, err := pond.Dynamics(0, x, u, p)
		Expect(err).NotTo(HaveOccurred())
		Expect(x).To(Equal(dynamo.State{0.3}))
		Expect(u).To(Equal(dynamo.Control{1.5}))
		Expect(p).To(Equal(before))
	})

	DescribeTable("is sensitive to every parameter",
		func(perturb func(pond.Params) pond.Params) {
			x, u := dynamo.State{0.28805}, dynamo.Control{1}
			base, err := pond.Dynamics(10, x, u, p)
			Expect(err).NotTo(HaveOccurred())

			dx, err := pond.Dynamics(10, x, u, perturb(p))
			Expect(err).NotTo(HaveOccurred())
			Expect(dx[0]).NotTo(Equal(base[0]))
		},
		Entry("c", func(p pond.Params) pond.Params { return p.WithC(p.C + 0.001) }),
		Entry("weir_height", func(p pond.Params) pond.Params { p.WeirHeight += 0.01; return p }),
		Entry("weir_width", func(p pond.Params) pond.Params { p.WeirWidth += 0.1; return p }),
	)
})

var _ = Describe("Measurement", func() {
	It("returns the state unchanged", func() {
		p := pond.DefaultParams()
		for _, h := range []float64{0, 0.1, 0.28805, 0.65} {
			x := dynamo.State{h}
			y := pond.Measurement(3.5, x, dynamo.Control{-2}, p)
			Expect(y.Equal(x)).To(BeTrue())
		}
	})

	It("does not alias the state", func() {
		x := dynamo.State{0.2}
		y := pond.Measurement(0, x, dynamo.Control{0}, pond.DefaultParams())
		y[0] = 1
		Expect(x[0]).To(Equal(0.2))
	})
})

var _ = Describe("Model", func() {
	It("implements dynamo.System with the bound parameters", func() {
		p := pond.NewParams(4, 3, 20)
		var sys dynamo.System = pond.NewModel(p)

		Expect(sys.StateDim()).To(Equal(1))
		Expect(sys.ControlDim()).To(Equal(1))

		x, u := dynamo.State{0.5}, dynamo.Control{2}
		want, err := pond.Dynamics(0, x, u, p)
		Expect(err).NotTo(HaveOccurred())

		got, err := sys.Derive(0, x, u)
		Expect(err).NotTo(HaveOccurred())
		Expect(got.Equal(want)).To(BeTrue())

		y, err := sys.Observe(0, x, u)
		Expect(err).NotTo(HaveOccurred())
		Expect(y.Equal(x)).To(BeTrue())

		Expect(dynamo.CheckDims(sys, x, u)).To(Succeed())
	})

	It("exposes parameters by name", func() {
		m := pond.NewModel(pond.DefaultParams())
		Expect(m.GetParams()).To(HaveKeyWithValue("weir_width", 2.0))
		Expect(m.GetParams()).To(HaveKey("c"))
	})
})

var _ = Describe("SelfTest", func() {
	It("passes for the default parameters", func() {
		Expect(pond.RunSelfTests()).To(Succeed())

		r := pond.SelfTest(pond.DefaultParams())
		Expect(r.Passed()).To(BeTrue())
		Expect(r.Checks).To(HaveLen(6))
	})

	It("passes for a different pond using its own equilibrium", func() {
		r := pond.SelfTest(pond.NewParams(3, 4, 30))
		Expect(r.Err()).NotTo(HaveOccurred())
	})

	It("fails when no equilibrium exists for the nominal inflow", func() {
		// the outflow at the bound of a narrow weir is well below 1 m³/s
		r := pond.SelfTest(pond.NewParams(5, 0.5, 10))
		Expect(r.Passed()).To(BeFalse())
		Expect(errors.Is(r.Err(), dynamo.ErrNoEquilibrium)).To(BeTrue())
	})
})
