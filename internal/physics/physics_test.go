package physics_test

import (
	"errors"
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/san-kum/verletsim/internal/body"
	"github.com/san-kum/verletsim/internal/physics"
)

func weightless() physics.Params {
	p := physics.DefaultParams()
	p.Gravity = r2.Vec{}
	return p
}

func at(x, y, mass, radius float64) *body.Particle {
	return body.MustNew(r2.Vec{X: x, Y: y}, mass, radius)
}

func dist2(a, b *body.Particle) float64 {
	return r2.Norm2(r2.Sub(b.Position, a.Position))
}

var _ = Describe("Resolve", func() {
	const eps = physics.DefaultEpsilon

	It("ignores pairs rejected by the axis-aligned check", func() {
		a, b := at(100, 100, 1, 5), at(111, 100, 1, 5)
		Expect(physics.Resolve(a, b, eps)).To(BeFalse())
		Expect(a.Position).To(Equal(r2.Vec{X: 100, Y: 100}))
		Expect(b.Position).To(Equal(r2.Vec{X: 111, Y: 100}))
	})

	It("ignores diagonal pairs whose boxes overlap but circles do not", func() {
		a, b := at(100, 100, 1, 5), at(108, 108, 1, 5)
		Expect(physics.Resolve(a, b, eps)).To(BeFalse())
		Expect(b.Position).To(Equal(r2.Vec{X: 108, Y: 108}))
	})

	It("treats touching circles as separated", func() {
		a, b := at(100, 100, 1, 5), at(110, 100, 1, 5)
		Expect(physics.Resolve(a, b, eps)).To(BeFalse())
	})

	It("splits the penetration evenly between both particles", func() {
		a, b := at(100, 100, 1, 5), at(106, 100, 1, 5)
		Expect(physics.Resolve(a, b, eps)).To(BeTrue())
		Expect(a.Position).To(Equal(r2.Vec{X: 98, Y: 100}))
		Expect(b.Position).To(Equal(r2.Vec{X: 108, Y: 100}))
	})

	It("ignores mass when splitting the correction", func() {
		a, b := at(100, 100, 1, 5), at(106, 100, 50, 5)
		physics.Resolve(a, b, eps)
		Expect(a.Position.X).To(Equal(98.0))
		Expect(b.Position.X).To(Equal(108.0))
	})

	It("touches only positions", func() {
		a, b := at(100, 100, 1, 5), at(103, 104, 1, 5)
		a.Force = r2.Vec{X: 1, Y: 2}
		physics.Resolve(a, b, eps)
		Expect(a.PreviousPosition).To(Equal(r2.Vec{X: 100, Y: 100}))
		Expect(b.PreviousPosition).To(Equal(r2.Vec{X: 103, Y: 104}))
		Expect(a.Force).To(Equal(r2.Vec{X: 1, Y: 2}))
	})

	It("is symmetric in its arguments", func() {
		a1, b1 := at(200, 150, 1, 7), at(205, 153, 2, 4)
		a2, b2 := at(200, 150, 1, 7), at(205, 153, 2, 4)

		physics.Resolve(a1, b1, eps)
		physics.Resolve(b2, a2, eps)

		Expect(a2.Position).To(Equal(a1.Position))
		Expect(b2.Position).To(Equal(b1.Position))
	})

	It("moves overlapping pairs closer to contact distance", func() {
		pairs := [][2]*body.Particle{
			{at(100, 100, 1, 5), at(101, 100, 1, 5)},
			{at(100, 100, 1, 3), at(102, 103, 4, 6)},
			{at(50, 60, 2, 10), at(45, 52, 1, 1)},
		}
		for _, pr := range pairs {
			a, b := pr[0], pr[1]
			contact := math.Pow(a.Radius()+b.Radius(), 2)
			before := math.Abs(dist2(a, b) - contact)

			physics.Resolve(a, b, eps)

			Expect(math.Abs(dist2(a, b) - contact)).To(BeNumerically("<", before))
		}
	})

	Context("with coincident centres", func() {
		It("separates the pair along y with finite positions", func() {
			a, b := at(300, 300, 1, 5), at(300, 300, 1, 5)
			Expect(physics.Resolve(a, b, eps)).To(BeTrue())

			Expect(a.IsValid()).To(BeTrue())
			Expect(b.IsValid()).To(BeTrue())
			Expect(a.Position.X).To(Equal(300.0))
			Expect(b.Position.X).To(Equal(300.0))
			Expect(b.Position.Y).To(BeNumerically(">", 300))
			Expect(a.Position.Y).To(BeNumerically("<", 300))
			Expect(b.Position.Y - a.Position.Y).To(BeNumerically("~", 10-eps, 1e-9))
		})
	})
})

var _ = Describe("Integrator", func() {
	const dt = 0.001

	It("leaves a particle at rest when there is no force or gravity", func() {
		in := physics.NewIntegrator(weightless())
		p := at(400, 300, 1, 5)
		in.Step(p, dt)
		Expect(p.Position).To(Equal(r2.Vec{X: 400, Y: 300}))
		Expect(p.PreviousPosition).To(Equal(r2.Vec{X: 400, Y: 300}))
	})

	It("falls by g*dt² from rest in one step", func() {
		in := physics.NewIntegrator(physics.DefaultParams())
		p := at(400, 300, 1, 5)
		in.Step(p, dt)
		Expect(p.Position.X).To(Equal(400.0))
		Expect(p.Position.Y).To(BeNumerically("~", 300.098, 1e-9))
		Expect(p.PreviousPosition).To(Equal(r2.Vec{X: 400, Y: 300}))
	})

	It("carries the previous displacement forward", func() {
		in := physics.NewIntegrator(weightless())
		p := at(400, 300, 1, 5)
		p.PreviousPosition = r2.Vec{X: 399, Y: 302}
		in.Step(p, dt)
		Expect(p.Position.X).To(BeNumerically("~", 401, 1e-12))
		Expect(p.Position.Y).To(BeNumerically("~", 298, 1e-12))
	})

	It("divides force by mass and then zeroes it", func() {
		in := physics.NewIntegrator(weightless())
		light, heavy := at(400, 300, 1, 5), at(400, 300, 4, 5)
		light.Force = r2.Vec{X: 4e6}
		heavy.Force = r2.Vec{X: 4e6}

		in.Step(light, dt)
		in.Step(heavy, dt)

		Expect(light.Position.X - 400).To(BeNumerically("~", 4, 1e-9))
		Expect(heavy.Position.X - 400).To(BeNumerically("~", 1, 1e-9))
		Expect(light.Force).To(Equal(r2.Vec{}))
		Expect(heavy.Force).To(Equal(r2.Vec{}))
	})

	DescribeTable("keeps particles inside the world for any overshoot",
		func(x, y, px, py, radius float64) {
			params := physics.DefaultParams()
			in := physics.NewIntegrator(params)
			p := at(x, y, 1, radius)
			p.PreviousPosition = r2.Vec{X: px, Y: py}

			in.Step(p, dt)

			Expect(p.Position.X).To(BeNumerically(">=", radius))
			Expect(p.Position.X).To(BeNumerically("<=", params.Width-radius))
			Expect(p.Position.Y).To(BeNumerically(">=", radius))
			Expect(p.Position.Y).To(BeNumerically("<=", params.Height-radius))
			Expect(p.PreviousPosition).To(Equal(r2.Vec{X: x, Y: y}))
		},
		Entry("left wall", 3.0, 300.0, 50.0, 300.0, 5.0),
		Entry("right wall", 797.0, 300.0, 700.0, 300.0, 5.0),
		Entry("ceiling", 400.0, 2.0, 400.0, 90.0, 5.0),
		Entry("floor", 400.0, 590.0, 400.0, 400.0, 10.0),
		Entry("corner", 1.0, 1.0, 1000.0, 1000.0, 1.0),
		Entry("far outside", -5000.0, 9000.0, 0.0, 0.0, 8.0),
	)

	It("loses the velocity component into a wall", func() {
		params := weightless()
		in := physics.NewIntegrator(params)
		floor := params.Height - 5
		p := at(400, floor-1, 1, 5)
		p.PreviousPosition = r2.Vec{X: 399, Y: floor - 11}

		in.Step(p, dt)
		Expect(p.Position.Y).To(Equal(floor))
		in.Step(p, dt)
		Expect(p.Position.Y).To(Equal(floor))

		Expect(p.Velocity().Y).To(Equal(0.0))
		Expect(p.Velocity().X).To(BeNumerically("~", 1, 1e-12))
	})
})

var _ = Describe("World", func() {
	It("rejects invalid params", func() {
		params := physics.DefaultParams()
		params.Width = 0
		_, err := physics.NewWorld(params, nil)
		Expect(errors.Is(err, physics.ErrInvalidBounds)).To(BeTrue())

		params = physics.DefaultParams()
		params.Epsilon = 0
		_, err = physics.NewWorld(params, nil)
		Expect(errors.Is(err, physics.ErrInvalidEpsilon)).To(BeTrue())

		params = physics.DefaultParams()
		params.Gravity.Y = math.NaN()
		_, err = physics.NewWorld(params, nil)
		Expect(errors.Is(err, physics.ErrInvalidGravity)).To(BeTrue())

		params = physics.DefaultParams()
		params.Gravity.X = math.Inf(-1)
		_, err = physics.NewWorld(params, nil)
		Expect(errors.Is(err, physics.ErrInvalidGravity)).To(BeTrue())

		params = physics.DefaultParams()
		params.FieldStrength = math.Inf(1)
		_, err = physics.NewWorld(params, nil)
		Expect(errors.Is(err, physics.ErrInvalidFieldStrength)).To(BeTrue())

		params = physics.DefaultParams()
		params.FieldStrength = -1e8
		_, err = physics.NewWorld(params, nil)
		Expect(err).NotTo(HaveOccurred())
	})

	It("rejects particles that cannot fit the bounds", func() {
		params := physics.DefaultParams()
		params.Height = 50
		_, err := physics.NewWorld(params, []*body.Particle{at(10, 10, 1, 5), at(10, 10, 1, 30)})
		Expect(errors.Is(err, physics.ErrDoesNotFit)).To(BeTrue())

		var fe *physics.FitError
		Expect(errors.As(err, &fe)).To(BeTrue())
		Expect(fe.Index).To(Equal(1))
	})

	It("separates the two-body scenario to exact contact in one collision pass", func() {
		a, b := at(100, 100, 1, 5), at(106, 100, 1, 5)
		w, err := physics.NewWorld(weightless(), []*body.Particle{a, b})
		Expect(err).NotTo(HaveOccurred())

		Expect(w.CollisionPass()).To(Equal(1))

		Expect(a.Position).To(Equal(r2.Vec{X: 98, Y: 100}))
		Expect(b.Position).To(Equal(r2.Vec{X: 108, Y: 100}))
		Expect(r2.Norm(r2.Sub(b.Position, a.Position))).To(Equal(10.0))
	})

	It("reduces the worst overlap of a three-body cluster", func() {
		ps := []*body.Particle{at(100, 100, 1, 5), at(104, 100, 1, 5), at(102, 103, 1, 5)}
		w, err := physics.NewWorld(weightless(), ps)
		Expect(err).NotTo(HaveOccurred())

		before := w.MaxOverlap()
		w.CollisionPass()
		Expect(w.MaxOverlap()).To(BeNumerically("<", before))
	})

	It("resolves collisions before integrating and zeroes every force", func() {
		a, b := at(100, 100, 1, 5), at(106, 100, 1, 5)
		a.Force = r2.Vec{X: 1, Y: 1}
		w, err := physics.NewWorld(weightless(), []*body.Particle{a, b})
		Expect(err).NotTo(HaveOccurred())

		stats := w.Advance(0.001)

		Expect(stats.Contacts).To(Equal(1))
		Expect(a.PreviousPosition).To(Equal(r2.Vec{X: 98, Y: 100}))
		Expect(b.PreviousPosition).To(Equal(r2.Vec{X: 108, Y: 100}))
		Expect(a.Force).To(Equal(r2.Vec{}))
		Expect(b.Force).To(Equal(r2.Vec{}))
	})

	It("keeps the default-sized crowd in bounds over many frames", func() {
		var ps []*body.Particle
		for i := 0; i < 30; i++ {
			ps = append(ps, at(400+float64(i%3), 300, 1+float64(i%4), 3+float64(i%5)))
		}
		w, err := physics.NewWorld(physics.DefaultParams(), ps)
		Expect(err).NotTo(HaveOccurred())

		for f := 0; f < 500; f++ {
			w.Advance(0.001)
			for _, p := range w.Particles() {
				Expect(w.InBounds(p)).To(BeTrue())
				Expect(p.IsValid()).To(BeTrue())
			}
		}
	})
})

var _ = Describe("ForceField", func() {
	It("pushes particles away from the point with inverse-square strength", func() {
		f := physics.ForceField{Strength: 1e8}
		p := at(110, 100, 1, 5)

		Expect(f.Apply([]*body.Particle{p}, r2.Vec{X: 100, Y: 100})).To(Equal(1))

		Expect(p.Force.X).To(BeNumerically("~", 1e7, 1e-3))
		Expect(p.Force.Y).To(Equal(0.0))
	})

	It("overwrites the existing force", func() {
		f := physics.ForceField{Strength: 100}
		p := at(100, 120, 1, 5)
		p.Force = r2.Vec{X: 999, Y: 999}

		f.Apply([]*body.Particle{p}, r2.Vec{X: 100, Y: 100})

		Expect(p.Force.X).To(Equal(0.0))
		Expect(p.Force.Y).To(BeNumerically("~", 5, 1e-12))
	})

	It("skips a particle located exactly at the point", func() {
		f := physics.NewForceField(physics.DefaultParams())
		on, off := at(100, 100, 1, 5), at(100, 90, 1, 5)

		Expect(f.Apply([]*body.Particle{on, off}, r2.Vec{X: 100, Y: 100})).To(Equal(1))

		Expect(on.Force).To(Equal(r2.Vec{}))
		Expect(off.Force.Y).To(BeNumerically("<", 0))
	})
})
