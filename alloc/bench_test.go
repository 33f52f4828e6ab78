package alloc_test

import (
	"fmt"
	"testing"

	"github.com/stoverud/ballast/alloc"
	"github.com/stoverud/ballast/coord"
	"github.com/stoverud/ballast/gates"
	"github.com/stoverud/ballast/tanks"
)

// benchInput builds a stage with V tank pairs spread along the hull and a
// pair of draft gates — the shape a real tank catalog takes.
func benchInput(pairs int) alloc.Input {
	in := baseInput()
	for i := 0; i < pairs; i++ {
		pos := coord.FromMidship(float64(i*2) - float64(pairs))
		in.Tanks = append(in.Tanks,
			tanks.Tank{ID: fmt.Sprintf("WB%d.P", i), Capacity: 150, Content: 40, MaxContent: 150, Position: pos},
			tanks.Tank{ID: fmt.Sprintf("WB%d.S", i), Capacity: 150, Content: 40, MaxContent: 150, Position: pos},
		)
	}
	in.Gates = []gates.Gate{
		{Name: "aft-min", Kind: gates.AftMin, Threshold: 2.75},
		{Name: "fwd-max", Kind: gates.FwdMax, Threshold: 3.40},
	}
	return in
}

func BenchmarkSolve10Tanks(b *testing.B) {
	in := benchInput(5)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = alloc.Solve(in)
	}
}

func BenchmarkSolve60Tanks(b *testing.B) {
	in := benchInput(30)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = alloc.Solve(in)
	}
}

func BenchmarkCorrectWithChecks(b *testing.B) {
	in := benchInput(10)
	checks := []alloc.SecondaryCheck{
		alloc.TrimEnvelope{MaxTrim: 2.0},
		alloc.ForwardDischargeRule{},
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = alloc.Correct(in, checks, 0)
	}
}
