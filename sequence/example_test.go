package sequence_test

import (
	"fmt"

	"github.com/stoverud/ballast/alloc"
	"github.com/stoverud/ballast/sequence"
)

// ExampleBuild demonstrates phase ordering: the forepeak discharge runs
// before either fill, and within the fill phase tanks come in ID order.
func ExampleBuild() {
	deltas := []alloc.Delta{
		{TankID: "WB4.P", Tonnes: 50, StageID: "S1"},
		{TankID: "FPT", Tonnes: -120, StageID: "S1"},
		{TankID: "APT", Tonnes: 25, StageID: "S1"},
	}

	steps, _ := sequence.Build(deltas, sequence.DefaultOptions())
	for _, s := range steps {
		fmt.Printf("%s %s %.0f t (%s)\n", s.Action, s.TankID, s.Amount, s.Duration)
	}
	fmt.Println("total:", sequence.Total(steps))
	// Output:
	// DISCHARGE FPT 120 t (1h12m0s)
	// FILL APT 25 t (15m0s)
	// FILL WB4.P 50 t (30m0s)
	// total: 1h57m0s
}
