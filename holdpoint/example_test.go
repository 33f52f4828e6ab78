package holdpoint_test

import (
	"fmt"

	"github.com/stoverud/ballast/coord"
	"github.com/stoverud/ballast/holdpoint"
)

// ExampleEvaluator_Evaluate demonstrates a routine checkpoint: half a
// centimeter off on both ends is well inside the GO band.
func ExampleEvaluator_Evaluate() {
	ev, _ := holdpoint.New("VOID3", "VOID3.S", holdpoint.DefaultBands())

	rec, _ := ev.Evaluate(
		coord.Drafts{Fwd: 2.200, Aft: 2.700},
		coord.Drafts{Fwd: 2.205, Aft: 2.695},
	)
	fmt.Printf("%s (%.1f cm)\n", rec.Band, rec.DeviationCm)
	// Output:
	// GO (0.5 cm)
}

// ExampleEvaluator_Evaluate_stop shows the worse end governing: the
// forward reading is fine, the aft one is 5 cm out.
func ExampleEvaluator_Evaluate_stop() {
	ev, _ := holdpoint.New("VOID3", "VOID3.S", holdpoint.DefaultBands())

	rec, _ := ev.Evaluate(
		coord.Drafts{Fwd: 2.200, Aft: 2.700},
		coord.Drafts{Fwd: 2.201, Aft: 2.750},
	)
	fmt.Printf("%s (%.1f cm)\n", rec.Band, rec.DeviationCm)
	// Output:
	// STOP (5.0 cm)
}
