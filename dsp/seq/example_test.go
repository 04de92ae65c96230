package seq_test

import (
	"fmt"

	"github.com/cwbudde/algo-grain/dsp/seq"
)

func ExampleTimeline_Onsets() {
	onsets, _ := seq.Every(1, 0.25).Onsets()
	fmt.Println(onsets)
	// Output: [0 0.25 0.5 0.75]
}
