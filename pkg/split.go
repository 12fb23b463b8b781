package disp

import (
	"fmt"
	"math"
	"strings"
)

const (
	// MinSplitEvents is the smallest number of training or testing events
	// accepted; both counts must be strictly larger.
	MinSplitEvents = 100
	// SplitDamping scales the counts handed to the trainer. The bound
	// above applies to the counts before damping.
	SplitDamping = 0.8
)

// SplitPlan is the train/test partition of one telescope-type dataset.
type SplitPlan struct {
	Entries     int
	Fraction    float64
	NTrain      int
	NTest       int
	DampedTrain int
	DampedTest  int
}

// PlanSplit computes the number of training and testing events for a
// dataset of n entries.
func PlanSplit(n int, fraction float64) (SplitPlan, error) {
	nTrain := int(math.Floor(float64(n) * fraction))
	plan := SplitPlan{
		Entries:  n,
		Fraction: fraction,
		NTrain:   nTrain,
		NTest:    n - nTrain,
	}
	if plan.NTrain <= MinSplitEvents {
		return plan, fmt.Errorf("%w: only %d of %d events selected for training, try increasing the train fraction %.3g",
			ErrTrainFractionTooSmall, plan.NTrain, n, fraction)
	}
	if plan.NTest <= MinSplitEvents {
		return plan, fmt.Errorf("%w: only %d of %d events selected for testing, try decreasing the train fraction %.3g",
			ErrTrainFractionTooLarge, plan.NTest, n, fraction)
	}
	plan.DampedTrain = int(float64(plan.NTrain) * SplitDamping)
	plan.DampedTest = int(float64(plan.NTest) * SplitDamping)
	return plan, nil
}

// Conditions renders the split for the trainer as colon-separated options.
func (p SplitPlan) Conditions() string {
	conditions := []string{
		fmt.Sprintf("nTrain_Regression=%d", p.DampedTrain),
		fmt.Sprintf("nTest_Regression=%d", p.DampedTest),
		"SplitMode=Random",
		"NormMode=NumEvents",
		"V=True",
		"VerboseLevel=Info",
		"ScaleWithPreselEff=True",
	}
	return strings.Join(conditions, ":")
}
