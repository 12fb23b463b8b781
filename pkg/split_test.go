package disp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlanSplit(t *testing.T) {
	plan, err := PlanSplit(1000, 0.5)
	require.NoError(t, err)
	assert.Equal(t, 500, plan.NTrain)
	assert.Equal(t, 500, plan.NTest)
	assert.Equal(t, 400, plan.DampedTrain)
	assert.Equal(t, 400, plan.DampedTest)
	assert.Equal(t, 1000, plan.NTrain+plan.NTest)
}

func TestPlanSplitFloorsTrainCount(t *testing.T) {
	plan, err := PlanSplit(1001, 0.3)
	require.NoError(t, err)
	assert.Equal(t, 300, plan.NTrain)
	assert.Equal(t, 701, plan.NTest)
	assert.Equal(t, 240, plan.DampedTrain)
	assert.Equal(t, 560, plan.DampedTest)
}

func TestPlanSplitBounds(t *testing.T) {
	tests := []struct {
		name     string
		entries  int
		fraction float64
		err      error
	}{
		{"too few training events", 250, 0.3, ErrTrainFractionTooSmall},
		{"exactly the minimum for training", 200, 0.5, ErrTrainFractionTooSmall},
		{"too few testing events", 1000, 0.95, ErrTrainFractionTooLarge},
		{"exactly the minimum for testing", 202, 0.5, nil},
		{"empty dataset", 0, 0.5, ErrTrainFractionTooSmall},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := PlanSplit(tt.entries, tt.fraction)
			if tt.err == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.err)
		})
	}
}

func TestSplitConditions(t *testing.T) {
	plan, err := PlanSplit(1000, 0.5)
	require.NoError(t, err)
	assert.Equal(t,
		"nTrain_Regression=400:nTest_Regression=400:SplitMode=Random:NormMode=NumEvents:V=True:VerboseLevel=Info:ScaleWithPreselEff=True",
		plan.Conditions())
}
