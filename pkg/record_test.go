package disp

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordColumnsCoverAllFields(t *testing.T) {
	typ := reflect.TypeOf(TrainingRecord{})
	for i := 0; i < typ.NumField(); i++ {
		tag := string(typ.Field(i).Tag)
		_, ok := recordColumns[tag]
		assert.True(t, ok, "missing column accessor for %s", tag)
	}
	assert.Len(t, recordColumns, typ.NumField())
}

func TestRecordEvaluate(t *testing.T) {
	r := TrainingRecord{TGradX: 3., Width: 0.2, Length: 0.5}

	v, err := r.Evaluate("tgrad_x*tgrad_x")
	require.NoError(t, err)
	assert.InDelta(t, 9., v, 1e-9)

	v, err = r.Evaluate("width")
	require.NoError(t, err)
	assert.InDelta(t, 0.2, v, 1e-7)

	_, err = r.Evaluate("width*height")
	assert.Error(t, err)
}
