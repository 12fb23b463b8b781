package disp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDatasetSetRoute(t *testing.T) {
	set := NewDatasetSet()
	set.Route(TrainingRecord{EventNumber: 1}, 300)
	set.Route(TrainingRecord{EventNumber: 2}, 100)
	set.Route(TrainingRecord{EventNumber: 3}, 300)

	assert.Equal(t, []uint64{100, 300}, set.Types())
	assert.Equal(t, 2, set.Len())
	assert.Equal(t, 3, set.Records())

	d, ok := set.Get(300)
	require.True(t, ok)
	assert.Equal(t, "dispTree_300", d.Name())
	require.Equal(t, 2, d.Len())
	assert.Equal(t, int32(1), d.Records[0].EventNumber)
	assert.Equal(t, int32(3), d.Records[1].EventNumber)

	_, ok = set.Get(200)
	assert.False(t, ok)
}

func TestDatasetSetAddReplaces(t *testing.T) {
	set := NewDatasetSet()
	set.Route(TrainingRecord{}, 5)
	set.Add(&Dataset{TelType: 5, Records: make([]TrainingRecord, 4)})
	d, ok := set.Get(5)
	require.True(t, ok)
	assert.Equal(t, 4, d.Len())
}

func TestParseDatasetName(t *testing.T) {
	telType, ok := parseDatasetName(DatasetName(201511619))
	assert.True(t, ok)
	assert.Equal(t, uint64(201511619), telType)

	_, ok = parseDatasetName("dispTree_x")
	assert.False(t, ok)
	_, ok = parseDatasetName("telconfig")
	assert.False(t, ok)
}
