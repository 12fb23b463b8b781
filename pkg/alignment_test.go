package disp

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAlignmentCheck(t *testing.T) {
	for _, check := range []AlignmentCheck{AlignmentOff, AlignmentWarn, AlignmentFail} {
		parsed, err := ParseAlignmentCheck(check.String())
		require.NoError(t, err)
		assert.Equal(t, check, parsed)
	}
	_, err := ParseAlignmentCheck("strict")
	assert.Error(t, err)
}

func TestAlignmentCheckJSON(t *testing.T) {
	var config Configuration
	require.NoError(t, json.Unmarshal([]byte(`{"alignment_check": "fail"}`), &config))
	assert.Equal(t, AlignmentFail, config.AlignmentCheck)

	data, err := json.Marshal(AlignmentOff)
	require.NoError(t, err)
	assert.Equal(t, `"off"`, string(data))

	assert.Error(t, json.Unmarshal([]byte(`{"alignment_check": 2}`), &config))
}
