package scorecard

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWeightOverridesAreClamped(t *testing.T) {
	hi, lo := 150.0, -5.0
	w := ManagerWeights().With(WeightOverrides{OnTime: &hi, Penalty: &lo})

	assert.Equal(t, 100.0, w.OnTime)
	assert.Equal(t, 0.0, w.Penalty)
	assert.Equal(t, 40.0, w.Throughput)
	assert.Equal(t, 15.0, w.Completion)
}

func TestClampWeightNaN(t *testing.T) {
	assert.Equal(t, 0.0, ClampWeight(math.NaN()))
}

func TestPresetsFallBackToDefaults(t *testing.T) {
	p := Presets{PresetManager: {OnTime: 10, Throughput: 10, Completion: 10, Penalty: 10}}

	assert.Equal(t, 10.0, p.Get(PresetManager).OnTime)
	assert.Equal(t, SelfWeights(), p.Get(PresetSelf))
	assert.Equal(t, ManagerWeights(), p.Get("unknown"))
}
