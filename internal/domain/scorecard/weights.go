package scorecard

import "math"

// WeightSet values are percentages; each is clamped to [0,100] independently.
type WeightSet struct {
	OnTime     float64 `json:"onTime" koanf:"on_time"`
	Throughput float64 `json:"throughput" koanf:"throughput"`
	Completion float64 `json:"completion" koanf:"completion"`
	Penalty    float64 `json:"penalty" koanf:"penalty"`
}

func ManagerWeights() WeightSet {
	return WeightSet{OnTime: 45, Throughput: 40, Completion: 15, Penalty: 30}
}

func SelfWeights() WeightSet {
	return WeightSet{OnTime: 30, Throughput: 20, Completion: 50, Penalty: 0}
}

func (w WeightSet) Clamp() WeightSet {
	return WeightSet{
		OnTime:     ClampWeight(w.OnTime),
		Throughput: ClampWeight(w.Throughput),
		Completion: ClampWeight(w.Completion),
		Penalty:    ClampWeight(w.Penalty),
	}
}

func ClampWeight(v float64) float64 {
	if math.IsNaN(v) {
		return MinWeight
	}
	return math.Max(MinWeight, math.Min(MaxWeight, v))
}

// WeightOverrides carries optional per-request weights; nil keeps the preset value.
type WeightOverrides struct {
	OnTime     *float64
	Throughput *float64
	Completion *float64
	Penalty    *float64
}

func (w WeightSet) With(o WeightOverrides) WeightSet {
	if o.OnTime != nil {
		w.OnTime = *o.OnTime
	}
	if o.Throughput != nil {
		w.Throughput = *o.Throughput
	}
	if o.Completion != nil {
		w.Completion = *o.Completion
	}
	if o.Penalty != nil {
		w.Penalty = *o.Penalty
	}
	return w.Clamp()
}

// Presets maps a preset name to its weights.
type Presets map[string]WeightSet

func DefaultPresets() Presets {
	return Presets{
		PresetManager: ManagerWeights(),
		PresetSelf:    SelfWeights(),
	}
}

// Get falls back to the built-in default for known names.
func (p Presets) Get(name string) WeightSet {
	if w, ok := p[name]; ok {
		return w.Clamp()
	}
	if w, ok := DefaultPresets()[name]; ok {
		return w
	}
	return ManagerWeights()
}
