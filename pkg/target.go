package disp

import (
	"fmt"
	"math"
)

// Target is the regression target of a training.
type Target int

const (
	AngleDisp Target = iota
	AngleError
	EnergyRatio
	CoreDistance
)

// TargetVariable describes the target column handed to the trainer.
type TargetVariable struct {
	Label string
	Title string
	Unit  string
	Min   float64
	Max   float64
}

// Bounded reports whether the target has a restricted valid range.
func (v TargetVariable) Bounded() bool {
	return !math.IsInf(v.Min, -1) || !math.IsInf(v.Max, 1)
}

var targetNames = []string{
	"BDTDisp",
	"BDTDispError",
	"BDTDispEnergy",
	"BDTDispCore",
}

var targetSelectors = []string{
	"disp-angle",
	"disp-error",
	"disp-energy",
	"disp-core",
}

var targetVariables = []TargetVariable{
	{Label: "disp", Title: "disp", Min: math.Inf(-1), Max: math.Inf(1)},
	{Label: "dispError", Title: "dispError", Min: 0., Max: 10.},
	{Label: "dispEnergy", Title: "dispEnergy", Min: math.Inf(-1), Max: math.Inf(1)},
	{Label: "dispCore", Title: "dispCore", Unit: "m", Min: 0., Max: 1.e5},
}

func (t Target) valid() bool {
	return t >= AngleDisp && t <= CoreDistance
}

// String returns the name used for output files and trained methods.
func (t Target) String() string {
	if !t.valid() {
		return "UNKNOWN"
	}
	return targetNames[t]
}

// Selector returns the command line name of the target.
func (t Target) Selector() string {
	if !t.valid() {
		return "UNKNOWN"
	}
	return targetSelectors[t]
}

func (t Target) Variable() TargetVariable {
	if !t.valid() {
		return TargetVariable{}
	}
	return targetVariables[t]
}

// ParseTarget decodes a command line target selector. Both the selector
// names and the method names (BDTDisp, ...) are accepted.
func ParseTarget(s string) (Target, error) {
	for i := range targetSelectors {
		if s == targetSelectors[i] || s == targetNames[i] {
			return Target(i), nil
		}
	}
	return AngleDisp, fmt.Errorf("%w: %q", ErrUnknownTarget, s)
}

func (t Target) MarshalText() ([]byte, error) {
	if !t.valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownTarget, int(t))
	}
	return []byte(t.Selector()), nil
}

func (t *Target) UnmarshalText(text []byte) error {
	parsed, err := ParseTarget(string(text))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}
