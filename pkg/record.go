package disp

import (
	"fmt"
	"strings"
)

// TrainingRecord is one row of a per-type training dataset: the image
// parameters of one telescope in one event plus the derived labels. Truth
// values are carried along for auditing; they are never model inputs.
// Tags are the column names seen by the trainer.
type TrainingRecord struct {
	RunNumber       int32   `runNumber`
	EventNumber     int32   `eventNumber`
	Tel             uint32  `tel`
	CenX            float32 `cen_x`
	CenY            float32 `cen_y`
	SinPhi          float32 `sinphi`
	CosPhi          float32 `cosphi`
	Size            float32 `size`
	NTubes          float32 `ntubes`
	Loss            float32 `loss`
	Asym            float32 `asym`
	Width           float32 `width`
	Length          float32 `length`
	Wol             float32 `wol`
	Dist            float32 `dist`
	Fui             float32 `fui`
	TGradX          float32 `tgrad_x`
	MeanPedvarImage float32 `meanPedvar_Image`
	MCe0            float32 `MCe0`
	MCxoff          float32 `MCxoff`
	MCyoff          float32 `MCyoff`
	MCxcore         float32 `MCxcore`
	MCycore         float32 `MCycore`
	MCrcore         float32 `MCrcore`
	Xcore           float32 `Xcore`
	Ycore           float32 `Ycore`
	Rcore           float32 `Rcore`
	Xoff            float32 `Xoff`
	Yoff            float32 `Yoff`
	LTrig           float32 `LTrig`
	NImages         float32 `NImages`
	EHeight         float32 `EHeight`
	MCaz            float32 `MCaz`
	MCze            float32 `MCze`
	Ze              float32 `Ze`
	Az              float32 `Az`
	Disp            float32 `disp`
	DispError       float32 `dispError`
	Cross           float32 `cross`
	DispPhi         float32 `dispPhi`
	DispEnergy      float32 `dispEnergy`
	DispCore        float32 `dispCore`
}

var recordColumns = map[string]func(r *TrainingRecord) float64{
	"runNumber":        func(r *TrainingRecord) float64 { return float64(r.RunNumber) },
	"eventNumber":      func(r *TrainingRecord) float64 { return float64(r.EventNumber) },
	"tel":              func(r *TrainingRecord) float64 { return float64(r.Tel) },
	"cen_x":            func(r *TrainingRecord) float64 { return float64(r.CenX) },
	"cen_y":            func(r *TrainingRecord) float64 { return float64(r.CenY) },
	"sinphi":           func(r *TrainingRecord) float64 { return float64(r.SinPhi) },
	"cosphi":           func(r *TrainingRecord) float64 { return float64(r.CosPhi) },
	"size":             func(r *TrainingRecord) float64 { return float64(r.Size) },
	"ntubes":           func(r *TrainingRecord) float64 { return float64(r.NTubes) },
	"loss":             func(r *TrainingRecord) float64 { return float64(r.Loss) },
	"asym":             func(r *TrainingRecord) float64 { return float64(r.Asym) },
	"width":            func(r *TrainingRecord) float64 { return float64(r.Width) },
	"length":           func(r *TrainingRecord) float64 { return float64(r.Length) },
	"wol":              func(r *TrainingRecord) float64 { return float64(r.Wol) },
	"dist":             func(r *TrainingRecord) float64 { return float64(r.Dist) },
	"fui":              func(r *TrainingRecord) float64 { return float64(r.Fui) },
	"tgrad_x":          func(r *TrainingRecord) float64 { return float64(r.TGradX) },
	"meanPedvar_Image": func(r *TrainingRecord) float64 { return float64(r.MeanPedvarImage) },
	"MCe0":             func(r *TrainingRecord) float64 { return float64(r.MCe0) },
	"MCxoff":           func(r *TrainingRecord) float64 { return float64(r.MCxoff) },
	"MCyoff":           func(r *TrainingRecord) float64 { return float64(r.MCyoff) },
	"MCxcore":          func(r *TrainingRecord) float64 { return float64(r.MCxcore) },
	"MCycore":          func(r *TrainingRecord) float64 { return float64(r.MCycore) },
	"MCrcore":          func(r *TrainingRecord) float64 { return float64(r.MCrcore) },
	"Xcore":            func(r *TrainingRecord) float64 { return float64(r.Xcore) },
	"Ycore":            func(r *TrainingRecord) float64 { return float64(r.Ycore) },
	"Rcore":            func(r *TrainingRecord) float64 { return float64(r.Rcore) },
	"Xoff":             func(r *TrainingRecord) float64 { return float64(r.Xoff) },
	"Yoff":             func(r *TrainingRecord) float64 { return float64(r.Yoff) },
	"LTrig":            func(r *TrainingRecord) float64 { return float64(r.LTrig) },
	"NImages":          func(r *TrainingRecord) float64 { return float64(r.NImages) },
	"EHeight":          func(r *TrainingRecord) float64 { return float64(r.EHeight) },
	"MCaz":             func(r *TrainingRecord) float64 { return float64(r.MCaz) },
	"MCze":             func(r *TrainingRecord) float64 { return float64(r.MCze) },
	"Ze":               func(r *TrainingRecord) float64 { return float64(r.Ze) },
	"Az":               func(r *TrainingRecord) float64 { return float64(r.Az) },
	"disp":             func(r *TrainingRecord) float64 { return float64(r.Disp) },
	"dispError":        func(r *TrainingRecord) float64 { return float64(r.DispError) },
	"cross":            func(r *TrainingRecord) float64 { return float64(r.Cross) },
	"dispPhi":          func(r *TrainingRecord) float64 { return float64(r.DispPhi) },
	"dispEnergy":       func(r *TrainingRecord) float64 { return float64(r.DispEnergy) },
	"dispCore":         func(r *TrainingRecord) float64 { return float64(r.DispCore) },
}

// Column returns the value of a named column.
func (r *TrainingRecord) Column(name string) (float64, bool) {
	get, ok := recordColumns[name]
	if !ok {
		return 0, false
	}
	return get(r), true
}

// Evaluate returns the value of a variable expression: a column name or a
// product of column names such as "tgrad_x*tgrad_x".
func (r *TrainingRecord) Evaluate(expression string) (float64, error) {
	value := 1.
	for _, factor := range strings.Split(expression, "*") {
		v, ok := r.Column(strings.TrimSpace(factor))
		if !ok {
			return 0, fmt.Errorf("unknown column %q in expression %q", factor, expression)
		}
		value *= v
	}
	return value, nil
}
