package main

import (
	"fmt"
	"io"
	"strconv"

	disp "github.com/eventdisplay/disptrainer/pkg"
)

const (
	DefaultTrainerOptions = "VarTransform=N:NTrees=200:BoostType=AdaBoost:MaxDepth=8"
	DefaultQualityCut     = "size>1.&&ntubes>4.&&width>0.&&width<2.&&length>0.&&length<10.&&tgrad_x<100.*100.&&loss<0.20"
	minPositionalArgs     = 5
)

// RunParameters holds the positional arguments of a run.
type RunParameters struct {
	InputList     string
	OutputDir     string
	TrainFraction float64
	RecID         int
	TelType       uint64
	Target        disp.Target
	Options       string
	ArrayList     string
	DataDir       string
	QualityCut    string
}

func parseArguments(args []string) (RunParameters, error) {
	params := RunParameters{
		Target:     disp.AngleDisp,
		Options:    DefaultTrainerOptions,
		QualityCut: DefaultQualityCut,
	}
	if len(args) < minPositionalArgs {
		return params, fmt.Errorf("%w: expected at least %d arguments, got %d",
			disp.ErrConfiguration, minPositionalArgs, len(args))
	}

	params.InputList = args[0]
	params.OutputDir = args[1]

	fraction, err := strconv.ParseFloat(args[2], 64)
	if err != nil {
		return params, fmt.Errorf("%w: invalid train fraction %q", disp.ErrConfiguration, args[2])
	}
	if fraction <= 0 || fraction >= 1 {
		return params, fmt.Errorf("%w: train fraction %g must be in (0,1)", disp.ErrConfiguration, fraction)
	}
	params.TrainFraction = fraction

	params.RecID, err = strconv.Atoi(args[3])
	if err != nil || params.RecID < 0 {
		return params, fmt.Errorf("%w: invalid reconstruction method %q", disp.ErrConfiguration, args[3])
	}

	params.TelType, err = strconv.ParseUint(args[4], 10, 64)
	if err != nil {
		return params, fmt.Errorf("%w: invalid telescope type %q", disp.ErrConfiguration, args[4])
	}

	if len(args) > 5 && args[5] != "" {
		params.Target, err = disp.ParseTarget(args[5])
		if err != nil {
			return params, err
		}
	}
	if len(args) > 6 && args[6] != "" {
		params.Options = args[6]
	}
	if len(args) > 7 {
		params.ArrayList = args[7]
	}
	if len(args) > 8 {
		params.DataDir = args[8]
	}
	if len(args) > 9 && args[9] != "" {
		params.QualityCut = args[9]
	}
	return params, nil
}

func isVersionRequest(args []string) bool {
	return len(args) == 1 && (args[0] == "-v" || args[0] == "--version")
}

func printUsage(w io.Writer) {
	fmt.Fprintln(w, "disptrainer: build disp training datasets and train one model per telescope type")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "usage: disptrainer [-config file.json] <input list> <output dir> <train fraction> <recid> <teltype>")
	fmt.Fprintln(w, "                   [target] [trainer options] [inclusion list] [dataset dir] [quality cut]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "  input list       text file with one event store (HDF5) per line")
	fmt.Fprintln(w, "  output dir       directory for datasets and trained models")
	fmt.Fprintln(w, "  train fraction   fraction of events used for training, in (0,1)")
	fmt.Fprintln(w, "  recid            reconstruction method index")
	fmt.Fprintln(w, "  teltype          telescope type, 0 for all types")
	fmt.Fprintln(w, "  target           disp-angle (default), disp-error, disp-energy or disp-core")
	fmt.Fprintf(w, "  trainer options  default %s\n", DefaultTrainerOptions)
	fmt.Fprintln(w, "  inclusion list   telescope inclusion list, empty for all telescopes")
	fmt.Fprintln(w, "  dataset dir      reload datasets from this directory instead of the input list")
	fmt.Fprintf(w, "  quality cut      default %s\n", DefaultQualityCut)
	fmt.Fprintln(w)
	fmt.Fprintln(w, "disptrainer -v | --version prints the version")
}
