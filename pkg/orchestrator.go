package disp

import (
	"errors"
	"fmt"
)

// Orchestrator trains one model per telescope-type dataset.
type Orchestrator struct {
	OutputDir     string
	TrainFraction float64
	Target        Target
	Options       string
	QualityCut    string
	// DatasetFile is the aggregate dataset file the trainer reads from.
	DatasetFile string
	Trainer     Trainer
	// Registry is optional.
	Registry   *Registry
	PlotInputs bool
	PlotBins   int
	Verbosity  int
}

// Plan computes the split of every dataset of set. Any dataset violating
// the split policy fails the whole plan, before anything is trained.
func (o *Orchestrator) Plan(set *DatasetSet) (map[uint64]SplitPlan, error) {
	if set.Len() == 0 {
		return nil, fmt.Errorf("%w: no telescope type with training events", ErrMissingDataset)
	}
	plans := make(map[uint64]SplitPlan, set.Len())
	for _, telType := range set.Types() {
		d, _ := set.Get(telType)
		plan, err := PlanSplit(d.Len(), o.TrainFraction)
		if err != nil {
			return nil, fmt.Errorf("telescope type %d: %w", telType, err)
		}
		plans[telType] = plan
	}
	return plans, nil
}

// Job builds the training job of one telescope type.
func (o *Orchestrator) Job(telType uint64, plan SplitPlan) TrainingJob {
	return TrainingJob{
		TelType:     telType,
		Target:      o.Target,
		Schema:      BuildSchema(telType, o.Target),
		Split:       plan,
		DatasetFile: o.DatasetFile,
		DatasetName: DatasetName(telType),
		QualityCut:  o.QualityCut,
		Options:     o.Options,
		OutputDir:   ArtifactDir(o.OutputDir, o.Target, telType),
	}
}

// TrainAll plans and trains every dataset of set. A failed training does
// not stop the other telescope types; failures are returned joined.
func (o *Orchestrator) TrainAll(set *DatasetSet) ([]*TrainingReport, error) {
	plans, err := o.Plan(set)
	if err != nil {
		return nil, err
	}
	logger.Info(fmt.Sprintf("Number of telescope types: %d", set.Len()), "orchestrator")

	var reports []*TrainingReport
	var errs []error
	for _, telType := range set.Types() {
		d, _ := set.Get(telType)
		job := o.Job(telType, plans[telType])
		o.describe(d, job)

		report, err := o.Trainer.Train(job)
		if err != nil {
			err = fmt.Errorf("training %s for telescope type %d: %w", o.Target, telType, err)
			logger.Error(err.Error())
			errs = append(errs, err)
		}
		if report != nil {
			reports = append(reports, report)
		}
		if o.Registry != nil {
			if regErr := o.Registry.Record(job, report, err); regErr != nil {
				logger.Error(regErr.Error())
			}
		}
	}
	return reports, errors.Join(errs...)
}

func (o *Orchestrator) describe(d *Dataset, job TrainingJob) {
	message := fmt.Sprintf("Starting %s training for telescope type %d", job.Target, job.TelType)
	logger.Info(message, "orchestrator")
	message = fmt.Sprintf("number of training events: %d, number of test events: %d, train fraction: %.3g",
		job.Split.DampedTrain, job.Split.DampedTest, job.Split.Fraction)
	logger.Info(message, "orchestrator")
	if o.Verbosity > 0 {
		logger.Info(fmt.Sprintf("Train and test condition: %s", job.Split.Conditions()), "orchestrator")
		logger.Info(fmt.Sprintf("Quality cuts applied: %s", job.QualityCut), "orchestrator")
		if tv := job.Schema.Target; tv.Bounded() {
			message := fmt.Sprintf("Target %s restricted to [%g, %g] %s", tv.Label, tv.Min, tv.Max, tv.Unit)
			logger.Info(message, "orchestrator")
		}
		exprs := append(job.Schema.VariableNames(), job.Schema.Target.Label)
		summaries, err := SummarizeDataset(d, exprs)
		if err != nil {
			logger.Error(err.Error())
		}
		for _, s := range summaries {
			logger.Info(s.String(), "orchestrator")
		}
	}
	if o.PlotInputs {
		dir := PlotDir(o.OutputDir, job.Target, job.TelType)
		files, err := PlotInputVariables(dir, d, job.Schema, o.PlotBins)
		if err != nil {
			logger.Error(fmt.Sprintf("error plotting input variables: %v", err))
		}
		if o.Verbosity > 0 {
			logger.Info(fmt.Sprintf("wrote %d plots to %s", len(files), dir), "orchestrator")
		}
	}
}
