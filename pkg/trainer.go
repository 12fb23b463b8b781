package disp

import (
	"errors"
	"fmt"
	"math"
	"os"
	"os/exec"
	"path/filepath"
	"time"

	"go.yaml.in/yaml/v3"
)

const (
	jobManifestName = "job.yaml"
	trainerLogName  = "trainer.log"
)

// TrainingJob is everything the trainer needs for one telescope type.
// QualityCut and Options are passed through unchanged.
type TrainingJob struct {
	TelType     uint64
	Target      Target
	Schema      VariableSchema
	Split       SplitPlan
	DatasetFile string
	DatasetName string
	QualityCut  string
	Options     string
	OutputDir   string
}

// MethodName is the name of the trained method, e.g. BDT_201511619.
func (j TrainingJob) MethodName() string {
	return fmt.Sprintf("BDT_%d", j.TelType)
}

// ArtifactDir is <outputDir>/<target>_<telType>.
func ArtifactDir(outputDir string, target Target, telType uint64) string {
	return filepath.Join(outputDir, fmt.Sprintf("%s_%d", target, telType))
}

type TrainingReport struct {
	TelType     uint64
	Target      Target
	ArtifactDir string
	Manifest    string
	Log         string
	Status      string
	Duration    time.Duration
}

const (
	StatusTrained      = "trained"
	StatusManifestOnly = "manifest-only"
	StatusFailed       = "failed"
)

// Trainer fits one regression model per job.
type Trainer interface {
	Train(job TrainingJob) (*TrainingReport, error)
}

// ExecTrainer writes a job manifest into the artifact directory and runs an
// external training program with the manifest path as last argument. With
// an empty Command only the manifest is written.
type ExecTrainer struct {
	Command   string
	Args      []string
	Verbosity int
}

type jobManifest struct {
	Method        string          `yaml:"method"`
	TelescopeType uint64          `yaml:"telescope_type"`
	Target        manifestTarget  `yaml:"target"`
	Dataset       manifestDataset `yaml:"dataset"`
	Variables     []string        `yaml:"variables"`
	Spectators    []string        `yaml:"spectators"`
	QualityCut    string          `yaml:"quality_cut"`
	Options       string          `yaml:"options"`
	Split         manifestSplit   `yaml:"split"`
	OutputDir     string          `yaml:"output_dir"`
}

type manifestTarget struct {
	Name  string   `yaml:"name"`
	Label string   `yaml:"label"`
	Unit  string   `yaml:"unit,omitempty"`
	Min   *float64 `yaml:"min,omitempty"`
	Max   *float64 `yaml:"max,omitempty"`
}

type manifestDataset struct {
	File   string `yaml:"file"`
	Object string `yaml:"object"`
}

type manifestSplit struct {
	Entries    int    `yaml:"entries"`
	NTrain     int    `yaml:"ntrain"`
	NTest      int    `yaml:"ntest"`
	Conditions string `yaml:"conditions"`
}

func newJobManifest(job TrainingJob) jobManifest {
	tv := job.Schema.Target
	target := manifestTarget{Name: job.Target.String(), Label: tv.Label, Unit: tv.Unit}
	if !math.IsInf(tv.Min, 0) {
		lo := tv.Min
		target.Min = &lo
	}
	if !math.IsInf(tv.Max, 0) {
		hi := tv.Max
		target.Max = &hi
	}
	return jobManifest{
		Method:        job.MethodName(),
		TelescopeType: job.TelType,
		Target:        target,
		Dataset:       manifestDataset{File: job.DatasetFile, Object: job.DatasetName},
		Variables:     job.Schema.VariableNames(),
		Spectators:    job.Schema.SpectatorNames(),
		QualityCut:    job.QualityCut,
		Options:       job.Options,
		Split: manifestSplit{
			Entries:    job.Split.Entries,
			NTrain:     job.Split.DampedTrain,
			NTest:      job.Split.DampedTest,
			Conditions: job.Split.Conditions(),
		},
		OutputDir: job.OutputDir,
	}
}

// WriteJobManifest writes the YAML description of job into its output directory.
func WriteJobManifest(job TrainingJob) (string, error) {
	if err := os.MkdirAll(job.OutputDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create output dir: %w", err)
	}
	data, err := yaml.Marshal(newJobManifest(job))
	if err != nil {
		return "", fmt.Errorf("error encoding job manifest: %w", err)
	}
	path := filepath.Join(job.OutputDir, jobManifestName)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("error writing job manifest: %w", err)
	}
	return path, nil
}

func (t *ExecTrainer) Train(job TrainingJob) (*TrainingReport, error) {
	start := time.Now()
	report := &TrainingReport{
		TelType:     job.TelType,
		Target:      job.Target,
		ArtifactDir: job.OutputDir,
		Status:      StatusFailed,
	}
	manifest, err := WriteJobManifest(job)
	if err != nil {
		return report, err
	}
	report.Manifest = manifest

	if t.Command == "" {
		report.Status = StatusManifestOnly
		report.Duration = time.Since(start)
		logger.Info(fmt.Sprintf("no trainer command configured, wrote %s", manifest), "trainer")
		return report, nil
	}

	logPath := filepath.Join(job.OutputDir, trainerLogName)
	logFile, err := os.Create(logPath)
	if err != nil {
		return report, fmt.Errorf("error creating trainer log: %w", err)
	}
	defer logFile.Close()
	report.Log = logPath

	args := append(append([]string{}, t.Args...), manifest)
	cmd := exec.Command(t.Command, args...)
	cmd.Dir = job.OutputDir
	cmd.Env = append(os.Environ(), "DISP_TRAINING_JOB="+manifest)
	cmd.Stdout = logFile
	cmd.Stderr = logFile
	if t.Verbosity > 0 {
		logger.Info(fmt.Sprintf("running %s %v", t.Command, args), "trainer")
	}
	err = cmd.Run()
	report.Duration = time.Since(start)
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return report, fmt.Errorf("trainer exited with code %d, see %s", exitErr.ExitCode(), logPath)
		}
		return report, fmt.Errorf("error running trainer: %w", err)
	}
	report.Status = StatusTrained
	return report, nil
}
