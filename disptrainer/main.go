package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"time"

	sqlx "github.com/jmoiron/sqlx"

	disp "github.com/eventdisplay/disptrainer/pkg"
)

var (
	logger         disp.SlogLogger
	VerbosityLevel int
)

func init() {
	logger = disp.NewSlogLogger(os.Stdout, os.Stderr)
}

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(argv []string) int {
	if isVersionRequest(argv) {
		fmt.Printf("disptrainer %s (%s)\n", disp.Version, disp.GitSHA)
		return 0
	}

	flags := flag.NewFlagSet("disptrainer", flag.ContinueOnError)
	configFilename := flags.String("config", "", "Configuration file path")
	flags.Usage = func() { printUsage(flags.Output()) }
	if err := flags.Parse(argv); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 1
	}
	if flags.NArg() < minPositionalArgs {
		printUsage(os.Stdout)
		return 0
	}

	configuration, err := LoadConfiguration(*configFilename)
	if err != nil {
		message := fmt.Errorf("Error reading configuration file: %w", err)
		logger.Error(message.Error())
		return 1
	}
	disp.SetLogger(logger)

	VerbosityLevel = configuration.Verbosity
	if VerbosityLevel > 0 {
		message := fmt.Sprintf("Reading configuration file: %s", *configFilename)
		logger.Info(message, "main")
		printConfiguration(configuration, logger)
	}

	params, err := parseArguments(flags.Args())
	if err != nil {
		logger.Error(err.Error())
		return 1
	}
	printRunParameters(params)

	if err := os.MkdirAll(params.OutputDir, 0o755); err != nil {
		message := fmt.Errorf("Error creating output directory: %w", err)
		logger.Error(message.Error())
		return 1
	}

	start := time.Now()
	set, err := buildDatasets(params, configuration)
	if err != nil {
		logger.Error(err.Error())
		return 1
	}
	if VerbosityLevel > 0 {
		logger.Info(datasetSummary(set, time.Since(start)), "main")
	}

	datasetFile := disp.DatasetFileName(params.OutputDir, params.Target, params.TelType)
	if err := disp.WriteDatasetFile(datasetFile, set, configuration.TableOptions()); err != nil {
		message := fmt.Errorf("Error writing dataset file: %w", err)
		logger.Error(message.Error())
		return 1
	}
	logger.Info(fmt.Sprintf("Datasets written to %s", datasetFile), "main")

	var registry *disp.Registry
	if !configuration.NoDB {
		var dbConn *sqlx.DB
		dbConn, err = disp.ConnectToDatabase(configuration.DatabaseConfig())
		if err != nil {
			message := fmt.Errorf("Error connection to database: %w", err)
			logger.Error(message.Error())
			return 1
		}
		defer dbConn.Close()

		registry, err = disp.NewRegistry(dbConn)
		if err != nil {
			logger.Error(err.Error())
			return 1
		}
	}

	orchestrator := &disp.Orchestrator{
		OutputDir:     params.OutputDir,
		TrainFraction: params.TrainFraction,
		Target:        params.Target,
		Options:       params.Options,
		QualityCut:    params.QualityCut,
		DatasetFile:   datasetFile,
		Trainer: &disp.ExecTrainer{
			Command:   configuration.TrainerCommand,
			Args:      configuration.TrainerArgs,
			Verbosity: configuration.Verbosity,
		},
		Registry:   registry,
		PlotInputs: configuration.PlotInputs,
		PlotBins:   configuration.PlotBins,
		Verbosity:  configuration.Verbosity,
	}

	reports, err := orchestrator.TrainAll(set)
	for _, report := range reports {
		message := fmt.Sprintf("Telescope type %d: %s (%s) in %s",
			report.TelType, report.Status, report.ArtifactDir, report.Duration)
		logger.Info(message, "main")
	}
	if err != nil {
		message := fmt.Errorf("Error training models: %w", err)
		logger.Error(message.Error())
		return 1
	}
	if registry != nil {
		logger.Info(fmt.Sprintf("Registry run id: %s", registry.RunID), "main")
	}
	return 0
}

func buildDatasets(params RunParameters, configuration disp.Configuration) (*disp.DatasetSet, error) {
	if params.DataDir != "" {
		logger.Info(fmt.Sprintf("Reloading datasets from %s", params.DataDir), "main")
		return disp.LoadExisting(params.Target, params.TelType, params.DataDir)
	}

	filenames, err := disp.ReadInputFileList(params.InputList)
	if err != nil {
		return nil, err
	}
	if VerbosityLevel > 0 {
		logger.Info(fmt.Sprintf("Number of input files: %d", len(filenames)), "main")
	}

	array, err := disp.LoadArrayConfig(filenames[0], params.ArrayList)
	if err != nil {
		return nil, err
	}

	set, stats, err := disp.AssembleDatasets(filenames, array, disp.AssemblyOptions{
		TelType: params.TelType,
		RecID:   params.RecID,
		Reader:  configuration.ReaderOptions(),
	})
	if err != nil {
		return nil, err
	}
	message := fmt.Sprintf("Events: %d, images: %d, misaligned: %d", stats.Events, stats.Images, stats.Misaligned)
	logger.Info(message, "main")
	return set, nil
}

func printRunParameters(params RunParameters) {
	if VerbosityLevel <= 0 {
		return
	}
	logger.Info(fmt.Sprintf("Input list: %s", params.InputList), "main")
	logger.Info(fmt.Sprintf("Output dir: %s", params.OutputDir), "main")
	logger.Info(fmt.Sprintf("Train fraction: %g", params.TrainFraction), "main")
	logger.Info(fmt.Sprintf("Reconstruction method: %d", params.RecID), "main")
	logger.Info(fmt.Sprintf("Telescope type: %d", params.TelType), "main")
	logger.Info(fmt.Sprintf("Target: %s", params.Target), "main")
	logger.Info(fmt.Sprintf("Trainer options: %s", params.Options), "main")
	logger.Info(fmt.Sprintf("Inclusion list: %s", params.ArrayList), "main")
	logger.Info(fmt.Sprintf("Dataset dir: %s", params.DataDir), "main")
	logger.Info(fmt.Sprintf("Quality cut: %s", params.QualityCut), "main")
}

func datasetSummary(set *disp.DatasetSet, elapsed time.Duration) string {
	return fmt.Sprintf("Datasets ready: %d types, %d records (%s)", set.Len(), set.Records(), elapsed)
}
