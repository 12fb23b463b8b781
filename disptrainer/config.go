package main

import (
	"encoding/json"
	"fmt"
	"os"

	disp "github.com/eventdisplay/disptrainer/pkg"
)

// LoadConfiguration returns the defaults when filename is empty.
func LoadConfiguration(filename string) (disp.Configuration, error) {
	var config disp.Configuration

	// Set default values
	config.Verbosity = 0
	config.CompressionLevel = disp.DefaultTableOptions().CompressionLevel
	config.ChunkRows = disp.DefaultReaderOptions().ChunkRows
	config.AlignmentCheck = disp.AlignmentWarn
	config.RequireReconstructed = false
	config.FOVCut = false
	config.PlotInputs = false
	config.PlotBins = 50
	config.TrainerCommand = ""
	config.TrainerArgs = nil
	config.NoDB = true
	config.DBDriver = "sqlite"
	config.Host = "localhost"
	config.User = "disp"
	config.Passwd = ""
	config.DBName = "DISP"
	config.DBPath = "disptrainer.db"

	if filename == "" {
		return config, nil
	}
	data, err := os.ReadFile(filename)
	if err != nil {
		return config, err
	}
	err = json.Unmarshal(data, &config)
	if err != nil {
		return config, err
	}
	if config.CompressionLevel < 0 || config.CompressionLevel > 9 {
		return config, fmt.Errorf("%w: compression_level %d out of range [0,9]",
			disp.ErrConfiguration, config.CompressionLevel)
	}
	if config.ChunkRows <= 0 {
		return config, fmt.Errorf("%w: chunk_rows must be positive", disp.ErrConfiguration)
	}
	return config, nil
}

func printConfiguration(config disp.Configuration, logger disp.Logger) {
	logger.Info(fmt.Sprintf("Verbosity: %d", config.Verbosity), "config")
	logger.Info(fmt.Sprintf("Compression level: %d", config.CompressionLevel), "config")
	logger.Info(fmt.Sprintf("Chunk rows: %d", config.ChunkRows), "config")
	logger.Info(fmt.Sprintf("Alignment check: %s", config.AlignmentCheck), "config")
	logger.Info(fmt.Sprintf("Require reconstructed: %t", config.RequireReconstructed), "config")
	logger.Info(fmt.Sprintf("FOV cut: %t", config.FOVCut), "config")
	logger.Info(fmt.Sprintf("Plot inputs: %t", config.PlotInputs), "config")
	logger.Info(fmt.Sprintf("Plot bins: %d", config.PlotBins), "config")
	logger.Info(fmt.Sprintf("Trainer command: %s", config.TrainerCommand), "config")
	logger.Info(fmt.Sprintf("Trainer args: %v", config.TrainerArgs), "config")
	logger.Info(fmt.Sprintf("No DB: %t", config.NoDB), "config")
	logger.Info(fmt.Sprintf("DB driver: %s", config.DBDriver), "config")
	logger.Info(fmt.Sprintf("Host: %s", config.Host), "config")
	logger.Info(fmt.Sprintf("DB name: %s", config.DBName), "config")
	logger.Info(fmt.Sprintf("DB path: %s", config.DBPath), "config")
}
