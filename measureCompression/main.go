package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	disp "github.com/eventdisplay/disptrainer/pkg"
)

var logger disp.SlogLogger

func init() {
	logger = disp.NewSlogLogger(os.Stdout, os.Stderr)
}

// Rewrites a dataset file produced by disptrainer with every deflate level
// and reports the write time and file size of each.
func main() {
	dataDir := flag.String("dir", "", "Directory holding the dataset file")
	targetName := flag.String("target", "disp-angle", "Training target of the dataset file")
	telType := flag.Uint64("teltype", 0, "Telescope type of the dataset file (0 = all)")
	fileOut := flag.String("out", "", "Output file (default: a temporary file)")
	repeat := flag.Int("repeat", 3, "Number of writes per compression level")
	chunkRows := flag.Uint("chunk", disp.DefaultTableOptions().ChunkRows, "Rows per HDF5 chunk")
	flag.Parse()

	if *dataDir == "" {
		logger.Error("missing -dir")
		flag.Usage()
		os.Exit(1)
	}
	target, err := disp.ParseTarget(*targetName)
	if err != nil {
		logger.Error(err.Error())
		os.Exit(1)
	}
	disp.SetLogger(logger)

	set, err := disp.LoadExisting(target, *telType, *dataDir)
	if err != nil {
		message := fmt.Errorf("Error reading datasets: %w", err)
		logger.Error(message.Error())
		os.Exit(1)
	}
	message := fmt.Sprintf("Loaded %d records for %d telescope type(s)", set.Records(), set.Len())
	logger.Info(message, "main")

	out := *fileOut
	if out == "" {
		tmp, err := os.MkdirTemp("", "measureCompression")
		if err != nil {
			logger.Error(err.Error())
			os.Exit(1)
		}
		defer os.RemoveAll(tmp)
		out = filepath.Join(tmp, "dataset.h5")
	}

	start := time.Now()
	for compressionLevel := 0; compressionLevel < 10; compressionLevel++ {
		opts := disp.TableOptions{CompressionLevel: compressionLevel, ChunkRows: *chunkRows}
		for i := 0; i < *repeat; i++ {
			t0 := time.Now()
			if err := disp.WriteDatasetFile(out, set, opts); err != nil {
				logger.Error(fmt.Sprintf("Error writing %s: %v", out, err))
				continue
			}
			duration := time.Since(t0)
			fileInfo, err := os.Stat(out)
			if err != nil {
				logger.Error(fmt.Sprintf("Error getting file info: %v", err))
				continue
			}
			fmt.Printf("(deflate %d, chunk %d) Time: %d ms, size %d bytes\n",
				compressionLevel, *chunkRows, duration.Milliseconds(), fileInfo.Size())
		}
	}
	fmt.Printf("Total time: %d ms\n", time.Since(start).Milliseconds())
}
