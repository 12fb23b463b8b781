package disp

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

// ReadInputFileList reads a list of event files, one path per line.
// Blank lines are skipped; an empty list is a configuration error.
func ReadInputFileList(filename string) ([]string, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConfiguration, &ErrOpenFile{Filename: filename, Err: err})
	}
	defer file.Close()

	var files []string
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		files = append(files, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("%w: error reading %s: %w", ErrConfiguration, filename, err)
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("%w: input file list %s is empty", ErrConfiguration, filename)
	}
	logger.Info(fmt.Sprintf("Total number of input files: %d", len(files)), "filelist")
	return files, nil
}
