package disp

type Configuration struct {
	Verbosity            int            `json:"verbosity"`
	CompressionLevel     int            `json:"compression_level"`
	ChunkRows            int            `json:"chunk_rows"`
	AlignmentCheck       AlignmentCheck `json:"alignment_check"`
	RequireReconstructed bool           `json:"require_reconstructed"`
	FOVCut               bool           `json:"fov_cut"`
	PlotInputs           bool           `json:"plot_inputs"`
	PlotBins             int            `json:"plot_bins"`
	TrainerCommand       string         `json:"trainer_command"`
	TrainerArgs          []string       `json:"trainer_args"`
	NoDB                 bool           `json:"no_db"`
	DBDriver             string         `json:"db_driver"`
	Host                 string         `json:"host"`
	User                 string         `json:"user"`
	Passwd               string         `json:"pass"`
	DBName               string         `json:"dbname"`
	DBPath               string         `json:"db_path"`
}

func (c Configuration) ReaderOptions() ReaderOptions {
	return ReaderOptions{
		ChunkRows:            c.ChunkRows,
		AlignmentCheck:       c.AlignmentCheck,
		RequireReconstructed: c.RequireReconstructed,
		FOVCut:               c.FOVCut,
		Verbosity:            c.Verbosity,
	}
}

func (c Configuration) TableOptions() TableOptions {
	opts := DefaultTableOptions()
	opts.CompressionLevel = c.CompressionLevel
	return opts
}

func (c Configuration) DatabaseConfig() DatabaseConfig {
	return DatabaseConfig{
		Driver: c.DBDriver,
		Host:   c.Host,
		User:   c.User,
		Passwd: c.Passwd,
		DBName: c.DBName,
		Path:   c.DBPath,
	}
}
