package disp

var (
	// Version is set at build time
	Version = "dev"
	GitSHA  = "unknown"
)
