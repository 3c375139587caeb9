package common

// Version information (set via -ldflags during build)
var (
	Version   = "dev"
	GitCommit = "unknown"
)

// GetVersion returns the current version string
func GetVersion() string {
	return Version
}

// GetGitCommit returns the git commit hash
func GetGitCommit() string {
	return GitCommit
}
