package version

// Build information set by ldflags
var (
	Version = "dev"     // Set by goreleaser: -X github.com/techoraye/cachyos-kde-optimization-recipe/internal/version.Version={{.Version}}
	Commit  = "unknown" // Set by goreleaser: -X github.com/techoraye/cachyos-kde-optimization-recipe/internal/version.Commit={{.Commit}}
	Date    = "unknown" // Set by goreleaser: -X github.com/techoraye/cachyos-kde-optimization-recipe/internal/version.Date={{.Date}}
)
