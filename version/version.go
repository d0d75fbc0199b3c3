// Package version exposes build identification, set at link time.
package version

//nolint:gochecknoglobals // overridden with -ldflags "-X"
var (
	name    = "covbar"
	version = "dev"
	commit  = "unknown"
)

func Name() string {
	return name
}

func Version() string {
	return version
}

func Commit() string {
	return commit
}
