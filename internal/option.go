package internal

// Option is a functional option for configuring the application.
type Option func(*application)

type application struct {
	config     *Config
	force      bool
	watch      bool
	sourcePath string
}

// WithConfig sets the application configuration.
func WithConfig(cfg *Config) Option {
	return func(a *application) {
		a.config = cfg
	}
}

// WithForce selects a force pass that processes every entry and rebuilds
// the fingerprint baseline.
func WithForce(force bool) Option {
	return func(a *application) {
		a.force = force
	}
}

// WithWatch keeps the process running and re-synchronizes on source changes.
func WithWatch(watch bool) Option {
	return func(a *application) {
		a.watch = watch
	}
}

// WithSourcePath overrides the configured bibliography path.
func WithSourcePath(path string) Option {
	return func(a *application) {
		a.sourcePath = path
	}
}
