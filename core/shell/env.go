package shell

import "os"

// Env grants the executor access to the process-global state it is allowed
// to touch: environment variable lookup (for the cd built-in's HOME
// fallback), the working directory (mutated only by cd, observed by children
// through normal inheritance at spawn time), and process termination (the
// exit built-in). Keeping these behind an interface keeps the executor free
// of implicit globals and lets tests substitute a fake.
type Env interface {
	// LookupEnv retrieves the value of the environment variable named by the
	// key, reporting whether it was present.
	LookupEnv(key string) (string, bool)

	// Chdir changes the working directory of the host process.
	Chdir(dir string) error

	// Exit terminates the host process with the given status code.
	Exit(code int)
}

// OSEnv is the Env backed by the real process. It is the default used by
// NewExecutor.
type OSEnv struct{}

func (OSEnv) LookupEnv(key string) (string, bool) { return os.LookupEnv(key) }
func (OSEnv) Chdir(dir string) error              { return os.Chdir(dir) }
func (OSEnv) Exit(code int)                       { os.Exit(code) }

var _ Env = OSEnv{}
