package config

// Backend stores named settings files for the launcher. FileBackend is the
// real implementation; MemoryBackend exists for tests.
type Backend interface {
	Get(filename string) (string, error)
	Set(filename, value string) error
}
