package domain

import "fmt"

// SourceError reports a failure of a single discovery source (one channel
// lookup or one search). The cycle logs it and continues with the remaining
// sources.
type SourceError struct {
	Source string // channel id or search term
	Err    error
}

func (e *SourceError) Error() string {
	return fmt.Sprintf("source %q: %v", e.Source, e.Err)
}

func (e *SourceError) Unwrap() error {
	return e.Err
}

// StoreError reports that the record store is unreachable or unreadable.
// The current cycle aborts; the scheduler still runs the next cycle.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("store %s: %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() error {
	return e.Err
}

// ConfigError reports a missing or invalid required setting. Fatal at
// startup; the process does not proceed to scheduling.
type ConfigError struct {
	Setting string
	Reason  string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("config %s: %s", e.Setting, e.Reason)
}
