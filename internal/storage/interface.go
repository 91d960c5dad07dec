package storage

import "github.com/ysato/pointbook/internal/models"

// Provider abstracts the persistence medium for the configuration
// document and the point ledger so it can move between flat files and
// an embedded database without touching calculation logic.
//
// Concurrency note:
//   - A Provider is not safe for concurrent use by multiple goroutines
//     without external synchronization.
//   - Every mutation rewrites the whole store; two sessions sharing the
//     same data path race and silently overwrite each other
//     (last write wins). Running multiple processes against one data
//     path is not supported.
type Provider interface {
	// Lifecycle
	Init() error
	Load() error
	Close() error

	// Configuration
	Config() (models.Config, error)
	SaveConfig(models.Config) error

	// Ledger. Event indices are positions within the current load and
	// are stable only until the next mutation.
	Events() ([]models.PointEvent, error)
	Append(events ...models.PointEvent) error
	DeleteEvent(index int) error
	UndoLatest(child string) (models.PointEvent, error)

	// Utils
	DataPath() string
}
