package domain

import "context"

// Snapshot captures the complete persistable state of one facility at the end
// of a step: buffer inventories in order, the metadata index, the working
// preference/recipe arrays (which scheduled changes may have altered), and
// the cycle counters.
type Snapshot struct {
	Facility   string              `json:"facility"`
	Time       int                 `json:"time"`
	CycleStep  int                 `json:"cycle_step"`
	Discharged bool                `json:"discharged"`
	Fresh      []Assembly          `json:"fresh"`
	Core       []Assembly          `json:"core"`
	Spent      []Assembly          `json:"spent"`
	Index      map[string]FuelSpec `json:"index"`
	Prefs      []float64           `json:"prefs"`
	InRecipes  []string            `json:"in_recipes"`
	OutRecipes []string            `json:"out_recipes"`
}

// SnapshotStore persists facility snapshots between steps. Durability across
// process restarts is the store's job, not the core's.
type SnapshotStore interface {
	// Driver names the concrete backend (memory, fs, s3).
	Driver() string
	// Save writes the snapshot under key, overwriting any previous version.
	Save(ctx context.Context, key string, snap Snapshot) error
	// Load reads the snapshot stored under key.
	Load(ctx context.Context, key string) (Snapshot, error)
	// List returns stored keys beginning with prefix, sorted. Empty prefix
	// lists all keys.
	List(ctx context.Context, prefix string) ([]string, error)
}

// Severity grades an invariant violation.
type Severity string

// Violation severities: block halts the run, warn is advisory.
const (
	SeverityBlock Severity = "block"
	SeverityWarn  Severity = "warn"
)

// Violation describes one breached facility invariant.
type Violation struct {
	Rule     string   `json:"rule"`
	Severity Severity `json:"severity"`
	Message  string   `json:"message"`
}
