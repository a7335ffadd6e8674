package inventory

import "sync"

// Logger defines the logging interface used by the Repository.
// This allows different logging implementations to be used.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

// noopLogger is a logger that does nothing.
type noopLogger struct{}

func (noopLogger) Debug(string, ...any) {}
func (noopLogger) Info(string, ...any)  {}
func (noopLogger) Warn(string, ...any)  {}
func (noopLogger) Error(string, ...any) {}

// Repository holds the authoritative in-memory collection of locomotive
// records. It preserves insertion order: updates do not reorder and
// deletes excise in place.
//
// All public methods are thread-safe. Every returned Locomotive is a
// detached copy; mutating it never affects stored state.
type Repository struct {
	mu     sync.RWMutex
	locos  []Locomotive
	nextID int
	logger Logger
}

// NewRepository creates an empty repository. The first record it creates
// is assigned id 1.
func NewRepository() *Repository {
	return &Repository{
		locos:  []Locomotive{},
		nextID: 1,
		logger: noopLogger{},
	}
}

// SetLogger sets the logger for the repository.
func (r *Repository) SetLogger(logger Logger) {
	r.logger = logger
}

// List returns every record in insertion order.
// The result is never nil; an empty repository yields an empty slice.
func (r *Repository) List() []Locomotive {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Locomotive, len(r.locos))
	copy(out, r.locos)
	return out
}

// Get retrieves a record by id.
// Returns ErrLocomotiveNotFound if the id does not exist.
func (r *Repository) Get(id int) (Locomotive, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for i := range r.locos {
		if r.locos[i].ID == id {
			return r.locos[i], nil
		}
	}
	return Locomotive{}, ErrLocomotiveNotFound
}

// Add creates a new record from the given fields, assigns it the next
// free id, applies defaults for omitted optional fields, and appends it
// to the collection. It returns a snapshot of the created record.
//
// Ids are allocated from a high-water counter: each Add returns an id
// strictly greater than every previously assigned id, so ids freed by
// Remove are never handed out again.
func (r *Repository) Add(fields NewLocomotive) Locomotive {
	r.mu.Lock()
	defer r.mu.Unlock()

	gauge := DefaultTrackGauge
	if fields.TrackGauge != nil {
		gauge = fields.TrackGauge.Int()
	}

	loco := Locomotive{
		ID:           r.nextID,
		Series:       fields.Series,
		Category:     fields.Category,
		Manufacturer: fields.Manufacturer,
		YearBuilt:    fields.YearBuilt.Int(),
		TrackGauge:   gauge,
		TractionCode: fields.TractionCode,
		MaxSpeed:     fields.MaxSpeed.Int(),
	}
	r.nextID++
	r.locos = append(r.locos, loco)

	r.logger.Info("locomotive created", "id", loco.ID, "series", loco.Series)
	return loco
}

// Update applies a partial patch to the record with the given id and
// returns a snapshot of the updated record.
//
// Only fields present in the patch are overwritten; absent fields keep
// their stored value. The id itself is never patchable. Update never
// creates a record: an unknown id returns ErrLocomotiveNotFound.
func (r *Repository) Update(id int, patch Patch) (Locomotive, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.locos {
		if r.locos[i].ID != id {
			continue
		}

		loco := &r.locos[i]
		if patch.Series != nil {
			loco.Series = *patch.Series
		}
		if patch.Category != nil {
			loco.Category = *patch.Category
		}
		if patch.Manufacturer != nil {
			loco.Manufacturer = *patch.Manufacturer
		}
		if patch.YearBuilt != nil {
			loco.YearBuilt = patch.YearBuilt.Int()
		}
		if patch.TrackGauge != nil {
			loco.TrackGauge = patch.TrackGauge.Int()
		}
		if patch.TractionCode != nil {
			loco.TractionCode = *patch.TractionCode
		}
		if patch.MaxSpeed != nil {
			loco.MaxSpeed = patch.MaxSpeed.Int()
		}

		r.logger.Info("locomotive updated", "id", id)
		return *loco, nil
	}

	return Locomotive{}, ErrLocomotiveNotFound
}

// Remove excises the record with the given id from the collection and
// returns a snapshot of the removed record.
// Returns ErrLocomotiveNotFound if the id does not exist.
func (r *Repository) Remove(id int) (Locomotive, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.locos {
		if r.locos[i].ID == id {
			removed := r.locos[i]
			r.locos = append(r.locos[:i], r.locos[i+1:]...)
			r.logger.Info("locomotive removed", "id", id)
			return removed, nil
		}
	}
	return Locomotive{}, ErrLocomotiveNotFound
}

// Count returns the number of stored records.
func (r *Repository) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.locos)
}
