// Package inventory provides the locomotive record repository.
//
// The repository is the sole authority over the record collection: every
// lookup and mutation passes through it, and it alone assigns record
// identifiers. Records live in memory for the lifetime of the process.
//
// # Key Types
//
//   - Locomotive: one locomotive entry in the collection
//   - NewLocomotive: the field set accepted when creating a record
//   - Patch: a partial update where only present fields are applied
//   - FlexInt: an integer that also accepts string-encoded JSON input
//
// # Usage
//
//	repo := inventory.NewRepository()
//	repo.SetLogger(log)
//
//	loco := repo.Add(inventory.NewLocomotive{
//	    Series:   "NS 1300",
//	    Category: "Elektrisch",
//	})
//
//	loco, err := repo.Get(loco.ID)
//	if errors.Is(err, inventory.ErrLocomotiveNotFound) {
//	    // handle miss
//	}
//
// # Identifier allocation
//
// Identifiers are positive integers allocated from a high-water counter:
// each Add returns an id strictly greater than every id handed out
// before, so deleted ids are never reused.
//
// # Thread Safety
//
// All methods are safe for concurrent use. The collection is guarded by
// a read-write mutex, and every read returns a detached copy so callers
// can never alias internal state.
package inventory
