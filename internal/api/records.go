package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/spoorwerk/locoreg/internal/inventory"
)

// handleListRecords returns all records in insertion order.
func (s *Server) handleListRecords(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.repo.List())
}

// handleGetRecord returns a single record by id.
func (s *Server) handleGetRecord(w http.ResponseWriter, r *http.Request) {
	id, ok := recordID(r)
	if !ok {
		writeNotFound(w, "record not found")
		return
	}

	loco, err := s.repo.Get(id)
	if err != nil {
		if errors.Is(err, inventory.ErrLocomotiveNotFound) {
			writeNotFound(w, "record not found")
			return
		}
		writeInternalError(w, "failed to get record")
		return
	}

	writeJSON(w, http.StatusOK, loco)
}

// handleCreateRecord creates a new record.
// Series and category are required; all other fields carry defaults.
func (s *Server) handleCreateRecord(w http.ResponseWriter, r *http.Request) {
	var fields inventory.NewLocomotive
	if err := json.NewDecoder(r.Body).Decode(&fields); err != nil {
		writeBadRequest(w, "invalid JSON body")
		return
	}

	if fields.Series == "" || fields.Category == "" {
		writeBadRequest(w, "series and category are required")
		return
	}

	loco := s.repo.Add(fields)
	writeJSON(w, http.StatusCreated, loco)
}

// handleUpdateRecord partially updates a record. Only fields present in
// the body are overwritten; the id is never patchable.
func (s *Server) handleUpdateRecord(w http.ResponseWriter, r *http.Request) {
	id, ok := recordID(r)
	if !ok {
		writeNotFound(w, "record not found")
		return
	}

	var patch inventory.Patch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		writeBadRequest(w, "invalid JSON body")
		return
	}

	loco, err := s.repo.Update(id, patch)
	if err != nil {
		if errors.Is(err, inventory.ErrLocomotiveNotFound) {
			writeNotFound(w, "record not found")
			return
		}
		writeInternalError(w, "failed to update record")
		return
	}

	writeJSON(w, http.StatusOK, loco)
}

// handleDeleteRecord removes a record by id and returns the removed
// record.
func (s *Server) handleDeleteRecord(w http.ResponseWriter, r *http.Request) {
	id, ok := recordID(r)
	if !ok {
		writeNotFound(w, "record not found")
		return
	}

	loco, err := s.repo.Remove(id)
	if err != nil {
		if errors.Is(err, inventory.ErrLocomotiveNotFound) {
			writeNotFound(w, "record not found")
			return
		}
		writeInternalError(w, "failed to delete record")
		return
	}

	writeJSON(w, http.StatusOK, loco)
}

// recordID parses the {id} path parameter. A non-integer id can never
// match a stored record, so it is treated as a lookup miss.
func recordID(r *http.Request) (int, bool) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		return 0, false
	}
	return id, true
}
