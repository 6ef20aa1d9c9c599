package api

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/daybreak-tools/triage/internal/scoring"
	"github.com/daybreak-tools/triage/internal/store"
)

type DependenciesHandler struct {
	store store.Store
}

func NewDependenciesHandler(s store.Store) *DependenciesHandler {
	return &DependenciesHandler{store: s}
}

type CreateDependencyRequest struct {
	TaskID    int64 `json:"task_id"`
	DependsOn int64 `json:"depends_on"`
}

// Create handles POST /api/v1/dependencies. The edge is rejected when
// it would close a cycle in the stored dependency graph.
func (h *DependenciesHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateDependencyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}
	if req.TaskID <= 0 || req.DependsOn <= 0 {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "task_id and depends_on required"})
		return
	}

	for _, id := range []int64{req.TaskID, req.DependsOn} {
		task, err := h.store.GetTask(r.Context(), id)
		if err != nil {
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
			return
		}
		if task == nil {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "task " + strconv.FormatInt(id, 10) + " not found"})
			return
		}
	}

	records, err := h.store.ListTaskRecords(r.Context())
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	tasks := make([]scoring.Task, len(records))
	for i, rec := range records {
		tasks[i] = scoringTask(rec)
		if rec.ID == req.TaskID {
			tasks[i].Dependencies = append(tasks[i].Dependencies, req.DependsOn)
		}
	}

	if cycles := scoring.DetectCycles(tasks); len(cycles) > 0 {
		cycleRejections.Inc()
		writeJSON(w, http.StatusConflict, map[string]interface{}{
			"error":  "dependency would create a cycle",
			"cycles": cycles,
		})
		return
	}

	dep := &store.Dependency{
		TaskID:    req.TaskID,
		DependsOn: req.DependsOn,
	}
	if err := h.store.CreateDependency(r.Context(), dep); err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	writeJSON(w, http.StatusCreated, dep)
}

// Delete handles DELETE /api/v1/dependencies/{id}
func (h *DependenciesHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid id"})
		return
	}

	if err := h.store.DeleteDependency(r.Context(), id); err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// ListForTask handles GET /api/v1/tasks/{id}/dependencies
func (h *DependenciesHandler) ListForTask(w http.ResponseWriter, r *http.Request) {
	id, ok := parseTaskID(r)
	if !ok {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid task id"})
		return
	}

	deps, err := h.store.ListDependenciesForTask(r.Context(), id)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	if deps == nil {
		deps = []*store.Dependency{}
	}
	writeJSON(w, http.StatusOK, deps)
}
