package api

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/daybreak-tools/triage/internal/events"
	"github.com/daybreak-tools/triage/internal/scoring"
	"github.com/daybreak-tools/triage/internal/store"
)

type TasksHandler struct {
	store           store.Store
	events          events.Client
	defaultStrategy string
	logger          *slog.Logger
}

func NewTasksHandler(s store.Store, ev events.Client, defaultStrategy string, logger *slog.Logger) *TasksHandler {
	return &TasksHandler{store: s, events: ev, defaultStrategy: defaultStrategy, logger: logger}
}

func parseTaskID(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	return id, err == nil && id > 0
}

func (h *TasksHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req TaskPayload
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}
	if errs := req.validate(); len(errs) > 0 {
		writeJSON(w, http.StatusBadRequest, map[string]interface{}{
			"error":   "validation failed",
			"details": []TaskValidationError{{TaskIndex: 0, Errors: errs}},
		})
		return
	}

	due, _ := time.Parse(dueDateLayout, req.DueDate)
	task := &store.Task{
		Title:          req.Title,
		DueDate:        due,
		EstimatedHours: req.EstimatedHours,
		Importance:     req.Importance,
	}

	if err := h.store.CreateTask(r.Context(), task); err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	if h.events != nil {
		_ = h.events.Publish(events.SubjectTaskCreated(task.ID), events.TaskEvent{
			EventID:   events.NewEventID(),
			TaskID:    task.ID,
			Title:     task.Title,
			Timestamp: time.Now().UTC(),
		})
	}

	writeJSON(w, http.StatusCreated, task)
}

func (h *TasksHandler) List(w http.ResponseWriter, r *http.Request) {
	filter := store.TaskFilter{}
	if v := r.URL.Query().Get("due_before"); v != "" {
		due, err := time.Parse(dueDateLayout, v)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "due_before must be formatted YYYY-MM-DD"})
			return
		}
		filter.DueBefore = &due
	}
	if v := r.URL.Query().Get("min_importance"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			filter.MinImportance = n
		}
	}
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			filter.Limit = n
		}
	}
	if v := r.URL.Query().Get("offset"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			filter.Offset = n
		}
	}

	tasks, err := h.store.ListTasks(r.Context(), filter)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	if tasks == nil {
		tasks = []*store.Task{}
	}
	writeJSON(w, http.StatusOK, tasks)
}

func (h *TasksHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := parseTaskID(r)
	if !ok {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid task id"})
		return
	}

	task, err := h.store.GetTask(r.Context(), id)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	if task == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "task not found"})
		return
	}
	writeJSON(w, http.StatusOK, task)
}

func (h *TasksHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := parseTaskID(r)
	if !ok {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid task id"})
		return
	}

	task, err := h.store.GetTask(r.Context(), id)
	if err != nil || task == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "task not found"})
		return
	}

	var patch map[string]interface{}
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	if v, ok := patch["title"].(string); ok {
		task.Title = v
	}
	if v, ok := patch["due_date"].(string); ok {
		due, err := time.Parse(dueDateLayout, v)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "due_date must be formatted YYYY-MM-DD"})
			return
		}
		task.DueDate = due
	}
	if v, ok := patch["estimated_hours"].(float64); ok {
		task.EstimatedHours = v
	}
	if v, ok := patch["importance"].(float64); ok {
		task.Importance = int(v)
	}

	payload := TaskPayload{
		Title:          task.Title,
		DueDate:        task.DueDate.Format(dueDateLayout),
		EstimatedHours: task.EstimatedHours,
		Importance:     task.Importance,
	}
	if errs := payload.validate(); len(errs) > 0 {
		writeJSON(w, http.StatusBadRequest, map[string]interface{}{
			"error":   "validation failed",
			"details": []TaskValidationError{{TaskIndex: 0, Errors: errs}},
		})
		return
	}

	if err := h.store.UpdateTask(r.Context(), task); err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	if h.events != nil {
		_ = h.events.Publish(events.SubjectTaskUpdated(task.ID), events.TaskEvent{
			EventID:   events.NewEventID(),
			TaskID:    task.ID,
			Title:     task.Title,
			Timestamp: time.Now().UTC(),
		})
	}

	writeJSON(w, http.StatusOK, task)
}

func (h *TasksHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := parseTaskID(r)
	if !ok {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid task id"})
		return
	}

	task, err := h.store.GetTask(r.Context(), id)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	if task == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "task not found"})
		return
	}

	if err := h.store.DeleteTask(r.Context(), id); err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	if h.events != nil {
		_ = h.events.Publish(events.SubjectTaskDeleted(id), events.TaskEvent{
			EventID:   events.NewEventID(),
			TaskID:    id,
			Timestamp: time.Now().UTC(),
		})
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// Ranked scores every stored task and returns them highest first.
func (h *TasksHandler) Ranked(w http.ResponseWriter, r *http.Request) {
	strategy := r.URL.Query().Get("strategy")
	if strategy == "" {
		strategy = h.defaultStrategy
	}
	scorer, err := scoring.NewScorer(strategy, h.logger)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	records, err := h.store.ListTaskRecords(r.Context())
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	tasks := make([]scoring.Task, len(records))
	for i, rec := range records {
		tasks[i] = scoringTask(rec)
	}

	ranked := scorer.Rank(tasks)
	analyzeRequests.WithLabelValues(strategy).Inc()

	limit := len(ranked)
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 && n < limit {
			limit = n
		}
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"tasks":       ranked[:limit],
		"strategy":    strategy,
		"total_tasks": len(ranked),
	})
}

func scoringTask(rec *store.Task) scoring.Task {
	id := rec.ID
	return scoring.Task{
		ID:             &id,
		Title:          rec.Title,
		DueDate:        rec.DueDate,
		EstimatedHours: rec.EstimatedHours,
		Importance:     rec.Importance,
		Dependencies:   rec.Dependencies,
	}
}
