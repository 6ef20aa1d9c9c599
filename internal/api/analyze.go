package api

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/daybreak-tools/triage/internal/events"
	"github.com/daybreak-tools/triage/internal/scoring"
)

const dueDateLayout = "2006-01-02"

type AnalyzeHandler struct {
	events          events.Client
	defaultStrategy string
	suggestionLimit int
	logger          *slog.Logger
}

func NewAnalyzeHandler(ev events.Client, defaultStrategy string, suggestionLimit int, logger *slog.Logger) *AnalyzeHandler {
	return &AnalyzeHandler{
		events:          ev,
		defaultStrategy: defaultStrategy,
		suggestionLimit: suggestionLimit,
		logger:          logger,
	}
}

// TaskPayload is a task as submitted by callers. DueDate is a calendar
// date, no time component.
type TaskPayload struct {
	TaskID         *int64  `json:"task_id,omitempty"`
	Title          string  `json:"title"`
	DueDate        string  `json:"due_date"`
	EstimatedHours float64 `json:"estimated_hours"`
	Importance     int     `json:"importance"`
	Dependencies   []int64 `json:"dependencies,omitempty"`
}

func (p TaskPayload) validate() []string {
	var errs []string
	if strings.TrimSpace(p.Title) == "" {
		errs = append(errs, "title is required")
	}
	if _, err := time.Parse(dueDateLayout, p.DueDate); err != nil {
		errs = append(errs, "due_date must be formatted YYYY-MM-DD")
	}
	if p.EstimatedHours <= 0 {
		errs = append(errs, "estimated_hours must be positive")
	} else if p.EstimatedHours > 1000 {
		errs = append(errs, "estimated_hours must be at most 1000")
	}
	if p.Importance < 1 || p.Importance > 10 {
		errs = append(errs, "importance must be between 1 and 10")
	}
	seen := make(map[int64]bool, len(p.Dependencies))
	for _, d := range p.Dependencies {
		if seen[d] {
			errs = append(errs, fmt.Sprintf("duplicate dependency %d", d))
			break
		}
		seen[d] = true
	}
	return errs
}

func (p TaskPayload) toScoringTask() scoring.Task {
	due, _ := time.Parse(dueDateLayout, p.DueDate)
	return scoring.Task{
		ID:             p.TaskID,
		Title:          p.Title,
		DueDate:        due,
		EstimatedHours: p.EstimatedHours,
		Importance:     p.Importance,
		Dependencies:   p.Dependencies,
	}
}

type TaskValidationError struct {
	TaskIndex int      `json:"task_index"`
	Errors    []string `json:"errors"`
}

type AnalyzeRequest struct {
	Tasks    []TaskPayload `json:"tasks"`
	Strategy string        `json:"strategy,omitempty"`
	Limit    int           `json:"limit,omitempty"`
}

// parse decodes and validates an analyze/suggest request. On failure it
// writes the error response and returns ok=false.
func (h *AnalyzeHandler) parse(w http.ResponseWriter, r *http.Request) (req AnalyzeRequest, tasks []scoring.Task, scorer *scoring.Scorer, ok bool) {
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return req, nil, nil, false
	}
	if len(req.Tasks) == 0 {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "tasks required"})
		return req, nil, nil, false
	}

	var details []TaskValidationError
	for i, p := range req.Tasks {
		if errs := p.validate(); len(errs) > 0 {
			details = append(details, TaskValidationError{TaskIndex: i, Errors: errs})
		}
	}
	if len(details) > 0 {
		writeJSON(w, http.StatusBadRequest, map[string]interface{}{
			"error":   "validation failed",
			"details": details,
		})
		return req, nil, nil, false
	}

	strategy := req.Strategy
	if strategy == "" {
		strategy = h.defaultStrategy
	}
	scorer, err := scoring.NewScorer(strategy, h.logger)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return req, nil, nil, false
	}

	tasks = make([]scoring.Task, len(req.Tasks))
	for i, p := range req.Tasks {
		tasks[i] = p.toScoringTask()
	}

	if cycles := scoring.DetectCycles(tasks); len(cycles) > 0 {
		cycleRejections.Inc()
		writeJSON(w, http.StatusBadRequest, map[string]interface{}{
			"error":   "circular dependencies detected",
			"cycles":  cycles,
			"message": "remove the circular references and resubmit",
		})
		return req, nil, nil, false
	}

	return req, tasks, scorer, true
}

func (h *AnalyzeHandler) Analyze(w http.ResponseWriter, r *http.Request) {
	_, tasks, scorer, ok := h.parse(w, r)
	if !ok {
		return
	}

	start := time.Now()
	ranked := scorer.Rank(tasks)
	analysisDuration.Observe(time.Since(start).Seconds())
	analyzeRequests.WithLabelValues(scorer.Strategy()).Inc()

	h.publishCompleted(scorer.Strategy(), ranked)

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"tasks":       ranked,
		"strategy":    scorer.Strategy(),
		"total_tasks": len(ranked),
	})
}

func (h *AnalyzeHandler) Suggest(w http.ResponseWriter, r *http.Request) {
	req, tasks, scorer, ok := h.parse(w, r)
	if !ok {
		return
	}

	limit := req.Limit
	if limit <= 0 {
		limit = h.suggestionLimit
	}

	start := time.Now()
	suggestions := scorer.Suggest(tasks, limit)
	analysisDuration.Observe(time.Since(start).Seconds())
	suggestRequests.WithLabelValues(scorer.Strategy()).Inc()

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"suggestions":  suggestions,
		"strategy":     scorer.Strategy(),
		"generated_at": time.Now().UTC(),
	})
}

var strategyDescriptions = map[string]string{
	scoring.StrategySmartBalance:   "Balances urgency, importance, effort, and dependencies",
	scoring.StrategyFastestWins:    "Favours quick tasks to build momentum",
	scoring.StrategyHighImpact:     "Favours the most important work regardless of effort",
	scoring.StrategyDeadlineDriven: "Favours tasks with the nearest deadlines",
}

type StrategyInfo struct {
	Name        string            `json:"name"`
	Description string            `json:"description"`
	Weights     scoring.WeightSet `json:"weights"`
}

func (h *AnalyzeHandler) Strategies(w http.ResponseWriter, r *http.Request) {
	infos := make([]StrategyInfo, 0, len(scoring.StrategyNames()))
	for _, name := range scoring.StrategyNames() {
		weights, _ := scoring.WeightsFor(name)
		infos = append(infos, StrategyInfo{
			Name:        name,
			Description: strategyDescriptions[name],
			Weights:     weights,
		})
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"strategies": infos,
		"default":    h.defaultStrategy,
	})
}

func (h *AnalyzeHandler) publishCompleted(strategy string, ranked []scoring.RankedTask) {
	if h.events == nil {
		return
	}
	ev := events.AnalysisCompletedEvent{
		EventID:    events.NewEventID(),
		Strategy:   strategy,
		TotalTasks: len(ranked),
		Timestamp:  time.Now().UTC(),
	}
	if len(ranked) > 0 {
		ev.TopScore = ranked[0].Result.PriorityScore
	}
	_ = h.events.Publish(events.SubjectAnalysisCompleted, ev)
}
