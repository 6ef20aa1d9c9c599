package events

import "strconv"

const (
	SubjectAnalysisCompleted = "triage.analysis.completed"

	StreamName   = "TRIAGE_EVENTS"
	StreamMaxAge = "720h" // 30 days
)

func SubjectTaskCreated(taskID int64) string { return "triage.task." + itoa(taskID) + ".created" }
func SubjectTaskUpdated(taskID int64) string { return "triage.task." + itoa(taskID) + ".updated" }
func SubjectTaskDeleted(taskID int64) string { return "triage.task." + itoa(taskID) + ".deleted" }

func itoa(id int64) string { return strconv.FormatInt(id, 10) }
