package service

import (
	"time"

	"github.com/google/uuid"

	"kanban-api/internal/domain"
	"kanban-api/internal/dto"
)

// auditEvent is one log entry derived from a task patch
type auditEvent struct {
	Action  string
	Details map[string]interface{}
}

// diffTask compares a task's pre-image with an incoming patch and
// derives the audit trail. Each condition fires independently, so one
// patch can yield several events. destColumnTitle must be the resolved
// title of the destination column when the patch moves the task.
//
// Supplying tagIds always yields an "updated tags" event, even when
// the resulting set is identical: the client asked for a replacement
// and the replacement happened. Content edits are not logged.
func diffTask(old *domain.Task, req *dto.UpdateTaskRequest, destColumnTitle string) []auditEvent {
	var events []auditEvent

	if req.ColumnID != nil && *req.ColumnID != old.ColumnID {
		events = append(events, auditEvent{
			Action: "moved task to list: " + destColumnTitle,
			Details: map[string]interface{}{
				"fromColumnId": old.ColumnID,
				"toColumnId":   *req.ColumnID,
			},
		})
	}

	if req.Priority != nil && domain.TaskPriority(*req.Priority) != old.Priority {
		events = append(events, auditEvent{
			Action: "changed priority to: " + *req.Priority,
			Details: map[string]interface{}{
				"from": string(old.Priority),
				"to":   *req.Priority,
			},
		})
	}

	if req.DueDate.Set && !equalTimePtr(old.DueDate, req.DueDate.Value) {
		events = append(events, auditEvent{
			Action: "updated due date",
			Details: map[string]interface{}{
				"from": formatTimePtr(old.DueDate),
				"to":   formatTimePtr(req.DueDate.Value),
			},
		})
	}

	if req.TagIDs != nil {
		events = append(events, auditEvent{
			Action: "updated tags",
			Details: map[string]interface{}{
				"tagIds": idStrings(dedupeIDs(*req.TagIDs)),
			},
		})
	}

	return events
}

// equalTimePtr compares by normalized timestamp, not representation
func equalTimePtr(a, b *time.Time) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.Equal(*b)
}

func formatTimePtr(t *time.Time) interface{} {
	if t == nil {
		return nil
	}
	return t.UTC().Format(time.RFC3339)
}

func dedupeIDs(ids []uuid.UUID) []uuid.UUID {
	seen := make(map[uuid.UUID]struct{}, len(ids))
	out := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

func idStrings(ids []uuid.UUID) []string {
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = id.String()
	}
	return out
}
