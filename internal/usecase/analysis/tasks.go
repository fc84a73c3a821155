package analysis

import (
	"strings"

	"github.com/johnquangdev/meeting-insights/internal/domain/entities"
)

// Task alias tables. First present key wins, in this order.
var (
	taskTextKeys      = []string{"task", "item", "description"}
	taskOwnerKeys     = []string{"owner", "assignee"}
	taskContainerKeys = []string{"next_steps", "nextSteps"}
)

// ParseTasks reduces a value of unknown shape to the canonical ordered task
// list. Elements whose task text is blank after parsing are dropped.
func ParseTasks(v any) []entities.TaskItem {
	items := parseTasks(v, false)
	out := make([]entities.TaskItem, 0, len(items))
	for _, item := range items {
		item.Task = strings.TrimSpace(item.Task)
		if item.Task == "" {
			continue
		}
		out = append(out, item)
	}
	return out
}

func parseTasks(v any, reparsed bool) []entities.TaskItem {
	if v == nil {
		return nil
	}

	if _, ok := allStrings(v); ok && !reparsed {
		if parsed, ok := TryParseJSONFromLines(v); ok {
			return parseTasks(parsed, true)
		}
	}

	if m, ok := asMap(v); ok {
		if inner, ok := firstValue(m, taskContainerKeys...); ok {
			return parseTasks(inner, reparsed)
		}
		if item, ok := taskFromMap(m); ok {
			return []entities.TaskItem{item}
		}
		return nil
	}

	if s, ok := v.(string); ok {
		if !reparsed {
			if parsed, ok := TryParseJSON(s); ok {
				return parseTasks(parsed, true)
			}
		}
		var out []entities.TaskItem
		for _, line := range splitLines(StripMarkdown(s)) {
			out = append(out, entities.TaskItem{Task: line})
		}
		return out
	}

	if items, ok := asSlice(v); ok {
		var out []entities.TaskItem
		for _, el := range items {
			if item, ok := taskFromAny(el, reparsed); ok {
				out = append(out, item)
			}
		}
		return out
	}

	return nil
}

// taskFromAny normalizes one list element: structured maps directly, string
// elements through a JSON parse attempt and then the regex last resort.
func taskFromAny(v any, reparsed bool) (entities.TaskItem, bool) {
	switch t := v.(type) {
	case map[string]any:
		return taskFromMap(t)
	case string:
		if !reparsed {
			if parsed, ok := TryParseJSON(t); ok {
				if m, ok := asMap(parsed); ok {
					return taskFromMap(m)
				}
			}
		}
		if text := regexField(t, taskTextKeys...); text != "" {
			return entities.TaskItem{Task: text}, true
		}
		return entities.TaskItem{Task: strings.TrimSpace(t)}, true
	default:
		return entities.TaskItem{Task: strings.TrimSpace(stringify(v))}, true
	}
}

func taskFromMap(m map[string]any) (entities.TaskItem, bool) {
	text := firstString(m, taskTextKeys...)
	if text == "" {
		return entities.TaskItem{}, false
	}
	item := entities.TaskItem{
		ID:        firstString(m, "id"),
		Task:      text,
		Owner:     firstString(m, taskOwnerKeys...),
		Rationale: firstString(m, "rationale"),
		Priority:  firstString(m, "priority"),
		Completed: firstBool(m, "completed"),
	}
	if refs, ok := m["references"]; ok {
		item.References = stringList(refs)
	}
	return item, true
}
