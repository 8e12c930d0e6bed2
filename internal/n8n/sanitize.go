package n8n

// The n8n API rejects or silently ignores writes that carry server-owned
// fields. Stripping them lives here, on the gateway, so no individual tool
// handler has to remember the rule.

var createStripFields = []string{"active", "id", "createdAt", "updatedAt", "tags"}

var updateStripFields = []string{"id", "createdAt", "updatedAt", "tags"}

// defaultWorkflowSettings is the settings block n8n expects on creation when
// the caller supplied none.
func defaultWorkflowSettings() map[string]any {
	return map[string]any{
		"saveExecutionProgress":    true,
		"saveManualExecutions":     true,
		"saveDataErrorExecution":   "all",
		"saveDataSuccessExecution": "all",
		"executionTimeout":         3600,
		"timezone":                 "UTC",
	}
}

// sanitizeForCreate returns a copy of payload with read-only fields removed
// and a default settings block injected when settings is absent. The active
// flag is stripped too; activation happens through a dedicated endpoint.
func sanitizeForCreate(payload map[string]any) map[string]any {
	out := stripFields(payload, createStripFields)
	if _, ok := out["settings"]; !ok {
		out["settings"] = defaultWorkflowSettings()
	}
	return out
}

// sanitizeForUpdate returns a copy of payload with read-only fields removed.
// Unlike create, active stays: it is a legitimate mutable field on update.
func sanitizeForUpdate(payload map[string]any) map[string]any {
	return stripFields(payload, updateStripFields)
}

func stripFields(payload map[string]any, fields []string) map[string]any {
	out := make(map[string]any, len(payload))
	for k, v := range payload {
		out[k] = v
	}
	for _, f := range fields {
		delete(out, f)
	}
	return out
}
