package format

import (
	"fmt"
	"regexp"
)

// Resource URIs exposed by the server, all under the n8n:// scheme.
const (
	WorkflowsResourceURI      = "n8n://workflows"
	ExecutionStatsResourceURI = "n8n://execution-stats"
	WorkflowTemplateURI       = "n8n://workflows/{id}"
	ExecutionTemplateURI      = "n8n://executions/{id}"
)

var (
	workflowURIPattern  = regexp.MustCompile(`^n8n://workflows/([^/]+)$`)
	executionURIPattern = regexp.MustCompile(`^n8n://executions/([^/]+)$`)
)

// ResourceURI builds an n8n:// URI. With an id the resource type is the
// singular form and gets pluralized ("workflow", "1" -> n8n://workflows/1);
// without one the type is used verbatim ("workflows" -> n8n://workflows).
func ResourceURI(resourceType string, id ...string) string {
	if len(id) > 0 && id[0] != "" {
		return fmt.Sprintf("n8n://%ss/%s", resourceType, id[0])
	}
	return "n8n://" + resourceType
}

// ExtractWorkflowID pulls the workflow id out of an n8n://workflows/{id}
// URI. The id segment must be non-empty and contain no further slash.
func ExtractWorkflowID(uri string) (string, bool) {
	m := workflowURIPattern.FindStringSubmatch(uri)
	if m == nil {
		return "", false
	}
	return m[1], true
}

// ExtractExecutionID pulls the execution id out of an n8n://executions/{id}
// URI.
func ExtractExecutionID(uri string) (string, bool) {
	m := executionURIPattern.FindStringSubmatch(uri)
	if m == nil {
		return "", false
	}
	return m[1], true
}
