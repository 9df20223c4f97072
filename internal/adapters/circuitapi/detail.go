package circuitapi

import (
	"fmt"
	"strings"

	"github.com/goccy/go-json"
	jmespath "github.com/jmespath-community/go-jmespath"
)

const (
	detailExpr       = "detail"
	detailIssuesExpr = "detail[*].{field: loc[-1], msg: msg}"
)

// extractDetail returns the user-facing message of a FastAPI error body.
// A string detail is returned as is; a validation list becomes
// "field: msg; field: msg". Anything else yields "".
func extractDetail(body []byte) string {
	if len(body) == 0 {
		return ""
	}
	var doc any
	if err := json.Unmarshal(body, &doc); err != nil {
		return ""
	}

	detail, err := jmespath.Search(detailExpr, doc)
	if err != nil || detail == nil {
		return ""
	}
	if s, ok := detail.(string); ok {
		return strings.TrimSpace(s)
	}

	issues, err := jmespath.Search(detailIssuesExpr, doc)
	if err != nil {
		return ""
	}
	list, ok := issues.([]any)
	if !ok {
		return ""
	}
	parts := make([]string, 0, len(list))
	for _, item := range list {
		m, ok := item.(map[string]any)
		if !ok {
			continue
		}
		msg, _ := m["msg"].(string)
		if msg == "" {
			continue
		}
		if field := m["field"]; field != nil && field != "body" {
			msg = fmt.Sprintf("%v: %s", field, msg)
		}
		parts = append(parts, msg)
	}
	return strings.Join(parts, "; ")
}
