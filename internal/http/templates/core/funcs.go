package core

import (
	"bytes"
	"errors"
	"fmt"
	"html/template"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-json"

	domainauth "github.com/mcsa-hvr/circuit1021/internal/domain/auth"
	"github.com/mcsa-hvr/circuit1021/internal/domain/model"
	"github.com/mcsa-hvr/circuit1021/internal/http/uiutil"
)

// Deps holds optional dependencies for constructing the core template func map.
type Deps struct {
	Template           **template.Template
	ContentTemplateFor func(string) string
	Now                func() time.Time
}

// Funcs returns a template.FuncMap containing helpers that are broadly useful across templates.
func Funcs(deps Deps) template.FuncMap {
	now := deps.Now
	if now == nil {
		now = time.Now
	}
	funcs := template.FuncMap{
		"sectionTmpl":  deps.ContentTemplateFor,
		"friendlyTime": friendlyTime,
		"relativeTime": func(ts any) string { return relativeTime(ts, now()) },
		"dateOnly":     dateOnly,
		"rand":         model.FormatRand,
		"amount":       model.FormatAmount,
		"formatNumber": FormatNumber,
		"societyName":  societyName,
		"orgName":      func(o model.Organization) string { return o.Name() },
		"roleLabel":    func(r domainauth.Role) string { return r.Label() },
		"deref":        deref,
		"fieldError":   fieldError,
		"add":          func(a, b int) int { return a + b },
		"truncateText": TruncateText,
		"dict":         dict,
	}

	addRenderFuncs(funcs, deps)
	return funcs
}

func addRenderFuncs(funcs template.FuncMap, deps Deps) {
	funcs["renderSection"] = func(page string, data any) (template.HTML, error) {
		if deps.Template == nil || *deps.Template == nil {
			return "", errors.New("template not initialized")
		}
		var buf bytes.Buffer
		if err := (*deps.Template).ExecuteTemplate(&buf, deps.ContentTemplateFor(page), data); err != nil {
			return "", err
		}
		// #nosec G203 - rendered by our own html/template set; values were escaped during execution.
		return template.HTML(buf.String()), nil
	}

	funcs["toJSON"] = func(v any) (string, error) {
		b, err := json.Marshal(v)
		if err != nil {
			return "", err
		}
		return string(b), nil
	}
}

func asTime(ts any) time.Time {
	switch v := ts.(type) {
	case time.Time:
		return v
	case *time.Time:
		if v != nil {
			return *v
		}
	case model.Timestamp:
		return v.Time
	case *model.Timestamp:
		if v != nil {
			return v.Time
		}
	}
	return time.Time{}
}

func friendlyTime(ts any) string {
	return uiutil.FormatFriendlyDateTime(asTime(ts))
}

func relativeTime(ts any, now time.Time) string {
	t := asTime(ts)
	if t.IsZero() {
		return ""
	}
	return uiutil.FriendlyRelativeTime(t, now)
}

func dateOnly(ts any) string {
	return uiutil.FormatFriendlyDate(asTime(ts))
}

// societyName accepts a Society or its raw key.
func societyName(v any) string {
	switch s := v.(type) {
	case model.Society:
		return s.Name()
	case string:
		return model.Society(s).Name()
	default:
		return fmt.Sprint(v)
	}
}

// dict builds a map from alternating keys and values for passing several
// arguments to a nested template.
func dict(pairs ...any) (map[string]any, error) {
	if len(pairs)%2 != 0 {
		return nil, errors.New("dict expects an even number of arguments")
	}
	m := make(map[string]any, len(pairs)/2)
	for i := 0; i < len(pairs); i += 2 {
		key, ok := pairs[i].(string)
		if !ok {
			return nil, fmt.Errorf("dict key %d is %T, not string", i/2, pairs[i])
		}
		m[key] = pairs[i+1]
	}
	return m, nil
}

func deref(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}

// fieldError looks up a message in a form's error map. Missing maps are fine.
func fieldError(errs any, field string) string {
	switch m := errs.(type) {
	case map[string]string:
		return m[field]
	case model.FieldErrors:
		return m[field]
	default:
		return ""
	}
}

// FormatNumber formats an integer with comma separators for thousands.
func FormatNumber(v any) string {
	var n int64
	switch x := v.(type) {
	case int:
		n = int64(x)
	case int32:
		n = int64(x)
	case int64:
		n = x
	default:
		return fmt.Sprint(v)
	}
	neg := n < 0
	if neg {
		n = -n
	}
	s := strconv.FormatInt(n, 10)
	var b strings.Builder
	if neg {
		b.WriteByte('-')
	}
	lead := len(s) % 3
	if lead == 0 {
		lead = 3
	}
	b.WriteString(s[:lead])
	for i := lead; i < len(s); i += 3 {
		b.WriteByte(',')
		b.WriteString(s[i : i+3])
	}
	return b.String()
}

// TruncateText truncates a string to a maximum number of runes, adding an ellipsis.
func TruncateText(s string, maxLen int) string {
	if maxLen <= 0 {
		return s
	}
	return uiutil.TruncateWithEllipsis(s, maxLen)
}
