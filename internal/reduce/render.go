package reduce

import (
	"fmt"
	"math"
	"net/url"
	"reflect"
	"strconv"
	"time"

	"github.com/cwbudde/funcity/internal/value"
)

// RenderText converts a value to its text rendering for string output,
// following the value-concatenation rules: undefined and null render to
// placeholder text, strings pass through, numbers use their textual form,
// callables get a per-run id, opaque host values get a kind-specific
// rendering (date-like to ISO-8601, URL-like to their origin, error-like to
// "name: message"), and everything else (lists, records) falls back to
// JSON.
func (r *Reducer) RenderText(v value.Value) string {
	switch v.Kind() {
	case value.KindUndefined:
		return "(undefined)"
	case value.KindNull:
		return "(null)"
	case value.KindString:
		return v.Str()
	case value.KindBool:
		if v.Bool() {
			return "true"
		}
		return "false"
	case value.KindInt:
		return strconv.FormatInt(v.Int(), 10)
	case value.KindFloat:
		return formatNumber(v.Float())
	case value.KindCallable:
		id := r.nextCallableID()
		if name := v.Callable().Name; name != "" {
			return fmt.Sprintf("fun<%s:#%d>", name, id)
		}
		return fmt.Sprintf("fun<#%d>", id)
	case value.KindOpaque:
		return renderOpaque(v.Opaque())
	default:
		b, err := v.MarshalJSON()
		if err != nil {
			return "(undefined)"
		}
		return string(b)
	}
}

// renderOpaque renders a host-supplied opaque value by its concrete type:
// a date-like value as ISO-8601, a URL-like value as its origin (scheme
// plus host, no path/query), an error-like value as "name: message". Any
// other opaque type falls back to its fmt default formatting.
func renderOpaque(v any) string {
	switch t := v.(type) {
	case time.Time:
		return t.Format(time.RFC3339)
	case *time.Time:
		if t == nil {
			return "(null)"
		}
		return t.Format(time.RFC3339)
	case *url.URL:
		if t == nil {
			return "(null)"
		}
		return t.Scheme + "://" + t.Host
	case error:
		return errorName(t) + ": " + t.Error()
	default:
		return fmt.Sprintf("%v", t)
	}
}

// errorName reports the unqualified type name of an error value (e.g.
// "RangeError" for a *RangeError), or "error" for the plain stdlib errors
// built with errors.New/fmt.Errorf, which carry no distinguishing type.
func errorName(err error) string {
	t := reflect.TypeOf(err)
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	name := t.Name()
	if name == "" || name == "errorString" || name == "wrapError" {
		return "error"
	}
	return name
}

// formatNumber renders a float the way a numeric literal should read back:
// integral values print without a trailing ".0", others use the shortest
// round-tripping decimal form.
func formatNumber(f float64) string {
	if math.Trunc(f) == f && !math.IsInf(f, 0) && math.Abs(f) < 1e15 {
		return strconv.FormatInt(int64(f), 10)
	}
	return strconv.FormatFloat(f, 'g', -1, 64)
}
