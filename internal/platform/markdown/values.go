package markdown

import (
	"fmt"
	"strconv"
	"strings"
)

// AsString and AsFloat coerce decoded frontmatter values,
// which yaml may hand back as any scalar type.

func AsString(v any) string {
	if v == nil {
		return ""
	}
	switch x := v.(type) {
	case string:
		return x
	default:
		return fmt.Sprint(v)
	}
}

func AsFloat(v any) float64 {
	switch x := v.(type) {
	case int:
		return float64(x)
	case int64:
		return float64(x)
	case float64:
		return x
	case float32:
		return float64(x)
	case string:
		out, _ := strconv.ParseFloat(strings.TrimSpace(x), 64)
		return out
	default:
		return 0
	}
}
