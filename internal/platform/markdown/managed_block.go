package markdown

import "strings"

// ReplaceManagedBlock rewrites the text between startMarker and endMarker,
// appending a new block when none exists. A start marker without a matching
// end marker is treated as running to the end of the body.
func ReplaceManagedBlock(body, startMarker, endMarker, generated string) string {
	block := startMarker + "\n" + strings.TrimRight(generated, "\n") + "\n" + endMarker

	if start := strings.Index(body, startMarker); start >= 0 {
		tail := body[start+len(startMarker):]
		if end := strings.Index(tail, endMarker); end >= 0 {
			return body[:start] + block + tail[end+len(endMarker):]
		}
		return body[:start] + block + "\n"
	}

	switch {
	case strings.TrimSpace(body) == "":
		return block + "\n"
	case strings.HasSuffix(body, "\n"):
		return body + "\n" + block + "\n"
	default:
		return body + "\n\n" + block + "\n"
	}
}
