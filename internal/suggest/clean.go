package suggest

import "strings"

// Clean strips model formatting quirks from a generated command: surrounding
// whitespace, at most one fenced code block (with optional language tag) and
// at most one pair of inline backticks. It is deliberately not a markdown
// parser; nested or multiple blocks are out of scope.
func Clean(s string) string {
	s = strings.TrimSpace(s)

	if strings.HasPrefix(s, "```") && strings.HasSuffix(s, "```") && len(s) > 6 {
		body := s[3 : len(s)-3]
		// Drop the language tag on the opening fence, if any.
		if i := strings.IndexByte(body, '\n'); i >= 0 && isLangTag(strings.TrimSpace(body[:i])) {
			body = body[i+1:]
		}
		s = strings.TrimSpace(body)
	}

	if len(s) >= 2 && s[0] == '`' && s[len(s)-1] == '`' && !strings.HasPrefix(s, "```") {
		s = strings.TrimSpace(s[1 : len(s)-1])
	}

	return s
}

// isLangTag reports whether s looks like a fence language tag ("powershell",
// "sh", "bash", ...). An empty first line is a bare fence and also qualifies.
func isLangTag(s string) bool {
	if s == "" {
		return true
	}
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		case r == '_' || r == '-' || r == '+':
		default:
			return false
		}
	}
	return true
}
