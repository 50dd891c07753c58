package sqlite

import "strings"

// splitStatements cuts SQL text at top-level semicolons. Semicolons inside
// quoted strings, quoted identifiers, comments and CREATE TRIGGER bodies do
// not split. Pieces holding nothing but whitespace and comments are
// dropped; the rest are returned trimmed, comments included.
func splitStatements(sql string) []string {
	var (
		out      []string
		start    int
		content  bool
		words    []string
		lastWord string
	)

	for i := 0; i < len(sql); {
		c := sql[i]
		switch {
		case c == '-' && i+1 < len(sql) && sql[i+1] == '-':
			if j := strings.IndexByte(sql[i:], '\n'); j >= 0 {
				i += j + 1
			} else {
				i = len(sql)
			}

		case c == '/' && i+1 < len(sql) && sql[i+1] == '*':
			if j := strings.Index(sql[i+2:], "*/"); j >= 0 {
				i += j + 4
			} else {
				i = len(sql)
			}

		case c == '\'' || c == '"' || c == '`' || c == '[':
			// A doubled quote closes and reopens, which lands in the same place.
			end := c
			if c == '[' {
				end = ']'
			}
			if j := strings.IndexByte(sql[i+1:], end); j >= 0 {
				i += j + 2
			} else {
				i = len(sql)
			}
			content = true
			lastWord = ""

		case isWordByte(c):
			j := i
			for j < len(sql) && isWordByte(sql[j]) {
				j++
			}
			lastWord = strings.ToUpper(sql[i:j])
			if len(words) < 3 {
				words = append(words, lastWord)
			}
			content = true
			i = j

		case c == ';':
			if isCreateTrigger(words) && lastWord != "END" {
				lastWord = ""
				i++
				continue
			}
			if content {
				out = append(out, strings.TrimSpace(sql[start:i]))
			}
			start = i + 1
			content = false
			words = words[:0]
			lastWord = ""
			i++

		default:
			if c != ' ' && c != '\t' && c != '\n' && c != '\r' && c != '\f' {
				content = true
				lastWord = ""
			}
			i++
		}
	}

	if content {
		out = append(out, strings.TrimSpace(sql[start:]))
	}
	return out
}

func isWordByte(c byte) bool {
	return c == '_' || c >= '0' && c <= '9' || c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z'
}

func isCreateTrigger(words []string) bool {
	if len(words) < 2 || words[0] != "CREATE" {
		return false
	}
	if words[1] == "TRIGGER" {
		return true
	}
	return len(words) > 2 && (words[1] == "TEMP" || words[1] == "TEMPORARY") && words[2] == "TRIGGER"
}
