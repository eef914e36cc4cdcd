package credcheck

import (
	"bufio"
	"strings"
)

// ParseEnvFile parses KEY=VALUE lines from .env file content. Blank
// lines and # comments are skipped; surrounding single or double quotes
// around values are removed. Malformed lines are ignored.
func ParseEnvFile(content string) map[string]string {
	entries := make(map[string]string)

	scanner := bufio.NewScanner(strings.NewReader(content))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		line = strings.TrimPrefix(line, "export ")

		key, value, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}
		key = strings.TrimSpace(key)
		if key == "" {
			continue
		}

		value = strings.TrimSpace(value)
		if len(value) >= 2 {
			if (value[0] == '"' && value[len(value)-1] == '"') ||
				(value[0] == '\'' && value[len(value)-1] == '\'') {
				value = value[1 : len(value)-1]
			}
		}
		entries[key] = value
	}

	return entries
}
