package utils

import (
	"encoding/json"
	"fmt"
	"strings"
)

// ExtractResultJSON locates the result object in a process's stdout and
// decodes it into target. The object is taken from the first '{' through the
// last '}'; if that span does not decode, the first balanced object is tried.
func ExtractResultJSON(output string, target interface{}) error {
	if strings.TrimSpace(output) == "" {
		return fmt.Errorf("empty output")
	}

	start := strings.Index(output, "{")
	end := strings.LastIndex(output, "}")
	if start < 0 || end < start {
		return fmt.Errorf("no JSON object in output: %s", truncateString(output, 100))
	}

	if err := json.Unmarshal([]byte(output[start:end+1]), target); err == nil {
		return nil
	}

	if extracted := extractBalancedBraces(output[start:], '{', '}'); extracted != "" {
		if err := json.Unmarshal([]byte(extracted), target); err == nil {
			return nil
		}
	}

	return fmt.Errorf("failed to parse JSON from output: %s", truncateString(output, 100))
}

// extractBalancedBraces extracts content with balanced braces
func extractBalancedBraces(input string, open, close rune) string {
	if len(input) == 0 {
		return ""
	}

	depth := 0
	inString := false
	escape := false
	start := 0

	for i, ch := range input {
		if escape {
			escape = false
			continue
		}

		if ch == '\\' {
			escape = true
			continue
		}

		if ch == '"' {
			inString = !inString
			continue
		}

		if inString {
			continue
		}

		if ch == open {
			if depth == 0 {
				start = i
			}
			depth++
		} else if ch == close {
			depth--
			if depth == 0 {
				return input[start : i+1]
			}
		}
	}

	return ""
}

// truncateString truncates a string to maxLen characters
func truncateString(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
