// Package postprocess extracts machine-readable JSON from raw judge output.
//
// Judge backends are asked for bare JSON but frequently wrap it in Markdown
// code fences or prepend reasoning blocks. Interpreter output is never run
// through this package: translations are used verbatim.
package postprocess

import (
	"regexp"
	"strings"
)

// thinkingBlockRe matches complete <thinking>…</thinking> style blocks.
// Each tag variant is listed explicitly because Go's RE2 engine does not
// support backreferences.
var thinkingBlockRe = regexp.MustCompile(
	`(?is)<thinking>.*?</thinking>|<think>.*?</think>|<reasoning>.*?</reasoning>`,
)

// codeFenceRe matches a fenced code block, with or without a language tag.
var codeFenceRe = regexp.MustCompile("(?s)```(?:[a-zA-Z]*)\\s*\\n?(.*?)```")

// ExtractJSON returns the JSON payload embedded in text: reasoning blocks
// are dropped, a surrounding code fence is unwrapped, and the first balanced
// top-level object is isolated. When no object can be found the cleaned
// text is returned as-is and the caller's JSON parser reports the failure.
func ExtractJSON(text string) string {
	text = strings.TrimSpace(thinkingBlockRe.ReplaceAllString(text, ""))

	if m := codeFenceRe.FindStringSubmatch(text); m != nil {
		text = strings.TrimSpace(m[1])
	}

	if obj := firstObject(text); obj != "" {
		return obj
	}
	return text
}

// firstObject returns the first balanced {...} region of text, tracking
// string literals so braces inside values do not unbalance the scan.
func firstObject(text string) string {
	start := strings.IndexByte(text, '{')
	if start < 0 {
		return ""
	}

	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(text); i++ {
		c := text[i]
		switch {
		case escaped:
			escaped = false
		case c == '\\' && inString:
			escaped = true
		case c == '"':
			inString = !inString
		case inString:
		case c == '{':
			depth++
		case c == '}':
			depth--
			if depth == 0 {
				return text[start : i+1]
			}
		}
	}
	return ""
}
