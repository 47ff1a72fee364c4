package common

import (
	"strings"
)

// ParseCommand splits "<prefix>name arg1 arg2" into a lower-cased name and
// its whitespace-separated arguments. ok is false when content does not
// start with the prefix or names no command.
func ParseCommand(content, prefix string) (name string, args []string, ok bool) {
	if prefix == "" || !strings.HasPrefix(content, prefix) {
		return "", nil, false
	}
	fields := strings.Fields(strings.TrimPrefix(content, prefix))
	if len(fields) == 0 {
		return "", nil, false
	}
	return strings.ToLower(fields[0]), fields[1:], true
}

// SplitAtKeyword finds the first argument (after the first one) that equals
// one of keywords, case-insensitively, and splits around it. It is used by
// commands whose leading argument is a multi-word name, e.g.
// "edititem Holy Sword reply A shiny blade".
func SplitAtKeyword(args []string, keywords []string) (head string, keyword string, tail string, ok bool) {
	known := make(map[string]bool, len(keywords))
	for _, k := range keywords {
		known[strings.ToLower(k)] = true
	}
	for i := 1; i < len(args); i++ {
		if known[strings.ToLower(args[i])] {
			return strings.Join(args[:i], " "), strings.ToLower(args[i]), strings.Join(args[i+1:], " "), true
		}
	}
	return "", "", "", false
}
