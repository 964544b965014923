package workflow

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/deploymenttheory/go-shortcuts-doc/internal/common/errors"
)

const builtinPrefix = "is.workflow.actions."

// ValidateIdentifier checks that id looks like a reverse-DNS action name
func ValidateIdentifier(id string) error {
	parts := strings.Split(id, ".")
	if len(parts) < 3 {
		return fmt.Errorf("%w: %q", errors.ErrInvalidIdentifierFormat, id)
	}
	for _, p := range parts {
		if p == "" {
			return fmt.Errorf("%w: %q", errors.ErrInvalidIdentifierFormat, id)
		}
	}
	return nil
}

// DisplayName formats an action identifier for documentation:
//
//	is.workflow.actions.text             -> Text
//	is.workflow.actions.gettext.html     -> Gettext Html
//	com.apple.shortcuts.GetURLAction     -> Get URL
func DisplayName(id string) (string, error) {
	if err := ValidateIdentifier(id); err != nil {
		return "", err
	}

	var words []string
	if strings.HasPrefix(id, builtinPrefix) {
		for _, part := range strings.Split(strings.TrimPrefix(id, builtinPrefix), ".") {
			words = append(words, splitWords(part)...)
		}
	} else {
		last := id[strings.LastIndex(id, ".")+1:]
		if trimmed := strings.TrimSuffix(last, "Action"); trimmed != "" {
			last = trimmed
		}
		words = splitWords(last)
	}

	for i, w := range words {
		words[i] = titleWord(w)
	}
	return strings.Join(words, " "), nil
}

// MustDisplayName is DisplayName falling back to the raw identifier
func MustDisplayName(id string) string {
	name, err := DisplayName(id)
	if err != nil {
		return id
	}
	return name
}

// splitWords splits on '_' / '-' and camel-case boundaries, keeping
// acronyms together ("GetURLAction" -> Get, URL, Action).
func splitWords(s string) []string {
	var words []string
	runes := []rune(s)
	start := 0
	flush := func(end int) {
		if end > start {
			words = append(words, string(runes[start:end]))
		}
	}

	for i := 0; i < len(runes); i++ {
		r := runes[i]
		if r == '_' || r == '-' || unicode.IsSpace(r) {
			flush(i)
			start = i + 1
			continue
		}
		if i == start || !unicode.IsUpper(r) {
			continue
		}
		prev := runes[i-1]
		nextLower := i+1 < len(runes) && unicode.IsLower(runes[i+1])
		if unicode.IsLower(prev) || unicode.IsDigit(prev) || (unicode.IsUpper(prev) && nextLower) {
			flush(i)
			start = i
		}
	}
	flush(len(runes))
	return words
}

func titleWord(w string) string {
	runes := []rune(w)
	allUpper := true
	for _, r := range runes {
		if unicode.IsLower(r) {
			allUpper = false
			break
		}
	}
	if allUpper && len(runes) > 1 {
		return w
	}
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}
