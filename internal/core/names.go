package core

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// nameWords splits a basename on every rune that is neither a letter nor a digit.
func nameWords(base string) []string {
	return strings.FieldsFunc(base, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}

// className returns the PascalCase identifier for base: "new file" → "NewFile".
func className(base string) string {
	// A Caser is stateful, so each call gets its own.
	title := cases.Title(language.Und, cases.NoLower)
	var b strings.Builder
	for _, w := range nameWords(base) {
		b.WriteString(title.String(w))
	}
	return b.String()
}

// instanceName returns the camelCase identifier for base: "new file" → "newFile".
func instanceName(base string) string {
	c := className(base)
	if c == "" {
		return ""
	}
	r, size := utf8.DecodeRuneInString(c)
	return string(unicode.ToLower(r)) + c[size:]
}

// displayName returns the words of base separated by single spaces: "new-file" → "new file".
func displayName(base string) string {
	return strings.Join(nameWords(base), " ")
}

var reservedWords = map[string]bool{
	"break": true, "case": true, "catch": true, "class": true, "const": true,
	"continue": true, "debugger": true, "default": true, "delete": true, "do": true,
	"else": true, "export": true, "extends": true, "false": true, "finally": true,
	"for": true, "function": true, "if": true, "import": true, "in": true,
	"instanceof": true, "new": true, "null": true, "return": true, "super": true,
	"switch": true, "this": true, "throw": true, "true": true, "try": true,
	"typeof": true, "var": true, "void": true, "while": true, "with": true,
	"yield": true, "let": true, "static": true, "enum": true, "await": true,
}

// validateIdentifier checks that name can be used as a JavaScript identifier.
func validateIdentifier(name string) error {
	if name == "" {
		return fmt.Errorf("empty identifier")
	}
	if reservedWords[name] {
		return fmt.Errorf("reserved word used as identifier: %s", name)
	}
	for i, r := range name {
		switch {
		case r == '_' || r == '$' || unicode.IsLetter(r):
		case i > 0 && unicode.IsDigit(r):
		default:
			return fmt.Errorf("invalid identifier: %s", name)
		}
	}
	return nil
}
