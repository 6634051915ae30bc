// Package langdetect sniffs file content to decide whether it is XML-like
// markup. It uses go-enry for extension, shebang and classifier lookups and a
// handful of root-element patterns for the common markup dialects.
package langdetect

import (
	"bytes"
	"strings"

	"github.com/go-enry/go-enry/v2"
)

// Language names returned by Detect.
const (
	LangXML    = "xml"
	LangHTML   = "html"
	LangSVG    = "svg"
	LangXSLT   = "xslt"
	LangPlist  = "xml property list"
	LangText   = "text"
	LangBinary = "binary"
	langBash   = "bash"
)

// SniffSize is how many leading bytes of a file Detect needs to decide.
const SniffSize = 8 << 10

// utf8BOM is stripped before pattern matching.
var utf8BOM = []byte("\xEF\xBB\xBF") //nolint:gochecknoglobals // Read-only constant bytes.

// classifierCandidates restricts the enry classifier to languages a
// markup-looking file is plausibly confused with.
//
//nolint:gochecknoglobals // Read-only lookup table.
var classifierCandidates = []string{
	"XML", "HTML", "SVG", "XSLT", "XML Property List",
	"JSON", "YAML", "Markdown", "Shell", "INI",
}

// markupLanguages are the languages the nomxml parser can read.
//
//nolint:gochecknoglobals // Read-only lookup table.
var markupLanguages = map[string]bool{
	LangXML:   true,
	LangHTML:  true,
	LangSVG:   true,
	LangXSLT:  true,
	LangPlist: true,
	"xhtml":   true,
}

// Detect returns the detected language for file content.
// Returns "text" if detection fails or confidence is low.
func Detect(content []byte) string {
	if len(bytes.TrimSpace(content)) == 0 {
		return LangText
	}

	if enry.IsBinary(content) {
		return LangBinary
	}

	// Shebang first: a script that happens to print markup is still a script.
	if lang, safe := enry.GetLanguageByShebang(content); safe {
		return normalize(lang)
	}

	if lang := detectByPattern(content); lang != "" {
		return lang
	}

	if lang, safe := enry.GetLanguageByClassifier(content, classifierCandidates); safe && lang != "" {
		return normalize(lang)
	}

	return LangText
}

// DetectFile combines the file name with the content. A name enry maps to a
// single language wins; otherwise the content decides.
func DetectFile(path string, content []byte) string {
	if lang, safe := enry.GetLanguageByFilename(path); safe && lang != "" {
		return normalize(lang)
	}
	if lang, safe := enry.GetLanguageByExtension(path); safe && lang != "" {
		return normalize(lang)
	}
	return Detect(content)
}

// IsMarkup reports whether lang is an XML-like language.
func IsMarkup(lang string) bool {
	return markupLanguages[strings.ToLower(lang)]
}

// LooksLikeMarkup reports whether the file at path with the given leading
// content should be handed to the parser.
func LooksLikeMarkup(path string, content []byte) bool {
	return IsMarkup(DetectFile(path, content))
}

// detectByPattern checks for root constructs that are highly indicative.
func detectByPattern(content []byte) string {
	trimmed := skipPrologue(content)
	if len(trimmed) == 0 || trimmed[0] != '<' {
		return ""
	}

	lower := bytes.ToLower(trimmed)

	switch {
	case bytes.HasPrefix(lower, []byte("<!doctype html")), bytes.HasPrefix(lower, []byte("<html")):
		return LangHTML
	case bytes.HasPrefix(lower, []byte("<!doctype plist")), bytes.HasPrefix(lower, []byte("<plist")):
		return LangPlist
	case bytes.HasPrefix(lower, []byte("<svg")):
		return LangSVG
	case bytes.HasPrefix(lower, []byte("<xsl:stylesheet")), bytes.HasPrefix(lower, []byte("<xsl:transform")):
		return LangXSLT
	case bytes.HasPrefix(lower, []byte("<?xml")):
		return LangXML
	case looksLikeElement(trimmed):
		return LangXML
	}

	return ""
}

// skipPrologue drops a byte order mark, leading whitespace and leading
// comments, returning what follows.
func skipPrologue(content []byte) []byte {
	rest := bytes.TrimPrefix(content, utf8BOM)
	for {
		rest = bytes.TrimSpace(rest)
		if !bytes.HasPrefix(rest, []byte("<!--")) {
			return rest
		}
		end := bytes.Index(rest, []byte("-->"))
		if end < 0 {
			return nil
		}
		rest = rest[end+len("-->"):]
	}
}

// looksLikeElement reports whether trimmed opens with an element tag that is
// closed somewhere in the sample.
func looksLikeElement(trimmed []byte) bool {
	if len(trimmed) < 2 || !isNameStart(trimmed[1]) {
		return false
	}
	return bytes.Contains(trimmed, []byte("</")) || bytes.Contains(trimmed, []byte("/>"))
}

func isNameStart(b byte) bool {
	return b == '_' || b == ':' || (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}

// normalize converts go-enry language names to lowercase identifiers.
func normalize(lang string) string {
	if lang == "Shell" {
		return langBash
	}
	return strings.ToLower(lang)
}
