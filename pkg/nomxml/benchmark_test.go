package nomxml_test

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/yaklabco/nomxml/pkg/nomxml"
)

// catalogDoc builds a document with n book records.
func catalogDoc(n int) []byte {
	var buf strings.Builder
	buf.WriteString(`<?xml version="1.0" encoding="ISO-8859-1"?>` + "\n<catalog>\n")
	for range n {
		buf.WriteString(`  <book id="bk101" lang='en'>` +
			"<author>Gambardella, Matthew</author><title>XML Developer's Guide</title>" +
			"<!-- price in USD --><price>44.95</price><br/></book>\n")
	}
	buf.WriteString("</catalog>\n")
	return []byte(buf.String())
}

func drain(b *testing.B, parser *nomxml.Parser) int {
	b.Helper()
	count := 0
	for {
		_, err := parser.Next()
		if errors.Is(err, io.EOF) {
			return count
		}
		if err != nil {
			b.Fatalf("parse failed: %v", err)
		}
		count++
	}
}

func BenchmarkParserMemory(b *testing.B) {
	data := catalogDoc(500)
	parser := nomxml.New()
	b.SetBytes(int64(len(data)))
	b.ResetTimer()
	for range b.N {
		if err := parser.BeginMemory(data); err != nil {
			b.Fatal(err)
		}
		drain(b, parser)
	}
}

func BenchmarkParserFile(b *testing.B) {
	data := catalogDoc(500)
	path := filepath.Join(b.TempDir(), "catalog.xml")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		b.Fatal(err)
	}

	parser := nomxml.New()
	b.SetBytes(int64(len(data)))
	b.ResetTimer()
	for range b.N {
		if err := parser.BeginFile(path); err != nil {
			b.Fatal(err)
		}
		drain(b, parser)
		parser.Reset()
	}
}

func BenchmarkParserDeepNesting(b *testing.B) {
	const depth = 1000
	data := []byte(strings.Repeat("<d>", depth) + "x" + strings.Repeat("</d>", depth))
	parser := nomxml.New()
	b.SetBytes(int64(len(data)))
	b.ResetTimer()
	for range b.N {
		if err := parser.BeginMemory(data); err != nil {
			b.Fatal(err)
		}
		drain(b, parser)
	}
}
