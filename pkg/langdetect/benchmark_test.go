package langdetect

import (
	"bytes"
	"testing"
)

func BenchmarkDetectDeclaration(b *testing.B) {
	content := []byte(`<?xml version="1.0" encoding="UTF-8"?>
<catalog>
  <book id="bk101"><author>Gambardella</author></book>
</catalog>`)
	b.ResetTimer()
	for range b.N {
		Detect(content)
	}
}

func BenchmarkDetectLeadingComments(b *testing.B) {
	content := append(bytes.Repeat([]byte("<!-- header line -->\n"), 64), []byte("<root><leaf/></root>")...)
	b.ResetTimer()
	for range b.N {
		Detect(content)
	}
}

func BenchmarkDetectEmpty(b *testing.B) {
	content := []byte("")
	b.ResetTimer()
	for range b.N {
		Detect(content)
	}
}
