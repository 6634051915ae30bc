package pretty

import (
	"fmt"
	"strconv"

	"github.com/yaklabco/nomxml/pkg/runner"
)

// FormatFailure formats a failed file as "path:offset: kind: message".
func (s *Styles) FormatFailure(file runner.FileOutcome) string {
	message := file.ErrorText
	if message == "" && file.Err != nil {
		message = file.Err.Error()
	}

	kind := file.Kind().String()
	if file.Kind() == 0 {
		kind = "error"
	}

	return fmt.Sprintf("%s:%s: %s: %s\n",
		s.FilePath.Render(file.Path),
		s.Location.Render(strconv.Itoa(file.Offset)),
		s.Kind.Render(kind),
		s.Message.Render(message),
	)
}
