package main

import (
	"encoding/json"
	"fmt"
	"io"
)

// render writes v as indented JSON, or calls text for the human format
func render(w io.Writer, format string, v any, text func(w io.Writer)) error {
	if format == formatJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	}
	text(w)
	return nil
}

func line(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, format+"\n", args...)
}
