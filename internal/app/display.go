package app

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/opttab/opttab-go/pkg/opttab"
)

// PrintJSON writes v as two-space indented JSON followed by a newline.
func PrintJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(v)
}

// DescribeError writes err for display: HTTP failures show the status and raw
// body, anything else a single line.
func DescribeError(w io.Writer, err error) {
	if err == nil {
		return
	}
	var httpErr *opttab.HTTPError
	if errors.As(err, &httpErr) {
		fmt.Fprintf(w, "API Error: %d\n", httpErr.StatusCode)
		fmt.Fprintf(w, "Response: %s\n", httpErr.Body)
		return
	}
	fmt.Fprintf(w, "Error: %v\n", err)
}
