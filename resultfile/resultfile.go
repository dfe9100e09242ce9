// Package resultfile renders a result log as a text report:
// a short banner followed by one `{index}. {op1} {operator} {op2} = {result}` line per entry.
package resultfile

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"github.com/viant/afs"
	"github.com/viant/afs/file"

	"github.com/ygrebnov/slots"
)

const banner = "*************************\n" +
	"*        RESULTS        *\n" +
	"*************************\n"

// Render writes the banner and every result, numbered from 1, in the given order.
func Render(w io.Writer, results []slots.Result) error {
	if _, err := io.WriteString(w, banner); err != nil {
		return err
	}
	for i, r := range results {
		if _, err := fmt.Fprintf(w, "%d. %d %s %d = %d\n", i+1, r.Operand1, r.Operator, r.Operand2, r.Value); err != nil {
			return err
		}
	}
	return nil
}

// Write renders results and uploads them to URL (a local path or any afs URL), replacing any previous content.
func Write(ctx context.Context, fs afs.Service, URL string, results []slots.Result) error {
	var buf bytes.Buffer
	if err := Render(&buf, results); err != nil {
		return err
	}
	if err := fs.Upload(ctx, URL, file.DefaultFileOsMode, &buf); err != nil {
		return fmt.Errorf("resultfile: upload %s: %w", URL, err)
	}
	return nil
}
