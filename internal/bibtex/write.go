// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package bibtex

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/pdiddy/bibcheck/pkg/types"
)

// Write renders f: the front matter verbatim, then one entry per record with
// every field wrapped in braces. Month macros such as "jan" are written bare.
func Write(w io.Writer, f *File) error {
	bw := bufio.NewWriter(w)
	if f.FrontMatter != "" {
		bw.WriteString(f.FrontMatter)
		if !strings.HasSuffix(f.FrontMatter, "\n") {
			bw.WriteString("\n")
		}
		bw.WriteString("\n")
	}
	for i, rec := range f.Records {
		if i > 0 {
			bw.WriteString("\n")
		}
		writeRecord(bw, rec)
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("writing bibtex: %w", err)
	}
	return nil
}

func writeRecord(w *bufio.Writer, rec types.Record) {
	entryType := rec.Type()
	if entryType == "" {
		entryType = "misc"
	}
	fmt.Fprintf(w, "@%s{%s,\n", entryType, rec.Key())
	for _, f := range rec.Fields() {
		if _, ok := monthMacros[f.Value]; ok && f.Name == types.FieldMonth {
			fmt.Fprintf(w, "  %s = %s,\n", f.Name, f.Value)
			continue
		}
		fmt.Fprintf(w, "  %s = {%s},\n", f.Name, f.Value)
	}
	w.WriteString("}\n")
}

// Format returns the BibTeX text of records without front matter.
func Format(records []types.Record) string {
	var b strings.Builder
	Write(&b, &File{Records: records})
	return b.String()
}

// WriteFile writes f to path, replacing any existing file.
func WriteFile(path string, f *File) error {
	out, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	if err := Write(out, f); err != nil {
		out.Close()
		return err
	}
	if err := out.Close(); err != nil {
		return fmt.Errorf("closing %s: %w", path, err)
	}
	return nil
}
