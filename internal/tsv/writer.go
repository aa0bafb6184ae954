package tsv

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/vbo-tools/dadismatch/pkg/constants"
	"github.com/vbo-tools/dadismatch/pkg/errors"
	"github.com/vbo-tools/dadismatch/pkg/records"
)

// Write writes the augmented table to path with column appended to every
// row. The file is assembled next to path and renamed into place, so path
// may be the input file and a failure leaves any existing file untouched.
func Write(path string, table *records.Table, augmented []records.AugmentedRecord, column string) error {
	if table == nil {
		return errors.NewValidationError("table", nil, "table is nil")
	}
	if len(augmented) != len(table.Records) {
		return errors.NewValidationError("records", len(augmented),
			fmt.Sprintf("have %d augmented records for %d table rows", len(augmented), len(table.Records)))
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), constants.TempFilePattern)
	if err != nil {
		return errors.WrapIO("create", "temp file", err)
	}
	tmpPath := tmp.Name()
	defer func() {
		_ = tmp.Close()
		if err != nil {
			_ = os.Remove(tmpPath)
		}
	}()

	bw := bufio.NewWriter(tmp)
	if err = Encode(bw, table, augmented, column); err != nil {
		return err
	}
	if err = bw.Flush(); err != nil {
		return errors.WrapIO("write", tmpPath, err)
	}
	if err = tmp.Sync(); err != nil {
		return errors.WrapIO("sync", tmpPath, err)
	}
	if err = tmp.Close(); err != nil {
		return errors.WrapIO("close", tmpPath, err)
	}
	if err = os.Chmod(tmpPath, constants.FilePermissions); err != nil {
		return errors.WrapIO("chmod", tmpPath, err)
	}
	if err = os.Rename(tmpPath, path); err != nil {
		return errors.WrapIO("rename", path, err)
	}
	return nil
}

// Encode writes the augmented table to w. See Write.
//
// A cell is quoted only when it holds a tab, a double quote or a line
// break. Every other cell, including leading or trailing spaces, is
// written exactly as read.
func Encode(w io.Writer, table *records.Table, augmented []records.AugmentedRecord, column string) error {
	bw := bufio.NewWriter(w)

	width := len(table.Header)
	row := func(cells []string, extra string) []string {
		out := make([]string, max(width, len(cells)), max(width, len(cells))+1)
		copy(out, cells)
		return append(out, extra)
	}

	if err := writeRow(bw, row(table.Header, column)); err != nil {
		return errors.WrapIO("write", "header", err)
	}
	if err := writeRow(bw, row(table.Metadata, "")); err != nil {
		return errors.WrapIO("write", "metadata", err)
	}
	for _, a := range augmented {
		if err := writeRow(bw, row(a.Cells, a.TransboundaryIDValue())); err != nil {
			return errors.WrapIO("write", "record "+a.RecordID, err)
		}
	}

	if err := bw.Flush(); err != nil {
		return errors.WrapIO("write", "table", err)
	}
	return nil
}

func writeRow(w *bufio.Writer, cells []string) error {
	for i, cell := range cells {
		if i > 0 {
			if err := w.WriteByte('\t'); err != nil {
				return err
			}
		}
		if _, err := w.WriteString(quote(cell)); err != nil {
			return err
		}
	}
	return w.WriteByte('\n')
}

// quote wraps cell in double quotes, doubling inner quotes, when the reader
// would otherwise split or misread it.
func quote(cell string) string {
	if !strings.ContainsAny(cell, "\t\"\r\n") {
		return cell
	}
	return `"` + strings.ReplaceAll(cell, `"`, `""`) + `"`
}
