package query

import (
	"bufio"
	"io"
	"strings"
)

// WriteCSV writes header and rows with every field double-quoted and embedded
// quotes doubled. Rows end with "\n".
func WriteCSV(w io.Writer, header []string, rows [][]string) error {
	bw := bufio.NewWriter(w)
	if err := writeRow(bw, header); err != nil {
		return err
	}
	for _, r := range rows {
		if err := writeRow(bw, r); err != nil {
			return err
		}
	}
	return bw.Flush()
}

func writeRow(w *bufio.Writer, fields []string) error {
	for i, f := range fields {
		if i > 0 {
			if err := w.WriteByte(','); err != nil {
				return err
			}
		}
		if _, err := w.WriteString(`"` + strings.ReplaceAll(f, `"`, `""`) + `"`); err != nil {
			return err
		}
	}
	return w.WriteByte('\n')
}
