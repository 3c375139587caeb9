package output

import (
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/ukaji3/pdftables-go/pkg/pdftables/frame"
)

// Preview renders the first n rows of f as an aligned text table with a
// leading row index column. Null cells are shown as "None".
func Preview(f *frame.Frame, n int) string {
	head := f.Head(n)

	var sb strings.Builder
	tw := tabwriter.NewWriter(&sb, 0, 0, 2, ' ', tabwriter.AlignRight)

	labels := head.Columns()
	for i, l := range labels {
		labels[i] = sanitize(l)
	}
	tw.Write([]byte("\t" + strings.Join(labels, "\t") + "\t\n"))
	for i := 0; i < head.Len(); i++ {
		fields := make([]string, 0, head.Width()+1)
		fields = append(fields, strconv.Itoa(i))
		for _, c := range head.Row(i) {
			if !c.Valid {
				fields = append(fields, "None")
				continue
			}
			fields = append(fields, sanitize(c.Value))
		}
		tw.Write([]byte(strings.Join(fields, "\t") + "\t\n"))
	}
	tw.Flush()

	return sb.String()
}

// sanitize keeps multi-line cell text on one preview line.
func sanitize(s string) string {
	s = strings.ReplaceAll(s, "\r\n", " ")
	s = strings.ReplaceAll(s, "\n", " ")
	return strings.ReplaceAll(s, "\t", " ")
}
