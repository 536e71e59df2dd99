// Package report renders the option inventory of a run as a table: which
// module declared each option, its spellings and the command-line IDs the
// registry allocated.
package report

import (
	"io"
	"strconv"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/specialistvlad/optgen/internal/registry"
)

// TableWriter returns a configured table.Writer listing every option of a in
// traversal order.
func TableWriter(a *registry.Assignment) table.Writer {
	tw := table.NewWriter()
	tw.AppendHeader(table.Row{"MODULE", "OPTION", "CATEGORY", "TYPE", "SHORT", "LONG", "SMT NAME", "IDS"})

	for _, o := range a.Options() {
		short := ""
		if o.Short != "" {
			short = "-" + o.Short
		}
		long := ""
		if o.Long != "" {
			long = "--" + o.Long
		}
		tw.AppendRow(table.Row{
			o.Module,
			o.Name,
			string(o.Category),
			o.Type,
			short,
			long,
			o.SMTName,
			formatIDs(a.IDs(o)),
		})
	}

	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 5, Align: text.AlignCenter}, // SHORT
		{Number: 8, Align: text.AlignRight},  // IDS
	})
	tw.SetStyle(table.StyleLight)
	return tw
}

// Write renders the table of a to w.
func Write(w io.Writer, a *registry.Assignment) error {
	_, err := io.WriteString(w, TableWriter(a).Render()+"\n")
	return err
}

func formatIDs(ids registry.IDs) string {
	switch {
	case ids.Long == 0:
		return ""
	case ids.Negated == 0:
		return strconv.Itoa(ids.Long)
	default:
		return strconv.Itoa(ids.Long) + "/" + strconv.Itoa(ids.Negated)
	}
}
