// Package export renders collection listings as markdown reports.
package export

import (
	"fmt"
	"io"

	md "github.com/nao1215/markdown"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/agentstation/diecast"
	"github.com/agentstation/diecast/internal/cmd/table"
)

var reportHeaders = []string{"Name", "Series", "HW #", "Color", "Hunt", "Qty"}

// WriteMarkdown writes a report of res under title. Each group becomes a
// section with a table of its cars, preceded by the collection totals.
func WriteMarkdown(w io.Writer, title string, res *diecast.CollectionResult) error {
	doc := md.NewMarkdown(w).
		H1(cases.Title(language.English).String(title)).
		BulletList(
			fmt.Sprintf("Cars: %d", res.Count),
			fmt.Sprintf("Total owned: %d", res.TotalOwned),
			fmt.Sprintf("Spares: %d", res.Duplicates),
		)

	if res.Empty() {
		doc.PlainText(md.Italic("No cars."))
		return doc.Build()
	}

	for _, g := range res.Groups {
		rows := make([][]string, 0, len(g.Cards))
		for _, c := range g.Cards {
			// drop the group column
			rows = append(rows, table.CardRow(g.Name, c, false)[1:])
		}
		doc.H2(groupTitle(g.Name, len(g.Cards))).
			Table(md.TableSet{Header: reportHeaders, Rows: rows})
	}
	return doc.Build()
}

func groupTitle(name string, n int) string {
	if n == 1 {
		return fmt.Sprintf("%s (1 car)", name)
	}
	return fmt.Sprintf("%s (%d cars)", name, n)
}
