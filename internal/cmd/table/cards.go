// Package table provides common table formatting utilities for CLI commands.
package table

import (
	"strconv"
	"strings"

	"github.com/agentstation/diecast"
	"github.com/agentstation/diecast/internal/cmd/emoji"
	"github.com/agentstation/diecast/pkg/projection"
)

// Align represents column alignment in tables.
type Align int

const (
	// AlignDefault uses the default alignment (skip).
	AlignDefault Align = iota
	// AlignLeft aligns content to the left.
	AlignLeft
	// AlignCenter centers content.
	AlignCenter
	// AlignRight aligns content to the right.
	AlignRight
)

// Data represents table formatting data to avoid import cycles.
type Data struct {
	Headers         []string
	Rows            [][]string
	ColumnAlignment []Align // Optional: column alignment
}

// GroupsToTableData flattens grouped cards into one table. The group
// name leads each row so the grouping survives the flattening; wide
// adds the series number, the image key and the wanted marker.
func GroupsToTableData(groups []diecast.ResultGroup, wide bool) Data {
	headers := []string{"Group", "Name", "Series", "HW #", "Color", "Hunt", "Qty"}
	align := []Align{AlignLeft, AlignLeft, AlignLeft, AlignRight, AlignLeft, AlignCenter, AlignRight}
	if wide {
		headers = append(headers, "Series #", "Wanted", "Image")
		align = append(align, AlignRight, AlignCenter, AlignLeft)
	}

	var rows [][]string
	for _, g := range groups {
		for _, c := range g.Cards {
			rows = append(rows, CardRow(g.Name, c, wide))
		}
	}
	return Data{Headers: headers, Rows: rows, ColumnAlignment: align}
}

// CardsToTableData renders ungrouped cards, as the browse commands
// return them.
func CardsToTableData(cards []projection.Card, wide bool) Data {
	data := GroupsToTableData([]diecast.ResultGroup{{Cards: cards}}, wide)
	data.Headers[0] = "Case"
	for i, c := range cards {
		data.Rows[i][0] = c.Year + " " + c.CaseLetter
	}
	return data
}

// CardRow builds one row for a card.
func CardRow(group string, c projection.Card, wide bool) []string {
	row := []string{
		group,
		c.Car.Name,
		orDash(c.Car.Series),
		orDash(c.Car.HWNumber.String()),
		orDash(c.Car.Color),
		HuntMarker(c.View),
		Quantity(c.View),
	}
	if wide {
		wanted := emoji.Optional
		if c.IsWanted {
			wanted = emoji.Wanted
		}
		row = append(row, orDash(c.Car.SeriesNumber.String()), wanted, c.Car.Image)
	}
	return row
}

// HuntMarker returns the symbol for the card's hunt status.
func HuntMarker(v projection.View) string {
	switch v.Badge() {
	case projection.BadgeSTH:
		return emoji.SuperTreasureHunt
	case projection.BadgeTH:
		return emoji.TreasureHunt
	}
	if v.IsDud {
		return emoji.Dud
	}
	return ""
}

// Quantity renders the owned count, with spares in parentheses.
func Quantity(v projection.View) string {
	if !v.IsOwned {
		return emoji.Optional
	}
	q := strconv.Itoa(v.Quantity)
	if v.DuplicateCount > 0 {
		q += " (+" + strconv.Itoa(v.DuplicateCount) + ")"
	}
	return q
}

// StringsToTableData renders a single column list.
func StringsToTableData(header string, values []string) Data {
	rows := make([][]string, 0, len(values))
	for _, v := range values {
		rows = append(rows, []string{v})
	}
	return Data{Headers: []string{header}, Rows: rows}
}

func orDash(s string) string {
	if strings.TrimSpace(s) == "" {
		return emoji.Optional
	}
	return s
}
