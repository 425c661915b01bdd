// Package cmdutil provides shared flags for diecast commands.
package cmdutil

import (
	"github.com/spf13/cobra"

	"github.com/agentstation/diecast/pkg/facets"
	"github.com/agentstation/diecast/pkg/grouping"
)

// FilterFlags holds the facet selections and checkboxes a listing
// command accepts.
type FilterFlags struct {
	Years   []string
	Cases   []string
	Series  []string
	HW      []string
	Colors  []string
	Unowned bool
	TH      bool
	STH     bool
	Duds    bool
	Group   string
}

// AddFilterFlags adds the facet flags to a command.
func AddFilterFlags(cmd *cobra.Command, defaultGroup grouping.Mode) *FilterFlags {
	flags := &FilterFlags{}

	cmd.Flags().StringSliceVar(&flags.Years, "year", nil,
		"Only show these years (repeatable)")
	cmd.Flags().StringSliceVar(&flags.Cases, "case", nil,
		"Only show these case letters (repeatable)")
	cmd.Flags().StringSliceVar(&flags.Series, "series", nil,
		"Only show these series (repeatable)")
	cmd.Flags().StringSliceVar(&flags.HW, "hw", nil,
		"Only show these HW numbers (repeatable)")
	cmd.Flags().StringSliceVar(&flags.Colors, "color", nil,
		"Only show these colors (repeatable)")
	cmd.Flags().BoolVar(&flags.Unowned, "unowned", false,
		"Hide cars already owned")
	cmd.Flags().BoolVar(&flags.TH, "th", false,
		"Only show treasure hunts")
	cmd.Flags().BoolVar(&flags.STH, "sth", false,
		"Only show super treasure hunts")
	cmd.Flags().BoolVar(&flags.Duds, "duds", false,
		"Only show dud slots")
	cmd.Flags().StringVarP(&flags.Group, "group", "g", string(defaultGroup),
		"Grouping: no_filter, case, series, year_sort, alphabetic")

	return flags
}

// State converts the flags into a facet filter state.
func (f *FilterFlags) State() facets.FilterState {
	return facets.FilterState{
		Year:        f.Years,
		CaseLetter:  f.Cases,
		Series:      f.Series,
		HWNumber:    f.HW,
		Color:       f.Colors,
		UnownedOnly: f.Unowned,
		TH:          f.TH,
		STH:         f.STH,
		ShowDuds:    f.Duds,
	}
}

// Mode validates the grouping flag.
func (f *FilterFlags) Mode() (grouping.Mode, error) {
	return grouping.ParseMode(f.Group)
}
