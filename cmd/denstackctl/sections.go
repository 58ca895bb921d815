package main

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"

	"github.com/adharshSciPy/DenStack-Superadmin/components/console"
)

const maxColumns = 5

type sectionsCmd struct{}

func (cmd *sectionsCmd) Run(ctx context.Context, g *Globals) error {
	rt, err := g.runtime(ctx, "")
	if err != nil {
		return err
	}
	defer closeRuntime(rt)

	bold := color.New(color.Bold, color.Underline)
	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.AddRow(bold.Sprint("ID"), bold.Sprint("Label"), bold.Sprint("Group"), bold.Sprint("Badge"), bold.Sprint("Slices"))
	for _, def := range rt.Shell.Sections() {
		tbl.AddRow(def.ID, def.Label, def.Group, def.Badge, len(def.Slices))
	}
	_, _ = fmt.Fprintln(stdout, tbl)
	return nil
}

type listCmd struct {
	Section string            `arg:"" help:"Section id (clinics, doctors, orders, products, vendors, ...)."`
	Search  string            `short:"s" help:"Case-insensitive search term."`
	Filter  map[string]string `short:"f" help:"Field filter as key=value (repeatable)."`
	JSON    bool              `name:"json" help:"Print the section view as JSON."`
}

func (cmd *listCmd) Run(ctx context.Context, g *Globals) error {
	rt, err := g.runtime(ctx, "")
	if err != nil {
		return err
	}
	defer closeRuntime(rt)

	if !rt.Shell.Session().IsAuthenticated {
		return errNotSignedIn
	}
	id, err := console.ParseSectionID(cmd.Section)
	if err != nil {
		return err
	}
	if _, err := rt.Shell.SelectSection(ctx, id); err != nil {
		return err
	}
	criteria := console.FilterCriteria{SearchTerm: cmd.Search, Fields: cmd.Filter}
	if err := rt.Shell.SetCriteria(ctx, criteria); err != nil {
		return err
	}
	select {
	case <-rt.Shell.Wait():
	case <-ctx.Done():
		return ctx.Err()
	}
	if !rt.Shell.Session().IsAuthenticated {
		return fmt.Errorf("denstackctl: session expired: %w", errNotSignedIn)
	}

	view := rt.Shell.View()
	if cmd.JSON {
		enc := json.NewEncoder(stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(view)
	}
	printView(view)
	return nil
}

func printView(view console.SectionView) {
	title := color.New(color.Bold, color.Underline)
	_, _ = fmt.Fprintln(stdout, title.Sprint(view.Definition.Label))

	names := make([]string, 0, len(view.Data.Aggregates))
	for name := range view.Data.Aggregates {
		names = append(names, name)
	}
	sort.Strings(names)
	faint := color.New(color.Faint)
	for _, name := range names {
		agg := view.Data.Aggregates[name]
		keys := make([]string, 0, len(agg))
		for k, v := range agg {
			switch v.(type) {
			case map[string]any, []any:
				continue
			}
			keys = append(keys, k)
		}
		sort.Strings(keys)
		tbl := uitable.New()
		tbl.Separator = "  "
		for _, k := range keys {
			tbl.AddRow(faint.Sprint(k), agg.String(k))
		}
		if len(keys) > 0 {
			_, _ = fmt.Fprintln(stdout, tbl)
		}
	}

	for slice, msg := range view.Data.Errors {
		warn("%s unavailable: %s", slice, msg)
	}
	if view.Definition.PrimarySlice == "" {
		return
	}

	columns := columnsFor(view.Definition)
	bold := color.New(color.Bold)
	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.MaxColWidth = 40
	header := make([]any, len(columns))
	for i, col := range columns {
		header[i] = bold.Sprint(col)
	}
	tbl.AddRow(header...)
	for _, record := range view.Records {
		row := make([]any, len(columns))
		for i, col := range columns {
			row[i] = record.Text(col)
		}
		tbl.AddRow(row...)
	}
	_, _ = fmt.Fprintln(stdout, tbl)
	_, _ = fmt.Fprintln(stdout, faint.Sprintf("%d of %d records", len(view.Records), view.Total))
}

func columnsFor(def console.SectionDefinition) []string {
	seen := map[string]bool{}
	var columns []string
	add := func(path string) {
		if path != "" && !seen[path] && len(columns) < maxColumns {
			seen[path] = true
			columns = append(columns, path)
		}
	}
	for _, path := range def.Search {
		add(path)
	}
	for _, field := range def.Filters {
		if field.Path != "" {
			add(field.Path)
		} else {
			add(field.Name)
		}
	}
	return columns
}
