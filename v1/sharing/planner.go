package sharing

import (
	"log/slog"
	"sort"
)

// SelectPlan is the execution-ready column selection derived from a
// ResolvedFieldSet. It is a superset of the resolved set: structurally
// required columns are added, allowed columns are never removed.
type SelectPlan struct {
	Root      FieldSet
	Relations map[string]FieldSet
}

// Plan builds the SelectPlan for a resolved allow-list against an entity
// descriptor.
//
// The root selection always gains the identifier, the structural audit
// columns every list view sorts and renders by, and one foreign key column
// per enabled relation so the eager-load can resolve. The company-overview
// relation always gains the geography column. Relations enabled without any
// attributes project the identifier only. Configured names not present in
// the descriptor tables are dropped and logged; a typo can never grant
// access, and never fails a request.
func Plan(fs *ResolvedFieldSet, d *EntityDescriptor) *SelectPlan {
	plan := &SelectPlan{
		Root:      NewFieldSet(IdentifierColumn),
		Relations: make(map[string]FieldSet, len(fs.Relationships)),
	}

	for column := range fs.Root {
		if !d.hasRootColumn(column) {
			slog.Warn("Dropping unknown configured root field",
				"entity_type", d.Type,
				"field", column)
			continue
		}
		plan.Root.Add(column)
	}

	for _, column := range d.RootAlways {
		plan.Root.Add(column)
	}

	for name, attrs := range fs.Relationships {
		rel, ok := d.Relations[name]
		if !ok {
			slog.Warn("Dropping unknown configured relation",
				"entity_type", d.Type,
				"relation", name)
			continue
		}

		if rel.RootFK != "" {
			plan.Root.Add(rel.RootFK)
		}

		if rel.FixedColumns != nil {
			plan.Relations[name] = NewFieldSet(rel.FixedColumns...)
			continue
		}

		cols := NewFieldSet(IdentifierColumn)
		for attr := range attrs {
			if attr == IdentifierColumn {
				continue
			}
			if !rel.hasColumn(attr) {
				slog.Warn("Dropping unknown configured relation field",
					"entity_type", d.Type,
					"relation", name,
					"field", attr)
				continue
			}
			cols.Add(attr)
		}
		for _, forced := range rel.ForceColumns {
			cols.Add(forced)
		}
		plan.Relations[name] = cols
	}

	return plan
}

// RootColumns returns the root selection as a sorted slice
func (p *SelectPlan) RootColumns() []string {
	return sortedColumns(p.Root)
}

// RelationColumns returns one relation's selection as a sorted slice
func (p *SelectPlan) RelationColumns(name string) []string {
	return sortedColumns(p.Relations[name])
}

func sortedColumns(fs FieldSet) []string {
	cols := make([]string, 0, len(fs))
	for c := range fs {
		cols = append(cols, c)
	}
	sort.Strings(cols)
	return cols
}
