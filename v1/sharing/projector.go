package sharing

import (
	"gorm.io/gorm"
)

// Project applies a select plan to a query: the root selection is restricted
// to the planned columns and each planned relation is eager-loaded with its
// own column restriction. The company-overview country lookup is preloaded
// unconditionally and unrestricted; it is small and every rendering surface
// needs the full label/flag row.
//
// Project only narrows which columns come back. Row-level concerns (search,
// pagination, sort, share scoping) belong to the caller and compose freely
// with the returned query.
func Project(q *gorm.DB, plan *SelectPlan, d *EntityDescriptor) *gorm.DB {
	q = q.Select(plan.RootColumns())

	for name := range plan.Relations {
		rel, ok := d.Relations[name]
		if !ok {
			continue
		}

		columns := plan.RelationColumns(name)
		q = q.Preload(rel.Association, func(db *gorm.DB) *gorm.DB {
			return db.Select(columns)
		})

		for _, nested := range rel.NestedAssociations {
			q = q.Preload(nested)
		}
	}

	return q
}
