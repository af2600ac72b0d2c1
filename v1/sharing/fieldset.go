// Package sharing implements the partner field-visibility projection engine:
// resolve the admin-maintained allow-list, plan the concrete column selection,
// apply it to a GORM query and package the result with allowed-field metadata.
// Default-deny throughout: anything not explicitly enabled is never selected.
package sharing

import (
	"sort"
	"strings"

	"github.com/ehsanhossain/VentureFlow-sub000/v1/models"
)

// IdentifierColumn is the surrogate primary key column shared by all
// projectable tables. It is structurally required (relation traversal, client
// row identity) and always visible.
const IdentifierColumn = "id"

// FieldSet is an unordered set of column names
type FieldSet map[string]struct{}

// NewFieldSet builds a set from the given column names
func NewFieldSet(columns ...string) FieldSet {
	fs := make(FieldSet, len(columns))
	for _, c := range columns {
		fs[c] = struct{}{}
	}
	return fs
}

// Has reports whether the set contains the column
func (fs FieldSet) Has(column string) bool {
	_, ok := fs[column]
	return ok
}

// Add inserts a column into the set
func (fs FieldSet) Add(column string) {
	fs[column] = struct{}{}
}

// Clone returns an independent copy of the set
func (fs FieldSet) Clone() FieldSet {
	out := make(FieldSet, len(fs))
	for c := range fs {
		out[c] = struct{}{}
	}
	return out
}

// ResolvedFieldSet is the structured allow-list derived from a raw sharing
// configuration: root columns plus per-relation attribute sets, each seeded
// with the identifier column.
type ResolvedFieldSet struct {
	Root          FieldSet
	Relationships map[string]FieldSet
}

// fieldAliases maps UI-facing configuration keys to the actual stored column
// names. Hand-maintained; not user-configurable.
var fieldAliases = map[string]string{
	"registered_name": "reg_name",
	"turnover":        "revenue_value",
	"ebitda":          "ebitda_value",
	"headquarters":    "hq_country",
}

func aliasColumn(name string) string {
	if actual, ok := fieldAliases[name]; ok {
		return actual
	}
	return name
}

// Resolve parses a raw sharing configuration into a ResolvedFieldSet.
//
// Only a value that is exactly boolean true enables a field; strings,
// numbers and anything else truthy are treated as disabled. Dotted keys
// enable a relation attribute: the relation part is normalized to the
// camelCase convention the query layer keys eager-loads by, the attribute
// part goes through the alias table. An absent or empty configuration yields
// the identifier-only set with no relations.
func Resolve(raw models.FieldMap) *ResolvedFieldSet {
	out := &ResolvedFieldSet{
		Root:          NewFieldSet(IdentifierColumn),
		Relationships: make(map[string]FieldSet),
	}

	for key, value := range raw {
		enabled, ok := value.(bool)
		if !ok || !enabled {
			continue
		}

		if relation, attribute, found := strings.Cut(key, "."); found {
			if relation == "" || attribute == "" {
				continue
			}
			name := Camelize(relation)
			set, ok := out.Relationships[name]
			if !ok {
				set = NewFieldSet(IdentifierColumn)
				out.Relationships[name] = set
			}
			set.Add(aliasColumn(attribute))
			continue
		}

		out.Root.Add(aliasColumn(key))
	}

	return out
}

// Camelize converts a snake_case name to the lowerCamelCase convention used
// for relation keys and JSON serialization ("company_overview" ->
// "companyOverview").
func Camelize(name string) string {
	parts := strings.Split(name, "_")
	if len(parts) == 1 {
		return name
	}

	var b strings.Builder
	b.WriteString(parts[0])
	for _, p := range parts[1:] {
		if p == "" {
			continue
		}
		b.WriteString(strings.ToUpper(p[:1]))
		b.WriteString(p[1:])
	}
	return b.String()
}

// UnknownKeys inspects a raw configuration's key names (values ignored) and
// returns the ones that match nothing in the descriptor tables. Used by the
// admin settings surface to flag typos at write time without rejecting the
// write.
func UnknownKeys(raw models.FieldMap, d *EntityDescriptor) []string {
	var unknown []string

	for key := range raw {
		if relation, attribute, dotted := strings.Cut(key, "."); dotted {
			rel, ok := d.Relations[Camelize(relation)]
			if !ok {
				unknown = append(unknown, key)
				continue
			}
			// Fixed-projection relations accept any attribute name; the
			// configured attributes are ignored either way.
			if rel.FixedColumns == nil && !rel.hasColumn(aliasColumn(attribute)) {
				unknown = append(unknown, key)
			}
			continue
		}
		if !d.hasRootColumn(aliasColumn(key)) {
			unknown = append(unknown, key)
		}
	}

	sort.Strings(unknown)
	return unknown
}

// NormalizeEntityType maps the naming aliases used inconsistently across
// call sites ("investor", "target") onto the two canonical entity types.
func NormalizeEntityType(raw string) (models.EntityType, bool) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "buyer", "investor":
		return models.EntityTypeBuyer, true
	case "seller", "target":
		return models.EntityTypeSeller, true
	default:
		return "", false
	}
}
