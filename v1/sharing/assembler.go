package sharing

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/ehsanhossain/VentureFlow-sub000/v1/models"
)

// AllowedFields mirrors the resolved allow-list in response metadata. The
// server-side column restriction is the security boundary; this block is a
// rendering hint so the client knows which UI columns to draw.
type AllowedFields struct {
	Root          []string            `json:"root"`
	Relationships map[string][]string `json:"relationships"`
}

// ListMeta is the metadata block on partner list responses
type ListMeta struct {
	Total         int64         `json:"total"`
	CurrentPage   int           `json:"current_page"`
	LastPage      int           `json:"last_page"`
	PerPage       int           `json:"per_page"`
	AllowedFields AllowedFields `json:"allowed_fields"`
}

// DetailMeta is the metadata block on partner detail responses
type DetailMeta struct {
	AllowedFields AllowedFields `json:"allowed_fields"`
}

// ListEnvelope is the partner list response shape
type ListEnvelope struct {
	Data []map[string]interface{} `json:"data"`
	Meta ListMeta                 `json:"meta"`
}

// DetailEnvelope is the partner detail response shape
type DetailEnvelope struct {
	Data map[string]interface{} `json:"data"`
	Meta DetailMeta             `json:"meta"`
}

// AllowedFieldsFrom converts a resolved field set into sorted metadata
func AllowedFieldsFrom(fs *ResolvedFieldSet) AllowedFields {
	out := AllowedFields{
		Root:          sortedColumns(fs.Root),
		Relationships: make(map[string][]string, len(fs.Relationships)),
	}
	for name, attrs := range fs.Relationships {
		out.Relationships[name] = sortedColumns(attrs)
	}
	return out
}

// AssembleList packages projected records into the partner list envelope.
// Records are redacted down to the allowed root fields plus the planned
// relation columns: the SQL layer already restricted the selection, the
// serialization filter keeps unselected zero values out of the payload.
func AssembleList(records interface{}, fs *ResolvedFieldSet, plan *SelectPlan, d *EntityDescriptor, total int64, q models.ListQuery) (*ListEnvelope, error) {
	raw, err := toMaps(records)
	if err != nil {
		return nil, fmt.Errorf("failed to assemble list response: %w", err)
	}

	data := make([]map[string]interface{}, len(raw))
	for i, record := range raw {
		data[i] = filterRecord(record, fs, plan, d)
	}

	lastPage := int((total + int64(q.PerPage) - 1) / int64(q.PerPage))
	if lastPage < 1 {
		lastPage = 1
	}

	return &ListEnvelope{
		Data: data,
		Meta: ListMeta{
			Total:         total,
			CurrentPage:   q.Page,
			LastPage:      lastPage,
			PerPage:       q.PerPage,
			AllowedFields: AllowedFieldsFrom(fs),
		},
	}, nil
}

// AssembleDetail packages one projected record into the detail envelope
func AssembleDetail(record interface{}, fs *ResolvedFieldSet, plan *SelectPlan, d *EntityDescriptor) (*DetailEnvelope, error) {
	m, err := toMap(record)
	if err != nil {
		return nil, fmt.Errorf("failed to assemble detail response: %w", err)
	}

	return &DetailEnvelope{
		Data: filterRecord(m, fs, plan, d),
		Meta: DetailMeta{AllowedFields: AllowedFieldsFrom(fs)},
	}, nil
}

func toMaps(records interface{}) ([]map[string]interface{}, error) {
	bytes, err := json.Marshal(records)
	if err != nil {
		return nil, err
	}
	var out []map[string]interface{}
	if err := json.Unmarshal(bytes, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func toMap(record interface{}) (map[string]interface{}, error) {
	bytes, err := json.Marshal(record)
	if err != nil {
		return nil, err
	}
	var out map[string]interface{}
	if err := json.Unmarshal(bytes, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// filterRecord keeps the allowed root fields and the planned relation
// objects, each relation filtered to its planned columns. Unconditional
// nested lookups (country) pass through whole.
func filterRecord(m map[string]interface{}, fs *ResolvedFieldSet, plan *SelectPlan, d *EntityDescriptor) map[string]interface{} {
	out := make(map[string]interface{})

	for column := range fs.Root {
		if !plan.Root.Has(column) {
			continue
		}
		key := Camelize(column)
		if v, ok := m[key]; ok {
			out[key] = v
		}
	}
	if v, ok := m[IdentifierColumn]; ok {
		out[IdentifierColumn] = v
	}

	for name, cols := range plan.Relations {
		raw, ok := m[name]
		if !ok || raw == nil {
			continue
		}
		rel := d.Relations[name]

		switch v := raw.(type) {
		case map[string]interface{}:
			out[name] = filterColumns(v, cols, &rel)
		case []interface{}:
			items := make([]interface{}, 0, len(v))
			for _, item := range v {
				if obj, ok := item.(map[string]interface{}); ok {
					items = append(items, filterColumns(obj, cols, &rel))
				}
			}
			out[name] = items
		}
	}

	return out
}

func filterColumns(m map[string]interface{}, cols FieldSet, rel *Relation) map[string]interface{} {
	out := make(map[string]interface{}, len(cols))
	for column := range cols {
		key := Camelize(column)
		if v, ok := m[key]; ok {
			out[key] = v
		}
	}

	for _, nested := range rel.NestedAssociations {
		key := nestedJSONKey(nested)
		if v, ok := m[key]; ok && v != nil {
			out[key] = v
		}
	}

	return out
}

// nestedJSONKey maps a nested association path to its JSON key
// ("CompanyOverview.Country" -> "country")
func nestedJSONKey(association string) string {
	parts := strings.Split(association, ".")
	last := parts[len(parts)-1]
	if last == "" {
		return last
	}
	return strings.ToLower(last[:1]) + last[1:]
}
