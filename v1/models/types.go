package models

import (
	"context"
	"database/sql/driver"
	"encoding/json"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// StringList is a JSON-encoded list of strings stored in a jsonb column
// (industry tags, import warnings, etc.)
type StringList []string

// Scan implements the sql.Scanner interface for StringList
func (sl *StringList) Scan(value interface{}) error {
	if value == nil {
		*sl = StringList{}
		return nil
	}

	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return fmt.Errorf("cannot scan %T into StringList", value)
	}

	return json.Unmarshal(bytes, sl)
}

// Value implements the driver.Valuer interface for StringList
func (sl *StringList) Value() (driver.Value, error) {
	return json.Marshal(*sl)
}

// GormDataType gorm common data type
func (StringList) GormDataType() string {
	return "jsonb"
}

// GormValue implements the GormValuerInterface
func (sl StringList) GormValue(ctx context.Context, db *gorm.DB) clause.Expr {
	data, err := json.Marshal(sl)
	if err != nil {
		panic(fmt.Sprintf("Failed to marshal StringList to JSON: %v", err))
	}

	dialector := db.Dialector.Name()
	var sqlExpr string
	if dialector == "sqlite" {
		sqlExpr = "?"
	} else {
		sqlExpr = "?::jsonb"
	}

	return clause.Expr{
		SQL:  sqlExpr,
		Vars: []interface{}{string(data)},
	}
}

// Contains reports whether the list holds the given value
func (sl StringList) Contains(v string) bool {
	for _, s := range sl {
		if s == v {
			return true
		}
	}
	return false
}

// RowError records a validation failure for one spreadsheet row
type RowError struct {
	Row     int    `json:"row"`
	Column  string `json:"column,omitempty"`
	Message string `json:"message"`
}

// RowErrors is a JSON-encoded list of RowError stored on an import batch
type RowErrors []RowError

// Scan implements the sql.Scanner interface for RowErrors
func (re *RowErrors) Scan(value interface{}) error {
	if value == nil {
		*re = RowErrors{}
		return nil
	}

	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return fmt.Errorf("cannot scan %T into RowErrors", value)
	}

	return json.Unmarshal(bytes, re)
}

// Value implements the driver.Valuer interface for RowErrors
func (re *RowErrors) Value() (driver.Value, error) {
	return json.Marshal(*re)
}

// GormDataType gorm common data type
func (RowErrors) GormDataType() string {
	return "jsonb"
}

// GormValue implements the GormValuerInterface
func (re RowErrors) GormValue(ctx context.Context, db *gorm.DB) clause.Expr {
	data, err := json.Marshal(re)
	if err != nil {
		panic(fmt.Sprintf("Failed to marshal RowErrors to JSON: %v", err))
	}

	dialector := db.Dialector.Name()
	var sqlExpr string
	if dialector == "sqlite" {
		sqlExpr = "?"
	} else {
		sqlExpr = "?::jsonb"
	}

	return clause.Expr{
		SQL:  sqlExpr,
		Vars: []interface{}{string(data)},
	}
}
