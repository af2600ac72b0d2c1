package models

import (
	"context"
	"database/sql/driver"
	"encoding/json"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// FieldMap is the raw sharing configuration: field name -> enabled flag.
// Values are kept as interface{} on purpose: only a JSON boolean true enables
// a field, and the resolver needs to see the original type to enforce that.
type FieldMap map[string]interface{}

// Scan implements the sql.Scanner interface for FieldMap
func (fm *FieldMap) Scan(value interface{}) error {
	if value == nil {
		*fm = nil
		return nil
	}

	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return fmt.Errorf("cannot scan %T into FieldMap", value)
	}

	return json.Unmarshal(bytes, fm)
}

// Value implements the driver.Valuer interface for FieldMap
func (fm *FieldMap) Value() (driver.Value, error) {
	return json.Marshal(*fm)
}

// GormDataType gorm common data type
func (FieldMap) GormDataType() string {
	return "jsonb"
}

// GormValue implements the GormValuerInterface
func (fm FieldMap) GormValue(ctx context.Context, db *gorm.DB) clause.Expr {
	data, err := json.Marshal(fm)
	if err != nil {
		// Marshaling a map of JSON scalars should never fail; panic rather
		// than persist a silently truncated configuration
		panic(fmt.Sprintf("Failed to marshal FieldMap to JSON: %v", err))
	}

	// Detect database type for SQLite compatibility
	dialector := db.Dialector.Name()
	var sqlExpr string
	if dialector == "sqlite" {
		// SQLite uses TEXT for JSON, no cast needed
		sqlExpr = "?"
	} else {
		// PostgreSQL uses jsonb with cast
		sqlExpr = "?::jsonb"
	}

	return clause.Expr{
		SQL:  sqlExpr,
		Vars: []interface{}{string(data)},
	}
}

// SharingConfig represents the partner_sharing_configs table. One row per
// entity type, holding the admin-maintained allow-list consumed by the
// partner projection engine.
type SharingConfig struct {
	EntityType string   `gorm:"primarykey;column:entity_type" json:"entityType"`
	Fields     FieldMap `gorm:"column:fields" json:"fields"`
	BaseModel
}

// TableName sets the table name for GORM
func (SharingConfig) TableName() string {
	return "partner_sharing_configs"
}

// PartnerShare represents the partner_shares table. A row grants one partner
// user visibility of one buyer or seller record (row scope only; column scope
// comes from SharingConfig).
type PartnerShare struct {
	ShareID    string `gorm:"primarykey;column:share_id" json:"shareId"`
	PartnerID  string `gorm:"column:partner_id;not null;index" json:"partnerId"`
	EntityType string `gorm:"column:entity_type;not null" json:"entityType"`
	EntityID   string `gorm:"column:entity_id;not null" json:"entityId"`
	GrantedBy  string `gorm:"column:granted_by;not null" json:"grantedBy"`
	BaseModel
}

// TableName sets the table name for GORM
func (PartnerShare) TableName() string {
	return "partner_shares"
}
