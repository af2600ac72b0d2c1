package models

// Industry represents the industries table: the canonical industry taxonomy.
// Free-text tags on company overviews are reconciled against this table.
type Industry struct {
	IndustryID string `gorm:"primarykey;column:industry_id" json:"industryId"`
	Name       string `gorm:"column:name;not null;uniqueIndex" json:"name"`
	Slug       string `gorm:"column:slug;not null" json:"slug"`
	BaseModel
}

// TableName sets the table name for GORM
func (Industry) TableName() string {
	return "industries"
}
