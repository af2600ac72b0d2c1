package models

// Prospect represents the prospects table: a raw lead row inserted by the
// spreadsheet import pipeline, prior to promotion into a full buyer or
// seller profile.
type Prospect struct {
	ProspectID   string  `gorm:"primarykey;column:prospect_id" json:"prospectId"`
	CompanyName  string  `gorm:"column:company_name;not null" json:"companyName"`
	ContactName  string  `gorm:"column:contact_name" json:"contactName"`
	Email        string  `gorm:"column:email" json:"email"`
	Phone        string  `gorm:"column:phone" json:"phone"`
	CountryCode  string  `gorm:"column:country_code" json:"countryCode"`
	Industry     string  `gorm:"column:industry" json:"industry"`
	RevenueValue float64 `gorm:"column:revenue_value" json:"revenueValue"`
	TargetSide   string  `gorm:"column:target_side;not null" json:"targetSide"`
	BatchID      string  `gorm:"column:batch_id;not null;index" json:"batchId"`
	BaseModel
}

// TableName sets the table name for GORM
func (Prospect) TableName() string {
	return "prospects"
}

// ImportBatch represents the import_batches table: one spreadsheet upload
type ImportBatch struct {
	BatchID      string       `gorm:"primarykey;column:batch_id" json:"batchId"`
	FileName     string       `gorm:"column:file_name;not null" json:"fileName"`
	Format       string       `gorm:"column:format;not null" json:"format"`
	Status       ImportStatus `gorm:"column:status;not null" json:"status"`
	TotalRows    int          `gorm:"column:total_rows" json:"totalRows"`
	InsertedRows int          `gorm:"column:inserted_rows" json:"insertedRows"`
	Errors       RowErrors    `gorm:"column:errors" json:"errors"`
	CreatedBy    string       `gorm:"column:created_by" json:"createdBy"`
	BaseModel
}

// TableName sets the table name for GORM
func (ImportBatch) TableName() string {
	return "import_batches"
}
