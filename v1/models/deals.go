package models

import "time"

// Deal represents the deals table: one buyer paired with one seller moving
// through the staged pipeline
type Deal struct {
	ID        string    `gorm:"primarykey;column:id" json:"id"`
	Title     string    `gorm:"column:title;not null" json:"title"`
	BuyerID   string    `gorm:"column:buyer_id;not null;index" json:"buyerId"`
	SellerID  string    `gorm:"column:seller_id;not null;index" json:"sellerId"`
	Stage     DealStage `gorm:"column:stage;not null" json:"stage"`
	Progress  int       `gorm:"column:progress;not null" json:"progress"`
	DealValue float64   `gorm:"column:deal_value" json:"dealValue"`
	Currency  string    `gorm:"column:currency" json:"currency"`
	Notes     string    `gorm:"column:notes" json:"notes"`
	OwnerID   string    `gorm:"column:owner_id" json:"ownerId"`
	BaseModel

	// Relationships
	Buyer  *Buyer  `gorm:"foreignKey:BuyerID;references:ID" json:"buyer,omitempty"`
	Seller *Seller `gorm:"foreignKey:SellerID;references:ID" json:"seller,omitempty"`
}

// TableName sets the table name for GORM
func (Deal) TableName() string {
	return "deals"
}

// PartnerDealView is the fixed partner-facing shape of a deal: pipeline
// position only, never valuation, notes or counterparty detail
type PartnerDealView struct {
	ID        string    `gorm:"column:id" json:"id"`
	BuyerID   string    `gorm:"column:buyer_id" json:"buyerId"`
	SellerID  string    `gorm:"column:seller_id" json:"sellerId"`
	Stage     DealStage `gorm:"column:stage" json:"stage"`
	Progress  int       `gorm:"column:progress" json:"progress"`
	CreatedAt time.Time `gorm:"column:created_at" json:"createdAt"`
}
