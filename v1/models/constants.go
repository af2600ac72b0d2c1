package models

// Role represents a user role in the system
type Role string

const (
	RoleAdmin   Role = "VentureFlow_Admin"
	RoleBroker  Role = "VentureFlow_Broker"
	RolePartner Role = "VentureFlow_Partner"
)

// String returns the string representation of the role
func (r Role) String() string {
	return string(r)
}

// IsStaff reports whether the role may see unrestricted data
func (r Role) IsStaff() bool {
	return r == RoleAdmin || r == RoleBroker
}

// EntityType identifies which side of a deal a company record sits on
type EntityType string

const (
	EntityTypeBuyer  EntityType = "buyer"
	EntityTypeSeller EntityType = "seller"
)

// CompanyStatus represents the lifecycle status of a buyer or seller profile
type CompanyStatus string

const (
	CompanyStatusProspect CompanyStatus = "prospect"
	CompanyStatusActive   CompanyStatus = "active"
	CompanyStatusOnHold   CompanyStatus = "on_hold"
	CompanyStatusArchived CompanyStatus = "archived"
)

// DealStage represents a stage in the deal pipeline
type DealStage string

const (
	DealStageProspecting   DealStage = "prospecting"
	DealStageTeaserSent    DealStage = "teaser_sent"
	DealStageNDASigned     DealStage = "nda_signed"
	DealStageNegotiation   DealStage = "negotiation"
	DealStageDueDiligence  DealStage = "due_diligence"
	DealStageClosing       DealStage = "closing"
	DealStageClosedWon     DealStage = "closed_won"
	DealStageClosedLost    DealStage = "closed_lost"
)

// PipelineOrder lists the forward path of the pipeline. Closed stages are
// terminal and reachable from any open stage.
var PipelineOrder = []DealStage{
	DealStageProspecting,
	DealStageTeaserSent,
	DealStageNDASigned,
	DealStageNegotiation,
	DealStageDueDiligence,
	DealStageClosing,
	DealStageClosedWon,
}

// StageProgress returns the pipeline completion percentage for a stage
func StageProgress(stage DealStage) int {
	if stage == DealStageClosedLost {
		return 100
	}
	for i, s := range PipelineOrder {
		if s == stage {
			return (i + 1) * 100 / len(PipelineOrder)
		}
	}
	return 0
}

// ImportStatus represents the outcome of a prospect import batch
type ImportStatus string

const (
	ImportStatusCompleted ImportStatus = "completed"
	ImportStatusFailed    ImportStatus = "failed"
)

// Field length constraints
const (
	MaxNameLength        = 255
	MaxDescriptionLength = 1000
	MaxEmailLength       = 320 // RFC 3696 specification
	MaxPhoneLength       = 15  // E.164 format
)

// DefaultPageSize and MaxPageSize bound list pagination
const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)
