package services

import (
	"context"
	"fmt"
	"time"

	"github.com/ehsanhossain/VentureFlow-sub000/v1/models"
	"github.com/ehsanhossain/VentureFlow-sub000/v1/sharing"
)

// SharingConfigService is the admin surface over the partner sharing
// allow-list
type SharingConfigService struct {
	store *sharing.ConfigStore
}

// NewSharingConfigService creates a new sharing config service
func NewSharingConfigService(store *sharing.ConfigStore) *SharingConfigService {
	return &SharingConfigService{store: store}
}

// GetConfig returns the stored allow-list for an entity type. Absent config
// reads as an empty map.
func (s *SharingConfigService) GetConfig(ctx context.Context, rawType string) (*models.SharingConfigResponse, error) {
	entityType, ok := sharing.NormalizeEntityType(rawType)
	if !ok {
		return nil, fmt.Errorf("unknown entity type: %s", rawType)
	}

	fields, err := s.store.Get(ctx, entityType)
	if err != nil {
		return nil, err
	}
	if fields == nil {
		fields = models.FieldMap{}
	}

	return &models.SharingConfigResponse{
		EntityType: string(entityType),
		Fields:     fields,
		UpdatedAt:  time.Now().Format(time.RFC3339),
	}, nil
}

// UpdateConfig replaces the allow-list for an entity type. Keys that do not
// match any known field are stored verbatim (the planner will keep dropping
// them) but reported back so an admin typo is visible at write time.
func (s *SharingConfigService) UpdateConfig(ctx context.Context, rawType string, req *models.UpdateSharingConfigRequest) (*models.SharingConfigResponse, error) {
	entityType, ok := sharing.NormalizeEntityType(rawType)
	if !ok {
		return nil, fmt.Errorf("unknown entity type: %s", rawType)
	}
	if req.Fields == nil {
		return nil, fmt.Errorf("fields mapping is required")
	}

	if err := s.store.Put(ctx, entityType, req.Fields); err != nil {
		return nil, err
	}

	return &models.SharingConfigResponse{
		EntityType:   string(entityType),
		Fields:       req.Fields,
		RejectedKeys: sharing.UnknownKeys(req.Fields, sharing.DescriptorFor(entityType)),
		UpdatedAt:    time.Now().Format(time.RFC3339),
	}, nil
}
