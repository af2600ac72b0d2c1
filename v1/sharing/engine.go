package sharing

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/ehsanhossain/VentureFlow-sub000/pkg/monitoring"
	"github.com/ehsanhossain/VentureFlow-sub000/v1/models"
)

// Projection bundles everything one partner-scoped request needs: the
// resolved allow-list (for response metadata), the select plan and the
// entity descriptor (for query projection and serialization filtering).
type Projection struct {
	EntityType models.EntityType
	FieldSet   *ResolvedFieldSet
	Plan       *SelectPlan
	Descriptor *EntityDescriptor
}

// Apply restricts a query to this projection's planned columns
func (p *Projection) Apply(q *gorm.DB) *gorm.DB {
	return Project(q, p.Plan, p.Descriptor)
}

// Engine is the per-request pipeline: config read (cached) -> resolve ->
// plan. Stateless across requests apart from the config cache.
type Engine struct {
	store *ConfigStore
}

// NewEngine creates a projection engine on top of a config store
func NewEngine(store *ConfigStore) *Engine {
	return &Engine{store: store}
}

// Store exposes the underlying config store for the admin settings surface
func (e *Engine) Store() *ConfigStore {
	return e.store
}

// ProjectionFor computes the projection for an entity type. The only
// possible failure is a storage error on an uncached config read; an absent
// or malformed configuration yields the default-deny projection.
func (e *Engine) ProjectionFor(ctx context.Context, entityType models.EntityType) (*Projection, error) {
	start := time.Now()

	raw, err := e.store.Get(ctx, entityType)
	if err != nil {
		monitoring.RecordProjectionFailure(ctx, "config_read")
		return nil, err
	}

	fs := Resolve(raw)
	d := DescriptorFor(entityType)
	plan := Plan(fs, d)

	monitoring.RecordProjectionLatency(ctx, string(entityType), time.Since(start))

	return &Projection{
		EntityType: entityType,
		FieldSet:   fs,
		Plan:       plan,
		Descriptor: d,
	}, nil
}
