package source

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/de-tools/sales-atlas/pkg/models/domain"
)

// Source loads the raw transaction records of one dataset.
type Source interface {
	Name() string
	Load(ctx context.Context) ([]domain.TransactionRecord, error)
}

// StatsProvider is implemented by sources that can summarise their dataset
// without loading it.
type StatsProvider interface {
	Stats(ctx context.Context) (domain.DatasetStats, error)
}

// Factory creates a Source from a profile
type Factory func(ctx context.Context, profile domain.SourceProfile) (Source, error)

// Registry manages source factories by source type
type Registry interface {
	// Register adds a new source factory
	Register(sourceType domain.SourceType, factory Factory) error
	// Create instantiates the source described by profile
	Create(ctx context.Context, profile domain.SourceProfile) (Source, error)
	// ListTypes returns the registered source types, sorted
	ListTypes() []domain.SourceType
}

type registry struct {
	mu        sync.RWMutex
	factories map[domain.SourceType]Factory
}

func NewRegistry() Registry {
	return &registry{
		factories: make(map[domain.SourceType]Factory),
	}
}

// DefaultRegistry has every built-in source type registered.
func DefaultRegistry() Registry {
	r := NewRegistry()
	for sourceType, factory := range map[domain.SourceType]Factory{
		domain.SourceTypeCSV:        CSVFactory,
		domain.SourceTypeXLSX:       XLSXFactory,
		domain.SourceTypeS3:         S3Factory,
		domain.SourceTypeAzureBlob:  AzureBlobFactory,
		domain.SourceTypeSnowflake:  SnowflakeFactory,
		domain.SourceTypeDatabricks: DatabricksFactory,
	} {
		// types are distinct and factories non-nil
		_ = r.Register(sourceType, factory)
	}
	return r
}

func (r *registry) Register(sourceType domain.SourceType, factory Factory) error {
	if sourceType == "" {
		return fmt.Errorf("source type cannot be empty")
	}
	if factory == nil {
		return fmt.Errorf("factory cannot be nil")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.factories[sourceType]; exists {
		return fmt.Errorf("source type %q is already registered", sourceType)
	}

	r.factories[sourceType] = factory
	return nil
}

func (r *registry) Create(ctx context.Context, profile domain.SourceProfile) (Source, error) {
	r.mu.RLock()
	factory, exists := r.factories[profile.Type]
	r.mu.RUnlock()

	if !exists {
		return nil, fmt.Errorf("source type %q is not registered", profile.Type)
	}

	return factory(ctx, profile)
}

func (r *registry) ListTypes() []domain.SourceType {
	r.mu.RLock()
	defer r.mu.RUnlock()

	types := make([]domain.SourceType, 0, len(r.factories))
	for t := range r.factories {
		types = append(types, t)
	}
	sort.Slice(types, func(i, j int) bool { return types[i] < types[j] })
	return types
}
