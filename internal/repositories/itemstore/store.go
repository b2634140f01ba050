package itemstore

import (
	"context"

	"github.com/KirkDiggler/rpg-items/internal/entities/items"
	"github.com/KirkDiggler/rpg-items/internal/errors"
	"github.com/KirkDiggler/rpg-items/internal/storage"
)

// Config contains configuration for the items repository
type Config struct {
	Store storage.Store
}

// Validate validates the Config
func (cfg *Config) Validate() error {
	if cfg == nil {
		return errors.InvalidArgument("config cannot be nil")
	}
	if cfg.Store == nil {
		return errors.InvalidArgument("store cannot be nil")
	}
	return nil
}

type repository struct {
	store storage.Store
}

// New creates an items repository on top of a key/value store
func New(cfg *Config) (Repository, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &repository{
		store: cfg.Store,
	}, nil
}

// Ensure repository implements Repository
var _ Repository = (*repository)(nil)

func (r *repository) Load(ctx context.Context, _ LoadInput) (*LoadOutput, error) {
	data, ok, err := r.store.Get(ctx, StorageKey)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read %s", StorageKey)
	}
	if !ok {
		return &LoadOutput{
			Container: items.NewContainer(),
			Report:    items.LoadReport{Migrated: map[items.Version]int{}},
		}, nil
	}

	container, report, err := items.LoadWithReport(data)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to load %s", StorageKey)
	}

	return &LoadOutput{
		Container: container,
		Found:     true,
		Report:    report,
	}, nil
}

func (r *repository) Save(ctx context.Context, input SaveInput) (*SaveOutput, error) {
	data, err := items.Save(input.Container)
	if err != nil {
		return nil, err
	}

	if err := r.store.Set(ctx, StorageKey, data); err != nil {
		return nil, errors.Wrapf(err, "failed to write %s", StorageKey)
	}

	return &SaveOutput{Size: len(data)}, nil
}
