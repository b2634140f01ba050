// Package item implements the items orchestrator: every call loads the
// persisted container, applies one container operation and saves the result
// when it changed.
package item

//go:generate mockgen -destination=mock/mock_service.go -package=itemmock github.com/KirkDiggler/rpg-items/internal/orchestrators/item Service

import (
	"context"
	"strconv"
	"sync"

	"github.com/rs/zerolog"
	"github.com/samber/lo"

	"github.com/KirkDiggler/rpg-items/internal/entities/items"
	"github.com/KirkDiggler/rpg-items/internal/errors"
	"github.com/KirkDiggler/rpg-items/internal/pkg/idgen"
	"github.com/KirkDiggler/rpg-items/internal/repositories/itemstore"
)

// Service defines the item operations offered to callers
type Service interface {
	CreateItem(ctx context.Context, input *CreateItemInput) (*CreateItemOutput, error)
	GetItem(ctx context.Context, input *GetItemInput) (*GetItemOutput, error)
	ListItems(ctx context.Context, input *ListItemsInput) (*ListItemsOutput, error)
	UpdateItem(ctx context.Context, input *UpdateItemInput) (*UpdateItemOutput, error)
	DeleteItem(ctx context.Context, input *DeleteItemInput) (*DeleteItemOutput, error)

	ExportItems(ctx context.Context, input *ExportItemsInput) (*ExportItemsOutput, error)
	ImportItems(ctx context.Context, input *ImportItemsInput) (*ImportItemsOutput, error)

	// CheckItems loads the persisted container without writing it back and
	// reports what a later write would migrate
	CheckItems(ctx context.Context, input *CheckItemsInput) (*CheckItemsOutput, error)
}

// Config holds the dependencies for the item orchestrator
type Config struct {
	ItemRepo    itemstore.Repository
	IDGenerator idgen.Generator
	// Logger is optional; nothing is logged when it is nil
	Logger *zerolog.Logger
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	if c == nil {
		return errors.InvalidArgument("config cannot be nil")
	}

	vb := errors.NewValidationBuilder()

	if c.ItemRepo == nil {
		vb.RequiredField("ItemRepo")
	}
	if c.IDGenerator == nil {
		vb.RequiredField("IDGenerator")
	}

	return vb.Build()
}

type orchestrator struct {
	// mu serializes load-modify-save cycles within this process
	mu       sync.Mutex
	itemRepo itemstore.Repository
	idGen    idgen.Generator
	logger   zerolog.Logger
}

// NewOrchestrator creates a new item orchestrator with the provided dependencies
func NewOrchestrator(cfg *Config) (Service, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	logger := zerolog.Nop()
	if cfg.Logger != nil {
		logger = cfg.Logger.With().Str("component", "item_orchestrator").Logger()
	}

	return &orchestrator{
		itemRepo: cfg.ItemRepo,
		idGen:    cfg.IDGenerator,
		logger:   logger,
	}, nil
}

func (o *orchestrator) CreateItem(ctx context.Context, input *CreateItemInput) (*CreateItemOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	o.mu.Lock()
	defer o.mu.Unlock()

	container, err := o.load(ctx)
	if err != nil {
		return nil, err
	}

	id, container := container.Create(o.idGen)
	created, _ := container.Get(id)
	created.Name = input.Name
	created.Description = input.Description
	created.ImageURL = input.ImageURL
	created.AsBait = input.AsBait
	created.AsChest = input.AsChest
	container = container.Set(created)

	if err := o.save(ctx, container); err != nil {
		return nil, err
	}

	o.logger.Info().Str("item_id", id.String()).Msg("item created")

	stored, _ := container.Get(id)
	return &CreateItemOutput{Item: stored}, nil
}

func (o *orchestrator) GetItem(ctx context.Context, input *GetItemInput) (*GetItemOutput, error) {
	if err := validateItemID(input, func(in *GetItemInput) items.ItemID { return in.ItemID }); err != nil {
		return nil, err
	}

	o.mu.Lock()
	defer o.mu.Unlock()

	container, err := o.load(ctx)
	if err != nil {
		return nil, err
	}

	found, ok := container.Get(input.ItemID)
	if !ok {
		return nil, errors.NotFoundf("item %s not found", input.ItemID).
			WithMeta("item_id", input.ItemID.String())
	}

	return &GetItemOutput{Item: found}, nil
}

func (o *orchestrator) ListItems(ctx context.Context, input *ListItemsInput) (*ListItemsOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	o.mu.Lock()
	defer o.mu.Unlock()

	container, err := o.load(ctx)
	if err != nil {
		return nil, err
	}

	return &ListItemsOutput{Items: container.All()}, nil
}

func (o *orchestrator) UpdateItem(ctx context.Context, input *UpdateItemInput) (*UpdateItemOutput, error) {
	if err := validateItemID(input, func(in *UpdateItemInput) items.ItemID { return in.Item.ItemID }); err != nil {
		return nil, err
	}

	o.mu.Lock()
	defer o.mu.Unlock()

	container, err := o.load(ctx)
	if err != nil {
		return nil, err
	}

	created := !container.Has(input.Item.ItemID)
	container = container.Set(input.Item)

	if err := o.save(ctx, container); err != nil {
		return nil, err
	}

	o.logger.Info().
		Str("item_id", input.Item.ItemID.String()).
		Bool("created", created).
		Msg("item updated")

	stored, _ := container.Get(input.Item.ItemID)
	return &UpdateItemOutput{Item: stored, Created: created}, nil
}

func (o *orchestrator) DeleteItem(ctx context.Context, input *DeleteItemInput) (*DeleteItemOutput, error) {
	if err := validateItemID(input, func(in *DeleteItemInput) items.ItemID { return in.ItemID }); err != nil {
		return nil, err
	}

	o.mu.Lock()
	defer o.mu.Unlock()

	container, err := o.load(ctx)
	if err != nil {
		return nil, err
	}

	if !container.Has(input.ItemID) {
		return &DeleteItemOutput{Deleted: false}, nil
	}

	if err := o.save(ctx, container.Remove(input.ItemID)); err != nil {
		return nil, err
	}

	o.logger.Info().Str("item_id", input.ItemID.String()).Msg("item deleted")

	return &DeleteItemOutput{Deleted: true}, nil
}

func (o *orchestrator) ExportItems(ctx context.Context, input *ExportItemsInput) (*ExportItemsOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	o.mu.Lock()
	defer o.mu.Unlock()

	container, err := o.load(ctx)
	if err != nil {
		return nil, err
	}

	data, err := items.Save(container)
	if err != nil {
		return nil, err
	}

	return &ExportItemsOutput{Data: data, Count: container.Len()}, nil
}

func (o *orchestrator) ImportItems(ctx context.Context, input *ImportItemsInput) (*ImportItemsOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	container, report, err := items.LoadWithReport(input.Data)
	if err != nil {
		return nil, errors.Wrap(err, "failed to import items")
	}

	o.mu.Lock()
	defer o.mu.Unlock()

	if err := o.save(ctx, container); err != nil {
		return nil, err
	}

	o.logMigration(report)
	o.logger.Info().Int("count", container.Len()).Msg("items imported")

	return &ImportItemsOutput{
		Count:    container.Len(),
		Migrated: report.MigratedCount(),
	}, nil
}

func (o *orchestrator) CheckItems(ctx context.Context, input *CheckItemsInput) (*CheckItemsOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	o.mu.Lock()
	defer o.mu.Unlock()

	output, err := o.itemRepo.Load(ctx, itemstore.LoadInput{})
	if err != nil {
		o.logger.Warn().Err(err).Str("code", errors.GetCode(err).String()).Msg("persisted items cannot be loaded")
		return nil, errors.Wrap(err, "failed to load items")
	}

	return &CheckItemsOutput{
		Found:   output.Found,
		Total:   output.Report.Total,
		Pending: lo.Assign(output.Report.Migrated),
	}, nil
}

func (o *orchestrator) load(ctx context.Context) (items.Container, error) {
	output, err := o.itemRepo.Load(ctx, itemstore.LoadInput{})
	if err != nil {
		return items.Container{}, errors.Wrap(err, "failed to load items")
	}

	if !output.Found {
		o.logger.Debug().Msg("no items persisted yet")
	}
	o.logMigration(output.Report)

	return output.Container, nil
}

func (o *orchestrator) save(ctx context.Context, container items.Container) error {
	output, err := o.itemRepo.Save(ctx, itemstore.SaveInput{Container: container})
	if err != nil {
		return errors.Wrap(err, "failed to save items")
	}

	o.logger.Debug().
		Int("count", container.Len()).
		Int("bytes", output.Size).
		Msg("items saved")
	return nil
}

func (o *orchestrator) logMigration(report items.LoadReport) {
	if report.MigratedCount() == 0 {
		return
	}

	event := o.logger.Info().Int("total", report.Total)
	for version, count := range report.Migrated {
		event = event.Int("from_v"+strconv.Itoa(int(version)), count)
	}
	event.Msg("migrated item records to current schema")
}

func validateItemID[T any](input *T, id func(*T) items.ItemID) error {
	if input == nil {
		return errors.InvalidArgument("input is required")
	}

	vb := errors.NewValidationBuilder()
	errors.ValidateRequired("item_id", id(input).String(), vb)
	return vb.Build()
}
