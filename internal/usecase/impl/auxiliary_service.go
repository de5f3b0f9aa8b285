// Package impl contains the implementation of the application's business logic.
package impl

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"agenda/config"
	deliverycontext "agenda/internal/delivery/context"
	"agenda/internal/domain/entity"
	domainerrors "agenda/internal/domain/errors"
	"agenda/internal/domain/repository"
	"agenda/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// auxiliaryService implements the AuxiliaryUsecase interface. One
// generic engine serves all six collections; the per-type differences
// live in the build/apply/present closures registered below.
type auxiliaryService struct {
	collections map[string]auxiliaryCollection
	pagination  paginationDefaults
	logger      *slog.Logger
}

// auxiliaryCollection is the type-erased face of one collection.
type auxiliaryCollection interface {
	create(ctx context.Context, input *usecase.AuxiliaryItemInput) (*usecase.AuxiliaryItemOutput, error)
	get(ctx context.Context, id uuid.UUID) (*usecase.AuxiliaryItemOutput, error)
	list(ctx context.Context, scope repository.Scope, query repository.ListQuery) ([]*usecase.AuxiliaryItemOutput, int64, error)
	update(ctx context.Context, id uuid.UUID, input *usecase.AuxiliaryItemInput) (*usecase.AuxiliaryItemOutput, error)
	setActive(ctx context.Context, id uuid.UUID, active bool) error
}

// collection binds one auxiliary entity type to the generic engine.
type collection[E any] struct {
	repo    repository.AuxiliaryRepository[E]
	build   func(value, kind string) (*E, error)
	apply   func(item *E, value, kind string) error
	present func(item *E) *usecase.AuxiliaryItemOutput
}

func (c *collection[E]) create(ctx context.Context, input *usecase.AuxiliaryItemInput) (*usecase.AuxiliaryItemOutput, error) {
	item, err := c.build(input.Value, input.Kind)
	if err != nil {
		return nil, err
	}

	if err := c.repo.Create(ctx, item); err != nil {
		return nil, errors.Wrap(err, "failed to create item")
	}

	return c.present(item), nil
}

func (c *collection[E]) get(ctx context.Context, id uuid.UUID) (*usecase.AuxiliaryItemOutput, error) {
	item, err := c.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}

		return nil, errors.Wrap(err, "failed to find item")
	}

	return c.present(item), nil
}

func (c *collection[E]) list(ctx context.Context, scope repository.Scope, query repository.ListQuery) ([]*usecase.AuxiliaryItemOutput, int64, error) {
	page, err := c.repo.List(ctx, scope, query)
	if err != nil {
		return nil, 0, errors.Wrap(err, "failed to list items")
	}

	items := make([]*usecase.AuxiliaryItemOutput, 0, len(page.Items))
	for _, item := range page.Items {
		items = append(items, c.present(item))
	}

	return items, page.Total, nil
}

func (c *collection[E]) update(ctx context.Context, id uuid.UUID, input *usecase.AuxiliaryItemInput) (*usecase.AuxiliaryItemOutput, error) {
	item, err := c.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}

		return nil, errors.Wrap(err, "failed to find item for update")
	}

	if err := c.apply(item, input.Value, input.Kind); err != nil {
		return nil, err
	}

	if err := c.repo.Update(ctx, item); err != nil {
		if errors.Is(err, repository.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}

		return nil, errors.Wrap(err, "failed to update item")
	}

	return c.present(item), nil
}

func (c *collection[E]) setActive(ctx context.Context, id uuid.UUID, active bool) error {
	if err := c.repo.SetActive(ctx, id, active); err != nil {
		if errors.Is(err, repository.ErrRecordNotFound) {
			return domainerrors.ErrNotFound
		}

		return errors.Wrap(err, "failed to set item active flag")
	}

	return nil
}

// AuxiliaryServiceParams holds dependencies for auxiliaryService, injected by Fx.
type AuxiliaryServiceParams struct {
	fx.In

	PhoneRepo         repository.AuxiliaryRepository[entity.Phone]
	EmailRepo         repository.AuxiliaryRepository[entity.Email]
	AddressRepo       repository.AuxiliaryRepository[entity.Address]
	ImportantDateRepo repository.AuxiliaryRepository[entity.ImportantDate]
	RelatedPersonRepo repository.AuxiliaryRepository[entity.RelatedPerson]
	TagRepo           repository.AuxiliaryRepository[entity.Tag]
	Config            *config.Config
	Logger            *slog.Logger
}

// NewAuxiliaryService is the constructor for auxiliaryService.
func NewAuxiliaryService(params AuxiliaryServiceParams) usecase.AuxiliaryUsecase {
	return &auxiliaryService{
		collections: map[string]auxiliaryCollection{
			usecase.CollectionPhones:         newPhoneCollection(params.PhoneRepo),
			usecase.CollectionEmails:         newEmailCollection(params.EmailRepo),
			usecase.CollectionAddresses:      newAddressCollection(params.AddressRepo),
			usecase.CollectionImportantDates: newImportantDateCollection(params.ImportantDateRepo),
			usecase.CollectionRelatedPersons: newRelatedPersonCollection(params.RelatedPersonRepo),
			usecase.CollectionTags:           newTagCollection(params.TagRepo),
		},
		pagination: newPaginationDefaults(params.Config),
		logger:     params.Logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *auxiliaryService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

func (srv *auxiliaryService) collection(name string) (auxiliaryCollection, error) {
	c, ok := srv.collections[name]
	if !ok {
		return nil, domainerrors.ErrNotFound.WrapMessage(fmt.Sprintf("unknown collection %q", name))
	}

	return c, nil
}

// Create persists a new standalone auxiliary item.
func (srv *auxiliaryService) Create(ctx context.Context, collection string, input *usecase.AuxiliaryItemInput) (*usecase.AuxiliaryItemOutput, error) {
	c, err := srv.collection(collection)
	if err != nil {
		return nil, err
	}

	output, err := c.create(ctx, input)
	if err != nil {
		srv.log(ctx).Error("Failed to create auxiliary item", slog.String("collection", collection), slog.Any("error", err))

		return nil, err
	}

	return output, nil
}

// Get retrieves an item by id, active or not.
func (srv *auxiliaryService) Get(ctx context.Context, collection, id string) (*usecase.AuxiliaryItemOutput, error) {
	c, err := srv.collection(collection)
	if err != nil {
		return nil, err
	}

	itemID, err := parseID(id, domainerrors.ErrNotFound)
	if err != nil {
		return nil, err
	}

	return c.get(ctx, itemID)
}

// List returns one page of items.
func (srv *auxiliaryService) List(ctx context.Context, collection string, input *usecase.ListInput) (*usecase.PageOutput[*usecase.AuxiliaryItemOutput], error) {
	c, err := srv.collection(collection)
	if err != nil {
		return nil, err
	}

	query := srv.pagination.normalizeListQuery(input)

	items, total, err := c.list(ctx, listScope(input.IncludeInactive), query)
	if err != nil {
		return nil, err
	}

	return &usecase.PageOutput[*usecase.AuxiliaryItemOutput]{
		Items:    items,
		Total:    total,
		Page:     query.Page,
		PageSize: query.PageSize,
	}, nil
}

// Update replaces an item's value and kind.
func (srv *auxiliaryService) Update(ctx context.Context, collection, id string, input *usecase.AuxiliaryItemInput) (*usecase.AuxiliaryItemOutput, error) {
	c, err := srv.collection(collection)
	if err != nil {
		return nil, err
	}

	itemID, err := parseID(id, domainerrors.ErrNotFound)
	if err != nil {
		return nil, err
	}

	return c.update(ctx, itemID, input)
}

// Delete soft-deletes an item. The row stays and any contact links
// survive for a later restore.
func (srv *auxiliaryService) Delete(ctx context.Context, collection, id string) error {
	return srv.flipActive(ctx, collection, id, false)
}

// Restore reactivates a soft-deleted item.
func (srv *auxiliaryService) Restore(ctx context.Context, collection, id string) error {
	return srv.flipActive(ctx, collection, id, true)
}

func (srv *auxiliaryService) flipActive(ctx context.Context, collection, id string, active bool) error {
	c, err := srv.collection(collection)
	if err != nil {
		return err
	}

	itemID, err := parseID(id, domainerrors.ErrNotFound)
	if err != nil {
		return err
	}

	return c.setActive(ctx, itemID, active)
}

// --- per-type collection bindings ---

func newPhoneCollection(repo repository.AuxiliaryRepository[entity.Phone]) auxiliaryCollection {
	return &collection[entity.Phone]{
		repo: repo,
		build: func(value, kind string) (*entity.Phone, error) {
			k, err := phoneKindOrDefault(kind)
			if err != nil {
				return nil, err
			}
			phone := &entity.Phone{Number: value, Kind: k}
			phone.Restore()

			return phone, nil
		},
		apply: func(item *entity.Phone, value, kind string) error {
			k, err := phoneKindOrDefault(kind)
			if err != nil {
				return err
			}
			item.Number = value
			item.Kind = k

			return nil
		},
		present: func(item *entity.Phone) *usecase.AuxiliaryItemOutput {
			return presentItem(item.Record, item.Value(), item.Kind.String())
		},
	}
}

func newEmailCollection(repo repository.AuxiliaryRepository[entity.Email]) auxiliaryCollection {
	return &collection[entity.Email]{
		repo: repo,
		build: func(value, kind string) (*entity.Email, error) {
			k, err := emailKindOrDefault(kind)
			if err != nil {
				return nil, err
			}
			email := &entity.Email{Address: value, Kind: k}
			email.Restore()

			return email, nil
		},
		apply: func(item *entity.Email, value, kind string) error {
			k, err := emailKindOrDefault(kind)
			if err != nil {
				return err
			}
			item.Address = value
			item.Kind = k

			return nil
		},
		present: func(item *entity.Email) *usecase.AuxiliaryItemOutput {
			return presentItem(item.Record, item.Value(), item.Kind.String())
		},
	}
}

func newAddressCollection(repo repository.AuxiliaryRepository[entity.Address]) auxiliaryCollection {
	return &collection[entity.Address]{
		repo: repo,
		build: func(value, kind string) (*entity.Address, error) {
			k, err := addressKindOrDefault(kind)
			if err != nil {
				return nil, err
			}
			address := &entity.Address{Street: value, Kind: k}
			address.Restore()

			return address, nil
		},
		apply: func(item *entity.Address, value, kind string) error {
			k, err := addressKindOrDefault(kind)
			if err != nil {
				return err
			}
			item.Street = value
			item.Kind = k

			return nil
		},
		present: func(item *entity.Address) *usecase.AuxiliaryItemOutput {
			return presentItem(item.Record, item.Value(), item.Kind.String())
		},
	}
}

func newImportantDateCollection(repo repository.AuxiliaryRepository[entity.ImportantDate]) auxiliaryCollection {
	return &collection[entity.ImportantDate]{
		repo: repo,
		build: func(value, kind string) (*entity.ImportantDate, error) {
			k, date, err := importantDateOrDefault(value, kind)
			if err != nil {
				return nil, err
			}
			item := &entity.ImportantDate{Date: date, Kind: k}
			item.Restore()

			return item, nil
		},
		apply: func(item *entity.ImportantDate, value, kind string) error {
			k, date, err := importantDateOrDefault(value, kind)
			if err != nil {
				return err
			}
			item.Date = date
			item.Kind = k

			return nil
		},
		present: func(item *entity.ImportantDate) *usecase.AuxiliaryItemOutput {
			return presentItem(item.Record, item.Value(), item.Kind.String())
		},
	}
}

func newRelatedPersonCollection(repo repository.AuxiliaryRepository[entity.RelatedPerson]) auxiliaryCollection {
	return &collection[entity.RelatedPerson]{
		repo: repo,
		build: func(value, kind string) (*entity.RelatedPerson, error) {
			k, err := relationKindOrDefault(kind)
			if err != nil {
				return nil, err
			}
			person := &entity.RelatedPerson{Name: value, Kind: k}
			person.Restore()

			return person, nil
		},
		apply: func(item *entity.RelatedPerson, value, kind string) error {
			k, err := relationKindOrDefault(kind)
			if err != nil {
				return err
			}
			item.Name = value
			item.Kind = k

			return nil
		},
		present: func(item *entity.RelatedPerson) *usecase.AuxiliaryItemOutput {
			return presentItem(item.Record, item.Value(), item.Kind.String())
		},
	}
}

func newTagCollection(repo repository.AuxiliaryRepository[entity.Tag]) auxiliaryCollection {
	return &collection[entity.Tag]{
		repo: repo,
		build: func(value, _ string) (*entity.Tag, error) {
			label, err := tagLabelOrDefault(value)
			if err != nil {
				return nil, err
			}
			tag := &entity.Tag{Label: label}
			tag.Restore()

			return tag, nil
		},
		apply: func(item *entity.Tag, value, _ string) error {
			label, err := tagLabelOrDefault(value)
			if err != nil {
				return err
			}
			item.Label = label

			return nil
		},
		present: func(item *entity.Tag) *usecase.AuxiliaryItemOutput {
			return presentItem(item.Record, item.Value(), item.Label.String())
		},
	}
}

func presentItem(record entity.Record, value, kind string) *usecase.AuxiliaryItemOutput {
	return &usecase.AuxiliaryItemOutput{
		ID:        record.ID.String(),
		Value:     value,
		Kind:      kind,
		Active:    record.Active,
		CreatedAt: record.CreatedAt,
		UpdatedAt: record.UpdatedAt,
	}
}

// --- kind code resolution ---

func phoneKindOrDefault(kind string) (entity.PhoneKind, error) {
	if kind == "" {
		return entity.DefaultPhoneKind, nil
	}
	k := entity.PhoneKind(kind)
	if !k.IsValid() {
		return "", invalidKind("phone", kind)
	}

	return k, nil
}

func emailKindOrDefault(kind string) (entity.EmailKind, error) {
	if kind == "" {
		return entity.DefaultEmailKind, nil
	}
	k := entity.EmailKind(kind)
	if !k.IsValid() {
		return "", invalidKind("email", kind)
	}

	return k, nil
}

func addressKindOrDefault(kind string) (entity.AddressKind, error) {
	if kind == "" {
		return entity.DefaultAddressKind, nil
	}
	k := entity.AddressKind(kind)
	if !k.IsValid() {
		return "", invalidKind("address", kind)
	}

	return k, nil
}

func relationKindOrDefault(kind string) (entity.RelationKind, error) {
	if kind == "" {
		return entity.DefaultRelationKind, nil
	}
	k := entity.RelationKind(kind)
	if !k.IsValid() {
		return "", invalidKind("related person", kind)
	}

	return k, nil
}

func tagLabelOrDefault(label string) (entity.TagKind, error) {
	if label == "" {
		return entity.DefaultTagKind, nil
	}
	l := entity.TagKind(label)
	if !l.IsValid() {
		return "", invalidKind("tag", label)
	}

	return l, nil
}

func importantDateOrDefault(value, kind string) (entity.DateKind, time.Time, error) {
	k := entity.DefaultDateKind
	if kind != "" {
		k = entity.DateKind(kind)
		if !k.IsValid() {
			return "", time.Time{}, invalidKind("important date", kind)
		}
	}

	date, err := time.Parse(entity.DateLayout, value)
	if err != nil {
		return "", time.Time{}, domainerrors.ErrValidationFailed.WrapMessage(
			fmt.Sprintf("invalid date %q, expected %s", value, entity.DateLayout))
	}

	return k, date, nil
}
