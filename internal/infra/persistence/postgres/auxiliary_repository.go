// Package postgres contains the concrete implementation of the persistence layer using GORM and PostgreSQL.
package postgres

import (
	"context"
	"time"

	"agenda/internal/domain/entity"
	domainerrors "agenda/internal/domain/errors"
	"agenda/internal/domain/repository"
	"agenda/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// auxiliaryRepository is the single GORM-backed implementation behind
// all six auxiliary entity types. The per-type constructors below
// supply the entity/model mappers and the list-query whitelists.
type auxiliaryRepository[E, M any] struct {
	db            *gorm.DB
	toModel       func(*E) *M
	toEntity      func(*M) *E
	searchColumns []string
	orderable     map[string]string
}

const auxiliaryDefaultOrder = "created_at"

// Create persists a new standalone auxiliary row and copies the
// generated id and timestamps back onto the entity.
func (repo *auxiliaryRepository[E, M]) Create(ctx context.Context, item *E) error {
	itemM := repo.toModel(item)
	if err := repo.db.WithContext(ctx).Create(itemM).Error; err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to create record")
	}

	*item = *repo.toEntity(itemM)

	return nil
}

// FindByID retrieves a row by id across all records, active or not.
func (repo *auxiliaryRepository[E, M]) FindByID(ctx context.Context, id uuid.UUID) (*E, error) {
	var itemM M
	err := repo.db.WithContext(ctx).First(&itemM, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrRecordNotFound
		}

		return nil, errors.Wrap(err, "failed to find record by id")
	}

	return repo.toEntity(&itemM), nil
}

// List returns one page of rows under the given scope.
func (repo *auxiliaryRepository[E, M]) List(ctx context.Context, scope repository.Scope, query repository.ListQuery) (*repository.Page[*E], error) {
	base := scoped(repo.db.WithContext(ctx).Model(new(M)), scope)
	base = applySearch(base, query.Search, repo.searchColumns...)

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, errors.Wrap(err, "failed to count records")
	}

	var models []*M
	listQuery := applyOrdering(base, query.Ordering, repo.orderable, auxiliaryDefaultOrder)
	if err := applyPagination(listQuery, query).Find(&models).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list records")
	}

	items := make([]*E, 0, len(models))
	for _, itemM := range models {
		items = append(items, repo.toEntity(itemM))
	}

	return &repository.Page[*E]{
		Items:    items,
		Total:    total,
		Page:     query.Page,
		PageSize: query.PageSize,
	}, nil
}

// Update persists changes to an existing row.
func (repo *auxiliaryRepository[E, M]) Update(ctx context.Context, item *E) error {
	itemM := repo.toModel(item)
	result := repo.db.WithContext(ctx).Model(itemM).Select("*").Omit("id", "created_at").Updates(itemM)
	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to update record")
	}
	if result.RowsAffected == 0 {
		return repository.ErrRecordNotFound
	}

	*item = *repo.toEntity(itemM)

	return nil
}

// SetActive flips the soft-delete flag. The write is idempotent, so a
// zero row count only ever means the id does not exist.
func (repo *auxiliaryRepository[E, M]) SetActive(ctx context.Context, id uuid.UUID, active bool) error {
	result := repo.db.WithContext(ctx).Model(new(M)).
		Where("id = ?", id).
		Updates(map[string]any{"active": active, "updated_at": time.Now()})
	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to set record active flag")
	}
	if result.RowsAffected == 0 {
		return repository.ErrRecordNotFound
	}

	return nil
}

// NewPhoneRepository is the constructor for the phone repository.
func NewPhoneRepository(db *gorm.DB) repository.AuxiliaryRepository[entity.Phone] {
	return &auxiliaryRepository[entity.Phone, model.PhoneModel]{
		db:            db,
		toModel:       fromPhoneDomain,
		toEntity:      toPhoneDomain,
		searchColumns: []string{"number"},
		orderable: map[string]string{
			"number":     "number",
			"kind":       "kind",
			"created_at": "created_at",
			"updated_at": "updated_at",
		},
	}
}

// NewEmailRepository is the constructor for the email repository.
func NewEmailRepository(db *gorm.DB) repository.AuxiliaryRepository[entity.Email] {
	return &auxiliaryRepository[entity.Email, model.EmailModel]{
		db:            db,
		toModel:       fromEmailDomain,
		toEntity:      toEmailDomain,
		searchColumns: []string{"address"},
		orderable: map[string]string{
			"address":    "address",
			"kind":       "kind",
			"created_at": "created_at",
			"updated_at": "updated_at",
		},
	}
}

// NewAddressRepository is the constructor for the postal address repository.
func NewAddressRepository(db *gorm.DB) repository.AuxiliaryRepository[entity.Address] {
	return &auxiliaryRepository[entity.Address, model.AddressModel]{
		db:            db,
		toModel:       fromAddressDomain,
		toEntity:      toAddressDomain,
		searchColumns: []string{"street"},
		orderable: map[string]string{
			"street":     "street",
			"kind":       "kind",
			"created_at": "created_at",
			"updated_at": "updated_at",
		},
	}
}

// NewImportantDateRepository is the constructor for the important-date repository.
func NewImportantDateRepository(db *gorm.DB) repository.AuxiliaryRepository[entity.ImportantDate] {
	return &auxiliaryRepository[entity.ImportantDate, model.ImportantDateModel]{
		db:            db,
		toModel:       fromImportantDateDomain,
		toEntity:      toImportantDateDomain,
		searchColumns: []string{"kind"},
		orderable: map[string]string{
			"date":       "date",
			"kind":       "kind",
			"created_at": "created_at",
			"updated_at": "updated_at",
		},
	}
}

// NewRelatedPersonRepository is the constructor for the related-person repository.
func NewRelatedPersonRepository(db *gorm.DB) repository.AuxiliaryRepository[entity.RelatedPerson] {
	return &auxiliaryRepository[entity.RelatedPerson, model.RelatedPersonModel]{
		db:            db,
		toModel:       fromRelatedPersonDomain,
		toEntity:      toRelatedPersonDomain,
		searchColumns: []string{"name"},
		orderable: map[string]string{
			"name":       "name",
			"kind":       "kind",
			"created_at": "created_at",
			"updated_at": "updated_at",
		},
	}
}

// NewTagRepository is the constructor for the tag repository.
func NewTagRepository(db *gorm.DB) repository.AuxiliaryRepository[entity.Tag] {
	return &auxiliaryRepository[entity.Tag, model.TagModel]{
		db:            db,
		toModel:       fromTagDomain,
		toEntity:      toTagDomain,
		searchColumns: []string{"label"},
		orderable: map[string]string{
			"label":      "label",
			"created_at": "created_at",
			"updated_at": "updated_at",
		},
	}
}

// --- mappers between persistence models and domain entities ---

func toPhoneDomain(m *model.PhoneModel) *entity.Phone {
	return &entity.Phone{
		Record: entity.Record{ID: m.ID, CreatedAt: m.CreatedAt, UpdatedAt: m.UpdatedAt, Active: m.Active},
		Number: m.Number,
		Kind:   entity.PhoneKind(m.Kind),
	}
}

func fromPhoneDomain(e *entity.Phone) *model.PhoneModel {
	return &model.PhoneModel{
		ID:        e.ID,
		Number:    e.Number,
		Kind:      e.Kind.String(),
		Active:    e.Active,
		CreatedAt: e.CreatedAt,
		UpdatedAt: e.UpdatedAt,
	}
}

func toEmailDomain(m *model.EmailModel) *entity.Email {
	return &entity.Email{
		Record:  entity.Record{ID: m.ID, CreatedAt: m.CreatedAt, UpdatedAt: m.UpdatedAt, Active: m.Active},
		Address: m.Address,
		Kind:    entity.EmailKind(m.Kind),
	}
}

func fromEmailDomain(e *entity.Email) *model.EmailModel {
	return &model.EmailModel{
		ID:        e.ID,
		Address:   e.Address,
		Kind:      e.Kind.String(),
		Active:    e.Active,
		CreatedAt: e.CreatedAt,
		UpdatedAt: e.UpdatedAt,
	}
}

func toAddressDomain(m *model.AddressModel) *entity.Address {
	return &entity.Address{
		Record: entity.Record{ID: m.ID, CreatedAt: m.CreatedAt, UpdatedAt: m.UpdatedAt, Active: m.Active},
		Street: m.Street,
		Kind:   entity.AddressKind(m.Kind),
	}
}

func fromAddressDomain(e *entity.Address) *model.AddressModel {
	return &model.AddressModel{
		ID:        e.ID,
		Street:    e.Street,
		Kind:      e.Kind.String(),
		Active:    e.Active,
		CreatedAt: e.CreatedAt,
		UpdatedAt: e.UpdatedAt,
	}
}

func toImportantDateDomain(m *model.ImportantDateModel) *entity.ImportantDate {
	return &entity.ImportantDate{
		Record: entity.Record{ID: m.ID, CreatedAt: m.CreatedAt, UpdatedAt: m.UpdatedAt, Active: m.Active},
		Date:   m.Date,
		Kind:   entity.DateKind(m.Kind),
	}
}

func fromImportantDateDomain(e *entity.ImportantDate) *model.ImportantDateModel {
	return &model.ImportantDateModel{
		ID:        e.ID,
		Date:      e.Date,
		Kind:      e.Kind.String(),
		Active:    e.Active,
		CreatedAt: e.CreatedAt,
		UpdatedAt: e.UpdatedAt,
	}
}

func toRelatedPersonDomain(m *model.RelatedPersonModel) *entity.RelatedPerson {
	return &entity.RelatedPerson{
		Record: entity.Record{ID: m.ID, CreatedAt: m.CreatedAt, UpdatedAt: m.UpdatedAt, Active: m.Active},
		Name:   m.Name,
		Kind:   entity.RelationKind(m.Kind),
	}
}

func fromRelatedPersonDomain(e *entity.RelatedPerson) *model.RelatedPersonModel {
	return &model.RelatedPersonModel{
		ID:        e.ID,
		Name:      e.Name,
		Kind:      e.Kind.String(),
		Active:    e.Active,
		CreatedAt: e.CreatedAt,
		UpdatedAt: e.UpdatedAt,
	}
}

func toTagDomain(m *model.TagModel) *entity.Tag {
	return &entity.Tag{
		Record: entity.Record{ID: m.ID, CreatedAt: m.CreatedAt, UpdatedAt: m.UpdatedAt, Active: m.Active},
		Label:  entity.TagKind(m.Label),
	}
}

func fromTagDomain(e *entity.Tag) *model.TagModel {
	return &model.TagModel{
		ID:        e.ID,
		Label:     e.Label.String(),
		Active:    e.Active,
		CreatedAt: e.CreatedAt,
		UpdatedAt: e.UpdatedAt,
	}
}
