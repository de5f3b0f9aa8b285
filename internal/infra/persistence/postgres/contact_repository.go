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

// contactRepository implements the domain.ContactRepository interface using GORM.
type contactRepository struct {
	db *gorm.DB
}

var contactAssociations = []string{"Phones", "Emails", "Addresses", "ImportantDates", "RelatedPersons", "Tags"}

var contactOrderable = map[string]string{
	"name":       "name",
	"last_name":  "last_name",
	"company":    "company",
	"created_at": "created_at",
	"updated_at": "updated_at",
}

// NewContactRepository is the constructor for contactRepository.
func NewContactRepository(db *gorm.DB) repository.ContactRepository {
	return &contactRepository{db: db}
}

// activeOnly is the preload condition for contact collections on the
// end-user read path: a soft-deleted auxiliary row stays linked but no
// longer appears on the contact.
func activeOnly(db *gorm.DB) *gorm.DB {
	return db.Where("active = ?", true)
}

// Create persists the contact row, every auxiliary item present in its
// collections, and the join rows linking them. GORM inserts the
// associated models and the many-to-many join rows alongside the
// contact itself, so the caller must run this inside a transaction
// when atomicity with other writes matters.
func (repo *contactRepository) Create(ctx context.Context, contact *entity.Contact) error {
	contactM := fromContactDomain(contact)
	if err := repo.db.WithContext(ctx).Create(contactM).Error; err != nil {
		if isForeignKeyViolation(err) {
			return domainerrors.ErrValidationFailed.WrapMessage("contact owner does not exist")
		}
		if isNotNullViolation(err) {
			return domainerrors.ErrValidationFailed.WrapMessage("missing required contact information")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create contact")
	}

	*contact = *toContactDomain(contactM)

	return nil
}

// FindByID retrieves a contact with all collections preloaded, across
// all records, active or not. Administrative read path.
func (repo *contactRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Contact, error) {
	query := repo.db.WithContext(ctx)
	for _, association := range contactAssociations {
		query = query.Preload(association)
	}

	var contactM model.ContactModel
	if err := query.First(&contactM, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrContactNotFound
		}

		return nil, errors.Wrap(err, "failed to find contact by id")
	}

	return toContactDomain(&contactM), nil
}

// FindActiveForOwner retrieves an active contact owned by the given
// user, with active collection items preloaded.
func (repo *contactRepository) FindActiveForOwner(ctx context.Context, id, ownerID uuid.UUID) (*entity.Contact, error) {
	query := scoped(repo.db.WithContext(ctx), repository.ScopeActive)
	for _, association := range contactAssociations {
		query = query.Preload(association, activeOnly)
	}

	var contactM model.ContactModel
	err := query.Where("user_id = ?", ownerID).First(&contactM, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrContactNotFound
		}

		return nil, errors.Wrap(err, "failed to find contact for owner")
	}

	return toContactDomain(&contactM), nil
}

// ListActiveForOwner returns one page of the owner's active contacts
// with active collection items preloaded.
func (repo *contactRepository) ListActiveForOwner(ctx context.Context, ownerID uuid.UUID, query repository.ListQuery) (*repository.Page[*entity.Contact], error) {
	base := scoped(repo.db.WithContext(ctx).Model(&model.ContactModel{}), repository.ScopeActive).
		Where("user_id = ?", ownerID)
	base = applySearch(base, query.Search, "name", "last_name", "company", "notes")

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, errors.Wrap(err, "failed to count contacts")
	}

	listQuery := applyOrdering(base, query.Ordering, contactOrderable, "last_name, name")
	for _, association := range contactAssociations {
		listQuery = listQuery.Preload(association, activeOnly)
	}

	var models []*model.ContactModel
	if err := applyPagination(listQuery, query).Find(&models).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list contacts")
	}

	contacts := make([]*entity.Contact, 0, len(models))
	for _, contactM := range models {
		contacts = append(contacts, toContactDomain(contactM))
	}

	return &repository.Page[*entity.Contact]{
		Items:    contacts,
		Total:    total,
		Page:     query.Page,
		PageSize: query.PageSize,
	}, nil
}

// UpdateScalars persists changes to the contact's scalar fields only.
// Collections are deliberately omitted so the write can never detach
// or mutate linked auxiliary rows.
func (repo *contactRepository) UpdateScalars(ctx context.Context, contact *entity.Contact) error {
	result := repo.db.WithContext(ctx).Model(&model.ContactModel{}).
		Where("id = ?", contact.ID).
		Updates(map[string]any{
			"name":       contact.Name,
			"last_name":  contact.LastName,
			"company":    contact.Company,
			"website":    contact.Website,
			"sip":        contact.SIP,
			"notes":      contact.Notes,
			"updated_at": time.Now(),
		})
	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to update contact")
	}
	if result.RowsAffected == 0 {
		return repository.ErrContactNotFound
	}

	return nil
}

// Append creates each addition as a new auxiliary row and links it to
// the contact. Existing associations are never removed or altered;
// partial updates to the collections are strictly additive.
func (repo *contactRepository) Append(ctx context.Context, contactID uuid.UUID, additions *repository.ContactAdditions) error {
	if additions.Empty() {
		return nil
	}

	db := repo.db.WithContext(ctx)

	var contactM model.ContactModel
	if err := db.First(&contactM, "id = ?", contactID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return repository.ErrContactNotFound
		}

		return errors.Wrap(err, "failed to find contact for append")
	}

	appendOne := func(association string, items ...any) error {
		if len(items) == 0 {
			return nil
		}
		if err := db.Model(&contactM).Association(association).Append(items...); err != nil {
			return domainerrors.NewDatabaseExecuteError(err, "failed to append to contact collection")
		}

		return nil
	}

	phones := make([]any, 0, len(additions.Phones))
	for _, phone := range additions.Phones {
		phones = append(phones, fromPhoneDomain(phone))
	}
	if err := appendOne("Phones", phones...); err != nil {
		return err
	}

	emails := make([]any, 0, len(additions.Emails))
	for _, email := range additions.Emails {
		emails = append(emails, fromEmailDomain(email))
	}
	if err := appendOne("Emails", emails...); err != nil {
		return err
	}

	addresses := make([]any, 0, len(additions.Addresses))
	for _, address := range additions.Addresses {
		addresses = append(addresses, fromAddressDomain(address))
	}
	if err := appendOne("Addresses", addresses...); err != nil {
		return err
	}

	dates := make([]any, 0, len(additions.ImportantDates))
	for _, date := range additions.ImportantDates {
		dates = append(dates, fromImportantDateDomain(date))
	}
	if err := appendOne("ImportantDates", dates...); err != nil {
		return err
	}

	persons := make([]any, 0, len(additions.RelatedPersons))
	for _, person := range additions.RelatedPersons {
		persons = append(persons, fromRelatedPersonDomain(person))
	}
	if err := appendOne("RelatedPersons", persons...); err != nil {
		return err
	}

	tags := make([]any, 0, len(additions.Tags))
	for _, tag := range additions.Tags {
		tags = append(tags, fromTagDomain(tag))
	}

	return appendOne("Tags", tags...)
}

// SetActive flips the soft-delete flag. The row and its join rows stay
// in place, so a restore brings the full aggregate back.
func (repo *contactRepository) SetActive(ctx context.Context, id uuid.UUID, active bool) error {
	result := repo.db.WithContext(ctx).Model(&model.ContactModel{}).
		Where("id = ?", id).
		Updates(map[string]any{"active": active, "updated_at": time.Now()})
	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to set contact active flag")
	}
	if result.RowsAffected == 0 {
		return repository.ErrContactNotFound
	}

	return nil
}

// toContactDomain maps the persistence model, collections included,
// back to a pure domain entity.
func toContactDomain(m *model.ContactModel) *entity.Contact {
	contact := &entity.Contact{
		Record:   entity.Record{ID: m.ID, CreatedAt: m.CreatedAt, UpdatedAt: m.UpdatedAt, Active: m.Active},
		Name:     m.Name,
		LastName: m.LastName,
		Company:  m.Company,
		Website:  m.Website,
		SIP:      m.SIP,
		Notes:    m.Notes,
		OwnerID:  m.UserID,
	}

	for _, phoneM := range m.Phones {
		contact.Phones = append(contact.Phones, toPhoneDomain(phoneM))
	}
	for _, emailM := range m.Emails {
		contact.Emails = append(contact.Emails, toEmailDomain(emailM))
	}
	for _, addressM := range m.Addresses {
		contact.Addresses = append(contact.Addresses, toAddressDomain(addressM))
	}
	for _, dateM := range m.ImportantDates {
		contact.ImportantDates = append(contact.ImportantDates, toImportantDateDomain(dateM))
	}
	for _, personM := range m.RelatedPersons {
		contact.RelatedPersons = append(contact.RelatedPersons, toRelatedPersonDomain(personM))
	}
	for _, tagM := range m.Tags {
		contact.Tags = append(contact.Tags, toTagDomain(tagM))
	}

	return contact
}

// fromContactDomain maps a pure domain entity, collections included,
// to a GORM persistence model.
func fromContactDomain(e *entity.Contact) *model.ContactModel {
	contactM := &model.ContactModel{
		ID:        e.ID,
		Name:      e.Name,
		LastName:  e.LastName,
		Company:   e.Company,
		Website:   e.Website,
		SIP:       e.SIP,
		Notes:     e.Notes,
		UserID:    e.OwnerID,
		Active:    e.Active,
		CreatedAt: e.CreatedAt,
		UpdatedAt: e.UpdatedAt,
	}

	for _, phone := range e.Phones {
		contactM.Phones = append(contactM.Phones, fromPhoneDomain(phone))
	}
	for _, email := range e.Emails {
		contactM.Emails = append(contactM.Emails, fromEmailDomain(email))
	}
	for _, address := range e.Addresses {
		contactM.Addresses = append(contactM.Addresses, fromAddressDomain(address))
	}
	for _, date := range e.ImportantDates {
		contactM.ImportantDates = append(contactM.ImportantDates, fromImportantDateDomain(date))
	}
	for _, person := range e.RelatedPersons {
		contactM.RelatedPersons = append(contactM.RelatedPersons, fromRelatedPersonDomain(person))
	}
	for _, tag := range e.Tags {
		contactM.Tags = append(contactM.Tags, fromTagDomain(tag))
	}

	return contactM
}
