// Package impl contains the implementation of the application's business logic.
package impl

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"agenda/config"
	deliverycontext "agenda/internal/delivery/context"
	"agenda/internal/domain/entity"
	domainerrors "agenda/internal/domain/errors"
	"agenda/internal/domain/repository"
	"agenda/internal/domain/service"
	"agenda/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// contactService implements the ContactUsecase interface.
type contactService struct {
	txManager   repository.TransactionManager
	contactRepo repository.ContactRepository
	qrService   service.QRCodeService
	pagination  paginationDefaults
	logger      *slog.Logger
}

// ContactServiceParams holds dependencies for contactService, injected by Fx.
type ContactServiceParams struct {
	fx.In

	TxManager   repository.TransactionManager
	ContactRepo repository.ContactRepository
	QRService   service.QRCodeService
	Config      *config.Config
	Logger      *slog.Logger
}

// NewContactService is the constructor for contactService.
func NewContactService(params ContactServiceParams) usecase.ContactUsecase {
	return &contactService{
		txManager:   params.TxManager,
		contactRepo: params.ContactRepo,
		qrService:   params.QRService,
		pagination:  newPaginationDefaults(params.Config),
		logger:      params.Logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *contactService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// CreateContact persists a contact and all nested auxiliary items
// atomically. The payload must carry a name, a last name and at least
// one phone; every kind code is validated before anything is written.
func (srv *contactService) CreateContact(ctx context.Context, input *usecase.CreateContactInput) (*usecase.ContactOutput, error) {
	ownerID, err := parseID(input.OwnerID, domainerrors.ErrUserNotFound)
	if err != nil {
		return nil, err
	}

	if strings.TrimSpace(input.Name) == "" || strings.TrimSpace(input.LastName) == "" || len(input.Phones) == 0 {
		return nil, domainerrors.ErrContactIncomplete
	}

	contact := &entity.Contact{
		Name:     input.Name,
		LastName: input.LastName,
		Company:  input.Company,
		Website:  input.Website,
		SIP:      input.SIP,
		Notes:    input.Notes,
		OwnerID:  ownerID,
	}
	contact.Restore()

	additions, err := buildAdditions(contact, collectionInputs{
		Phones:         input.Phones,
		Emails:         input.Emails,
		Addresses:      input.Addresses,
		ImportantDates: input.ImportantDates,
		RelatedPersons: input.RelatedPersons,
		Tags:           input.Tags,
	})
	if err != nil {
		return nil, err
	}
	contact.Phones = additions.Phones
	contact.Emails = additions.Emails
	contact.Addresses = additions.Addresses
	contact.ImportantDates = additions.ImportantDates
	contact.RelatedPersons = additions.RelatedPersons
	contact.Tags = additions.Tags

	err = srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		return repoFactory.ContactRepo().Create(ctx, contact)
	})
	if err != nil {
		srv.log(ctx).Error("Failed to create contact", slog.Any("ownerID", ownerID), slog.Any("error", err))

		return nil, err
	}

	srv.log(ctx).Info("Contact created", slog.Any("contactID", contact.ID), slog.Any("ownerID", ownerID))

	return toContactOutput(contact), nil
}

// GetContact retrieves one of the owner's active contacts in full.
func (srv *contactService) GetContact(ctx context.Context, ownerID, id string) (*usecase.ContactOutput, error) {
	contact, err := srv.findOwned(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}

	return toContactOutput(contact), nil
}

// ListContacts returns one page of the owner's active contacts in the
// flattened list shape.
func (srv *contactService) ListContacts(ctx context.Context, input *usecase.ListContactsInput) (*usecase.PageOutput[*usecase.ContactListItemOutput], error) {
	owner, err := parseID(input.OwnerID, domainerrors.ErrUserNotFound)
	if err != nil {
		return nil, err
	}

	query := srv.pagination.normalizeListQuery(&input.ListInput)

	page, err := srv.contactRepo.ListActiveForOwner(ctx, owner, query)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list contacts")
	}

	items := make([]*usecase.ContactListItemOutput, 0, len(page.Items))
	for _, contact := range page.Items {
		items = append(items, flattenContact(contact))
	}

	return &usecase.PageOutput[*usecase.ContactListItemOutput]{
		Items:    items,
		Total:    page.Total,
		Page:     query.Page,
		PageSize: query.PageSize,
	}, nil
}

// UpdateContact applies a partial update atomically: scalar changes
// plus additive collection entries. Entries already present on the
// contact are skipped, so replaying the same payload changes nothing.
func (srv *contactService) UpdateContact(ctx context.Context, input *usecase.UpdateContactInput) (*usecase.ContactOutput, error) {
	owner, err := parseID(input.OwnerID, domainerrors.ErrUserNotFound)
	if err != nil {
		return nil, err
	}
	contactID, err := parseID(input.ID, domainerrors.ErrContactNotFound)
	if err != nil {
		return nil, err
	}

	var updated *entity.Contact
	err = srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		contactRepo := repoFactory.ContactRepo()

		contact, err := contactRepo.FindActiveForOwner(ctx, contactID, owner)
		if err != nil {
			if errors.Is(err, repository.ErrContactNotFound) {
				return domainerrors.ErrContactNotFound
			}

			return errors.Wrap(err, "failed to find contact for update")
		}

		applyScalarUpdates(contact, input)
		if err := contactRepo.UpdateScalars(ctx, contact); err != nil {
			return errors.Wrap(err, "failed to update contact fields")
		}

		additions, err := buildAdditions(contact, collectionInputs{
			Phones:         input.Phones,
			Emails:         input.Emails,
			Addresses:      input.Addresses,
			ImportantDates: input.ImportantDates,
			RelatedPersons: input.RelatedPersons,
			Tags:           input.Tags,
		})
		if err != nil {
			return err
		}

		if err := contactRepo.Append(ctx, contactID, additions); err != nil {
			return errors.Wrap(err, "failed to append contact collections")
		}

		updated, err = contactRepo.FindActiveForOwner(ctx, contactID, owner)
		if err != nil {
			return errors.Wrap(err, "failed to reload updated contact")
		}

		return nil
	})
	if err != nil {
		srv.log(ctx).Error("Failed to update contact", slog.Any("contactID", contactID), slog.Any("error", err))

		return nil, err
	}

	return toContactOutput(updated), nil
}

// DeleteContact soft-deletes one of the owner's contacts. The auxiliary
// rows and join rows stay in place for a later restore.
func (srv *contactService) DeleteContact(ctx context.Context, ownerID, id string) error {
	contact, err := srv.findOwned(ctx, ownerID, id)
	if err != nil {
		return err
	}

	if err := srv.contactRepo.SetActive(ctx, contact.ID, false); err != nil {
		return errors.Wrap(err, "failed to soft-delete contact")
	}

	srv.log(ctx).Info("Contact soft-deleted", slog.Any("contactID", contact.ID))

	return nil
}

// RestoreContact reactivates one of the owner's soft-deleted contacts.
// The lookup is unscoped but still ownership-checked.
func (srv *contactService) RestoreContact(ctx context.Context, ownerID, id string) error {
	owner, err := parseID(ownerID, domainerrors.ErrUserNotFound)
	if err != nil {
		return err
	}
	contactID, err := parseID(id, domainerrors.ErrContactNotFound)
	if err != nil {
		return err
	}

	contact, err := srv.contactRepo.FindByID(ctx, contactID)
	if err != nil {
		if errors.Is(err, repository.ErrContactNotFound) {
			return domainerrors.ErrContactNotFound
		}

		return errors.Wrap(err, "failed to find contact")
	}
	if contact.OwnerID != owner {
		return domainerrors.ErrContactNotFound
	}

	if err := srv.contactRepo.SetActive(ctx, contactID, true); err != nil {
		return errors.Wrap(err, "failed to restore contact")
	}

	srv.log(ctx).Info("Contact restored", slog.Any("contactID", contactID))

	return nil
}

// ContactVCardQR renders one of the owner's active contacts as a vCard
// QR code in PNG format.
func (srv *contactService) ContactVCardQR(ctx context.Context, ownerID, id string) ([]byte, error) {
	contact, err := srv.findOwned(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}

	png, err := srv.qrService.GenerateVCardQR(buildVCard(contact))
	if err != nil {
		return nil, errors.Wrap(err, "failed to render contact QR code")
	}

	return png, nil
}

// findOwned resolves an active contact by id under the owner's scope.
func (srv *contactService) findOwned(ctx context.Context, ownerID, id string) (*entity.Contact, error) {
	owner, err := parseID(ownerID, domainerrors.ErrUserNotFound)
	if err != nil {
		return nil, err
	}
	contactID, err := parseID(id, domainerrors.ErrContactNotFound)
	if err != nil {
		return nil, err
	}

	contact, err := srv.contactRepo.FindActiveForOwner(ctx, contactID, owner)
	if err != nil {
		if errors.Is(err, repository.ErrContactNotFound) {
			return nil, domainerrors.ErrContactNotFound
		}

		return nil, errors.Wrap(err, "failed to find contact")
	}

	return contact, nil
}

// collectionInputs bundles the six nested collection payloads so the
// create and update paths share one validation pipeline.
type collectionInputs struct {
	Phones         []usecase.PhoneItemInput
	Emails         []usecase.EmailItemInput
	Addresses      []usecase.AddressItemInput
	ImportantDates []usecase.ImportantDateItemInput
	RelatedPersons []usecase.RelatedPersonItemInput
	Tags           []usecase.TagItemInput
}

// buildAdditions validates every nested entry and returns the ones not
// already present on the contact. Duplicates inside the payload itself
// collapse too: each accepted entry is registered on the contact before
// the next one is checked.
func buildAdditions(contact *entity.Contact, inputs collectionInputs) (*repository.ContactAdditions, error) {
	additions := &repository.ContactAdditions{}

	for _, item := range inputs.Phones {
		kind, err := phoneKindOrDefault(item.Kind)
		if err != nil {
			return nil, err
		}
		if contact.HasPhone(item.Number, kind) {
			continue
		}
		phone := &entity.Phone{Number: item.Number, Kind: kind}
		phone.Restore()
		contact.Phones = append(contact.Phones, phone)
		additions.Phones = append(additions.Phones, phone)
	}

	for _, item := range inputs.Emails {
		kind, err := emailKindOrDefault(item.Kind)
		if err != nil {
			return nil, err
		}
		if contact.HasEmail(item.Address, kind) {
			continue
		}
		email := &entity.Email{Address: item.Address, Kind: kind}
		email.Restore()
		contact.Emails = append(contact.Emails, email)
		additions.Emails = append(additions.Emails, email)
	}

	for _, item := range inputs.Addresses {
		kind, err := addressKindOrDefault(item.Kind)
		if err != nil {
			return nil, err
		}
		if contact.HasAddress(item.Street, kind) {
			continue
		}
		address := &entity.Address{Street: item.Street, Kind: kind}
		address.Restore()
		contact.Addresses = append(contact.Addresses, address)
		additions.Addresses = append(additions.Addresses, address)
	}

	for _, item := range inputs.ImportantDates {
		kind, date, err := importantDateOrDefault(item.Date, item.Kind)
		if err != nil {
			return nil, err
		}
		if contact.HasImportantDate(item.Date, kind) {
			continue
		}
		importantDate := &entity.ImportantDate{Date: date, Kind: kind}
		importantDate.Restore()
		contact.ImportantDates = append(contact.ImportantDates, importantDate)
		additions.ImportantDates = append(additions.ImportantDates, importantDate)
	}

	for _, item := range inputs.RelatedPersons {
		kind, err := relationKindOrDefault(item.Kind)
		if err != nil {
			return nil, err
		}
		if contact.HasRelatedPerson(item.Name, kind) {
			continue
		}
		person := &entity.RelatedPerson{Name: item.Name, Kind: kind}
		person.Restore()
		contact.RelatedPersons = append(contact.RelatedPersons, person)
		additions.RelatedPersons = append(additions.RelatedPersons, person)
	}

	for _, item := range inputs.Tags {
		label, err := tagLabelOrDefault(item.Label)
		if err != nil {
			return nil, err
		}
		if contact.HasTag(label) {
			continue
		}
		tag := &entity.Tag{Label: label}
		tag.Restore()
		contact.Tags = append(contact.Tags, tag)
		additions.Tags = append(additions.Tags, tag)
	}

	return additions, nil
}

func invalidKind(collection, code string) error {
	return domainerrors.ErrInvalidKindCode.WrapMessage(fmt.Sprintf("unknown %s kind %q", collection, code))
}

// applyScalarUpdates copies the non-nil scalar fields onto the contact.
func applyScalarUpdates(contact *entity.Contact, input *usecase.UpdateContactInput) {
	if input.Name != nil {
		contact.Name = *input.Name
	}
	if input.LastName != nil {
		contact.LastName = *input.LastName
	}
	if input.Company != nil {
		contact.Company = *input.Company
	}
	if input.Website != nil {
		contact.Website = *input.Website
	}
	if input.SIP != nil {
		contact.SIP = *input.SIP
	}
	if input.Notes != nil {
		contact.Notes = *input.Notes
	}
}

// toContactOutput maps a domain contact to the full detail representation.
func toContactOutput(contact *entity.Contact) *usecase.ContactOutput {
	output := &usecase.ContactOutput{
		ID:        contact.ID.String(),
		Name:      contact.Name,
		LastName:  contact.LastName,
		Company:   contact.Company,
		Website:   contact.Website,
		SIP:       contact.SIP,
		Notes:     contact.Notes,
		Active:    contact.Active,
		CreatedAt: contact.CreatedAt,
		UpdatedAt: contact.UpdatedAt,
	}

	for _, phone := range contact.Phones {
		output.Phones = append(output.Phones, toItemOutput(phone.ID, phone.Value(), phone.Kind.String()))
	}
	for _, email := range contact.Emails {
		output.Emails = append(output.Emails, toItemOutput(email.ID, email.Value(), email.Kind.String()))
	}
	for _, address := range contact.Addresses {
		output.Addresses = append(output.Addresses, toItemOutput(address.ID, address.Value(), address.Kind.String()))
	}
	for _, date := range contact.ImportantDates {
		output.ImportantDates = append(output.ImportantDates, toItemOutput(date.ID, date.Value(), date.Kind.String()))
	}
	for _, person := range contact.RelatedPersons {
		output.RelatedPersons = append(output.RelatedPersons, toItemOutput(person.ID, person.Value(), person.Kind.String()))
	}
	for _, tag := range contact.Tags {
		output.Tags = append(output.Tags, toItemOutput(tag.ID, tag.Value(), tag.Label.String()))
	}

	return output
}

func toItemOutput(id uuid.UUID, value, kind string) usecase.ContactItemOutput {
	return usecase.ContactItemOutput{ID: id.String(), Value: value, Kind: kind}
}

// flattenContact maps a domain contact to the list representation:
// every collection collapses to its bare values.
func flattenContact(contact *entity.Contact) *usecase.ContactListItemOutput {
	item := &usecase.ContactListItemOutput{
		ID:       contact.ID.String(),
		Name:     contact.Name,
		LastName: contact.LastName,
		Company:  contact.Company,
	}

	for _, phone := range contact.Phones {
		item.Phone = append(item.Phone, phone.Value())
	}
	for _, email := range contact.Emails {
		item.Email = append(item.Email, email.Value())
	}
	for _, address := range contact.Addresses {
		item.Address = append(item.Address, address.Value())
	}
	for _, date := range contact.ImportantDates {
		item.ImportantDate = append(item.ImportantDate, date.Value())
	}
	for _, person := range contact.RelatedPersons {
		item.RelatedPerson = append(item.RelatedPerson, person.Value())
	}
	for _, tag := range contact.Tags {
		item.Tag = append(item.Tag, tag.Value())
	}

	return item
}

// vcardEscaper escapes the characters vCard 3.0 reserves in text
// values (RFC 2426 §2.4.2).
var vcardEscaper = strings.NewReplacer(
	"\\", "\\\\",
	";", "\\;",
	",", "\\,",
	"\r\n", "\\n",
	"\n", "\\n",
	"\r", "\\n",
)

// buildVCard renders the contact as a vCard 3.0 payload for QR sharing.
func buildVCard(contact *entity.Contact) string {
	esc := vcardEscaper.Replace

	var b strings.Builder
	b.WriteString("BEGIN:VCARD\r\nVERSION:3.0\r\n")
	fmt.Fprintf(&b, "N:%s;%s;;;\r\n", esc(contact.LastName), esc(contact.Name))
	fmt.Fprintf(&b, "FN:%s %s\r\n", esc(contact.Name), esc(contact.LastName))
	if contact.Company != "" {
		fmt.Fprintf(&b, "ORG:%s\r\n", esc(contact.Company))
	}
	if contact.Website != "" {
		fmt.Fprintf(&b, "URL:%s\r\n", esc(contact.Website))
	}
	for _, phone := range contact.Phones {
		fmt.Fprintf(&b, "TEL;TYPE=%s:%s\r\n", phone.Kind, esc(phone.Number))
	}
	for _, email := range contact.Emails {
		fmt.Fprintf(&b, "EMAIL;TYPE=%s:%s\r\n", email.Kind, esc(email.Address))
	}
	for _, address := range contact.Addresses {
		fmt.Fprintf(&b, "ADR;TYPE=%s:;;%s;;;;\r\n", address.Kind, esc(address.Street))
	}
	if contact.Notes != "" {
		fmt.Fprintf(&b, "NOTE:%s\r\n", esc(contact.Notes))
	}
	b.WriteString("END:VCARD\r\n")

	return b.String()
}
