package impl

import (
	"context"
	"fmt"
	"strings"
	"time"

	"agenda/internal/domain/entity"
	domainerrors "agenda/internal/domain/errors"
	"agenda/internal/domain/repository"
	"agenda/internal/domain/service"

	"github.com/google/uuid"
)

// In-memory repository fakes. They implement just enough of the
// persistence contracts for the service tests, including the scope and
// soft-delete behaviors the real GORM repositories provide.

type fakeUserRepo struct {
	users map[uuid.UUID]*entity.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[uuid.UUID]*entity.User)}
}

func (r *fakeUserRepo) Create(_ context.Context, user *entity.User) error {
	for _, existing := range r.users {
		if existing.Username == user.Username || existing.Email == user.Email {
			return repository.ErrUserDuplicate
		}
	}
	user.ID = uuid.New()
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt
	r.users[user.ID] = user

	return nil
}

func (r *fakeUserRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.User, error) {
	user, ok := r.users[id]
	if !ok {
		return nil, repository.ErrUserNotFound
	}

	return user, nil
}

func (r *fakeUserRepo) FindActiveByUsername(_ context.Context, username string) (*entity.User, error) {
	for _, user := range r.users {
		if user.Username == username && user.IsActive() {
			return user, nil
		}
	}

	return nil, repository.ErrUserNotFound
}

func (r *fakeUserRepo) List(_ context.Context, scope repository.Scope, query repository.ListQuery) (*repository.Page[*entity.User], error) {
	var items []*entity.User
	for _, user := range r.users {
		if scope == repository.ScopeActive && !user.IsActive() {
			continue
		}
		if query.Search != "" && !strings.Contains(user.Username, query.Search) {
			continue
		}
		items = append(items, user)
	}

	return &repository.Page[*entity.User]{Items: items, Total: int64(len(items))}, nil
}

func (r *fakeUserRepo) Update(_ context.Context, user *entity.User) error {
	if _, ok := r.users[user.ID]; !ok {
		return repository.ErrUserNotFound
	}
	user.UpdatedAt = time.Now()
	r.users[user.ID] = user

	return nil
}

func (r *fakeUserRepo) SetActive(_ context.Context, id uuid.UUID, active bool) error {
	user, ok := r.users[id]
	if !ok {
		return repository.ErrUserNotFound
	}
	user.Active = active

	return nil
}

type fakeContactRepo struct {
	contacts map[uuid.UUID]*entity.Contact
	findErr  error // forced FindByID failure, simulates an unavailable database
}

func newFakeContactRepo() *fakeContactRepo {
	return &fakeContactRepo{contacts: make(map[uuid.UUID]*entity.Contact)}
}

func stampRecord(record *entity.Record) {
	record.ID = uuid.New()
	record.CreatedAt = time.Now()
	record.UpdatedAt = record.CreatedAt
}

func (r *fakeContactRepo) Create(_ context.Context, contact *entity.Contact) error {
	stampRecord(&contact.Record)
	for _, phone := range contact.Phones {
		stampRecord(&phone.Record)
	}
	for _, email := range contact.Emails {
		stampRecord(&email.Record)
	}
	for _, address := range contact.Addresses {
		stampRecord(&address.Record)
	}
	for _, date := range contact.ImportantDates {
		stampRecord(&date.Record)
	}
	for _, person := range contact.RelatedPersons {
		stampRecord(&person.Record)
	}
	for _, tag := range contact.Tags {
		stampRecord(&tag.Record)
	}
	r.contacts[contact.ID] = contact

	return nil
}

func (r *fakeContactRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Contact, error) {
	if r.findErr != nil {
		return nil, r.findErr
	}
	contact, ok := r.contacts[id]
	if !ok {
		return nil, repository.ErrContactNotFound
	}

	return contact, nil
}

func (r *fakeContactRepo) FindActiveForOwner(_ context.Context, id, ownerID uuid.UUID) (*entity.Contact, error) {
	contact, ok := r.contacts[id]
	if !ok || !contact.IsActive() || contact.OwnerID != ownerID {
		return nil, repository.ErrContactNotFound
	}

	return contact, nil
}

func (r *fakeContactRepo) ListActiveForOwner(_ context.Context, ownerID uuid.UUID, query repository.ListQuery) (*repository.Page[*entity.Contact], error) {
	var items []*entity.Contact
	for _, contact := range r.contacts {
		if !contact.IsActive() || contact.OwnerID != ownerID {
			continue
		}
		if query.Search != "" && !strings.Contains(contact.Name, query.Search) && !strings.Contains(contact.LastName, query.Search) {
			continue
		}
		items = append(items, contact)
	}

	return &repository.Page[*entity.Contact]{Items: items, Total: int64(len(items))}, nil
}

func (r *fakeContactRepo) UpdateScalars(_ context.Context, contact *entity.Contact) error {
	stored, ok := r.contacts[contact.ID]
	if !ok {
		return repository.ErrContactNotFound
	}
	stored.Name = contact.Name
	stored.LastName = contact.LastName
	stored.Company = contact.Company
	stored.Website = contact.Website
	stored.SIP = contact.SIP
	stored.Notes = contact.Notes
	stored.UpdatedAt = time.Now()

	return nil
}

func (r *fakeContactRepo) Append(_ context.Context, contactID uuid.UUID, additions *repository.ContactAdditions) error {
	contact, ok := r.contacts[contactID]
	if !ok {
		return repository.ErrContactNotFound
	}
	for _, phone := range additions.Phones {
		stampRecord(&phone.Record)
		if !containsItem(contact.Phones, phone) {
			contact.Phones = append(contact.Phones, phone)
		}
	}
	for _, email := range additions.Emails {
		stampRecord(&email.Record)
		if !containsItem(contact.Emails, email) {
			contact.Emails = append(contact.Emails, email)
		}
	}
	for _, address := range additions.Addresses {
		stampRecord(&address.Record)
		if !containsItem(contact.Addresses, address) {
			contact.Addresses = append(contact.Addresses, address)
		}
	}
	for _, date := range additions.ImportantDates {
		stampRecord(&date.Record)
		if !containsItem(contact.ImportantDates, date) {
			contact.ImportantDates = append(contact.ImportantDates, date)
		}
	}
	for _, person := range additions.RelatedPersons {
		stampRecord(&person.Record)
		if !containsItem(contact.RelatedPersons, person) {
			contact.RelatedPersons = append(contact.RelatedPersons, person)
		}
	}
	for _, tag := range additions.Tags {
		stampRecord(&tag.Record)
		if !containsItem(contact.Tags, tag) {
			contact.Tags = append(contact.Tags, tag)
		}
	}

	return nil
}

func containsItem[E any](items []*E, item *E) bool {
	for _, existing := range items {
		if existing == item {
			return true
		}
	}

	return false
}

func (r *fakeContactRepo) SetActive(_ context.Context, id uuid.UUID, active bool) error {
	contact, ok := r.contacts[id]
	if !ok {
		return repository.ErrContactNotFound
	}
	contact.Active = active

	return nil
}

type fakeRefreshTokenRepo struct {
	tokens map[string]*entity.RefreshToken
}

func newFakeRefreshTokenRepo() *fakeRefreshTokenRepo {
	return &fakeRefreshTokenRepo{tokens: make(map[string]*entity.RefreshToken)}
}

func (r *fakeRefreshTokenRepo) Create(_ context.Context, token *entity.RefreshToken) error {
	token.ID = uuid.New()
	token.CreatedAt = time.Now()
	r.tokens[token.TokenHash] = token

	return nil
}

func (r *fakeRefreshTokenRepo) FindByHash(_ context.Context, tokenHash string) (*entity.RefreshToken, error) {
	token, ok := r.tokens[tokenHash]
	if !ok {
		return nil, repository.ErrRefreshTokenNotFound
	}
	if time.Now().After(token.ExpiresAt) {
		return nil, repository.ErrRefreshTokenExpired
	}

	return token, nil
}

func (r *fakeRefreshTokenRepo) DeleteByHash(_ context.Context, tokenHash string) error {
	if _, ok := r.tokens[tokenHash]; !ok {
		return repository.ErrRefreshTokenNotFound
	}
	delete(r.tokens, tokenHash)

	return nil
}

func (r *fakeRefreshTokenRepo) DeleteByUserID(_ context.Context, userID uuid.UUID) error {
	for hash, token := range r.tokens {
		if token.UserID == userID {
			delete(r.tokens, hash)
		}
	}

	return nil
}

func (r *fakeRefreshTokenRepo) DeleteExpired(_ context.Context) error {
	for hash, token := range r.tokens {
		if time.Now().After(token.ExpiresAt) {
			delete(r.tokens, hash)
		}
	}

	return nil
}

type fakeAuxRepo[E any] struct {
	items  map[uuid.UUID]*E
	record func(*E) *entity.Record
}

func newFakeAuxRepo[E any](record func(*E) *entity.Record) *fakeAuxRepo[E] {
	return &fakeAuxRepo[E]{items: make(map[uuid.UUID]*E), record: record}
}

func (r *fakeAuxRepo[E]) Create(_ context.Context, item *E) error {
	stampRecord(r.record(item))
	r.items[r.record(item).ID] = item

	return nil
}

func (r *fakeAuxRepo[E]) FindByID(_ context.Context, id uuid.UUID) (*E, error) {
	item, ok := r.items[id]
	if !ok {
		return nil, repository.ErrRecordNotFound
	}

	return item, nil
}

func (r *fakeAuxRepo[E]) List(_ context.Context, scope repository.Scope, _ repository.ListQuery) (*repository.Page[*E], error) {
	var items []*E
	for _, item := range r.items {
		if scope == repository.ScopeActive && !r.record(item).Active {
			continue
		}
		items = append(items, item)
	}

	return &repository.Page[*E]{Items: items, Total: int64(len(items))}, nil
}

func (r *fakeAuxRepo[E]) Update(_ context.Context, item *E) error {
	id := r.record(item).ID
	if _, ok := r.items[id]; !ok {
		return repository.ErrRecordNotFound
	}
	r.record(item).UpdatedAt = time.Now()
	r.items[id] = item

	return nil
}

func (r *fakeAuxRepo[E]) SetActive(_ context.Context, id uuid.UUID, active bool) error {
	item, ok := r.items[id]
	if !ok {
		return repository.ErrRecordNotFound
	}
	r.record(item).Active = active

	return nil
}

// fakeRepoFactory hands back the same fakes inside and outside of
// transactions, so a test can inspect state written "transactionally".
type fakeRepoFactory struct {
	userRepo         *fakeUserRepo
	contactRepo      *fakeContactRepo
	refreshTokenRepo *fakeRefreshTokenRepo
	phoneRepo        *fakeAuxRepo[entity.Phone]
	emailRepo        *fakeAuxRepo[entity.Email]
	addressRepo      *fakeAuxRepo[entity.Address]
	dateRepo         *fakeAuxRepo[entity.ImportantDate]
	personRepo       *fakeAuxRepo[entity.RelatedPerson]
	tagRepo          *fakeAuxRepo[entity.Tag]
}

func newFakeRepoFactory() *fakeRepoFactory {
	return &fakeRepoFactory{
		userRepo:         newFakeUserRepo(),
		contactRepo:      newFakeContactRepo(),
		refreshTokenRepo: newFakeRefreshTokenRepo(),
		phoneRepo:        newFakeAuxRepo(func(p *entity.Phone) *entity.Record { return &p.Record }),
		emailRepo:        newFakeAuxRepo(func(e *entity.Email) *entity.Record { return &e.Record }),
		addressRepo:      newFakeAuxRepo(func(a *entity.Address) *entity.Record { return &a.Record }),
		dateRepo:         newFakeAuxRepo(func(d *entity.ImportantDate) *entity.Record { return &d.Record }),
		personRepo:       newFakeAuxRepo(func(p *entity.RelatedPerson) *entity.Record { return &p.Record }),
		tagRepo:          newFakeAuxRepo(func(t *entity.Tag) *entity.Record { return &t.Record }),
	}
}

func (f *fakeRepoFactory) UserRepo() repository.UserRepository                 { return f.userRepo }
func (f *fakeRepoFactory) ContactRepo() repository.ContactRepository           { return f.contactRepo }
func (f *fakeRepoFactory) RefreshTokenRepo() repository.RefreshTokenRepository { return f.refreshTokenRepo }
func (f *fakeRepoFactory) PhoneRepo() repository.AuxiliaryRepository[entity.Phone] {
	return f.phoneRepo
}
func (f *fakeRepoFactory) EmailRepo() repository.AuxiliaryRepository[entity.Email] {
	return f.emailRepo
}
func (f *fakeRepoFactory) AddressRepo() repository.AuxiliaryRepository[entity.Address] {
	return f.addressRepo
}
func (f *fakeRepoFactory) ImportantDateRepo() repository.AuxiliaryRepository[entity.ImportantDate] {
	return f.dateRepo
}
func (f *fakeRepoFactory) RelatedPersonRepo() repository.AuxiliaryRepository[entity.RelatedPerson] {
	return f.personRepo
}
func (f *fakeRepoFactory) TagRepo() repository.AuxiliaryRepository[entity.Tag] {
	return f.tagRepo
}

type fakeTxManager struct {
	factory *fakeRepoFactory
}

func (m *fakeTxManager) Execute(_ context.Context, fn func(repository.RepositoryFactory) error) error {
	return fn(m.factory)
}

// fakeHasher is a trivial reversible stand-in for bcrypt.
type fakeHasher struct{}

func (fakeHasher) Hash(password string) (string, error) { return "hashed:" + password, nil }
func (fakeHasher) Check(password, hash string) bool     { return hash == "hashed:"+password }
func (fakeHasher) ValidateStrength(password string) error {
	if len(password) < 8 {
		return domainerrors.ErrPasswordTooShort
	}

	return nil
}

// fakeTokenService issues predictable tokens and remembers their claims.
type fakeTokenService struct {
	issued  map[string]*service.Claims
	counter int
}

func newFakeTokenService() *fakeTokenService {
	return &fakeTokenService{issued: make(map[string]*service.Claims)}
}

func (s *fakeTokenService) GenerateTokens(userID uuid.UUID, roles []string) (string, string, error) {
	s.counter++
	access := fmt.Sprintf("access-%d", s.counter)
	refresh := fmt.Sprintf("refresh-%d", s.counter)
	s.issued[access] = &service.Claims{UserID: userID, Roles: roles, Type: service.TokenTypeAccess}
	s.issued[refresh] = &service.Claims{UserID: userID, Roles: roles, Type: service.TokenTypeRefresh}

	return access, refresh, nil
}

func (s *fakeTokenService) ValidateToken(tokenString, tokenType string) (*service.Claims, error) {
	claims, ok := s.issued[tokenString]
	if !ok || claims.Type != tokenType {
		return nil, domainerrors.ErrRefreshTokenInvalid
	}

	return claims, nil
}

func (s *fakeTokenService) RefreshTokenDuration() time.Duration { return time.Hour }

// fakeQRService echoes the payload so tests can assert on the vCard.
type fakeQRService struct{}

func (fakeQRService) GenerateVCardQR(vcard string) ([]byte, error) {
	return []byte("png:" + vcard), nil
}
