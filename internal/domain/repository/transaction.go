package repository

import (
	"context"

	"agenda/internal/domain/entity"
)

// TransactionManager defines the interface for managing database transactions.
// This allows the use case layer to handle transactions without depending on a
// specific DB driver like GORM.
type TransactionManager interface {
	// Execute runs a function within a database transaction.
	// If the function returns an error, the transaction is rolled back.
	// Otherwise, it's committed. All repository operations within the
	// function will use the same database transaction.
	Execute(ctx context.Context, fn func(txRepoFactory RepositoryFactory) error) error
}

// RepositoryFactory provides repository instances bound to a specific
// transaction, so every operation inside Execute shares one connection.
type RepositoryFactory interface {
	// UserRepo returns a UserRepository bound to the current transaction.
	UserRepo() UserRepository

	// ContactRepo returns a ContactRepository bound to the current transaction.
	ContactRepo() ContactRepository

	// RefreshTokenRepo returns a RefreshTokenRepository bound to the current transaction.
	RefreshTokenRepo() RefreshTokenRepository

	// PhoneRepo returns the phone repository bound to the current transaction.
	PhoneRepo() AuxiliaryRepository[entity.Phone]

	// EmailRepo returns the email repository bound to the current transaction.
	EmailRepo() AuxiliaryRepository[entity.Email]

	// AddressRepo returns the address repository bound to the current transaction.
	AddressRepo() AuxiliaryRepository[entity.Address]

	// ImportantDateRepo returns the important-date repository bound to the current transaction.
	ImportantDateRepo() AuxiliaryRepository[entity.ImportantDate]

	// RelatedPersonRepo returns the related-person repository bound to the current transaction.
	RelatedPersonRepo() AuxiliaryRepository[entity.RelatedPerson]

	// TagRepo returns the tag repository bound to the current transaction.
	TagRepo() AuxiliaryRepository[entity.Tag]
}
