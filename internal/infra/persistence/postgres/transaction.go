// Package postgres contains the concrete implementation of the persistence layer using GORM and PostgreSQL.
package postgres

import (
	"context"
	"fmt"

	"agenda/internal/domain/entity"
	"agenda/internal/domain/repository"

	"gorm.io/gorm"
)

// gormTransactionManager implements the domain's TransactionManager interface using GORM.
type gormTransactionManager struct {
	db *gorm.DB
}

// gormRepositoryFactory implements the domain's RepositoryFactory interface.
// It holds one GORM transaction object and hands out repository
// instances bound to that single transaction.
type gormRepositoryFactory struct {
	tx *gorm.DB // In GORM, a transaction object is also a *gorm.DB
}

// NewTransactionManager is the constructor for gormTransactionManager.
// This function will be used as an Fx provider.
func NewTransactionManager(db *gorm.DB) repository.TransactionManager {
	return &gormTransactionManager{db: db}
}

// Execute runs the given function within a single database transaction.
func (tm *gormTransactionManager) Execute(ctx context.Context, fn func(repoFactory repository.RepositoryFactory) error) error {
	tx := tm.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return fmt.Errorf("failed to begin transaction: %w", tx.Error)
	}

	// If the callback panics the transaction must still be rolled back
	// before the panic continues up the stack.
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
			panic(r)
		}
	}()

	factory := &gormRepositoryFactory{tx: tx}

	if err := fn(factory); err != nil {
		if rbErr := tx.Rollback().Error; rbErr != nil {
			// Return the original business error; the rollback failure
			// is secondary context.
			return fmt.Errorf("transaction rollback failed: %v (original error: %w)", rbErr, err)
		}

		return err
	}

	if err := tx.Commit().Error; err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// UserRepo returns a UserRepository bound to the current transaction.
func (f *gormRepositoryFactory) UserRepo() repository.UserRepository {
	return NewUserRepository(f.tx)
}

// ContactRepo returns a ContactRepository bound to the current transaction.
func (f *gormRepositoryFactory) ContactRepo() repository.ContactRepository {
	return NewContactRepository(f.tx)
}

// RefreshTokenRepo returns a RefreshTokenRepository bound to the current transaction.
func (f *gormRepositoryFactory) RefreshTokenRepo() repository.RefreshTokenRepository {
	return NewRefreshTokenRepository(f.tx)
}

// PhoneRepo returns the phone repository bound to the current transaction.
func (f *gormRepositoryFactory) PhoneRepo() repository.AuxiliaryRepository[entity.Phone] {
	return NewPhoneRepository(f.tx)
}

// EmailRepo returns the email repository bound to the current transaction.
func (f *gormRepositoryFactory) EmailRepo() repository.AuxiliaryRepository[entity.Email] {
	return NewEmailRepository(f.tx)
}

// AddressRepo returns the address repository bound to the current transaction.
func (f *gormRepositoryFactory) AddressRepo() repository.AuxiliaryRepository[entity.Address] {
	return NewAddressRepository(f.tx)
}

// ImportantDateRepo returns the important-date repository bound to the current transaction.
func (f *gormRepositoryFactory) ImportantDateRepo() repository.AuxiliaryRepository[entity.ImportantDate] {
	return NewImportantDateRepository(f.tx)
}

// RelatedPersonRepo returns the related-person repository bound to the current transaction.
func (f *gormRepositoryFactory) RelatedPersonRepo() repository.AuxiliaryRepository[entity.RelatedPerson] {
	return NewRelatedPersonRepository(f.tx)
}

// TagRepo returns the tag repository bound to the current transaction.
func (f *gormRepositoryFactory) TagRepo() repository.AuxiliaryRepository[entity.Tag] {
	return NewTagRepository(f.tx)
}
