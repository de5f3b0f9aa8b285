package impl

import (
	"context"
	"testing"

	domainerrors "agenda/internal/domain/errors"
	"agenda/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAuxiliaryServiceForTest(t *testing.T) (usecase.AuxiliaryUsecase, *fakeRepoFactory) {
	t.Helper()
	factory := newFakeRepoFactory()
	svc := NewAuxiliaryService(AuxiliaryServiceParams{
		PhoneRepo:         factory.phoneRepo,
		EmailRepo:         factory.emailRepo,
		AddressRepo:       factory.addressRepo,
		ImportantDateRepo: factory.dateRepo,
		RelatedPersonRepo: factory.personRepo,
		TagRepo:           factory.tagRepo,
		Logger:            discardLogger(),
	})

	return svc, factory
}

func TestAuxiliaryService_Create_DefaultKinds(t *testing.T) {
	svc, _ := newAuxiliaryServiceForTest(t)
	ctx := context.Background()

	cases := []struct {
		collection string
		value      string
		wantKind   string
	}{
		{usecase.CollectionPhones, "+1 555 0100", "mobile"},
		{usecase.CollectionEmails, "a@example.com", "main"},
		{usecase.CollectionAddresses, "1 Main St", "main"},
		{usecase.CollectionImportantDates, "2001-01-01", "birthday"},
		{usecase.CollectionRelatedPersons, "Grace", "friend"},
		{usecase.CollectionTags, "", "friend"},
	}

	for _, tc := range cases {
		t.Run(tc.collection, func(t *testing.T) {
			output, err := svc.Create(ctx, tc.collection, &usecase.AuxiliaryItemInput{Value: tc.value})
			require.NoError(t, err)
			assert.Equal(t, tc.wantKind, output.Kind)
			assert.True(t, output.Active)
		})
	}
}

func TestAuxiliaryService_Create_InvalidKind(t *testing.T) {
	svc, _ := newAuxiliaryServiceForTest(t)

	_, err := svc.Create(context.Background(), usecase.CollectionPhones, &usecase.AuxiliaryItemInput{
		Value: "+1 555 0100",
		Kind:  "smoke-signal",
	})

	assert.ErrorIs(t, err, domainerrors.ErrInvalidKindCode)
}

func TestAuxiliaryService_Create_InvalidDate(t *testing.T) {
	svc, _ := newAuxiliaryServiceForTest(t)

	_, err := svc.Create(context.Background(), usecase.CollectionImportantDates, &usecase.AuxiliaryItemInput{
		Value: "January 1st",
	})

	assert.ErrorIs(t, err, domainerrors.ErrValidationFailed)
}

func TestAuxiliaryService_UnknownCollection(t *testing.T) {
	svc, _ := newAuxiliaryServiceForTest(t)

	_, err := svc.Create(context.Background(), "carrier-pigeons", &usecase.AuxiliaryItemInput{Value: "coo"})

	assert.ErrorIs(t, err, domainerrors.ErrNotFound)
}

func TestAuxiliaryService_Update(t *testing.T) {
	svc, _ := newAuxiliaryServiceForTest(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, usecase.CollectionPhones, &usecase.AuxiliaryItemInput{Value: "+1 555 0100"})
	require.NoError(t, err)

	updated, err := svc.Update(ctx, usecase.CollectionPhones, created.ID, &usecase.AuxiliaryItemInput{
		Value: "+1 555 0199",
		Kind:  "work",
	})

	require.NoError(t, err)
	assert.Equal(t, "+1 555 0199", updated.Value)
	assert.Equal(t, "work", updated.Kind)
	assert.Equal(t, created.ID, updated.ID)
}

func TestAuxiliaryService_Get_MalformedID(t *testing.T) {
	svc, _ := newAuxiliaryServiceForTest(t)

	_, err := svc.Get(context.Background(), usecase.CollectionTags, "not-a-uuid")

	assert.ErrorIs(t, err, domainerrors.ErrNotFound)
}

func TestAuxiliaryService_DeleteRestoreAndScope(t *testing.T) {
	svc, _ := newAuxiliaryServiceForTest(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, usecase.CollectionEmails, &usecase.AuxiliaryItemInput{Value: "a@example.com"})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, usecase.CollectionEmails, created.ID))

	// The soft-deleted row is gone from the active listing but still
	// reachable by id.
	active, err := svc.List(ctx, usecase.CollectionEmails, &usecase.ListInput{})
	require.NoError(t, err)
	assert.Empty(t, active.Items)

	all, err := svc.List(ctx, usecase.CollectionEmails, &usecase.ListInput{IncludeInactive: true})
	require.NoError(t, err)
	assert.Len(t, all.Items, 1)

	byID, err := svc.Get(ctx, usecase.CollectionEmails, created.ID)
	require.NoError(t, err)
	assert.False(t, byID.Active)

	require.NoError(t, svc.Restore(ctx, usecase.CollectionEmails, created.ID))

	active, err = svc.List(ctx, usecase.CollectionEmails, &usecase.ListInput{})
	require.NoError(t, err)
	assert.Len(t, active.Items, 1)
}
