package entity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRecord_SoftDeleteAndRestore(t *testing.T) {
	r := &Record{Active: true}

	r.SoftDelete()
	assert.False(t, r.IsActive())

	// Repeating the call leaves state unchanged.
	r.SoftDelete()
	assert.False(t, r.IsActive())

	r.Restore()
	assert.True(t, r.IsActive())

	r.Restore()
	assert.True(t, r.IsActive())
}

func TestSoftDeletable_AllEntityTypes(t *testing.T) {
	entities := []SoftDeletable{
		&User{},
		&Contact{},
		&Phone{},
		&Email{},
		&Address{},
		&ImportantDate{},
		&RelatedPerson{},
		&Tag{},
	}

	for _, e := range entities {
		e.Restore()
		assert.True(t, e.IsActive())
		e.SoftDelete()
		assert.False(t, e.IsActive())
	}
}

func TestKind_IsValid(t *testing.T) {
	assert.True(t, PhoneKindWorkFax.IsValid())
	assert.False(t, PhoneKind("telegraph").IsValid())

	assert.True(t, EmailKindMain.IsValid())
	assert.False(t, EmailKind("carrier-pigeon").IsValid())

	assert.True(t, DateKindAnniversary.IsValid())
	assert.False(t, DateKind("someday").IsValid())

	assert.True(t, TagKindSupplier.IsValid())
	assert.False(t, TagKind("vip").IsValid())
}

func TestContact_DedupHelpers(t *testing.T) {
	c := &Contact{
		Phones: []*Phone{{Number: "555-0100", Kind: PhoneKindMobile}},
		Emails: []*Email{{Address: "ada@example.com", Kind: EmailKindMain}},
		ImportantDates: []*ImportantDate{
			{Date: time.Date(1815, 12, 10, 0, 0, 0, 0, time.UTC), Kind: DateKindBirthday},
		},
		Tags: []*Tag{{Label: TagKindCustomer}},
	}

	assert.True(t, c.HasPhone("555-0100", PhoneKindMobile))
	// Same number under a different kind is a distinct entry.
	assert.False(t, c.HasPhone("555-0100", PhoneKindWork))

	assert.True(t, c.HasEmail("ada@example.com", EmailKindMain))
	assert.False(t, c.HasEmail("ada@example.org", EmailKindMain))

	assert.True(t, c.HasImportantDate("1815-12-10", DateKindBirthday))
	assert.False(t, c.HasImportantDate("1815-12-10", DateKindAnniversary))

	assert.True(t, c.HasTag(TagKindCustomer))
	assert.False(t, c.HasTag(TagKindFriend))
}
