package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateUserDefaultsToReader(t *testing.T) {
	u, err := CreateUser("alice", "alice@example.com", "secret123", "")
	require.NoError(t, err)

	assert.Equal(t, ROLE_READER, u.Role)
	assert.True(t, u.CheckPassword("secret123"))
	assert.False(t, u.CheckPassword("wrong"))
}

func TestCreateUserRejectsUnknownRole(t *testing.T) {
	_, err := CreateUser("bob", "bob@example.com", "secret123", "superuser")
	require.Error(t, err)
}

func TestJournalistCannotHoldSubscriptions(t *testing.T) {
	u := &User{
		Username: "carol",
		Email:    "carol@example.com",
		Password: "hashed-but-long-enough",
		Role:     ROLE_JOURNALIST,
		SubscribedPublishers: []Publisher{{Name: "The Daily Planet"}},
	}
	require.ErrorIs(t, u.Validate(), ErrJournalistSubscriptions)

	u.ClearRoleConflicts()
	require.NoError(t, u.Validate())
	assert.Empty(t, u.SubscribedPublishers)
	assert.Empty(t, u.SubscribedNewsletters)
	assert.Empty(t, u.SubscribedJournalists)
}

func TestClearRoleConflictsKeepsReaderSubscriptions(t *testing.T) {
	u := &User{
		Role: ROLE_READER,
		SubscribedPublishers: []Publisher{{Name: "The Daily Planet"}},
	}
	u.ClearRoleConflicts()
	assert.Len(t, u.SubscribedPublishers, 1)
}

func TestUserFullName(t *testing.T) {
	u := &User{Username: "dave"}
	assert.Equal(t, "dave", u.FullName())

	u.FirstName = "Dave"
	assert.Equal(t, "Dave", u.FullName())

	u.LastName = "Lister"
	assert.Equal(t, "Dave Lister", u.FullName())
}
