package services

import (
	"testing"

	"github.com/FawazNazmo/MechLink/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChatPairIsCanonical(t *testing.T) {
	db := newTestDB(t)
	svc := NewChatService(repository.NewChatRepository(db), repository.NewUserRepository(db))
	user := seedUser(t, db, "driver", "user")
	mech := seedUser(t, db, "mech", "mechanic")

	// both directions land in the same thread
	_, err := svc.Send(user.ID, "user", mech.ID, "hello")
	require.NoError(t, err)
	_, err = svc.Send(mech.ID, "mechanic", user.ID, "on my way")
	require.NoError(t, err)

	fromUser, err := svc.Thread(user.ID, "user", mech.ID)
	require.NoError(t, err)
	fromMech, err := svc.Thread(mech.ID, "mechanic", user.ID)
	require.NoError(t, err)
	require.Len(t, fromUser, 2)
	assert.Equal(t, fromUser, fromMech)

	// user-to-user chat is rejected
	other := seedUser(t, db, "other", "user")
	_, err = svc.Send(user.ID, "user", other.ID, "hi")
	assert.ErrorIs(t, err, ErrValidation)
}

func TestConversationsFoldToLatest(t *testing.T) {
	db := newTestDB(t)
	svc := NewChatService(repository.NewChatRepository(db), repository.NewUserRepository(db))
	user := seedUser(t, db, "driver", "user")
	mech := seedUser(t, db, "mech", "mechanic")

	_, err := svc.Send(user.ID, "user", mech.ID, "first")
	require.NoError(t, err)
	_, err = svc.Send(user.ID, "user", mech.ID, "second")
	require.NoError(t, err)

	convs, err := svc.Conversations(user.ID, "user")
	require.NoError(t, err)
	require.Len(t, convs, 1)
	assert.Equal(t, mech.ID, convs[0].PeerID)
	assert.Equal(t, "second", convs[0].LastText)
}
