package services

import (
	"testing"

	"github.com/FawazNazmo/MechLink/entity"
	"github.com/FawazNazmo/MechLink/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newFeedbackService(t *testing.T) (*FeedbackService, *TokenService, *gorm.DB) {
	t.Helper()
	db := newTestDB(t)
	tokenRepo := repository.NewTokenRepository(db)
	svc := NewFeedbackService(
		repository.NewFeedbackRepository(db),
		repository.NewUserRepository(db),
		tokenRepo,
		repository.NewBookingRepository(db),
	)
	tokenSvc := NewTokenService(db, tokenRepo, consoleMailer())
	return svc, tokenSvc, db
}

func TestFeedbackRequiresResolvedToken(t *testing.T) {
	svc, tokenSvc, db := newFeedbackService(t)
	user := seedUser(t, db, "driver", "user")
	mech := seedUser(t, db, "mech", "mechanic")

	tok, err := tokenSvc.Raise(user.ID, 51.50, -0.12, "")
	require.NoError(t, err)

	// still open: cannot rate yet
	_, err = svc.Create(user.ID, CreateFeedbackInput{
		MechanicID: mech.ID, Rating: 5, SourceType: "token", SourceID: tok.ID,
	})
	assert.ErrorIs(t, err, ErrInvalidState)

	_, err = tokenSvc.Accept(tok.ID, mech.ID)
	require.NoError(t, err)
	_, err = tokenSvc.Resolve(tok.ID, mech.ID)
	require.NoError(t, err)

	fb, err := svc.Create(user.ID, CreateFeedbackInput{
		MechanicID: mech.ID, Rating: 5, Comment: "quick rescue", SourceType: "token", SourceID: tok.ID,
	})
	require.NoError(t, err)
	assert.Equal(t, 5, fb.Rating)

	// a job can only be rated once
	_, err = svc.Create(user.ID, CreateFeedbackInput{
		MechanicID: mech.ID, Rating: 4, SourceType: "token", SourceID: tok.ID,
	})
	assert.ErrorIs(t, err, ErrConflict)
}

func TestFeedbackOwnershipAndValidation(t *testing.T) {
	svc, tokenSvc, db := newFeedbackService(t)
	user := seedUser(t, db, "driver", "user")
	stranger := seedUser(t, db, "stranger", "user")
	mech := seedUser(t, db, "mech", "mechanic")

	tok, err := tokenSvc.Raise(user.ID, 51.50, -0.12, "")
	require.NoError(t, err)
	_, err = tokenSvc.Accept(tok.ID, mech.ID)
	require.NoError(t, err)
	_, err = tokenSvc.Resolve(tok.ID, mech.ID)
	require.NoError(t, err)

	// someone else's job
	_, err = svc.Create(stranger.ID, CreateFeedbackInput{
		MechanicID: mech.ID, Rating: 5, SourceType: "token", SourceID: tok.ID,
	})
	assert.ErrorIs(t, err, ErrNotOwner)

	// rating bounds
	_, err = svc.Create(user.ID, CreateFeedbackInput{MechanicID: mech.ID, Rating: 6})
	assert.ErrorIs(t, err, ErrValidation)

	// unknown source type
	_, err = svc.Create(user.ID, CreateFeedbackInput{
		MechanicID: mech.ID, Rating: 4, SourceType: "invoice", SourceID: 1,
	})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestFeedbackPending(t *testing.T) {
	svc, tokenSvc, db := newFeedbackService(t)
	user := seedUser(t, db, "driver", "user")
	mech := seedUser(t, db, "mech", "mechanic")

	tok, err := tokenSvc.Raise(user.ID, 51.50, -0.12, "")
	require.NoError(t, err)
	_, err = tokenSvc.Accept(tok.ID, mech.ID)
	require.NoError(t, err)
	_, err = tokenSvc.Resolve(tok.ID, mech.ID)
	require.NoError(t, err)

	pending, err := svc.Pending(user.ID)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, "token", pending[0].SourceType)
	assert.Equal(t, tok.ID, pending[0].SourceID)

	_, err = svc.Create(user.ID, CreateFeedbackInput{
		MechanicID: mech.ID, Rating: 5, SourceType: "token", SourceID: tok.ID,
	})
	require.NoError(t, err)

	pending, err = svc.Pending(user.ID)
	require.NoError(t, err)
	assert.Empty(t, pending)
}

func TestFeedbackSummary(t *testing.T) {
	svc, _, db := newFeedbackService(t)
	mech := seedUser(t, db, "mech", "mechanic")
	u1 := seedUser(t, db, "u1", "user")
	u2 := seedUser(t, db, "u2", "user")

	require.NoError(t, db.Create(&entity.Feedback{UserID: u1.ID, MechanicID: mech.ID, Rating: 5}).Error)
	require.NoError(t, db.Create(&entity.Feedback{UserID: u2.ID, MechanicID: mech.ID, Rating: 3}).Error)

	summary, err := svc.SummaryForMechanic(mech.ID)
	require.NoError(t, err)
	require.NotNil(t, summary.AvgRating)
	assert.InDelta(t, 4.0, *summary.AvgRating, 0.001)
	assert.Equal(t, int64(2), summary.Count)
}
