package store

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	"creditref/internal/draft/models"
	"creditref/internal/request"
	"creditref/internal/request/rules"
	"creditref/pkg/platform/sentinel"
)

type draftStore interface {
	Save(ctx context.Context, draft *models.Draft, ttl time.Duration) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.Draft, error)
}

// contractSuite holds behaviour every draft store shares. Backend suites embed
// it and set store in SetupTest.
type contractSuite struct {
	suite.Suite
	store draftStore
}

func sampleDraft() *models.Draft {
	return &models.Draft{
		ID: uuid.New(),
		Document: request.Document{
			Mode: request.ModePermissive,
			Applicants: []request.ApplicantDocument{{
				ID:         uuid.New(),
				GivenName:  "Jane",
				FamilyName: "Doe",
				Partials: []request.PartialDocument{{
					Kind: request.KindApplicationData,
					Fields: map[request.Field]rules.Value{
						request.FieldDependants:         rules.Int(2),
						request.FieldMaritalStatus:      rules.Text("M"),
						request.FieldCurrentAccountHeld: rules.Bool(true),
					},
				}},
			}},
		},
		Rejections: []models.Rejection{{
			Kind:   request.KindApplicationData,
			Field:  request.FieldEmailAddress,
			Input:  json.RawMessage(`["nope"]`),
			Reason: "invalid input",
		}},
		CreatedBy: "underwriter-7",
		CreatedAt: time.Date(2026, 4, 1, 9, 0, 0, 0, time.UTC),
	}
}

func (s *contractSuite) TestSaveAndFind() {
	ctx := context.Background()
	draft := sampleDraft()
	s.Require().NoError(s.store.Save(ctx, draft, time.Hour))

	got, err := s.store.FindByID(ctx, draft.ID)
	s.Require().NoError(err)
	s.Equal(draft, got)
}

func (s *contractSuite) TestFindMissing() {
	_, err := s.store.FindByID(context.Background(), uuid.New())
	s.ErrorIs(err, sentinel.ErrNotFound)
}

func (s *contractSuite) TestSaveTwiceConflicts() {
	ctx := context.Background()
	draft := sampleDraft()
	s.Require().NoError(s.store.Save(ctx, draft, time.Hour))
	s.ErrorIs(s.store.Save(ctx, draft, time.Hour), sentinel.ErrConflict)
}

func (s *contractSuite) TestFoundDraftIsDetached() {
	ctx := context.Background()
	draft := sampleDraft()
	s.Require().NoError(s.store.Save(ctx, draft, time.Hour))

	got, err := s.store.FindByID(ctx, draft.ID)
	s.Require().NoError(err)
	got.Document.Applicants[0].Partials[0].Fields[request.FieldDependants] = rules.Int(5)

	again, err := s.store.FindByID(ctx, draft.ID)
	s.Require().NoError(err)
	s.Equal(rules.Int(2), again.Document.Applicants[0].Partials[0].Fields[request.FieldDependants])
}
