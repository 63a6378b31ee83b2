package patient

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockRepo struct {
	Repository
	mock.Mock
}

func (m *mockRepo) CreatePatient(ctx context.Context, p *Patient) (*Patient, error) {
	args := m.Called(ctx, p)
	if r := args.Get(0); r != nil {
		return r.(*Patient), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockRepo) ListPatients(ctx context.Context) ([]Patient, error) {
	args := m.Called(ctx)
	if r := args.Get(0); r != nil {
		return r.([]Patient), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockRepo) SearchPatients(ctx context.Context, query string) ([]Patient, error) {
	args := m.Called(ctx, query)
	if r := args.Get(0); r != nil {
		return r.([]Patient), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockRepo) AllNames(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	if r := args.Get(0); r != nil {
		return r.([]string), args.Error(1)
	}
	return nil, args.Error(1)
}

func newTestService(repo Repository) *Service {
	svc := NewService(repo, time.UTC)
	svc.now = func() time.Time { return time.Date(2026, 3, 2, 8, 0, 0, 0, time.UTC) }
	return svc
}

func TestSearchPatients(t *testing.T) {
	ctx := context.Background()

	t.Run("empty query lists everyone", func(t *testing.T) {
		repo := &mockRepo{}
		repo.On("ListPatients", mock.Anything).Return([]Patient{{ID: 1}, {ID: 2}}, nil)

		svc := newTestService(repo)

		patients, suggestion, err := svc.SearchPatients(ctx, "   ")
		require.NoError(t, err)
		assert.Len(t, patients, 2)
		assert.Empty(t, suggestion)
	})

	t.Run("matches suppress the suggestion", func(t *testing.T) {
		repo := &mockRepo{}
		repo.On("SearchPatients", mock.Anything, "jane").Return([]Patient{{ID: 3, FirstName: "Jane"}}, nil)

		svc := newTestService(repo)

		patients, suggestion, err := svc.SearchPatients(ctx, "jane")
		require.NoError(t, err)
		assert.Len(t, patients, 1)
		assert.Empty(t, suggestion)
		repo.AssertNotCalled(t, "AllNames", mock.Anything)
	})

	t.Run("empty result falls back to a suggestion", func(t *testing.T) {
		repo := &mockRepo{}
		repo.On("SearchPatients", mock.Anything, "Jon").Return([]Patient{}, nil)
		repo.On("AllNames", mock.Anything).Return([]string{"John", "Jane"}, nil)

		svc := newTestService(repo)

		patients, suggestion, err := svc.SearchPatients(ctx, "Jon")
		require.NoError(t, err)
		assert.Empty(t, patients)
		assert.Equal(t, "John", suggestion)
	})

	t.Run("no name close enough", func(t *testing.T) {
		repo := &mockRepo{}
		repo.On("SearchPatients", mock.Anything, "zzzz").Return([]Patient{}, nil)
		repo.On("AllNames", mock.Anything).Return([]string{"John", "Jane"}, nil)

		svc := newTestService(repo)

		patients, suggestion, err := svc.SearchPatients(ctx, "zzzz")
		require.NoError(t, err)
		assert.Empty(t, patients)
		assert.Empty(t, suggestion)
	})
}

func TestCreatePatientValidates(t *testing.T) {
	repo := &mockRepo{}
	svc := newTestService(repo)

	p := validPatient()
	p.PhoneContact = "12345"

	_, err := svc.CreatePatient(context.Background(), &p)
	assert.ErrorIs(t, err, ErrBadPhone)
	repo.AssertNotCalled(t, "CreatePatient", mock.Anything, mock.Anything)
}
