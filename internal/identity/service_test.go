package identity

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockRepo struct {
	Repository
	mock.Mock
}

func (m *mockRepo) ListByRole(ctx context.Context, role Role) ([]User, error) {
	args := m.Called(ctx, role)
	if r := args.Get(0); r != nil {
		return r.([]User), args.Error(1)
	}
	return nil, args.Error(1)
}

func TestListDoctors(t *testing.T) {
	repo := &mockRepo{}
	repo.On("ListByRole", mock.Anything, RoleDoctor).
		Return([]User{
			{ID: 1, Username: "dr.naulu", Role: RoleDoctor},
			{ID: 2, Username: "dr.vakatale", Role: RoleDoctor},
		}, nil)

	svc := NewService(repo, "test-secret", 0)

	doctors, err := svc.ListDoctors(context.Background())
	require.NoError(t, err)
	assert.Len(t, doctors, 2)
	assert.Equal(t, RoleDoctor, doctors[0].Role)
	repo.AssertExpectations(t)
}
