package appointment

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	redisclient "github.com/smartward/hospital-backend/internal/redis"
)

// mockRepo mocks only the methods a test exercises; calling anything else
// panics through the embedded nil interface.
type mockRepo struct {
	Repository
	mock.Mock
}

func (m *mockRepo) GetDoctorByID(ctx context.Context, id int64) (*Doctor, error) {
	args := m.Called(ctx, id)
	if d := args.Get(0); d != nil {
		return d.(*Doctor), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockRepo) PatientExists(ctx context.Context, id int64) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *mockRepo) ListShiftsByDoctor(ctx context.Context, doctorID int64) ([]Shift, error) {
	args := m.Called(ctx, doctorID)
	if s := args.Get(0); s != nil {
		return s.([]Shift), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockRepo) CreateDoctorSlot(ctx context.Context, doctorID int64, date time.Time, start, end TimeOfDay) (*DoctorSlot, error) {
	args := m.Called(ctx, doctorID, date, start, end)
	if s := args.Get(0); s != nil {
		return s.(*DoctorSlot), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockRepo) GetDoctorSlotByID(ctx context.Context, id int64) (*DoctorSlot, error) {
	args := m.Called(ctx, id)
	if s := args.Get(0); s != nil {
		return s.(*DoctorSlot), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockRepo) GetDoctorBookingForSlot(ctx context.Context, slotID int64) (*DoctorBooking, error) {
	args := m.Called(ctx, slotID)
	if b := args.Get(0); b != nil {
		return b.(*DoctorBooking), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockRepo) CreateDoctorBooking(ctx context.Context, patientID, doctorID, slotID int64) (*DoctorBooking, error) {
	args := m.Called(ctx, patientID, doctorID, slotID)
	if b := args.Get(0); b != nil {
		return b.(*DoctorBooking), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockRepo) ListUpcomingSpecializedBookings(ctx context.Context, cutoff time.Time) ([]SpecializedBookingDetail, error) {
	args := m.Called(ctx, cutoff)
	if r := args.Get(0); r != nil {
		return r.([]SpecializedBookingDetail), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockRepo) DeleteExpiredDoctorBookings(ctx context.Context, cutoff time.Time) (int64, error) {
	args := m.Called(ctx, cutoff)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockRepo) DeleteExpiredDoctorSlots(ctx context.Context, today time.Time, cutoff TimeOfDay) (int64, error) {
	args := m.Called(ctx, today, cutoff)
	return args.Get(0).(int64), args.Error(1)
}

// fakeLocker runs the critical section inline, or refuses the lock.
type fakeLocker struct {
	refuse bool
	calls  int
}

func (f *fakeLocker) WithSlotLock(ctx context.Context, kind string, slotID int64, fn func(ctx context.Context) error) error {
	f.calls++
	if f.refuse {
		return redisclient.ErrLockNotAcquired
	}
	return fn(ctx)
}

var fixedNow = time.Date(2026, 3, 2, 8, 0, 0, 0, time.UTC)

func newTestService(repo Repository, locker redisclient.Locker) *Service {
	svc := NewService(repo, locker, time.UTC, 30*time.Minute, 10*time.Minute)
	svc.now = func() time.Time { return fixedNow }
	return svc
}

func TestBookDoctorSlot(t *testing.T) {
	ctx := context.Background()
	today := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)

	slot := &DoctorSlot{
		ID:       7,
		DoctorID: 3,
		Date:     today,
		Start:    TimeOfDay{Hour: 9, Minute: 0},
		End:      TimeOfDay{Hour: 9, Minute: 30},
	}

	t.Run("books a free slot", func(t *testing.T) {
		repo := &mockRepo{}
		repo.On("PatientExists", mock.Anything, int64(42)).Return(true, nil)
		repo.On("GetDoctorSlotByID", mock.Anything, int64(7)).Return(slot, nil)
		repo.On("GetDoctorBookingForSlot", mock.Anything, int64(7)).Return(nil, ErrBookingNotFound)
		repo.On("CreateDoctorBooking", mock.Anything, int64(42), int64(3), int64(7)).
			Return(&DoctorBooking{ID: 1, PatientID: 42, DoctorID: 3, SlotID: 7}, nil)

		locker := &fakeLocker{}
		svc := newTestService(repo, locker)

		booking, err := svc.BookDoctorSlot(ctx, 42, 7)
		require.NoError(t, err)
		assert.Equal(t, int64(7), booking.SlotID)
		assert.Equal(t, 1, locker.calls)
		repo.AssertExpectations(t)
	})

	t.Run("unknown patient", func(t *testing.T) {
		repo := &mockRepo{}
		repo.On("PatientExists", mock.Anything, int64(42)).Return(false, nil)

		svc := newTestService(repo, &fakeLocker{})

		_, err := svc.BookDoctorSlot(ctx, 42, 7)
		assert.ErrorIs(t, err, ErrPatientUnknown)
	})

	t.Run("slot dated in the past", func(t *testing.T) {
		stale := *slot
		stale.Date = today.AddDate(0, 0, -1)

		repo := &mockRepo{}
		repo.On("PatientExists", mock.Anything, int64(42)).Return(true, nil)
		repo.On("GetDoctorSlotByID", mock.Anything, int64(7)).Return(&stale, nil)

		locker := &fakeLocker{}
		svc := newTestService(repo, locker)

		_, err := svc.BookDoctorSlot(ctx, 42, 7)
		assert.ErrorIs(t, err, ErrSlotInPast)
		assert.Zero(t, locker.calls)
	})

	t.Run("slot already booked", func(t *testing.T) {
		repo := &mockRepo{}
		repo.On("PatientExists", mock.Anything, int64(42)).Return(true, nil)
		repo.On("GetDoctorSlotByID", mock.Anything, int64(7)).Return(slot, nil)
		repo.On("GetDoctorBookingForSlot", mock.Anything, int64(7)).
			Return(&DoctorBooking{ID: 9, SlotID: 7}, nil)

		svc := newTestService(repo, &fakeLocker{})

		_, err := svc.BookDoctorSlot(ctx, 42, 7)
		assert.ErrorIs(t, err, ErrSlotAlreadyBooked)
	})

	t.Run("lock held by a concurrent booking", func(t *testing.T) {
		repo := &mockRepo{}
		repo.On("PatientExists", mock.Anything, int64(42)).Return(true, nil)
		repo.On("GetDoctorSlotByID", mock.Anything, int64(7)).Return(slot, nil)

		svc := newTestService(repo, &fakeLocker{refuse: true})

		_, err := svc.BookDoctorSlot(ctx, 42, 7)
		assert.ErrorIs(t, err, ErrSlotBeingBooked)
	})
}

func TestCreateDoctorSlot(t *testing.T) {
	ctx := context.Background()
	date := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)

	shifts := []Shift{{
		DoctorID:  3,
		StartTime: time.Date(2026, 3, 2, 8, 0, 0, 0, time.UTC),
		EndTime:   time.Date(2026, 3, 2, 12, 0, 0, 0, time.UTC),
	}}

	t.Run("valid slot is persisted", func(t *testing.T) {
		start := TimeOfDay{Hour: 9, Minute: 0}
		end := TimeOfDay{Hour: 9, Minute: 30}

		repo := &mockRepo{}
		repo.On("GetDoctorByID", mock.Anything, int64(3)).Return(&Doctor{ID: 3}, nil)
		repo.On("ListShiftsByDoctor", mock.Anything, int64(3)).Return(shifts, nil)
		repo.On("CreateDoctorSlot", mock.Anything, int64(3), date, start, end).
			Return(&DoctorSlot{ID: 1, DoctorID: 3, Date: date, Start: start, End: end}, nil)

		svc := newTestService(repo, &fakeLocker{})

		slot, err := svc.CreateDoctorSlot(ctx, 3, date, start, end)
		require.NoError(t, err)
		assert.Equal(t, int64(1), slot.ID)
		repo.AssertExpectations(t)
	})

	t.Run("rejects slot outside every shift", func(t *testing.T) {
		repo := &mockRepo{}
		repo.On("GetDoctorByID", mock.Anything, int64(3)).Return(&Doctor{ID: 3}, nil)
		repo.On("ListShiftsByDoctor", mock.Anything, int64(3)).Return(shifts, nil)

		svc := newTestService(repo, &fakeLocker{})

		_, err := svc.CreateDoctorSlot(ctx, 3, date, TimeOfDay{Hour: 13}, TimeOfDay{Hour: 13, Minute: 30})
		assert.ErrorIs(t, err, ErrOutsideShift)
	})

	t.Run("rejects unknown doctor", func(t *testing.T) {
		repo := &mockRepo{}
		repo.On("GetDoctorByID", mock.Anything, int64(99)).Return(nil, ErrDoctorNotFound)

		svc := newTestService(repo, &fakeLocker{})

		_, err := svc.CreateDoctorSlot(ctx, 99, date, TimeOfDay{Hour: 9}, TimeOfDay{Hour: 9, Minute: 30})
		assert.ErrorIs(t, err, ErrDoctorNotFound)
	})
}

func TestUpcomingSpecializedBookingsGraceCutoff(t *testing.T) {
	// 08:00 minus the 10 minute grace period; slots that ended earlier than
	// this are hidden from the receptionist listing.
	wantCutoff := fixedNow.Add(-10 * time.Minute)

	repo := &mockRepo{}
	repo.On("ListUpcomingSpecializedBookings", mock.Anything, wantCutoff).
		Return([]SpecializedBookingDetail{{SpecializedBooking: SpecializedBooking{ID: 4}}}, nil)

	svc := newTestService(repo, &fakeLocker{})

	bookings, err := svc.UpcomingSpecializedBookings(context.Background())
	require.NoError(t, err)
	assert.Len(t, bookings, 1)
	repo.AssertExpectations(t)
}

func TestExpireDoctorBookings(t *testing.T) {
	wantCutoff := fixedNow.Add(-10 * time.Minute)

	repo := &mockRepo{}
	repo.On("DeleteExpiredDoctorBookings", mock.Anything, wantCutoff).Return(int64(3), nil)

	svc := newTestService(repo, &fakeLocker{})

	n, err := svc.ExpireDoctorBookings(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(3), n)
	repo.AssertExpectations(t)
}

func TestExpireDoctorSlots(t *testing.T) {
	today := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	// 08:00 minus the 10 minute grace period.
	wantCutoff := TimeOfDay{Hour: 7, Minute: 50}

	repo := &mockRepo{}
	repo.On("DeleteExpiredDoctorSlots", mock.Anything, today, wantCutoff).Return(int64(5), nil)

	svc := newTestService(repo, &fakeLocker{})

	n, err := svc.ExpireDoctorSlots(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(5), n)
	repo.AssertExpectations(t)
}
