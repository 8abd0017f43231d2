package booking

import (
	"context"
	"errors"
	"testing"
	"time"

	"courtslot/internal/court"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockBookingRepo struct{ mock.Mock }
type MockCourtRepo struct{ mock.Mock }

func (m *MockBookingRepo) CreateBooking(ctx context.Context, b Booking) (*Booking, error) {
	args := m.Called(ctx, b)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Booking), args.Error(1)
}

func (m *MockBookingRepo) GetBookingByID(ctx context.Context, id int) (*Booking, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Booking), args.Error(1)
}

func (m *MockBookingRepo) CancelBooking(ctx context.Context, id int) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockBookingRepo) GetBookedSlots(ctx context.Context, courtID int, date string) ([]string, error) {
	args := m.Called(ctx, courtID, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockBookingRepo) GetUserBookings(ctx context.Context, userID int) ([]Booking, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]Booking), args.Error(1)
}

func (m *MockBookingRepo) ListBookingsWithDetails(ctx context.Context) ([]BookingWithDetails, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]BookingWithDetails), args.Error(1)
}

func (m *MockBookingRepo) CountNonCancelled(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

func (m *MockBookingRepo) SumRevenue(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

func (m *MockBookingRepo) CountActiveUsers(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

func (m *MockBookingRepo) CountBookedSlotsBetween(ctx context.Context, fromDate, toDate string) (int, error) {
	args := m.Called(ctx, fromDate, toDate)
	return args.Int(0), args.Error(1)
}

func (m *MockCourtRepo) CreateCourt(ctx context.Context, c court.Court) (*court.Court, error) {
	args := m.Called(ctx, c)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*court.Court), args.Error(1)
}

func (m *MockCourtRepo) ListCourts(ctx context.Context, filter court.Filter) ([]court.Court, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]court.Court), args.Error(1)
}

func (m *MockCourtRepo) GetCourtByID(ctx context.Context, id int) (*court.Court, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*court.Court), args.Error(1)
}

func (m *MockCourtRepo) UpdateCourt(ctx context.Context, c court.Court) (*court.Court, error) {
	args := m.Called(ctx, c)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*court.Court), args.Error(1)
}

func (m *MockCourtRepo) SetStatus(ctx context.Context, id int, status string) error {
	return m.Called(ctx, id, status).Error(0)
}

// fixedNow pins "today" so date comparisons are deterministic.
var fixedNow = time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)

func newTestService(br *MockBookingRepo, cr *MockCourtRepo) *service {
	s := NewService(br, cr).(*service)
	s.now = func() time.Time { return fixedNow }
	return s
}

func activeCourt() *court.Court {
	return &court.Court{
		ID:           1,
		Name:         "Main Basketball Court",
		Type:         court.TypeBasketball,
		Location:     "Sports Complex A",
		Capacity:     10,
		PricePerHour: 200,
		Status:       court.StatusActive,
		OpenTime:     "06:00",
		CloseTime:    "22:00",
	}
}

func TestService_CreateBooking(t *testing.T) {
	tests := []struct {
		name       string
		req        CreateBookingRequest
		setupMocks func(*MockBookingRepo, *MockCourtRepo)
		wantErr    error
	}{
		{
			name: "successful multi-slot booking",
			req:  CreateBookingRequest{CourtID: 1, Date: "2025-06-02", SlotStarts: []string{"19:00", "18:00"}},
			setupMocks: func(br *MockBookingRepo, cr *MockCourtRepo) {
				cr.On("GetCourtByID", mock.Anything, 1).Return(activeCourt(), nil)
				br.On("CreateBooking", mock.Anything, mock.MatchedBy(func(b Booking) bool {
					return b.UserID == 7 &&
						b.CourtID == 1 &&
						b.Date == "2025-06-02" &&
						len(b.SlotStarts) == 2 &&
						b.SlotStarts[0] == "18:00" && b.SlotStarts[1] == "19:00" &&
						b.TotalAmount == 400
				})).Return(&Booking{ID: 1, UserID: 7, CourtID: 1, Date: "2025-06-02",
					SlotStarts: []string{"18:00", "19:00"}, TotalAmount: 400, Status: StatusConfirmed}, nil)
			},
		},
		{
			name:       "past date rejected before anything else",
			req:        CreateBookingRequest{CourtID: 1, Date: "2000-01-01", SlotStarts: []string{"10:00"}},
			setupMocks: func(br *MockBookingRepo, cr *MockCourtRepo) {},
			wantErr:    ErrPastDate,
		},
		{
			name:       "malformed date",
			req:        CreateBookingRequest{CourtID: 1, Date: "01-06-2025", SlotStarts: []string{"10:00"}},
			setupMocks: func(br *MockBookingRepo, cr *MockCourtRepo) {},
			wantErr:    ErrInvalidDate,
		},
		{
			name: "court not found",
			req:  CreateBookingRequest{CourtID: 99, Date: "2025-06-02", SlotStarts: []string{"10:00"}},
			setupMocks: func(br *MockBookingRepo, cr *MockCourtRepo) {
				cr.On("GetCourtByID", mock.Anything, 99).Return(nil, court.ErrCourtNotFound)
			},
			wantErr: court.ErrCourtNotFound,
		},
		{
			name: "slot off the grid",
			req:  CreateBookingRequest{CourtID: 1, Date: "2025-06-02", SlotStarts: []string{"22:00"}},
			setupMocks: func(br *MockBookingRepo, cr *MockCourtRepo) {
				cr.On("GetCourtByID", mock.Anything, 1).Return(activeCourt(), nil)
			},
			wantErr: ErrInvalidSlot,
		},
		{
			name: "slot not hour-aligned",
			req:  CreateBookingRequest{CourtID: 1, Date: "2025-06-02", SlotStarts: []string{"18:30"}},
			setupMocks: func(br *MockBookingRepo, cr *MockCourtRepo) {
				cr.On("GetCourtByID", mock.Anything, 1).Return(activeCourt(), nil)
			},
			wantErr: ErrInvalidSlot,
		},
		{
			name: "duplicate slots rejected",
			req:  CreateBookingRequest{CourtID: 1, Date: "2025-06-02", SlotStarts: []string{"18:00", "18:00"}},
			setupMocks: func(br *MockBookingRepo, cr *MockCourtRepo) {
				cr.On("GetCourtByID", mock.Anything, 1).Return(activeCourt(), nil)
			},
			wantErr: ErrInvalidSlot,
		},
		{
			name: "court under maintenance",
			req:  CreateBookingRequest{CourtID: 1, Date: "2025-06-02", SlotStarts: []string{"18:00"}},
			setupMocks: func(br *MockBookingRepo, cr *MockCourtRepo) {
				c := activeCourt()
				c.Status = court.StatusMaintenance
				cr.On("GetCourtByID", mock.Anything, 1).Return(c, nil)
			},
			wantErr: ErrCourtUnavailable,
		},
		{
			name: "conflict surfaces conflicting slots",
			req:  CreateBookingRequest{CourtID: 1, Date: "2025-06-02", SlotStarts: []string{"18:00", "19:00"}},
			setupMocks: func(br *MockBookingRepo, cr *MockCourtRepo) {
				cr.On("GetCourtByID", mock.Anything, 1).Return(activeCourt(), nil)
				br.On("CreateBooking", mock.Anything, mock.Anything).
					Return(nil, &SlotConflictError{Slots: []string{"18:00"}})
			},
			wantErr: &SlotConflictError{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			br := new(MockBookingRepo)
			cr := new(MockCourtRepo)
			tt.setupMocks(br, cr)

			s := newTestService(br, cr)
			created, err := s.CreateBooking(context.Background(), 7, tt.req)

			if tt.wantErr != nil {
				require.Error(t, err)
				var conflict *SlotConflictError
				if errors.As(tt.wantErr, &conflict) {
					assert.ErrorAs(t, err, &conflict)
					assert.Equal(t, []string{"18:00"}, conflict.Slots)
				} else {
					assert.ErrorIs(t, err, tt.wantErr)
				}
				assert.Nil(t, created)
			} else {
				require.NoError(t, err)
				require.NotNil(t, created)
				assert.Equal(t, StatusConfirmed, created.Status)
				assert.Equal(t, 400, created.TotalAmount)
			}

			br.AssertExpectations(t)
			cr.AssertExpectations(t)
		})
	}
}

func TestService_CreateBooking_BookingOnTodayAllowed(t *testing.T) {
	br := new(MockBookingRepo)
	cr := new(MockCourtRepo)
	cr.On("GetCourtByID", mock.Anything, 1).Return(activeCourt(), nil)
	br.On("CreateBooking", mock.Anything, mock.Anything).
		Return(&Booking{ID: 2, Status: StatusConfirmed, TotalAmount: 200}, nil)

	s := newTestService(br, cr)
	_, err := s.CreateBooking(context.Background(), 7, CreateBookingRequest{
		CourtID: 1, Date: "2025-06-01", SlotStarts: []string{"20:00"},
	})
	assert.NoError(t, err)
}

func TestService_CancelBooking(t *testing.T) {
	confirmed := func() *Booking {
		return &Booking{ID: 5, UserID: 7, CourtID: 1, Date: "2025-06-02",
			SlotStarts: []string{"18:00"}, Status: StatusConfirmed}
	}

	tests := []struct {
		name       string
		userID     int
		isAdmin    bool
		setupMocks func(*MockBookingRepo)
		wantErr    error
	}{
		{
			name:   "owner cancels own booking",
			userID: 7,
			setupMocks: func(br *MockBookingRepo) {
				br.On("GetBookingByID", mock.Anything, 5).Return(confirmed(), nil)
				br.On("CancelBooking", mock.Anything, 5).Return(nil)
			},
		},
		{
			name:    "admin cancels someone else's booking",
			userID:  999,
			isAdmin: true,
			setupMocks: func(br *MockBookingRepo) {
				br.On("GetBookingByID", mock.Anything, 5).Return(confirmed(), nil)
				br.On("CancelBooking", mock.Anything, 5).Return(nil)
			},
		},
		{
			name:   "non-owner rejected",
			userID: 999,
			setupMocks: func(br *MockBookingRepo) {
				br.On("GetBookingByID", mock.Anything, 5).Return(confirmed(), nil)
			},
			wantErr: ErrNotOwner,
		},
		{
			name:   "already cancelled",
			userID: 7,
			setupMocks: func(br *MockBookingRepo) {
				b := confirmed()
				b.Status = StatusCancelled
				br.On("GetBookingByID", mock.Anything, 5).Return(b, nil)
			},
			wantErr: ErrNotCancellable,
		},
		{
			name:   "date already passed",
			userID: 7,
			setupMocks: func(br *MockBookingRepo) {
				b := confirmed()
				b.Date = "2025-05-30"
				br.On("GetBookingByID", mock.Anything, 5).Return(b, nil)
			},
			wantErr: ErrCancellationWindow,
		},
		{
			name:   "booking not found",
			userID: 7,
			setupMocks: func(br *MockBookingRepo) {
				br.On("GetBookingByID", mock.Anything, 5).Return(nil, ErrBookingNotFound)
			},
			wantErr: ErrBookingNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			br := new(MockBookingRepo)
			cr := new(MockCourtRepo)
			tt.setupMocks(br)

			s := newTestService(br, cr)
			err := s.CancelBooking(context.Background(), 5, tt.userID, tt.isAdmin)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
			br.AssertExpectations(t)
		})
	}
}

func TestService_GetAvailability(t *testing.T) {
	t.Run("full grid with booked slots marked", func(t *testing.T) {
		br := new(MockBookingRepo)
		cr := new(MockCourtRepo)
		cr.On("GetCourtByID", mock.Anything, 1).Return(activeCourt(), nil)
		br.On("GetBookedSlots", mock.Anything, 1, "2025-06-02").Return([]string{"08:00", "18:00"}, nil)

		s := newTestService(br, cr)
		availability, err := s.GetAvailability(context.Background(), 1, "2025-06-02")

		require.NoError(t, err)
		require.Len(t, availability.Slots, 16)
		assert.True(t, availability.Bookable)

		// Strictly ascending grid, hourly.
		for i := 1; i < len(availability.Slots); i++ {
			assert.Less(t, availability.Slots[i-1].SlotStart, availability.Slots[i].SlotStart)
		}
		assert.Equal(t, "06:00", availability.Slots[0].SlotStart)
		assert.Equal(t, "21:00", availability.Slots[15].SlotStart)

		booked := 0
		for _, slot := range availability.Slots {
			if slot.IsBooked {
				booked++
				assert.Contains(t, []string{"08:00", "18:00"}, slot.SlotStart)
			}
		}
		assert.Equal(t, 2, booked)
	})

	t.Run("non-active court reported not bookable", func(t *testing.T) {
		br := new(MockBookingRepo)
		cr := new(MockCourtRepo)
		c := activeCourt()
		c.Status = court.StatusInactive
		cr.On("GetCourtByID", mock.Anything, 1).Return(c, nil)
		br.On("GetBookedSlots", mock.Anything, 1, "2025-06-02").Return([]string{}, nil)

		s := newTestService(br, cr)
		availability, err := s.GetAvailability(context.Background(), 1, "2025-06-02")

		require.NoError(t, err)
		assert.False(t, availability.Bookable)
	})

	t.Run("invalid date", func(t *testing.T) {
		s := newTestService(new(MockBookingRepo), new(MockCourtRepo))
		_, err := s.GetAvailability(context.Background(), 1, "junk")
		assert.ErrorIs(t, err, ErrInvalidDate)
	})
}

func TestService_GetUserBookings_ProjectsCompleted(t *testing.T) {
	br := new(MockBookingRepo)
	cr := new(MockCourtRepo)
	br.On("GetUserBookings", mock.Anything, 7).Return([]Booking{
		{ID: 1, UserID: 7, Date: "2025-05-20", SlotStarts: []string{"18:00"}, Status: StatusConfirmed},
		{ID: 2, UserID: 7, Date: "2025-06-02", SlotStarts: []string{"18:00"}, Status: StatusConfirmed},
		{ID: 3, UserID: 7, Date: "2025-05-20", SlotStarts: []string{"18:00"}, Status: StatusCancelled},
	}, nil)

	s := newTestService(br, cr)
	bookings, err := s.GetUserBookings(context.Background(), 7)

	require.NoError(t, err)
	require.Len(t, bookings, 3)
	assert.Equal(t, StatusCompleted, bookings[0].Status)
	assert.Equal(t, StatusConfirmed, bookings[1].Status)
	assert.Equal(t, StatusCancelled, bookings[2].Status)
}
