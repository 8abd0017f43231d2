package admin

import (
	"context"
	"encoding/json"
	"math"
	"time"

	"github.com/redis/go-redis/v9"

	"courtslot/internal/booking"
	"courtslot/internal/court"
	"courtslot/internal/logger"
	"courtslot/internal/metrics"
)

const (
	statsCacheKey = "admin:stats"
	statsCacheTTL = 30 * time.Second

	// utilizationWindowDays is the trailing window, today included.
	utilizationWindowDays = 7

	dateLayout = "2006-01-02"
)

type Stats struct {
	TotalBookings    int `json:"total_bookings"`
	TotalRevenue     int `json:"total_revenue"`
	ActiveUsers      int `json:"active_users"`
	CourtUtilization int `json:"court_utilization"`
}

type Service interface {
	GetStats(ctx context.Context) (*Stats, error)
}

type service struct {
	bookingRepo booking.Repository
	courtRepo   court.Repository
	cache       redis.Cmdable

	now func() time.Time
}

// NewService builds the admin aggregation view. cache may be nil; stats are
// then computed on every call.
func NewService(bookingRepo booking.Repository, courtRepo court.Repository, cache redis.Cmdable) Service {
	return &service{
		bookingRepo: bookingRepo,
		courtRepo:   courtRepo,
		cache:       cache,
		now:         time.Now,
	}
}

func (s *service) GetStats(ctx context.Context) (*Stats, error) {
	if cached := s.fromCache(ctx); cached != nil {
		return cached, nil
	}

	stats, err := s.computeStats(ctx)
	if err != nil {
		return nil, err
	}

	s.toCache(ctx, stats)
	return stats, nil
}

func (s *service) computeStats(ctx context.Context) (*Stats, error) {
	totalBookings, err := s.bookingRepo.CountNonCancelled(ctx)
	if err != nil {
		return nil, err
	}

	totalRevenue, err := s.bookingRepo.SumRevenue(ctx)
	if err != nil {
		return nil, err
	}

	activeUsers, err := s.bookingRepo.CountActiveUsers(ctx)
	if err != nil {
		return nil, err
	}

	utilization, err := s.courtUtilization(ctx)
	if err != nil {
		return nil, err
	}

	return &Stats{
		TotalBookings:    totalBookings,
		TotalRevenue:     totalRevenue,
		ActiveUsers:      activeUsers,
		CourtUtilization: utilization,
	}, nil
}

// courtUtilization is booked slots over the trailing window divided by the
// window's bookable capacity (sum of each active court's daily grid size ×
// window days), as a rounded percentage.
func (s *service) courtUtilization(ctx context.Context) (int, error) {
	now := s.now()
	to := now.Format(dateLayout)
	from := now.AddDate(0, 0, -(utilizationWindowDays - 1)).Format(dateLayout)

	booked, err := s.bookingRepo.CountBookedSlotsBetween(ctx, from, to)
	if err != nil {
		return 0, err
	}

	activeCourts, err := s.courtRepo.ListCourts(ctx, court.Filter{Status: court.StatusActive})
	if err != nil {
		return 0, err
	}

	capacity := 0
	for i := range activeCourts {
		capacity += len(activeCourts[i].SlotGrid())
	}
	capacity *= utilizationWindowDays

	if capacity == 0 {
		return 0, nil
	}

	return int(math.Round(float64(booked) / float64(capacity) * 100)), nil
}

func (s *service) fromCache(ctx context.Context) *Stats {
	if s.cache == nil {
		return nil
	}

	data, err := s.cache.Get(ctx, statsCacheKey).Bytes()
	if err != nil {
		metrics.RecordStatsCache("miss")
		return nil
	}

	var stats Stats
	if err := json.Unmarshal(data, &stats); err != nil {
		metrics.RecordStatsCache("miss")
		return nil
	}

	metrics.RecordStatsCache("hit")
	return &stats
}

func (s *service) toCache(ctx context.Context, stats *Stats) {
	if s.cache == nil {
		return
	}

	data, err := json.Marshal(stats)
	if err != nil {
		return
	}

	if err := s.cache.Set(ctx, statsCacheKey, data, statsCacheTTL).Err(); err != nil {
		logger.Warn("stats cache write failed", "error", err)
	}
}
