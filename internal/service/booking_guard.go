package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

const (
	RedisBookingGuardKeyPrefix = "booking:idempotency:"

	guardPending = "pending"
)

// claimBookingScript claims a guard key in one round trip.
// Returns "" when claimed, "pending" while another submission runs, or the
// id of the appointment a finished submission created.
var claimBookingScript = redis.NewScript(`
	local current = redis.call('GET', KEYS[1])
	if current then
		return current
	end
	redis.call('SET', KEYS[1], ARGV[1], 'PX', ARGV[2])
	return ''
`)

// reclaimBookingScript swaps a finished submission's appointment id back to
// pending, only if the key still holds that id. Returns 1 on success.
var reclaimBookingScript = redis.NewScript(`
	if redis.call('GET', KEYS[1]) == ARGV[1] then
		redis.call('SET', KEYS[1], ARGV[2], 'PX', ARGV[3])
		return 1
	end
	return 0
`)

// ClaimState is the outcome of BookingGuard.Claim
type ClaimState int

const (
	ClaimAcquired ClaimState = iota
	ClaimInProgress
	ClaimCompleted
)

type Claim struct {
	State         ClaimState
	AppointmentID uuid.UUID
}

// BookingGuard prevents a patient's repeated submission of the same
// booking from inserting twice. A pending claim lives for pendingTTL; a
// completed one is remembered for the ttl given to Complete.
type BookingGuard interface {
	Claim(ctx context.Context, patientID uuid.UUID, key string, pendingTTL time.Duration) (Claim, error)
	Reclaim(ctx context.Context, patientID uuid.UUID, key string, previous uuid.UUID, pendingTTL time.Duration) (bool, error)
	Complete(ctx context.Context, patientID uuid.UUID, key string, appointmentID uuid.UUID, ttl time.Duration) error
	Release(ctx context.Context, patientID uuid.UUID, key string) error
}

type redisBookingGuard struct {
	redisClient *redis.Client
	log         *logrus.Logger
}

func NewBookingGuard(redisClient *redis.Client, log *logrus.Logger) BookingGuard {
	return &redisBookingGuard{
		redisClient: redisClient,
		log:         log,
	}
}

func bookingGuardKey(patientID uuid.UUID, key string) string {
	return fmt.Sprintf("%s%s:%s", RedisBookingGuardKeyPrefix, patientID, key)
}

func (g *redisBookingGuard) Claim(ctx context.Context, patientID uuid.UUID, key string, pendingTTL time.Duration) (Claim, error) {
	guardKey := bookingGuardKey(patientID, key)

	current, err := claimBookingScript.Run(ctx, g.redisClient, []string{guardKey}, guardPending, pendingTTL.Milliseconds()).Text()
	if err != nil {
		return Claim{}, fmt.Errorf("claim booking guard %s: %w", guardKey, err)
	}

	switch current {
	case "":
		g.log.Debugf("Claimed booking guard %s", guardKey)
		return Claim{State: ClaimAcquired}, nil
	case guardPending:
		return Claim{State: ClaimInProgress}, nil
	}

	appointmentID, err := uuid.Parse(current)
	if err != nil {
		return Claim{}, fmt.Errorf("corrupt booking guard %s: %w", guardKey, err)
	}
	return Claim{State: ClaimCompleted, AppointmentID: appointmentID}, nil
}

// Reclaim turns a completed claim whose appointment has disappeared back
// into a pending one. It reports false when another submission got there
// first.
func (g *redisBookingGuard) Reclaim(ctx context.Context, patientID uuid.UUID, key string, previous uuid.UUID, pendingTTL time.Duration) (bool, error) {
	guardKey := bookingGuardKey(patientID, key)

	swapped, err := reclaimBookingScript.Run(ctx, g.redisClient, []string{guardKey}, previous.String(), guardPending, pendingTTL.Milliseconds()).Int()
	if err != nil {
		return false, fmt.Errorf("reclaim booking guard %s: %w", guardKey, err)
	}
	return swapped == 1, nil
}

// Complete replaces the pending marker with the created appointment id so
// later duplicates can be answered with the same appointment.
func (g *redisBookingGuard) Complete(ctx context.Context, patientID uuid.UUID, key string, appointmentID uuid.UUID, ttl time.Duration) error {
	guardKey := bookingGuardKey(patientID, key)
	if err := g.redisClient.Set(ctx, guardKey, appointmentID.String(), ttl).Err(); err != nil {
		return fmt.Errorf("complete booking guard %s: %w", guardKey, err)
	}
	return nil
}

func (g *redisBookingGuard) Release(ctx context.Context, patientID uuid.UUID, key string) error {
	guardKey := bookingGuardKey(patientID, key)
	if err := g.redisClient.Del(ctx, guardKey).Err(); err != nil && !errors.Is(err, redis.Nil) {
		return fmt.Errorf("release booking guard %s: %w", guardKey, err)
	}
	return nil
}
