package order

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"time"

	"github.com/fuazim/fitcamp/internal/db"
	"github.com/fuazim/fitcamp/internal/logger"
	"github.com/fuazim/fitcamp/internal/metrics"
)

const (
	BookingCodePrefix = "FITCAMP-"
	allocateAttempts  = 10
)

var bookingCodePattern = regexp.MustCompile(`^FITCAMP-(\d+)$`)

// CodeStore is the part of the order repository the allocator reads.
type CodeStore interface {
	LatestBookingCode(ctx context.Context) (string, error)
	BookingCodeExists(ctx context.Context, code string) (bool, error)
}

type Allocator struct {
	store CodeStore
	now   func() time.Time
}

func NewAllocator(store CodeStore, now func() time.Time) *Allocator {
	if now == nil {
		now = time.Now
	}
	return &Allocator{store: store, now: now}
}

// Allocate returns the next sequential booking code. It never fails: when
// the sequence cannot be read or stays taken after a few attempts it falls
// back to a code derived from the clock, which is not guaranteed unique.
func (a *Allocator) Allocate(ctx context.Context) string {
	next, err := a.nextNumber(ctx)
	if err != nil {
		logger.Error("failed to read latest booking code", "error", err)
		return a.fallback()
	}

	for i := 0; i < allocateAttempts; i++ {
		code := FormatBookingCode(next + i)
		taken, err := a.store.BookingCodeExists(ctx, code)
		if err != nil {
			logger.Error("failed to check booking code", "code", code, "error", err)
			return a.fallback()
		}
		if !taken {
			return code
		}
	}

	logger.Warn("booking code sequence exhausted", "start", next, "attempts", allocateAttempts)
	return a.fallback()
}

func (a *Allocator) nextNumber(ctx context.Context) (int, error) {
	latest, err := a.store.LatestBookingCode(ctx)
	if err != nil {
		if db.IsNotFound(err) {
			return 1, nil
		}
		return 0, err
	}

	m := bookingCodePattern.FindStringSubmatch(latest)
	if m == nil {
		return 1, nil
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return 1, nil
	}
	return n + 1, nil
}

func (a *Allocator) fallback() string {
	metrics.RecordBookingCodeFallback()
	ms := strconv.FormatInt(a.now().UnixMilli(), 10)
	if len(ms) > 6 {
		ms = ms[len(ms)-6:]
	}
	return BookingCodePrefix + ms
}

// FormatBookingCode pads to three digits and grows past 999.
func FormatBookingCode(n int) string {
	return fmt.Sprintf("%s%03d", BookingCodePrefix, n)
}
