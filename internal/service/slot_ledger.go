package service

import (
	"context"
	"errors"
	"time"

	"salon-booking-api/internal/domain/entity"
	"salon-booking-api/internal/domain/repository"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	// ErrDateNotFound is returned when the calendar day is not in the ledger
	ErrDateNotFound = errors.New("date is not bookable")
	// ErrDateExhausted is returned when the day has no remaining slots
	ErrDateExhausted = errors.New("date has no remaining slots")
)

// BulkDateInput is one row of an admin bulk-create request
type BulkDateInput struct {
	Date            string
	MaxAppointments int
}

// BulkResult reports the outcome of a bulk create
type BulkResult struct {
	Created int      `json:"created"`
	Skipped int      `json:"skipped"`
	Errors  []string `json:"errors,omitempty"`
}

// SlotLedger owns the capacity counters on bookable dates. All increments and
// decrements go through single conditional updates in the store; no other
// component mutates current_appointments.
//
// Dates at capacity stay in the table. Bookability is derived
// (current < max, date not past), which keeps Release well-defined after a
// cancellation on a previously exhausted day.
type SlotLedger struct {
	db       *gorm.DB
	log      *logrus.Logger
	dateRepo repository.BookableDateRepository
	apptRepo repository.AppointmentRepository
}

func NewSlotLedger(
	db *gorm.DB,
	log *logrus.Logger,
	dateRepo repository.BookableDateRepository,
	apptRepo repository.AppointmentRepository,
) *SlotLedger {
	return &SlotLedger{
		db:       db,
		log:      log,
		dateRepo: dateRepo,
		apptRepo: apptRepo,
	}
}

// IsBookable reports whether the date can take one more appointment.
// This is a point-in-time read; callers that need the slot must still go
// through Reserve, which re-checks atomically.
func (l *SlotLedger) IsBookable(ctx context.Context, date string) (bool, error) {
	if date < entity.Today() {
		return false, nil
	}
	bd, err := l.dateRepo.FindByDate(l.db.WithContext(ctx), date)
	if err != nil {
		return false, err
	}
	if bd == nil {
		return false, nil
	}
	return !bd.IsExhausted(), nil
}

// Reserve consumes one slot. The capacity check and the increment are a
// single conditional update, so the last slot can only be won once. Runs
// against the caller's transaction.
func (l *SlotLedger) Reserve(ctx context.Context, tx *gorm.DB, date string) error {
	affected, err := l.dateRepo.ReserveSlot(tx, date)
	if err != nil {
		l.log.Warnf("Failed to reserve slot for %s: %+v", date, err)
		return err
	}
	if affected == 0 {
		// Distinguish missing day from exhausted day for the caller
		bd, ferr := l.dateRepo.FindByDate(tx, date)
		if ferr != nil {
			return ferr
		}
		if bd == nil {
			return ErrDateNotFound
		}
		return ErrDateExhausted
	}
	l.log.Debugf("Reserved slot for %s", date)
	return nil
}

// Release returns one slot after a cancellation or deletion. Decrementing a
// counter already at zero is a no-op rather than an error; reconciliation
// repairs any drift.
func (l *SlotLedger) Release(ctx context.Context, tx *gorm.DB, date string) error {
	affected, err := l.dateRepo.ReleaseSlot(tx, date)
	if err != nil {
		l.log.Warnf("Failed to release slot for %s: %+v", date, err)
		return err
	}
	if affected == 0 {
		l.log.Warnf("Release for %s found no slot to return (missing date or counter at zero)", date)
		return ErrDateNotFound
	}
	l.log.Debugf("Released slot for %s", date)
	return nil
}

// ListBookable returns future dates with remaining capacity, soonest first
func (l *SlotLedger) ListBookable(ctx context.Context) ([]entity.BookableDate, error) {
	return l.dateRepo.FindBookable(l.db.WithContext(ctx), entity.Today())
}

// ListAll returns every calendar day in the ledger, exhausted ones included
func (l *SlotLedger) ListAll(ctx context.Context) ([]entity.BookableDate, error) {
	return l.dateRepo.FindAll(l.db.WithContext(ctx))
}

// CreateBulk upserts a batch of dates. Past dates are skipped silently,
// invalid capacities default to 1, and an existing calendar day has its
// capacity overwritten rather than summed.
func (l *SlotLedger) CreateBulk(ctx context.Context, inputs []BulkDateInput) (*BulkResult, error) {
	result := &BulkResult{}
	today := entity.Today()

	for _, input := range inputs {
		parsed, err := time.Parse(entity.DateLayout, input.Date)
		if err != nil {
			result.Errors = append(result.Errors, input.Date+": invalid date format, use YYYY-MM-DD")
			continue
		}
		date := parsed.Format(entity.DateLayout)

		if date < today {
			result.Skipped++
			continue
		}

		maxAppointments := input.MaxAppointments
		if maxAppointments < 1 {
			maxAppointments = 1
		}

		bd := &entity.BookableDate{
			Date:            date,
			MaxAppointments: maxAppointments,
		}
		if err := l.dateRepo.Upsert(l.db.WithContext(ctx), bd); err != nil {
			l.log.Warnf("Failed to upsert bookable date %s: %+v", date, err)
			result.Errors = append(result.Errors, date+": "+err.Error())
			continue
		}
		result.Created++
	}

	return result, nil
}

// Reconcile is the idempotent consistency sweep: it removes dates whose day
// has passed and recomputes every remaining counter from the live appointment
// count. Counters can drift under partial failures; this repairs them. It is
// invoked at startup, on a schedule, and on demand, never inside list reads.
func (l *SlotLedger) Reconcile(ctx context.Context) error {
	db := l.db.WithContext(ctx)
	today := entity.Today()

	removed, err := l.dateRepo.DeleteBefore(db, today)
	if err != nil {
		l.log.Warnf("Failed to remove past dates: %+v", err)
		return err
	}

	dates, err := l.dateRepo.FindAll(db)
	if err != nil {
		return err
	}

	repaired := 0
	for _, bd := range dates {
		count, err := l.apptRepo.CountActiveByDate(db, bd.Date)
		if err != nil {
			l.log.Warnf("Failed to count appointments for %s: %+v", bd.Date, err)
			return err
		}
		if int(count) == bd.CurrentAppointments {
			continue
		}
		if err := l.dateRepo.SetCurrent(db, bd.Date, int(count)); err != nil {
			l.log.Warnf("Failed to repair counter for %s: %+v", bd.Date, err)
			return err
		}
		repaired++
	}

	if removed > 0 || repaired > 0 {
		l.log.Infof("Ledger reconcile: removed %d past dates, repaired %d counters", removed, repaired)
	}
	return nil
}
