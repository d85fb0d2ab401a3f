package entity

import "errors"

// ErrInvalidTransition is returned when an event is not allowed from the
// appointment's current status. There is no way out of cancelled.
var ErrInvalidTransition = errors.New("invalid status transition")

// StatusEvent is an action applied to an appointment's status
type StatusEvent string

const (
	EventConfirm StatusEvent = "confirm"
	EventCancel  StatusEvent = "cancel"
)

// LedgerEffect names the slot-ledger side effect a transition requires.
// Callers apply it in the same transaction as the status update.
type LedgerEffect int

const (
	EffectNone LedgerEffect = iota
	EffectReserve
	EffectRelease
)

// NextStatus is the single authority for status transitions. It takes the
// current status, the event, and whether the appointment already holds a
// ledger slot, and returns the next status plus the required ledger effect.
//
// Allowed: pending -> confirmed, pending -> cancelled, confirmed -> cancelled.
// Confirming an already-confirmed appointment is a no-op so that repeated
// payment verifications stay idempotent.
func NextStatus(current AppointmentStatus, event StatusEvent, holdsSlot bool) (AppointmentStatus, LedgerEffect, error) {
	switch current {
	case AppointmentStatusPending:
		switch event {
		case EventConfirm:
			if holdsSlot {
				return AppointmentStatusConfirmed, EffectNone, nil
			}
			return AppointmentStatusConfirmed, EffectReserve, nil
		case EventCancel:
			if holdsSlot {
				return AppointmentStatusCancelled, EffectRelease, nil
			}
			return AppointmentStatusCancelled, EffectNone, nil
		}
	case AppointmentStatusConfirmed:
		switch event {
		case EventConfirm:
			return AppointmentStatusConfirmed, EffectNone, nil
		case EventCancel:
			if holdsSlot {
				return AppointmentStatusCancelled, EffectRelease, nil
			}
			return AppointmentStatusCancelled, EffectNone, nil
		}
	case AppointmentStatusCancelled:
		return current, EffectNone, ErrInvalidTransition
	}
	return current, EffectNone, ErrInvalidTransition
}
