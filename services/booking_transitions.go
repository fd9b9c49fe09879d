// services/booking_transitions.go
package services

import (
	"errors"
	"fmt"

	"github.com/FawazNazmo/MechLink/entity"

	"gorm.io/gorm"
)

// guarded status flips: the WHERE clause carries the current-state check,
// so a stale caller simply affects zero rows.

func (s *BookingService) loadOwned(bookingID, callerID uint, callerIsMechanic bool) (*entity.Booking, error) {
	b, err := s.Repo.Get(bookingID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	if callerIsMechanic && b.MechanicID != callerID {
		return nil, ErrNotOwner
	}
	if !callerIsMechanic && b.UserID != callerID {
		return nil, ErrNotOwner
	}
	return b, nil
}

// ----- Mechanic actions -----

func (s *BookingService) Accept(mechanicID, bookingID uint) (*entity.Booking, error) {
	if _, err := s.loadOwned(bookingID, mechanicID, true); err != nil {
		return nil, err
	}

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		ok, err := s.Repo.UpdateStatusFromTo(tx, bookingID, []string{entity.BookingRequested}, entity.BookingAccepted)
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("%w: only requested bookings can be accepted", ErrInvalidState)
		}
		return s.Repo.AddEvent(tx, bookingID, "accepted", "mechanic", "Mechanic accepted the booking.")
	})
	if err != nil {
		return nil, err
	}
	return s.Repo.Get(bookingID)
}

func (s *BookingService) CancelByMechanic(mechanicID, bookingID uint) (*entity.Booking, error) {
	b, err := s.loadOwned(bookingID, mechanicID, true)
	if err != nil {
		return nil, err
	}

	err = s.DB.Transaction(func(tx *gorm.DB) error {
		ok, err := s.Repo.UpdateStatusFromTo(tx, bookingID,
			[]string{entity.BookingRequested, entity.BookingAccepted}, entity.BookingCancelledByMechanic)
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("%w: only pending bookings can be cancelled", ErrInvalidState)
		}
		return s.Repo.AddEvent(tx, bookingID, "cancelled_by_mechanic", "mechanic", "Booking cancelled by mechanic.")
	})
	if err != nil {
		return nil, err
	}

	// deposit refund notice, best-effort
	full, err := s.Repo.GetWithUser(bookingID)
	if err == nil && full.User.Email != "" {
		when := fmt.Sprintf("%s at %s", b.PreferredDate, b.PreferredTime)
		s.Mail.SendAsync(
			full.User.Email,
			"MechLink – Booking cancelled & deposit refund",
			fmt.Sprintf("Hi %s,\n\nYour booking (%s) was cancelled by the mechanic.\n\nYour £10 deposit will be refunded to your account within 3 working days.\n\nIf you still need help, you can create a new booking in MechLink.\n\nMechLink", full.User.FirstName, when),
		)
	}
	return s.Repo.Get(bookingID)
}

func (s *BookingService) MarkNoShow(mechanicID, bookingID uint) (*entity.Booking, error) {
	if _, err := s.loadOwned(bookingID, mechanicID, true); err != nil {
		return nil, err
	}

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		ok, err := s.Repo.UpdateStatusFromTo(tx, bookingID, []string{entity.BookingAccepted}, entity.BookingNoShowUser)
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("%w: only accepted bookings can be marked as no-show", ErrInvalidState)
		}
		return s.Repo.AddEvent(tx, bookingID, "no_show_user", "mechanic", "User did not arrive for the booking.")
	})
	if err != nil {
		return nil, err
	}
	return s.Repo.Get(bookingID)
}

// ----- User actions -----

func (s *BookingService) CancelByUser(userID, bookingID uint) (*entity.Booking, error) {
	if _, err := s.loadOwned(bookingID, userID, false); err != nil {
		return nil, err
	}

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		ok, err := s.Repo.UpdateStatusFromTo(tx, bookingID,
			[]string{entity.BookingRequested, entity.BookingAccepted}, entity.BookingCancelledByUser)
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("%w: only pending bookings can be cancelled", ErrInvalidState)
		}
		return s.Repo.AddEvent(tx, bookingID, "cancelled_by_user", "user", "Booking cancelled by user.")
	})
	if err != nil {
		return nil, err
	}
	return s.Repo.Get(bookingID)
}
