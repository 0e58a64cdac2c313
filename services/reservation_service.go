package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/hatchlab/hatchery-backend/models"
	"github.com/hatchlab/hatchery-backend/utils"
)

// TargetRef identifies the single resource a reservation is for. The
// service only accepts reservations through a TargetRef, so a draft
// with zero or multiple targets cannot be expressed.
type TargetRef struct {
	Kind string // models.TargetSpace | TargetMachine | TargetTrainer
	ID   uint
}

// ReservationInput is a booking draft as received from a handler.
type ReservationInput struct {
	Title     string
	Date      string // 2006-01-02
	StartTime string // 15:04
	EndTime   string // 15:04
	Notes     string
}

// ReservationService validates and persists bookings against spaces,
// machines and trainers, and maintains the one-to-one link between a
// space reservation and the machine reservation it implies.
//
// No capacity, double-booking or schedule-hours checks run here; those
// absences are part of the contract, not omissions.
type ReservationService struct {
	DB *gorm.DB
}

func NewReservationService(db *gorm.DB) *ReservationService {
	return &ReservationService{DB: db}
}

// Create validates the draft and persists it, together with the linked
// reservation a space/machine pairing implies. The whole sequence runs
// in one transaction: a validation failure on either side persists
// nothing, and the error is reported against the booking the user
// attempted.
func (s *ReservationService) Create(userID uint, target TargetRef, in ReservationInput) (*models.Reservation, error) {
	if err := validateWindow(in); err != nil {
		return nil, err
	}

	var created *models.Reservation
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		certs := &CertificationService{DB: tx}

		primary := &models.Reservation{
			Title:     in.Title,
			UserID:    userID,
			Date:      in.Date,
			StartTime: in.StartTime,
			EndTime:   in.EndTime,
			Notes:     in.Notes,
			Status:    models.StatusApproved,
		}
		created = primary

		switch target.Kind {
		case models.TargetSpace:
			var space models.Space
			if err := tx.Preload("CurrentMachine.CertificationsRequired").
				First(&space, target.ID).Error; err != nil {
				return notFoundOr(err)
			}
			primary.SpaceID = &space.ID

			if space.CurrentMachine != nil {
				// Booking a space implicitly books its installed machine.
				if err := requireCertified(certs, userID, space.CurrentMachine,
					fmt.Sprintf("you do not have the required training to reserve this space (it includes machine %s)", space.CurrentMachine.Name)); err != nil {
					return err
				}
				if err := tx.Create(primary).Error; err != nil {
					return err
				}
				return createLinked(tx, primary, &models.Reservation{MachineID: &space.CurrentMachine.ID})
			}
			return tx.Create(primary).Error

		case models.TargetMachine:
			var machine models.Machine
			if err := tx.Preload("CertificationsRequired").Preload("InstalledIn").
				First(&machine, target.ID).Error; err != nil {
				return notFoundOr(err)
			}
			primary.MachineID = &machine.ID

			if err := requireCertified(certs, userID, &machine,
				"you do not have the required training to reserve this machine"); err != nil {
				return err
			}
			if err := tx.Create(primary).Error; err != nil {
				return err
			}
			if machine.InstalledInID != nil {
				// Booking an installed machine implicitly books its space.
				return createLinked(tx, primary, &models.Reservation{SpaceID: machine.InstalledInID})
			}
			return nil

		case models.TargetTrainer:
			var trainer models.Trainer
			if err := tx.First(&trainer, target.ID).Error; err != nil {
				return notFoundOr(err)
			}
			primary.TrainerID = &trainer.ID
			// Trainer bookings always await approval, whoever asks.
			primary.Status = models.StatusPending
			return tx.Create(primary).Error

		default:
			return newValidationError("reservation must target a space, machine or trainer")
		}
	})
	if err != nil {
		return nil, err
	}

	// Reload so the caller sees the linked ID written after creation.
	var out models.Reservation
	if err := s.DB.First(&out, created.ID).Error; err != nil {
		return nil, err
	}
	utils.InfoLogger.Printf("Reservation %d created (target=%s, user=%d)", out.ID, out.TargetKind(), userID)
	return &out, nil
}

// createLinked writes the derived half of a space/machine pair and
// cross-links both rows. The partner inherits the primary's window and
// owner; its title marks it as derived.
func createLinked(tx *gorm.DB, primary, derived *models.Reservation) error {
	derived.Title = "Linked to " + primary.Title
	derived.UserID = primary.UserID
	derived.Date = primary.Date
	derived.StartTime = primary.StartTime
	derived.EndTime = primary.EndTime
	derived.Status = models.StatusApproved
	derived.LinkedReservationID = &primary.ID

	if err := tx.Create(derived).Error; err != nil {
		return err
	}
	return tx.Model(primary).Update("linked_reservation_id", derived.ID).Error
}

// requireCertified fails with a validation error naming every missing
// course when the user has not completed the machine's requirements.
func requireCertified(certs *CertificationService, userID uint, machine *models.Machine, prefix string) error {
	missing, err := certs.MissingCourses(userID, machine.CertificationsRequired)
	if err != nil && !errors.Is(err, ErrNoPersonRecord) {
		return err
	}
	if errors.Is(err, ErrNoPersonRecord) {
		return newValidationError(ErrNoPersonRecord.Error())
	}
	if len(missing) > 0 {
		names := make([]string, len(missing))
		for i, c := range missing {
			names[i] = c.Name
		}
		return newValidationError(fmt.Sprintf("%s. Missing: %s", prefix, strings.Join(names, ", ")))
	}
	return nil
}

func validateWindow(in ReservationInput) error {
	if _, err := time.Parse("2006-01-02", in.Date); err != nil {
		return newValidationError("date must be in YYYY-MM-DD format")
	}
	start, err := time.Parse("15:04", in.StartTime)
	if err != nil {
		return newValidationError("start time must be in HH:MM format")
	}
	end, err := time.Parse("15:04", in.EndTime)
	if err != nil {
		return newValidationError("end time must be in HH:MM format")
	}
	if !start.Before(end) {
		return newValidationError("end time must be after start time")
	}
	if in.Title == "" {
		return newValidationError("reservation title is required")
	}
	return nil
}

func notFoundOr(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}

// Update edits the window, title and notes of an existing reservation
// owned by the user (staff may edit any). The target is immutable and
// certification is re-checked against it. Editing one side of a linked
// pair does not touch the other.
func (s *ReservationService) Update(userID uint, isStaff bool, reservationID uint, in ReservationInput) (*models.Reservation, error) {
	if err := validateWindow(in); err != nil {
		return nil, err
	}

	var res models.Reservation
	if err := s.DB.First(&res, reservationID).Error; err != nil {
		return nil, notFoundOr(err)
	}
	if res.UserID != userID && !isStaff {
		return nil, newValidationError("you can only edit your own reservations")
	}
	if err := s.recheckCertification(&res); err != nil {
		return nil, err
	}

	res.Title = in.Title
	res.Date = in.Date
	res.StartTime = in.StartTime
	res.EndTime = in.EndTime
	res.Notes = in.Notes
	if err := s.DB.Save(&res).Error; err != nil {
		return nil, err
	}
	return &res, nil
}

// recheckCertification re-runs the machine gate for the reservation's
// target. The owner could have had a record revoked since creation.
func (s *ReservationService) recheckCertification(res *models.Reservation) error {
	certs := NewCertificationService(s.DB)

	switch {
	case res.MachineID != nil:
		var machine models.Machine
		if err := s.DB.Preload("CertificationsRequired").First(&machine, *res.MachineID).Error; err != nil {
			return notFoundOr(err)
		}
		return requireCertified(certs, res.UserID, &machine,
			"you do not have the required training to reserve this machine")
	case res.SpaceID != nil:
		var space models.Space
		if err := s.DB.Preload("CurrentMachine.CertificationsRequired").First(&space, *res.SpaceID).Error; err != nil {
			return notFoundOr(err)
		}
		if space.CurrentMachine == nil {
			return nil
		}
		return requireCertified(certs, res.UserID, space.CurrentMachine,
			fmt.Sprintf("you do not have the required training to reserve this space (it includes machine %s)", space.CurrentMachine.Name))
	}
	return nil
}

// Delete removes one side of a reservation. The partner of a linked
// pair is left in place with its link cleared (SET NULL), matching the
// independent-deletion contract.
func (s *ReservationService) Delete(userID uint, isStaff bool, reservationID uint) error {
	var res models.Reservation
	if err := s.DB.First(&res, reservationID).Error; err != nil {
		return notFoundOr(err)
	}
	if res.UserID != userID && !isStaff {
		return newValidationError("you can only delete your own reservations")
	}

	return s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Reservation{}).
			Where("linked_reservation_id = ?", res.ID).
			Update("linked_reservation_id", nil).Error; err != nil {
			return err
		}
		return tx.Delete(&res).Error
	})
}

// SetApproval transitions a pending trainer reservation to approved or
// rejected. Both outcomes are terminal.
func (s *ReservationService) SetApproval(reservationID uint, approve bool) (*models.Reservation, error) {
	var res models.Reservation
	if err := s.DB.First(&res, reservationID).Error; err != nil {
		return nil, notFoundOr(err)
	}
	if res.TrainerID == nil {
		return nil, newValidationError("only trainer reservations carry an approval status")
	}
	if res.Status != models.StatusPending {
		return nil, newValidationError(fmt.Sprintf("reservation is already %s", res.Status))
	}

	if approve {
		res.Status = models.StatusApproved
	} else {
		res.Status = models.StatusRejected
	}
	if err := s.DB.Save(&res).Error; err != nil {
		return nil, err
	}
	utils.InfoLogger.Printf("Reservation %d %s", res.ID, res.Status)
	return &res, nil
}

// ForUser returns the user's reservations for the "my reservations"
// feed: every non-trainer booking plus only approved trainer bookings.
func (s *ReservationService) ForUser(userID uint) ([]models.Reservation, error) {
	var out []models.Reservation
	err := s.DB.Preload("Space").Preload("Machine").Preload("Trainer").
		Where("user_id = ?", userID).
		Where("trainer_id IS NULL OR status = ?", models.StatusApproved).
		Order("date, start_time").
		Find(&out).Error
	return out, err
}
