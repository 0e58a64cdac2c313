package services

import (
	"errors"

	"gorm.io/gorm"

	"github.com/hatchlab/hatchery-backend/models"
)

// CatalogService owns the space/machine catalog and the single
// authoritative install operation that keeps Space.CurrentMachine and
// Machine.InstalledIn in sync. Both edit paths (space-side and
// machine-side) must go through InstallMachine so the bidirectional
// invariant cannot drift.
type CatalogService struct {
	DB *gorm.DB
}

func NewCatalogService(db *gorm.DB) *CatalogService {
	return &CatalogService{DB: db}
}

// SpaceByCustomID looks a space up by its custom identifier, with
// capabilities and the installed machine preloaded.
func (s *CatalogService) SpaceByCustomID(customID string) (*models.Space, error) {
	var space models.Space
	err := s.DB.Preload("Capabilities").Preload("CurrentMachine.CertificationsRequired").
		Where("custom_id = ?", customID).First(&space).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &space, nil
}

// SpaceByID looks a space up by primary key.
func (s *CatalogService) SpaceByID(id uint) (*models.Space, error) {
	var space models.Space
	err := s.DB.Preload("Capabilities").Preload("CurrentMachine.CertificationsRequired").
		First(&space, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &space, nil
}

// MachineByCustomID looks a machine up by its custom identifier, with
// required certifications and host space preloaded.
func (s *CatalogService) MachineByCustomID(customID string) (*models.Machine, error) {
	var machine models.Machine
	err := s.DB.Preload("CertificationsRequired").Preload("InstalledIn").
		Where("custom_id = ?", customID).First(&machine).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &machine, nil
}

// MachineByID looks a machine up by primary key.
func (s *CatalogService) MachineByID(id uint) (*models.Machine, error) {
	var machine models.Machine
	err := s.DB.Preload("CertificationsRequired").Preload("InstalledIn").First(&machine, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &machine, nil
}

// InstallMachine installs the given machine into the space, or clears
// the installation when machineID is nil. The operation is idempotent
// and convergent no matter which edit path invoked it:
//
//   - space.current_machine = machine
//   - machine is added to space.capabilities if absent
//   - machine.installed_in = space
//   - no other machine keeps installed_in = space
//   - no other space keeps current_machine = machine
//
// Best-effort sync per the catalog contract; the transaction only
// guards against partial writes, not concurrent edits.
func (s *CatalogService) InstallMachine(spaceID uint, machineID *uint) error {
	return s.DB.Transaction(func(tx *gorm.DB) error {
		var space models.Space
		if err := tx.Preload("Capabilities").First(&space, spaceID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}

		if machineID == nil {
			if err := tx.Model(&models.Machine{}).
				Where("installed_in_id = ?", space.ID).
				Update("installed_in_id", nil).Error; err != nil {
				return err
			}
			return tx.Model(&space).Update("current_machine_id", nil).Error
		}

		var machine models.Machine
		if err := tx.First(&machine, *machineID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}

		if !space.HasCapability(machine.ID) {
			if err := tx.Model(&space).Association("Capabilities").Append(&machine); err != nil {
				return err
			}
		}

		// Evict any other machine recorded as installed here, and any
		// other space claiming this machine.
		if err := tx.Model(&models.Machine{}).
			Where("installed_in_id = ? AND id <> ?", space.ID, machine.ID).
			Update("installed_in_id", nil).Error; err != nil {
			return err
		}
		if err := tx.Model(&models.Space{}).
			Where("current_machine_id = ? AND id <> ?", machine.ID, space.ID).
			Update("current_machine_id", nil).Error; err != nil {
			return err
		}

		if err := tx.Model(&machine).Update("installed_in_id", space.ID).Error; err != nil {
			return err
		}
		return tx.Model(&space).Update("current_machine_id", machine.ID).Error
	})
}
