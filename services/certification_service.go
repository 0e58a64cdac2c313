package services

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/hatchlab/hatchery-backend/models"
)

// ErrNoPersonRecord means the user has no linked Person row in the
// training registry. Certification checks fail closed in that case.
var ErrNoPersonRecord = errors.New("your user account is not linked to a person record")

// CertificationService answers whether a user has completed the
// training courses a machine requires.
type CertificationService struct {
	DB *gorm.DB
}

func NewCertificationService(db *gorm.DB) *CertificationService {
	return &CertificationService{DB: db}
}

// MissingCourses returns the subset of required courses the user has
// not completed. An empty required set means no certification is
// needed. A user with no Person record fails closed: every required
// course is reported missing alongside ErrNoPersonRecord.
func (s *CertificationService) MissingCourses(userID uint, required []models.TrainingCourse) ([]models.TrainingCourse, error) {
	if len(required) == 0 {
		return nil, nil
	}

	var person models.Person
	err := s.DB.Where("user_id = ?", userID).First(&person).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return required, ErrNoPersonRecord
	}
	if err != nil {
		return nil, err
	}

	var completedIDs []uint
	if err := s.DB.Model(&models.TrainingRecord{}).
		Where("person_id = ?", person.ID).
		Pluck("training_course_id", &completedIDs).Error; err != nil {
		return nil, err
	}

	completed := make(map[uint]bool, len(completedIDs))
	for _, id := range completedIDs {
		completed[id] = true
	}

	var missing []models.TrainingCourse
	for _, course := range required {
		if !completed[course.ID] {
			missing = append(missing, course)
		}
	}
	return missing, nil
}

// Grant records completion of a course for the given user, creating
// the Person row if needed.
func (s *CertificationService) Grant(userID, courseID uint) error {
	return s.DB.Transaction(func(tx *gorm.DB) error {
		var course models.TrainingCourse
		if err := tx.First(&course, courseID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}

		var person models.Person
		err := tx.Where("user_id = ?", userID).First(&person).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			var user models.User
			if err := tx.First(&user, userID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return ErrNotFound
				}
				return err
			}
			person = models.Person{UserID: userID, Name: user.Name}
			if err := tx.Create(&person).Error; err != nil {
				return err
			}
		} else if err != nil {
			return err
		}

		var existing models.TrainingRecord
		err = tx.Where("person_id = ? AND training_course_id = ?", person.ID, courseID).
			First(&existing).Error
		if err == nil {
			return nil // already granted
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		record := models.TrainingRecord{PersonID: person.ID, TrainingCourseID: courseID, CompletedAt: time.Now()}
		return tx.Create(&record).Error
	})
}
