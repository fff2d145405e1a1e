package repositories

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	dbm "tripgen/internal/models/db_models"
)

type JourneyRepository interface {
	// SaveJourney writes the journey, its days and their activities in one
	// transaction.
	SaveJourney(ctx context.Context, journey *dbm.Journey) (uuid.UUID, error)
	GetListOfJourneyByUserId(ctx context.Context, page int, pagesize int, userId string) ([]dbm.Journey, error)
	// GetDetailsOfJourneyById returns nil, nil when the journey does not exist.
	GetDetailsOfJourneyById(ctx context.Context, journeyId string) (*dbm.Journey, error)
}

type journeyRepository struct {
	db *gorm.DB
}

func NewJourneyRepository(db *gorm.DB) JourneyRepository {
	return &journeyRepository{db: db}
}

func (r *journeyRepository) SaveJourney(ctx context.Context, journey *dbm.Journey) (uuid.UUID, error) {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		days := journey.Days
		journey.Days = nil
		defer func() { journey.Days = days }()

		if err := tx.Create(journey).Error; err != nil {
			return err
		}

		for i := range days {
			d := &days[i]
			d.JourneyID = journey.ID
			acts := d.Activities
			d.Activities = nil

			err := tx.Create(d).Error
			d.Activities = acts
			if err != nil {
				return err
			}

			for j := range acts {
				acts[j].JourneyDayID = d.ID
				acts[j].Position = j
			}
			if len(acts) > 0 {
				if err := tx.Create(&acts).Error; err != nil {
					return err
				}
			}
		}
		return nil
	})
	if err != nil {
		return uuid.Nil, err
	}
	return journey.ID, nil
}

func (r *journeyRepository) GetListOfJourneyByUserId(ctx context.Context, page int, pagesize int, userId string) ([]dbm.Journey, error) {
	var journeys []dbm.Journey
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userId).
		Order("created_at DESC").
		Offset((page - 1) * pagesize).
		Limit(pagesize).
		Find(&journeys).Error
	if err != nil {
		return nil, err
	}

	return journeys, nil
}

func (r *journeyRepository) GetDetailsOfJourneyById(ctx context.Context, journeyId string) (*dbm.Journey, error) {
	var journey dbm.Journey
	err := r.db.WithContext(ctx).
		Where("id = ?", journeyId).
		Preload("Days", func(db *gorm.DB) *gorm.DB {
			return db.Order("day_number")
		}).
		Preload("Days.Activities", func(db *gorm.DB) *gorm.DB {
			return db.Order("position")
		}).
		First(&journey).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return &journey, nil
}
