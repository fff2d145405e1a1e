package services

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"
	"tripgen/internal/models/db_models"
	"tripgen/internal/models/request_models"
	"tripgen/internal/models/response_models"
	"tripgen/internal/planner"
	"tripgen/internal/repositories"
	"tripgen/pkg/utils"
)

type JourneyServiceInterface interface {
	// CreateJourney generates an itinerary from the request and stores it for
	// the user.
	CreateJourney(ctx context.Context, userId string, req request_models.CreateJourneyRequest, startDate time.Time) (*response_models.JourneyDetailResponse, error)
	GetListOfJourneyByUserId(ctx context.Context, page int, pagesize int, userId string) ([]response_models.JourneyResponse, error)
	GetDetailsInfoOfJourneyById(ctx context.Context, userId string, journeyId string) (*response_models.JourneyDetailResponse, error)
}

type JourneyService struct {
	journeyRepo repositories.JourneyRepository
	itineraries ItineraryServiceInterface
}

func NewJourneyService(journeyRepo repositories.JourneyRepository, itineraries ItineraryServiceInterface) JourneyServiceInterface {
	return &JourneyService{
		journeyRepo: journeyRepo,
		itineraries: itineraries,
	}
}

func (j *JourneyService) CreateJourney(ctx context.Context, userId string, req request_models.CreateJourneyRequest, startDate time.Time) (*response_models.JourneyDetailResponse, error) {
	uid, err := uuid.Parse(userId)
	if err != nil {
		return nil, utils.ErrInvalidInput
	}

	generated, err := j.itineraries.Generate(ctx, req.Prompt, startDate, req.Start.MatrixPoint())
	if err != nil {
		return nil, err
	}

	journey, err := toJourneyRow(uid, req, generated)
	if err != nil {
		return nil, err
	}

	id, err := j.journeyRepo.SaveJourney(ctx, journey)
	if err != nil {
		log.Printf("Error saving journey for user %s: %v", userId, err)
		return nil, utils.ErrDatabaseError
	}
	journey.ID = id

	return toJourneyDetail(journey), nil
}

func (j *JourneyService) GetListOfJourneyByUserId(ctx context.Context, page int, pagesize int, userId string) ([]response_models.JourneyResponse, error) {
	if page < 1 {
		return nil, utils.ErrInvalidPage
	}
	if pagesize < 1 || pagesize > 100 {
		return nil, utils.ErrInvalidPageSize
	}

	journeys, err := j.journeyRepo.GetListOfJourneyByUserId(ctx, page, pagesize, userId)
	if err != nil {
		log.Printf("Error listing journeys for user %s: %v", userId, err)
		return nil, utils.ErrDatabaseError
	}

	resp := make([]response_models.JourneyResponse, 0, len(journeys))
	for _, journey := range journeys {
		resp = append(resp, response_models.JourneyResponse{
			ID:           journey.ID.String(),
			Title:        journey.Title,
			Location:     journey.Location,
			StartDate:    utils.FormatDate(journey.StartDate),
			EndDate:      utils.FormatDate(journey.EndDate),
			DurationDays: durationDays(journey.StartDate, journey.EndDate),
		})
	}
	return resp, nil
}

func (j *JourneyService) GetDetailsInfoOfJourneyById(ctx context.Context, userId string, journeyId string) (*response_models.JourneyDetailResponse, error) {
	if _, err := uuid.Parse(journeyId); err != nil {
		return nil, utils.ErrJourneyNotFound
	}

	journey, err := j.journeyRepo.GetDetailsOfJourneyById(ctx, journeyId)
	if err != nil {
		log.Printf("Error fetching journey %s: %v", journeyId, err)
		return nil, utils.ErrDatabaseError
	}
	if journey == nil {
		return nil, utils.ErrJourneyNotFound
	}
	if journey.UserID.String() != userId {
		return nil, utils.ErrForbidden
	}

	return toJourneyDetail(journey), nil
}

func toJourneyRow(userID uuid.UUID, req request_models.CreateJourneyRequest, gen *response_models.ItineraryResponse) (*db_models.Journey, error) {
	prefs := gen.Preferences
	title := strings.TrimSpace(req.Title)
	if title == "" {
		title = fmt.Sprintf("%d days in %s", prefs.Duration, prefs.Location)
	}

	journey := &db_models.Journey{
		UserID:     userID,
		Title:      title,
		Prompt:     req.Prompt,
		Location:   prefs.Location,
		Categories: prefs.Categories,
		Pace:       prefs.Pace,
		Budget:     prefs.Budget,
	}

	for _, d := range gen.Itinerary {
		date, err := time.Parse(utils.DateLayout, d.Date)
		if err != nil {
			return nil, fmt.Errorf("day %d has bad date %q: %w", d.Day, d.Date, err)
		}
		day := db_models.JourneyDay{
			DayNumber: d.Day,
			Date:      date,
			Weekday:   d.Weekday,
		}
		for i, a := range d.Activities {
			day.Activities = append(day.Activities, db_models.JourneyActivity{
				Position:        i,
				Slot:            string(a.Slot),
				VenueID:         a.VenueID,
				Name:            a.Name,
				Category:        a.Category,
				StartTime:       a.StartTime,
				EndTime:         a.EndTime,
				StartHour:       a.StartHour,
				EndHour:         a.EndHour,
				DurationMinutes: a.DurationMinutes,
				OpeningHours:    a.OpeningHours,
				Latitude:        a.Latitude,
				Longitude:       a.Longitude,
				Address:         a.Address,
				Fallback:        a.Fallback,
			})
		}
		journey.Days = append(journey.Days, day)
	}

	if n := len(journey.Days); n > 0 {
		journey.StartDate = journey.Days[0].Date
		journey.EndDate = journey.Days[n-1].Date
	}
	return journey, nil
}

func toJourneyDetail(journey *db_models.Journey) *response_models.JourneyDetailResponse {
	resp := &response_models.JourneyDetailResponse{
		ID:     journey.ID,
		Title:  journey.Title,
		Prompt: journey.Prompt,
		Preferences: planner.Preferences{
			Categories: []string(journey.Categories),
			Location:   journey.Location,
			Duration:   len(journey.Days),
			Pace:       journey.Pace,
			Budget:     journey.Budget,
		},
		StartDate:    utils.FormatDate(journey.StartDate),
		EndDate:      utils.FormatDate(journey.EndDate),
		DurationDays: len(journey.Days),
		Days:         make([]planner.DayPlan, 0, len(journey.Days)),
	}

	for _, d := range journey.Days {
		plan := planner.DayPlan{
			Day:        d.DayNumber,
			Date:       utils.FormatDate(d.Date),
			Weekday:    d.Weekday,
			Activities: make([]planner.ScheduledActivity, 0, len(d.Activities)),
		}
		for _, a := range d.Activities {
			plan.Activities = append(plan.Activities, planner.ScheduledActivity{
				VenueID:         a.VenueID,
				Name:            a.Name,
				Category:        a.Category,
				Slot:            planner.SlotType(a.Slot),
				StartTime:       a.StartTime,
				EndTime:         a.EndTime,
				StartHour:       a.StartHour,
				EndHour:         a.EndHour,
				DurationMinutes: a.DurationMinutes,
				OpeningHours:    a.OpeningHours,
				Latitude:        a.Latitude,
				Longitude:       a.Longitude,
				Address:         a.Address,
				Fallback:        a.Fallback,
			})
		}
		resp.TotalActivities += len(plan.Activities)
		resp.Days = append(resp.Days, plan)
	}
	return resp
}

func durationDays(start, end time.Time) int {
	if start.IsZero() || end.IsZero() {
		return 0
	}
	return int(end.Sub(start).Hours()/24) + 1
}
