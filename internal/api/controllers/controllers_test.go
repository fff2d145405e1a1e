package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"tripgen/internal/infra"
	"tripgen/internal/models/request_models"
	"tripgen/internal/models/response_models"
	"tripgen/internal/planner"
	"tripgen/internal/services"
	"tripgen/pkg/utils"
)

func init() {
	gin.SetMode(gin.TestMode)
}

var testConfig = &infra.Config{Planner: infra.PlannerTuning{TimeZone: "UTC"}}

type fakeItineraryService struct {
	gotInput string
	gotStart time.Time
	gotFrom  *planner.MatrixPoint
	err      error
}

func (f *fakeItineraryService) Generate(_ context.Context, userInput string, startDate time.Time, start *planner.MatrixPoint) (*response_models.ItineraryResponse, error) {
	f.gotInput, f.gotStart, f.gotFrom = userInput, startDate, start
	if f.err != nil {
		return nil, f.err
	}
	return &response_models.ItineraryResponse{
		Preferences: planner.Preferences{Location: "Paris", Duration: 1},
		StartDate:   startDate.Format(utils.DateLayout),
		Itinerary:   []planner.DayPlan{{Day: 1, Date: startDate.Format(utils.DateLayout), Activities: []planner.ScheduledActivity{}}},
	}, nil
}

func decode(t *testing.T, w *httptest.ResponseRecorder) utils.APIResponse {
	t.Helper()
	var resp utils.APIResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func TestGenerateItinerary(t *testing.T) {
	svc := &fakeItineraryService{}
	r := gin.New()
	r.POST("/itineraries/generate", NewItineraryController(svc, testConfig).GenerateItinerary)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/itineraries/generate",
		strings.NewReader(`{"prompt":"2 days in Rome","start_date":"2026-10-20"}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "2 days in Rome", svc.gotInput)
	assert.Equal(t, time.Date(2026, time.October, 20, 0, 0, 0, 0, time.UTC), svc.gotStart)
	assert.Equal(t, "success", decode(t, w).Status)
	assert.Nil(t, svc.gotFrom)
}

func TestGenerateItineraryWithStartLocation(t *testing.T) {
	svc := &fakeItineraryService{}
	r := gin.New()
	r.POST("/itineraries/generate", NewItineraryController(svc, testConfig).GenerateItinerary)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/itineraries/generate",
		strings.NewReader(`{"prompt":"Paris","start":{"lat":48.8566,"lng":2.3522}}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	require.NotNil(t, svc.gotFrom)
	assert.InDelta(t, 48.8566, svc.gotFrom.Lat, 1e-9)
	assert.InDelta(t, 2.3522, svc.gotFrom.Lng, 1e-9)

	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodPost, "/itineraries/generate",
		strings.NewReader(`{"prompt":"Paris","start":{"lat":123,"lng":2}}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGenerateItineraryBadRequests(t *testing.T) {
	testCases := []struct {
		name string
		body string
		err  error
		code int
	}{
		{"missing prompt", `{}`, nil, http.StatusBadRequest},
		{"bad date", `{"prompt":"x","start_date":"tomorrow"}`, nil, http.StatusBadRequest},
		{"no venues", `{"prompt":"x"}`, utils.ErrNoVenuesAvailable, http.StatusUnprocessableEntity},
		{"blank prompt", `{"prompt":"  "}`, utils.ErrInvalidInput, http.StatusBadRequest},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			svc := &fakeItineraryService{err: tc.err}
			r := gin.New()
			r.POST("/gen", NewItineraryController(svc, testConfig).GenerateItinerary)

			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, "/gen", strings.NewReader(tc.body))
			req.Header.Set("Content-Type", "application/json")
			r.ServeHTTP(w, req)

			assert.Equal(t, tc.code, w.Code)
			assert.Equal(t, "error", decode(t, w).Status)
		})
	}
}

type fakeJourneyService struct {
	gotUser string
	gotPage int
	gotSize int
	err     error
}

func (f *fakeJourneyService) CreateJourney(_ context.Context, userId string, req request_models.CreateJourneyRequest, _ time.Time) (*response_models.JourneyDetailResponse, error) {
	f.gotUser = userId
	if f.err != nil {
		return nil, f.err
	}
	return &response_models.JourneyDetailResponse{ID: uuid.New(), Title: req.Title, Prompt: req.Prompt}, nil
}

func (f *fakeJourneyService) GetListOfJourneyByUserId(_ context.Context, page int, pagesize int, userId string) ([]response_models.JourneyResponse, error) {
	f.gotUser, f.gotPage, f.gotSize = userId, page, pagesize
	return []response_models.JourneyResponse{{ID: "j1", Title: "Rome"}}, f.err
}

func (f *fakeJourneyService) GetDetailsInfoOfJourneyById(_ context.Context, userId string, _ string) (*response_models.JourneyDetailResponse, error) {
	f.gotUser = userId
	if f.err != nil {
		return nil, f.err
	}
	return &response_models.JourneyDetailResponse{Title: "Rome"}, nil
}

func journeyRouter(svc services.JourneyServiceInterface) *gin.Engine {
	r := gin.New()
	r.Use(func(c *gin.Context) { c.Set("user_id", "user-1") })
	jc := NewJourneyController(svc, testConfig)
	r.POST("/journeys", jc.CreateJourney)
	r.GET("/journeys", jc.GetJourneyByUserId)
	r.GET("/journeys/:journeyId", jc.GetDetailsInfoOfJourneyById)
	return r
}

func TestCreateJourneyController(t *testing.T) {
	svc := &fakeJourneyService{}
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/journeys", strings.NewReader(`{"prompt":"Rome","title":"Spring"}`))
	req.Header.Set("Content-Type", "application/json")
	journeyRouter(svc).ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "user-1", svc.gotUser)
}

func TestListJourneysController(t *testing.T) {
	svc := &fakeJourneyService{}
	w := httptest.NewRecorder()
	journeyRouter(svc).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/journeys?page=2&pageSize=10", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 2, svc.gotPage)
	assert.Equal(t, 10, svc.gotSize)

	w = httptest.NewRecorder()
	journeyRouter(svc).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/journeys?pageSize=500", nil))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestJourneyDetailsController(t *testing.T) {
	testCases := []struct {
		name string
		err  error
		code int
	}{
		{"found", nil, http.StatusOK},
		{"missing", utils.ErrJourneyNotFound, http.StatusNotFound},
		{"other owner", utils.ErrForbidden, http.StatusForbidden},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			journeyRouter(&fakeJourneyService{err: tc.err}).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/journeys/"+uuid.NewString(), nil))
			assert.Equal(t, tc.code, w.Code)
		})
	}
}

type fakePlacesService struct {
	got services.PlaceQuery
}

func (f *fakePlacesService) SearchVenues(_ context.Context, q services.PlaceQuery) ([]response_models.Venue, error) {
	f.got = q
	return []response_models.Venue{{ID: "v1", Name: "Louvre", Category: "Art Museum"}}, nil
}

func TestSearchPlaces(t *testing.T) {
	svc := &fakePlacesService{}
	r := gin.New()
	r.GET("/places/search", NewPlacesController(svc).SearchPlaces)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/places/search?query=museums&near=Paris&limit=5", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, services.PlaceQuery{Query: "museums", Near: "Paris", Limit: 5}, svc.got)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/places/search?query=museums", nil))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
