package utils

import "errors"

var (
	ErrInvalidInput           = errors.New("invalid input")
	ErrInvalidPage            = errors.New("invalid page parameter")
	ErrInvalidPageSize        = errors.New("invalid page size parameter")
	ErrInvalidStartDate       = errors.New("invalid start date")
	ErrDatabaseError          = errors.New("database error")
	ErrNoVenuesAvailable      = errors.New("no venues available for the requested location")
	ErrPlacesProvider         = errors.New("places provider error")
	ErrUnexpectedBehaviorOfAI = errors.New("unexpected behavior of AI service")
	ErrJourneyNotFound        = errors.New("journey not found")
	ErrForbidden              = errors.New("forbidden")
)
