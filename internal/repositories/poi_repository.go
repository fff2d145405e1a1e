package repositories

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"tripgen/internal/models/db_models"
)

type POIRepository interface {
	// SearchByTerms returns POIs in city whose name or any category label
	// contains one of terms, best rated first.
	SearchByTerms(ctx context.Context, city string, terms []string, limit int) ([]db_models.POI, error)
	// ListByIDs loads POIs in the order of ids; unknown ids are skipped.
	ListByIDs(ctx context.Context, ids []uuid.UUID) ([]db_models.POI, error)
}

type poiRepository struct {
	db *gorm.DB
}

func NewPOIRepository(db *gorm.DB) POIRepository {
	return &poiRepository{db: db}
}

func (r *poiRepository) SearchByTerms(ctx context.Context, city string, terms []string, limit int) ([]db_models.POI, error) {
	if len(terms) == 0 {
		return nil, nil
	}

	q := r.db.WithContext(ctx).Preload("Hours")
	if city = strings.TrimSpace(city); city != "" {
		q = q.Where("city ILIKE ?", cityPattern(city))
	}

	match := r.db.Where("1 = 0")
	for _, term := range terms {
		like := "%" + strings.ToLower(strings.TrimSpace(term)) + "%"
		match = match.
			Or("LOWER(name) LIKE ?", like).
			Or("LOWER(array_to_string(categories, ' ')) LIKE ?", like)
	}

	var pois []db_models.POI
	err := q.Where(match).
		Order("rating DESC NULLS LAST").
		Order("name").
		Limit(limit).
		Find(&pois).Error
	if err != nil {
		return nil, err
	}
	return pois, nil
}

func (r *poiRepository) ListByIDs(ctx context.Context, ids []uuid.UUID) ([]db_models.POI, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	var pois []db_models.POI
	err := r.db.WithContext(ctx).
		Preload("Hours").
		Where("id IN ?", ids).
		Find(&pois).Error
	if err != nil {
		return nil, err
	}

	byID := make(map[uuid.UUID]db_models.POI, len(pois))
	for _, p := range pois {
		byID[p.ID] = p
	}
	ordered := make([]db_models.POI, 0, len(pois))
	for _, id := range ids {
		if p, ok := byID[id]; ok {
			ordered = append(ordered, p)
		}
	}
	return ordered, nil
}

// cityPattern matches "Paris" against rows stored as "Paris" or "Paris, FR".
func cityPattern(near string) string {
	city := near
	if i := strings.Index(city, ","); i >= 0 {
		city = city[:i]
	}
	return strings.TrimSpace(city) + "%"
}
