package repositories

import (
	"context"

	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"
	"gorm.io/gorm"
)

const minEmbeddingSimilarity = 0.7

type PoiEmbeddingRepository interface {
	// NearestByVector returns POI ids in city ordered by cosine similarity,
	// keeping only matches above minEmbeddingSimilarity.
	NearestByVector(ctx context.Context, vector pgvector.Vector, city string, limit int) ([]uuid.UUID, error)
}

type poiEmbeddingRepository struct {
	db *gorm.DB
}

func NewPoiEmbeddingRepository(db *gorm.DB) PoiEmbeddingRepository {
	return &poiEmbeddingRepository{db: db}
}

func (p *poiEmbeddingRepository) NearestByVector(ctx context.Context, vector pgvector.Vector, city string, limit int) ([]uuid.UUID, error) {
	query := `
        SELECT poi_id
        FROM poi_embeddings
        WHERE city ILIKE ?
          AND (1 - (embedding <=> ?)) > ?
        ORDER BY embedding <=> ?
        LIMIT ?
    `

	var ids []uuid.UUID
	err := p.db.WithContext(ctx).
		Raw(query, cityPattern(city), vector, minEmbeddingSimilarity, vector, limit).
		Scan(&ids).Error
	if err != nil {
		return nil, err
	}
	return ids, nil
}
