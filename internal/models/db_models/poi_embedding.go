package db_models

import (
	"time"

	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"
)

// PoiEmbedding stores the text embedding of a POI's name and categories for
// semantic category search.
type PoiEmbedding struct {
	PoiID     uuid.UUID       `gorm:"type:uuid;primaryKey;column:poi_id"`
	City      string          `gorm:"index"`
	Embedding pgvector.Vector `gorm:"type:vector(1536)"`
	CreatedAt time.Time       `gorm:"autoCreateTime"`
}
