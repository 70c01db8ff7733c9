package memory

import (
	"time"

	"glaze-matrix-be/internal/entity"

	"github.com/patrickmn/go-cache"
)

// PreviewRepository holds reconciliation previews until they are applied or expire
type PreviewRepository struct {
	cache *cache.Cache
	ttl   time.Duration
}

func NewPreviewRepository(ttl time.Duration) *PreviewRepository {
	if ttl <= 0 {
		ttl = 15 * time.Minute
	}
	c := cache.New(ttl, 2*ttl)
	return &PreviewRepository{
		cache: c,
		ttl:   ttl,
	}
}

func (r *PreviewRepository) TTL() time.Duration {
	return r.ttl
}

func (r *PreviewRepository) Save(preview *entity.ReconcilePreview) {
	r.cache.Set(preview.Id.String(), preview, cache.DefaultExpiration)
}

func (r *PreviewRepository) Get(previewID string) (*entity.ReconcilePreview, bool) {
	if x, found := r.cache.Get(previewID); found {
		return x.(*entity.ReconcilePreview), true
	}
	return nil, false
}

func (r *PreviewRepository) Delete(previewID string) {
	r.cache.Delete(previewID)
}
