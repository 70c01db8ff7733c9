package memory

import (
	"testing"
	"time"

	"glaze-matrix-be/internal/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPreviewRepository_SaveGetDelete(t *testing.T) {
	repo := NewPreviewRepository(time.Minute)
	preview := &entity.ReconcilePreview{Id: uuid.New(), Source: "CSV reimport - sheet.csv"}

	repo.Save(preview)
	got, ok := repo.Get(preview.Id.String())
	require.True(t, ok)
	assert.Same(t, preview, got)

	repo.Delete(preview.Id.String())
	_, ok = repo.Get(preview.Id.String())
	assert.False(t, ok)
}

func TestPreviewRepository_Expires(t *testing.T) {
	repo := NewPreviewRepository(20 * time.Millisecond)
	preview := &entity.ReconcilePreview{Id: uuid.New()}
	repo.Save(preview)

	time.Sleep(40 * time.Millisecond)
	_, ok := repo.Get(preview.Id.String())
	assert.False(t, ok)
}

func TestPreviewRepository_DefaultTTL(t *testing.T) {
	assert.Equal(t, 15*time.Minute, NewPreviewRepository(0).TTL())
}
