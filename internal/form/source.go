package form

import (
	"context"

	"github.com/takak2166/sitedata/internal/models"
)

//go:generate mockgen -source=source.go -destination=mock_form/mock_source.go -package=mock_form
type ChapterSource interface {
	FetchChapters(ctx context.Context) ([]models.Chapter, error)
}
