package sections

import (
	"context"
	"log/slog"

	"github.com/taskorch/dashboard/pkg/apperror"
	"github.com/taskorch/dashboard/pkg/logger"
	"github.com/taskorch/dashboard/pkg/uuidcodec"
)

// Service handles business logic for sections
type Service struct {
	repo *Repository
	log  *slog.Logger
}

// NewService creates a new section service
func NewService(repo *Repository, log *slog.Logger) *Service {
	return &Service{
		repo: repo,
		log:  log.With(logger.Scope("sections.svc")),
	}
}

// List returns sections. With both entity_type and entity_id it returns
// that entity's sections in ordinal order; a malformed entity id is a
// 400. Otherwise it returns the latest 100 sections.
func (s *Service) List(ctx context.Context, entityType, entityID string) ([]SectionDTO, error) {
	var (
		rows []Section
		err  error
	)

	if entityType != "" && entityID != "" {
		bin, ok := uuidcodec.Decode(entityID)
		if !ok {
			return nil, apperror.NewBadRequest("Invalid entity ID format")
		}
		rows, err = s.repo.ListForEntity(ctx, entityType, bin)
	} else {
		rows, err = s.repo.ListRecent(ctx)
	}
	if err != nil {
		return nil, err
	}

	result := make([]SectionDTO, len(rows))
	for i := range rows {
		result[i] = rows[i].ToDTO()
	}
	return result, nil
}
