package sections

import (
	"github.com/uptrace/bun"

	"github.com/taskorch/dashboard/pkg/uuidcodec"
)

// Section represents a row in the sections table: a block of structured
// documentation attached to a project, feature or task.
type Section struct {
	bun.BaseModel `bun:"table:sections,alias:s"`

	ID               uuidcodec.ID `bun:"id,pk"`
	EntityType       string       `bun:"entity_type"`
	EntityID         uuidcodec.ID `bun:"entity_id"`
	Title            *string      `bun:"title"`
	UsageDescription *string      `bun:"usage_description"`
	Content          *string      `bun:"content"`
	ContentFormat    *string      `bun:"content_format"`
	Ordinal          *int         `bun:"ordinal"`
	Tags             *string      `bun:"tags"`
	CreatedAt        *string      `bun:"created_at"`
	ModifiedAt       *string      `bun:"modified_at"`
}

// SectionDTO is the section shape returned to the frontend.
type SectionDTO struct {
	ID               string  `json:"id"`
	EntityType       string  `json:"entity_type"`
	EntityID         string  `json:"entity_id"`
	Title            *string `json:"title"`
	UsageDescription *string `json:"usage_description"`
	Content          *string `json:"content"`
	ContentFormat    *string `json:"content_format"`
	Ordinal          *int    `json:"ordinal"`
	Tags             *string `json:"tags"`
	CreatedAt        *string `json:"created_at"`
	ModifiedAt       *string `json:"modified_at"`
}

// ToDTO projects the row.
func (s *Section) ToDTO() SectionDTO {
	return SectionDTO{
		ID:               s.ID.String(),
		EntityType:       s.EntityType,
		EntityID:         s.EntityID.String(),
		Title:            s.Title,
		UsageDescription: s.UsageDescription,
		Content:          s.Content,
		ContentFormat:    s.ContentFormat,
		Ordinal:          s.Ordinal,
		Tags:             s.Tags,
		CreatedAt:        s.CreatedAt,
		ModifiedAt:       s.ModifiedAt,
	}
}
