package templates

import (
	"github.com/uptrace/bun"

	"github.com/taskorch/dashboard/pkg/uuidcodec"
)

// Template represents a row in the templates table.
type Template struct {
	bun.BaseModel `bun:"table:templates,alias:tp"`

	ID          uuidcodec.ID `bun:"id,pk"`
	Name        string       `bun:"name"`
	Description *string      `bun:"description"`
	Category    *string      `bun:"category"`
	IsEnabled   int          `bun:"is_enabled"`
	CreatedAt   *string      `bun:"created_at"`
	UpdatedAt   *string      `bun:"updated_at"`
}

// TemplateDTO is the template shape returned to the frontend.
type TemplateDTO struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description *string `json:"description"`
	Category    *string `json:"category"`
	IsEnabled   int     `json:"is_enabled"`
	CreatedAt   *string `json:"created_at"`
	UpdatedAt   *string `json:"updated_at"`
}

// ToDTO projects the row.
func (t *Template) ToDTO() TemplateDTO {
	return TemplateDTO{
		ID:          t.ID.String(),
		Name:        t.Name,
		Description: t.Description,
		Category:    t.Category,
		IsEnabled:   t.IsEnabled,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
}
