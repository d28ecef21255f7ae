package payload

import (
	"encoding/json"
	"time"

	"github.com/vasapolrittideah/kinext-api/services/platform-service/internal/model"
)

type CreatePageRequest struct {
	Title     string `json:"title"     validate:"required,max=200"`
	Slug      string `json:"slug"      validate:"required,max=200,lowercase"`
	Content   string `json:"content"`
	Published bool   `json:"published"`
}

type PageResponse struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Slug      string    `json:"slug"`
	Content   string    `json:"content"`
	Published bool      `json:"published"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func NewPageResponse(page *model.Page) PageResponse {
	return PageResponse{
		ID:        page.ID.Hex(),
		Title:     page.Title,
		Slug:      page.Slug,
		Content:   page.Content,
		Published: page.Published,
		CreatedAt: page.CreatedAt,
		UpdatedAt: page.UpdatedAt,
	}
}

// CreateContentBlockRequest carries the block payload undecoded; its shape
// depends on Type.
type CreateContentBlockRequest struct {
	Type  model.BlockType `json:"type"  validate:"required,oneof=text image video hero callout"`
	Order int             `json:"order" validate:"min=0"`
	Data  json.RawMessage `json:"data"  validate:"required"`
}

type ContentBlockResponse struct {
	ID     string          `json:"id"`
	PageID string          `json:"page_id"`
	Type   model.BlockType `json:"type"`
	Order  int             `json:"order"`
	Data   model.BlockData `json:"data"`
}

func NewContentBlockResponse(block *model.ContentBlock) ContentBlockResponse {
	return ContentBlockResponse{
		ID:     block.ID.Hex(),
		PageID: block.PageID.Hex(),
		Type:   block.Type(),
		Order:  block.Order,
		Data:   block.Data,
	}
}
