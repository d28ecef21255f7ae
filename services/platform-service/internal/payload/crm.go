package payload

import (
	"time"

	"github.com/vasapolrittideah/kinext-api/services/platform-service/internal/model"
)

type CreateContactRequest struct {
	FirstName string              `json:"first_name" validate:"required,max=100"`
	LastName  string              `json:"last_name"  validate:"required,max=100"`
	Email     string              `json:"email"      validate:"required,email"`
	Phone     *string             `json:"phone"      validate:"omitempty,max=32"`
	Company   *string             `json:"company"`
	JobTitle  *string             `json:"job_title"`
	Status    model.ContactStatus `json:"status"     validate:"omitempty,oneof=lead prospect customer other"`
	Notes     *string             `json:"notes"`
}

type ContactResponse struct {
	ID        string              `json:"id"`
	FirstName string              `json:"first_name"`
	LastName  string              `json:"last_name"`
	Email     string              `json:"email"`
	Phone     *string             `json:"phone,omitempty"`
	Company   *string             `json:"company,omitempty"`
	JobTitle  *string             `json:"job_title,omitempty"`
	Status    model.ContactStatus `json:"status"`
	Notes     *string             `json:"notes,omitempty"`
	CreatedAt time.Time           `json:"created_at"`
	UpdatedAt time.Time           `json:"updated_at"`
}

func NewContactResponse(contact *model.Contact) ContactResponse {
	return ContactResponse{
		ID:        contact.ID.Hex(),
		FirstName: contact.FirstName,
		LastName:  contact.LastName,
		Email:     contact.Email,
		Phone:     contact.Phone,
		Company:   contact.Company,
		JobTitle:  contact.JobTitle,
		Status:    contact.Status,
		Notes:     contact.Notes,
		CreatedAt: contact.CreatedAt,
		UpdatedAt: contact.UpdatedAt,
	}
}

type CreateInteractionRequest struct {
	Type  model.InteractionType `json:"type"  validate:"required,oneof=call email meeting note"`
	Notes *string               `json:"notes"`
	Date  *time.Time            `json:"date"`
}

type InteractionResponse struct {
	ID        string                `json:"id"`
	ContactID string                `json:"contact_id"`
	Type      model.InteractionType `json:"type"`
	Notes     *string               `json:"notes,omitempty"`
	Date      time.Time             `json:"date"`
}

func NewInteractionResponse(interaction *model.Interaction) InteractionResponse {
	return InteractionResponse{
		ID:        interaction.ID.Hex(),
		ContactID: interaction.ContactID.Hex(),
		Type:      interaction.Type,
		Notes:     interaction.Notes,
		Date:      interaction.Date,
	}
}
