package partner

import (
	"time"

	"github.com/comercia/backend/internal/domain/partner"
	"github.com/google/uuid"
)

// CreateSupplierRequest creates a supplier
type CreateSupplierRequest struct {
	Code             string `json:"code" binding:"required,max=50"`
	Name             string `json:"name" binding:"required,max=200"`
	TaxID            string `json:"tax_id" binding:"required,max=20"`
	PaymentTermsDays int    `json:"payment_terms_days" binding:"min=0"`
	Email            string `json:"email" binding:"omitempty,email"`
	Phone            string `json:"phone" binding:"max=50"`
}

// UpdateSupplierRequest updates a supplier's editable fields. TaxID changes
// are rejected once the supplier has confirmed documents.
type UpdateSupplierRequest struct {
	Name             *string `json:"name" binding:"omitempty,max=200"`
	TaxID            *string `json:"tax_id" binding:"omitempty,max=20"`
	PaymentTermsDays *int    `json:"payment_terms_days" binding:"omitempty,min=0"`
	Email            *string `json:"email" binding:"omitempty,email"`
	Phone            *string `json:"phone" binding:"omitempty,max=50"`
}

// SupplierResponse represents a supplier in API responses
type SupplierResponse struct {
	ID               uuid.UUID `json:"id"`
	Code             string    `json:"code"`
	Name             string    `json:"name"`
	TaxID            string    `json:"tax_id"`
	PaymentTermsDays int       `json:"payment_terms_days"`
	Email            string    `json:"email,omitempty"`
	Phone            string    `json:"phone,omitempty"`
	Active           bool      `json:"active"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// ToSupplierResponse converts a domain supplier to a response DTO
func ToSupplierResponse(s *partner.Supplier) SupplierResponse {
	return SupplierResponse{
		ID:               s.ID,
		Code:             s.Code,
		Name:             s.Name,
		TaxID:            s.TaxID,
		PaymentTermsDays: s.PaymentTermsDays,
		Email:            s.Email,
		Phone:            s.Phone,
		Active:           s.Active,
		CreatedAt:        s.CreatedAt,
		UpdatedAt:        s.UpdatedAt,
	}
}

// ToSupplierResponses converts a slice of suppliers
func ToSupplierResponses(suppliers []partner.Supplier) []SupplierResponse {
	responses := make([]SupplierResponse, 0, len(suppliers))
	for i := range suppliers {
		responses = append(responses, ToSupplierResponse(&suppliers[i]))
	}
	return responses
}
