package dto

import (
	"time"

	"batibill/internal/core/apperror"
	"batibill/internal/core/id"
	"batibill/internal/core/money"
	"batibill/internal/domain/documents"
)

// LineRequest is one position on a document being created.
// Catalog defaults fill in whatever the caller leaves empty.
type LineRequest struct {
	ItemID      *string     `json:"itemId"`
	ItemCode    string      `json:"itemCode"`
	ItemName    string      `json:"itemName"`
	Description string      `json:"description"`
	Unit        string      `json:"unit"`
	Quantity    money.Money `json:"quantity" binding:"required"`
	UnitPrice   money.Money `json:"unitPrice"`
	TaxRate     money.Money `json:"taxRate"`
}

// CreateDocumentRequest creates an invoice, quote, or purchase order.
type CreateDocumentRequest struct {
	Type        string        `json:"type" binding:"required"`
	ClientID    string        `json:"clientId" binding:"required"`
	SiteID      *string       `json:"siteId"`
	IssuedDate  *time.Time    `json:"issuedDate"`
	DueDate     *time.Time    `json:"dueDate"`
	DiscountPct money.Money   `json:"discountPct"`
	Lines       []LineRequest `json:"lines" binding:"required,min=1"`
	Notes       string        `json:"notes"`

	// StatutoryRetention switches totals to public-works terms.
	StatutoryRetention bool `json:"statutoryRetention"`
}

// ToInput converts the request into the service input.
func (r CreateDocumentRequest) ToInput() (documents.CreateInput, error) {
	clientID, err := id.Parse(r.ClientID)
	if err != nil {
		return documents.CreateInput{}, apperror.NewValidation("invalid client id").
			WithDetail("client_id", r.ClientID)
	}

	in := documents.CreateInput{
		Type:               documents.Type(r.Type),
		ClientID:           clientID,
		DueDate:            r.DueDate,
		DiscountPct:        r.DiscountPct,
		Notes:              r.Notes,
		StatutoryRetention: r.StatutoryRetention,
	}
	if r.IssuedDate != nil {
		in.IssuedDate = *r.IssuedDate
	}
	if r.SiteID != nil {
		siteID, err := id.Parse(*r.SiteID)
		if err != nil {
			return documents.CreateInput{}, apperror.NewValidation("invalid site id").
				WithDetail("site_id", *r.SiteID)
		}
		in.SiteID = &siteID
	}

	in.Lines = make([]documents.LineInput, 0, len(r.Lines))
	for i, l := range r.Lines {
		line := documents.LineInput{
			ItemCode:    l.ItemCode,
			ItemName:    l.ItemName,
			Description: l.Description,
			Unit:        l.Unit,
			Quantity:    l.Quantity,
			UnitPrice:   l.UnitPrice,
			TaxRate:     l.TaxRate,
		}
		if l.ItemID != nil {
			itemID, err := id.Parse(*l.ItemID)
			if err != nil {
				return documents.CreateInput{}, apperror.NewValidation("invalid item id").
					WithDetail("line_no", i+1).
					WithDetail("item_id", *l.ItemID)
			}
			line.ItemID = &itemID
		}
		in.Lines = append(in.Lines, line)
	}
	return in, nil
}

// TransitionRequest moves a document to a new lifecycle status.
type TransitionRequest struct {
	Status string `json:"status" binding:"required"`
}

// DocumentFilter narrows document listings via query parameters.
type DocumentFilter struct {
	Type     string     `form:"type"`
	Status   string     `form:"status"`
	ClientID string     `form:"clientId"`
	SiteID   string     `form:"siteId"`
	From     *time.Time `form:"from" time_format:"2006-01-02"`
	To       *time.Time `form:"to" time_format:"2006-01-02"`
	Limit    int        `form:"limit"`
	Offset   int        `form:"offset"`
}

// ToFilter converts query parameters into the repository filter.
func (f DocumentFilter) ToFilter() (documents.ListFilter, error) {
	out := documents.ListFilter{
		Type:   documents.Type(f.Type),
		Status: documents.Status(f.Status),
		Limit:  f.Limit,
		Offset: f.Offset,
	}
	if f.ClientID != "" {
		clientID, err := id.Parse(f.ClientID)
		if err != nil {
			return documents.ListFilter{}, apperror.NewValidation("invalid client id").
				WithDetail("client_id", f.ClientID)
		}
		out.ClientID = clientID
	}
	if f.SiteID != "" {
		siteID, err := id.Parse(f.SiteID)
		if err != nil {
			return documents.ListFilter{}, apperror.NewValidation("invalid site id").
				WithDetail("site_id", f.SiteID)
		}
		out.SiteID = siteID
	}
	if f.From != nil {
		out.From = *f.From
	}
	if f.To != nil {
		out.To = *f.To
	}
	return out, nil
}

// LedgerStateResponse is the invoice state after a ledger mutation.
type LedgerStateResponse struct {
	RemainingBalance money.Money `json:"remainingBalance"`
	Status           string      `json:"status"`
}

// FromLedgerState creates the response from the derived state.
func FromLedgerState(s documents.LedgerState) LedgerStateResponse {
	return LedgerStateResponse{
		RemainingBalance: s.RemainingBalance,
		Status:           string(s.Status),
	}
}
