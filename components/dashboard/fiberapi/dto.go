package fiberapi

import (
	"time"

	dashboard "github.com/goliatone/go-seller-dashboard/components/dashboard"
)

type sellerDTO struct {
	ID     string  `json:"seller_id"`
	Name   string  `json:"name"`
	Rating float64 `json:"rating,omitempty"`
}

type selectionDTO struct {
	Status   string      `json:"status"`
	Selected sellerDTO   `json:"selected"`
	Sellers  []sellerDTO `json:"sellers"`
	Loading  bool        `json:"loading"`
	Error    string      `json:"error,omitempty"`
	Version  uint64      `json:"version"`
}

type widgetDTO struct {
	Code      string               `json:"code"`
	Name      string               `json:"name"`
	Status    string               `json:"status"`
	Error     string               `json:"error,omitempty"`
	SellerID  string               `json:"seller_id,omitempty"`
	UpdatedAt *time.Time           `json:"updated_at,omitempty"`
	View      *dashboard.ViewModel `json:"view,omitempty"`
}

type pageDTO struct {
	Page         string       `json:"page"`
	Title        string       `json:"title"`
	SellerScoped bool         `json:"seller_scoped"`
	Loading      bool         `json:"loading"`
	Selection    selectionDTO `json:"selection"`
	Widgets      []widgetDTO  `json:"widgets"`
}

func toSellerDTO(s dashboard.Seller) sellerDTO {
	return sellerDTO{ID: s.ID, Name: s.Name, Rating: s.Rating}
}

func toSelectionDTO(state dashboard.SelectionState) selectionDTO {
	out := selectionDTO{
		Status:   string(state.Status),
		Selected: toSellerDTO(state.Selected),
		Sellers:  make([]sellerDTO, len(state.Sellers)),
		Loading:  state.Loading,
		Version:  state.Version,
	}
	for i, s := range state.Sellers {
		out.Sellers[i] = toSellerDTO(s)
	}
	if state.Err != nil {
		out.Error = state.Err.Error()
	}
	return out
}

func toPageDTO(view dashboard.PageView) pageDTO {
	out := pageDTO{
		Page:         view.Page.Code,
		Title:        view.Page.Title,
		SellerScoped: view.SellerScoped,
		Loading:      view.Loading(),
		Selection:    toSelectionDTO(view.Selection),
		Widgets:      make([]widgetDTO, len(view.Widgets)),
	}
	for i, w := range view.Widgets {
		dto := widgetDTO{
			Code:     w.Code,
			Name:     w.Name,
			Status:   string(w.State.Status),
			SellerID: w.State.SellerID,
			View:     w.State.ViewModel,
		}
		if w.State.Status == dashboard.WidgetError {
			dto.Error = dashboard.UnavailableMessage
		}
		if !w.State.UpdatedAt.IsZero() {
			updated := w.State.UpdatedAt
			dto.UpdatedAt = &updated
		}
		out.Widgets[i] = dto
	}
	return out
}
