package transfer

import (
	"context"
	"errors"
	"net/http"

	"transfer-storefront/internal/common/models"
	types "transfer-storefront/internal/common/type"
	"transfer-storefront/internal/pkg/helper"
	transferRepo "transfer-storefront/internal/repository/transfer"
)

func (s *Service) History(ctx context.Context, user types.UserWithAuth, q transferRepo.Query) *types.Response {
	q.SenderEmail = user.Email
	q = q.Normalize()

	items, total, err := s.rp.Transfer.List(ctx, q)
	if err != nil {
		return helper.ParseResponse(&types.Response{Code: http.StatusInternalServerError, Message: "Failed to list transfers", Error: err})
	}
	if items == nil {
		items = []models.Transfer{}
	}
	return helper.ParseResponse(&types.Response{
		Data: types.Paginated[models.Transfer]{
			Items:    items,
			Total:    total,
			Page:     q.Page,
			PageSize: q.PageSize,
		},
	})
}

func (s *Service) Track(ctx context.Context, code string) *types.Response {
	trx, err := s.rp.Transfer.FindByTrackingCode(ctx, code)
	if errors.Is(err, transferRepo.ErrNotFound) {
		return helper.ParseResponse(&types.Response{Code: http.StatusNotFound, Message: "No transfer with that tracking code", Error: err})
	}
	if err != nil {
		return helper.ParseResponse(&types.Response{Code: http.StatusInternalServerError, Message: "Failed to load transfer", Error: err})
	}
	return helper.ParseResponse(&types.Response{
		Data: TrackResponse{
			TrackingCode:  trx.TrackingCode,
			Status:        trx.Status,
			Amount:        trx.Amount,
			Currency:      trx.Currency,
			ReceiverName:  titleCaser.String(trx.ReceiverName()),
			ReceiverCity:  trx.ReceiverCity,
			PaymentMethod: trx.PaymentMethod,
			CreatedAt:     trx.CreatedAt,
			PaidAt:        trx.PaidAt,
			Timeline:      trx.History(),
		},
	})
}
