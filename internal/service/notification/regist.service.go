package notification

import (
	"context"

	types "transfer-storefront/internal/common/type"
	"transfer-storefront/internal/pkg/helper"
)

type Service struct {
	ticker *Ticker
}

type IService interface {
	Active(ctx context.Context) *types.Response
	Subscribe() (<-chan Notification, func())
}

func NewService(ticker *Ticker) IService {
	return &Service{ticker: ticker}
}

func (s *Service) Active(_ context.Context) *types.Response {
	return helper.ParseResponse(&types.Response{Data: s.ticker.Active(s.ticker.now())})
}

func (s *Service) Subscribe() (<-chan Notification, func()) {
	return s.ticker.Subscribe()
}
