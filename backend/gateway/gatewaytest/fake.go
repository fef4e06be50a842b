// Package gatewaytest provides an in-memory payment gateway for tests.
package gatewaytest

import (
	"context"
	"fmt"
	"sync"

	"iqscaler/backend/gateway"
)

type Fake struct {
	mu     sync.Mutex
	Orders []gateway.OrderRequest
	// Err, when set, is returned by CreateOrder.
	Err error
}

func (f *Fake) CreateOrder(_ context.Context, req gateway.OrderRequest) (gateway.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.Err != nil {
		return gateway.Order{}, f.Err
	}
	f.Orders = append(f.Orders, req)
	return gateway.Order{
		ID:       fmt.Sprintf("order_test_%d", len(f.Orders)),
		Amount:   req.Amount,
		Currency: req.Currency,
	}, nil
}
