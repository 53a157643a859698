package api

import (
	"context"
	"net/http"
)

// WaiterResponse is the acknowledgement for a waiter call.
type WaiterResponse struct {
	Success   bool   `json:"success"`
	Message   string `json:"message"`
	Timestamp string `json:"timestamp"`
}

// WaiterStatus is the health probe of the notification service.
type WaiterStatus struct {
	Service   string `json:"service"`
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
}

// CallWaiter notifies staff that a table is ready to order.
func (c *Client) CallWaiter(ctx context.Context) (*WaiterResponse, error) {
	var resp WaiterResponse
	if err := c.do(ctx, http.MethodPost, "/v1/waiter/call", nil, nil, &resp, false); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) WaiterServiceStatus(ctx context.Context) (*WaiterStatus, error) {
	var status WaiterStatus
	if err := c.get(ctx, "/v1/waiter/status", nil, &status); err != nil {
		return nil, err
	}
	return &status, nil
}
