package client

import (
	"encoding/json"
	"net/http"
	"time"
)

// storeStatusEnvelope mirrors GET /api/store/status.
type storeStatusEnvelope struct {
	Status int `json:"status"`
	Data   struct {
		IsOpen bool `json:"isOpen"`
	} `json:"data"`
}

// pollLoop fetches the store status on a fixed interval until Close.
// It runs independently of the WebSocket so open/closed state stays
// eventually consistent even when the push path is down.
func (c *Client) pollLoop() {
	ticker := time.NewTicker(c.opts.PollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-c.done:
			return
		case <-ticker.C:
			if open, err := c.FetchStoreStatus(); err == nil && c.opts.OnStoreStatus != nil {
				c.opts.OnStoreStatus(open)
			}
		}
	}
}

// FetchStoreStatus reads the store's open state over plain HTTP.
func (c *Client) FetchStoreStatus() (bool, error) {
	req, err := http.NewRequest(http.MethodGet, c.opts.BaseURL+"/api/store/status", nil)
	if err != nil {
		return false, err
	}

	resp, err := c.opts.HTTPClient.Do(req)
	if err != nil {
		return false, err
	}
	defer resp.Body.Close()

	var envelope storeStatusEnvelope
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return false, err
	}
	return envelope.Data.IsOpen, nil
}
