package delhivery

import (
	"context"
	"strings"
)

const (
	trackPath          = "/api/v1/packages/json/"
	serviceabilityPath = "/c/api/pin-codes/json/"
)

// Track returns the latest status of each waybill.
func (c *Client) Track(ctx context.Context, waybills []string) ([]TrackedShipment, error) {
	if len(waybills) == 0 {
		return nil, &APIError{Message: "at least one waybill is required"}
	}
	var response TrackResponse
	if err := c.get(ctx, trackPath, &response, queryParam{name: "waybill", value: strings.Join(waybills, ",")}); err != nil {
		return nil, err
	}
	if msg := strings.TrimSpace(response.Error); msg != "" && len(response.ShipmentData) == 0 {
		return nil, &APIError{Message: msg}
	}
	shipments := make([]TrackedShipment, 0, len(response.ShipmentData))
	for _, entry := range response.ShipmentData {
		shipments = append(shipments, entry.Shipment)
	}
	return shipments, nil
}

// Serviceability looks up a pincode. A nil result means the pincode is not served.
func (c *Client) Serviceability(ctx context.Context, pincode string) (*PostalCode, error) {
	var response ServiceabilityResponse
	if err := c.get(ctx, serviceabilityPath, &response, queryParam{name: "filter_codes", value: pincode}); err != nil {
		return nil, err
	}
	if len(response.DeliveryCodes) == 0 {
		return nil, nil
	}
	code := response.DeliveryCodes[0].PostalCode
	return &code, nil
}
