package delhivery

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"
)

const (
	createPath      = "/api/cmu/create.json"
	editPath        = "/api/p/edit"
	waybillPath     = "/waybill/api/bulk/json/"
	packingSlipPath = "/api/p/packing_slip"
)

// CreateShipment manifests the consignments. The request is sent as form fields
// format=json and data=<document>.
func (c *Client) CreateShipment(ctx context.Context, request CreateRequest) (*CreateResponse, error) {
	if len(request.Shipments) == 0 {
		return nil, &APIError{Message: "create request has no shipments"}
	}
	document, err := json.Marshal(request)
	if err != nil {
		return nil, fmt.Errorf("encode create request: %w", err)
	}
	form := url.Values{}
	form.Set("format", "json")
	form.Set("data", string(document))

	var response CreateResponse
	if err := c.postForm(ctx, createPath, form, &response); err != nil {
		return nil, err
	}
	if !response.Success {
		return &response, &APIError{Message: createFailure(response)}
	}
	return &response, nil
}

func createFailure(response CreateResponse) string {
	for _, pkg := range response.Packages {
		if len(pkg.Remarks) > 0 {
			return strings.Join(pkg.Remarks, "; ")
		}
	}
	if msg := strings.TrimSpace(response.Rmk); msg != "" {
		return msg
	}
	return "shipment creation failed"
}

// FetchWaybills allocates count waybills for multi-package shipments.
func (c *Client) FetchWaybills(ctx context.Context, count int) ([]string, error) {
	if count <= 0 {
		return nil, &APIError{Message: "waybill count must be positive"}
	}
	var raw json.RawMessage
	if err := c.get(ctx, waybillPath, &raw, queryParam{name: "count", value: count}); err != nil {
		return nil, err
	}
	waybills := parseWaybills(raw)
	if len(waybills) < count {
		return nil, &APIError{Message: fmt.Sprintf("requested %d waybills, received %d", count, len(waybills))}
	}
	return waybills[:count], nil
}

// parseWaybills accepts a JSON string of comma separated waybills or a JSON array.
func parseWaybills(raw json.RawMessage) []string {
	var list []string
	if err := json.Unmarshal(raw, &list); err != nil {
		var joined string
		if err := json.Unmarshal(raw, &joined); err != nil {
			joined = string(raw)
		}
		list = strings.Split(joined, ",")
	}
	out := make([]string, 0, len(list))
	for _, waybill := range list {
		if waybill = strings.TrimSpace(waybill); waybill != "" {
			out = append(out, waybill)
		}
	}
	return out
}

// EditShipment updates a manifested waybill.
func (c *Client) EditShipment(ctx context.Context, request EditRequest) (*EditResponse, error) {
	if strings.TrimSpace(request.Waybill) == "" {
		return nil, &APIError{Message: "waybill is required"}
	}
	var response EditResponse
	if err := c.postJSON(ctx, editPath, request, &response); err != nil {
		return nil, err
	}
	if !response.Status {
		return &response, &APIError{Message: firstNonEmpty(response.Error, response.Remark, "edit rejected")}
	}
	return &response, nil
}

// CancelShipment cancels a waybill through the edit endpoint.
func (c *Client) CancelShipment(ctx context.Context, waybill string) (*EditResponse, error) {
	return c.EditShipment(ctx, EditRequest{Waybill: waybill, Cancellation: "true"})
}

// PackingSlip returns the PDF label link of a waybill.
func (c *Client) PackingSlip(ctx context.Context, waybill string) (*PackingSlip, error) {
	var response PackingSlipResponse
	err := c.get(ctx, packingSlipPath, &response,
		queryParam{name: "wbns", value: waybill},
		queryParam{name: "pdf", value: "true"},
	)
	if err != nil {
		return nil, err
	}
	for _, pkg := range response.Packages {
		if pkg.Waybill == waybill || len(response.Packages) == 1 {
			slip := pkg
			return &slip, nil
		}
	}
	return nil, &APIError{Message: "packing slip not found for " + waybill}
}

func firstNonEmpty(values ...string) string {
	for _, value := range values {
		if value = strings.TrimSpace(value); value != "" {
			return value
		}
	}
	return ""
}
