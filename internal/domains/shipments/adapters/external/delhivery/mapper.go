package delhivery

import (
	"strconv"

	"github.com/shopspring/decimal"

	delhiveryclient "github.com/Apurer/storefront-admin/internal/clients/http/delhivery"
	"github.com/Apurer/storefront-admin/internal/domains/shipments/domain"
	"github.com/Apurer/storefront-admin/internal/domains/shipments/ports"
)

// ToCreateRequest converts a carrier-neutral request into the manifest document. Multi-package
// shipments become one entry per pre-allocated waybill sharing the master id.
func ToCreateRequest(request ports.CreateRequest) delhiveryclient.CreateRequest {
	base := delhiveryclient.ShipmentPayload{
		Name:         request.Consignee.Name,
		Add:          request.Consignee.Address,
		Pin:          request.Consignee.Pincode,
		City:         request.Consignee.City,
		State:        request.Consignee.State,
		Country:      request.Consignee.Country,
		Phone:        request.Consignee.Phone,
		Order:        request.OrderID,
		PaymentMode:  string(request.PaymentMode),
		TotalAmount:  money(request.TotalAmount),
		ProductsDesc: request.ProductsDesc,
		Quantity:     strconv.Itoa(request.Quantity),
		SellerName:   request.SellerName,
	}
	if request.PaymentMode == domain.PaymentCOD {
		base.CODAmount = money(request.CODAmount)
	}
	setDimensions(&base, request.Dimensions)

	document := delhiveryclient.CreateRequest{
		PickupLocation: delhiveryclient.PickupLocation{Name: request.PickupLocation},
	}
	if request.Type != domain.TypeMPS || len(request.Waybills) == 0 {
		base.Weight = strconv.Itoa(request.WeightGrams)
		if len(request.Waybills) > 0 {
			base.Waybill = request.Waybills[0]
		}
		document.Shipments = []delhiveryclient.ShipmentPayload{base}
		return document
	}

	count := len(request.Waybills)
	perPackage := request.WeightGrams / count
	if perPackage == 0 {
		perPackage = 1
	}
	master := request.Waybills[0]
	document.Shipments = make([]delhiveryclient.ShipmentPayload, 0, count)
	for _, waybill := range request.Waybills {
		payload := base
		payload.Waybill = waybill
		payload.MasterID = master
		payload.ShipmentType = string(domain.TypeMPS)
		payload.MPSChildren = strconv.Itoa(count)
		payload.Weight = strconv.Itoa(perPackage)
		if request.PaymentMode == domain.PaymentCOD {
			payload.MPSAmount = money(request.CODAmount)
		}
		document.Shipments = append(document.Shipments, payload)
	}
	return document
}

// FromCreateResponse collects the manifested waybills in request order.
func FromCreateResponse(response *delhiveryclient.CreateResponse, requested []string) *ports.CreateResult {
	result := &ports.CreateResult{}
	if response == nil {
		result.Waybills = append([]string(nil), requested...)
		return result
	}
	for _, pkg := range response.Packages {
		if pkg.Waybill != "" {
			result.Waybills = append(result.Waybills, pkg.Waybill)
		}
		if result.Status == "" {
			result.Status = pkg.Status
		}
	}
	if len(requested) > 0 {
		result.Waybills = append([]string(nil), requested...)
	}
	result.Remarks = response.Rmk
	return result
}

// ToEditRequest converts local edits into the edit payload.
func ToEditRequest(request ports.EditRequest) delhiveryclient.EditRequest {
	edit := delhiveryclient.EditRequest{
		Waybill:     request.Waybill,
		Name:        request.Name,
		Phone:       request.Phone,
		Add:         request.Address,
		Gm:          request.WeightGrams,
		PaymentType: string(request.PaymentMode),
	}
	if request.CODAmount != nil {
		edit.CODAmount = money(*request.CODAmount)
	}
	return edit
}

// FromTracked maps a tracked waybill into the carrier-neutral result.
func FromTracked(shipment delhiveryclient.TrackedShipment) ports.TrackResult {
	result := ports.TrackResult{
		Waybill:   shipment.AWB,
		Status:    shipment.Status.Status,
		Location:  shipment.Status.StatusLocation,
		ScannedAt: shipment.Status.StatusDateTime.Time,
		Scans:     make([]ports.Scan, 0, len(shipment.Scans)),
	}
	for _, scan := range shipment.Scans {
		result.Scans = append(result.Scans, ports.Scan{
			Status:    scan.ScanDetail.Scan,
			Location:  scan.ScanDetail.ScannedLocation,
			Remarks:   scan.ScanDetail.Instructions,
			ScannedAt: scan.ScanDetail.ScanDateTime.Time,
		})
	}
	return result
}

// FromPostalCode maps a serviceability record; nil means not served.
func FromPostalCode(pincode string, code *delhiveryclient.PostalCode) *ports.Serviceability {
	result := &ports.Serviceability{Pincode: pincode}
	if code == nil {
		return result
	}
	result.COD = yes(code.COD)
	result.Prepaid = yes(code.PrePaid)
	result.Pickup = yes(code.Pickup)
	result.Serviceable = result.COD || result.Prepaid
	result.City = code.District
	result.State = code.StateCode
	return result
}

func setDimensions(payload *delhiveryclient.ShipmentPayload, d domain.Dimensions) {
	if d.LengthCm > 0 {
		payload.ShipmentLen = strconv.FormatFloat(d.LengthCm, 'f', -1, 64)
	}
	if d.BreadthCm > 0 {
		payload.ShipmentWidth = strconv.FormatFloat(d.BreadthCm, 'f', -1, 64)
	}
	if d.HeightCm > 0 {
		payload.ShipmentHt = strconv.FormatFloat(d.HeightCm, 'f', -1, 64)
	}
}

func money(amount decimal.Decimal) string {
	return amount.StringFixed(2)
}

func yes(flag string) bool {
	return flag == "Y" || flag == "y"
}
