package delhivery

import (
	"encoding/json"
	"strings"
	"time"
)

// ShipmentPayload is one consignment of a create request.
type ShipmentPayload struct {
	Name          string `json:"name"`
	Add           string `json:"add"`
	Pin           string `json:"pin"`
	City          string `json:"city,omitempty"`
	State         string `json:"state,omitempty"`
	Country       string `json:"country,omitempty"`
	Phone         string `json:"phone"`
	Order         string `json:"order"`
	PaymentMode   string `json:"payment_mode"`
	CODAmount     string `json:"cod_amount,omitempty"`
	TotalAmount   string `json:"total_amount,omitempty"`
	ProductsDesc  string `json:"products_desc,omitempty"`
	Quantity      string `json:"quantity,omitempty"`
	Weight        string `json:"weight,omitempty"`
	ShipmentLen   string `json:"shipment_length,omitempty"`
	ShipmentWidth string `json:"shipment_width,omitempty"`
	ShipmentHt    string `json:"shipment_height,omitempty"`
	SellerName    string `json:"seller_name,omitempty"`
	Waybill       string `json:"waybill,omitempty"`
	// Multi-package fields.
	ShipmentType string `json:"shipment_type,omitempty"`
	MPSAmount    string `json:"mps_amount,omitempty"`
	MPSChildren  string `json:"mps_children,omitempty"`
	MasterID     string `json:"master_id,omitempty"`
	ShippingMode string `json:"shipping_mode,omitempty"`
}

// PickupLocation names a registered warehouse.
type PickupLocation struct {
	Name string `json:"name"`
}

// CreateRequest is the JSON document sent in the data form field.
type CreateRequest struct {
	Shipments      []ShipmentPayload `json:"shipments"`
	PickupLocation PickupLocation    `json:"pickup_location"`
}

// CreatedPackage is the per-waybill outcome of a create call.
type CreatedPackage struct {
	Waybill     string   `json:"waybill"`
	RefNum      string   `json:"refnum"`
	Status      string   `json:"status"`
	Remarks     []string `json:"remarks"`
	Serviceable bool     `json:"serviceable"`
}

// CreateResponse is returned by the manifest endpoint.
type CreateResponse struct {
	Success  bool             `json:"success"`
	Rmk      string           `json:"rmk"`
	Packages []CreatedPackage `json:"packages"`
}

// EditRequest changes or cancels a manifested waybill.
type EditRequest struct {
	Waybill      string `json:"waybill"`
	Name         string `json:"name,omitempty"`
	Phone        string `json:"phone,omitempty"`
	Add          string `json:"add,omitempty"`
	Gm           int    `json:"gm,omitempty"`
	PaymentType  string `json:"pt,omitempty"`
	CODAmount    string `json:"cod,omitempty"`
	Cancellation string `json:"cancellation,omitempty"`
}

// EditResponse is returned by the edit endpoint.
type EditResponse struct {
	Status  bool   `json:"status"`
	Waybill string `json:"waybill"`
	Remark  string `json:"remark"`
	Error   string `json:"error"`
}

// Timestamp parses the carrier's zone-less timestamps as IST.
type Timestamp struct {
	time.Time
}

var (
	istZone          = time.FixedZone("IST", 5*3600+1800)
	timestampLayouts = []string{
		time.RFC3339Nano,
		"2006-01-02T15:04:05.999999",
		"2006-01-02T15:04:05",
		"2006-01-02 15:04:05",
	}
)

// UnmarshalJSON accepts RFC 3339 and the carrier's local formats.
func (t *Timestamp) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil
	}
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	for _, layout := range timestampLayouts {
		if parsed, err := time.ParseInLocation(layout, raw, istZone); err == nil {
			t.Time = parsed.UTC()
			return nil
		}
	}
	return nil
}

// ScanDetail is one tracking event.
type ScanDetail struct {
	Scan            string    `json:"Scan"`
	ScanType        string    `json:"ScanType"`
	ScannedLocation string    `json:"ScannedLocation"`
	Instructions    string    `json:"Instructions"`
	ScanDateTime    Timestamp `json:"ScanDateTime"`
}

// ShipmentStatus is the latest status block.
type ShipmentStatus struct {
	Status         string    `json:"Status"`
	StatusType     string    `json:"StatusType"`
	StatusLocation string    `json:"StatusLocation"`
	Instructions   string    `json:"Instructions"`
	StatusDateTime Timestamp `json:"StatusDateTime"`
}

// TrackedShipment is one waybill of a tracking response.
type TrackedShipment struct {
	AWB         string         `json:"AWB"`
	ReferenceNo string         `json:"ReferenceNo"`
	Status      ShipmentStatus `json:"Status"`
	Scans       []struct {
		ScanDetail ScanDetail `json:"ScanDetail"`
	} `json:"Scans"`
}

// TrackResponse is returned by the packages endpoint.
type TrackResponse struct {
	ShipmentData []struct {
		Shipment TrackedShipment `json:"Shipment"`
	} `json:"ShipmentData"`
	Error string `json:"Error"`
}

// PostalCode is the serviceability record of one pincode.
type PostalCode struct {
	Pin       json.Number `json:"pin"`
	District  string      `json:"district"`
	StateCode string      `json:"state_code"`
	COD       string      `json:"cod"`
	PrePaid   string      `json:"pre_paid"`
	Pickup    string      `json:"pickup"`
	Cash      string      `json:"cash"`
	Remarks   string      `json:"remarks"`
}

// ServiceabilityResponse is returned by the pin-codes endpoint.
type ServiceabilityResponse struct {
	DeliveryCodes []struct {
		PostalCode PostalCode `json:"postal_code"`
	} `json:"delivery_codes"`
}

// PackingSlip is one label of a packing slip response.
type PackingSlip struct {
	Waybill         string `json:"wbn"`
	PDFDownloadLink string `json:"pdf_download_link"`
}

// PackingSlipResponse is returned by the packing slip endpoint.
type PackingSlipResponse struct {
	PackagesFound int           `json:"packages_found"`
	Packages      []PackingSlip `json:"packages"`
}

// Warehouse is a pickup location registration.
type Warehouse struct {
	Name          string `json:"name"`
	Email         string `json:"email,omitempty"`
	Phone         string `json:"phone"`
	Address       string `json:"address"`
	City          string `json:"city"`
	Country       string `json:"country,omitempty"`
	Pin           string `json:"pin"`
	ReturnAddress string `json:"return_address,omitempty"`
	ReturnPin     string `json:"return_pin,omitempty"`
	ReturnCity    string `json:"return_city,omitempty"`
	ReturnState   string `json:"return_state,omitempty"`
	ReturnCountry string `json:"return_country,omitempty"`
}

// WarehouseResponse is returned by the warehouse endpoints.
type WarehouseResponse struct {
	Success bool            `json:"success"`
	Error   json.RawMessage `json:"error"`
	Data    json.RawMessage `json:"data"`
}
