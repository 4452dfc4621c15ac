package application

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"strings"

	shipmenttypes "github.com/Apurer/storefront-admin/internal/domains/shipments/application/types"
)

type normalizedCreateShipmentInput struct {
	OrderID        string  `json:"orderId"`
	Type           string  `json:"type"`
	PackageCount   int     `json:"packageCount"`
	WeightGrams    int     `json:"weightGrams"`
	LengthCm       float64 `json:"lengthCm"`
	BreadthCm      float64 `json:"breadthCm"`
	HeightCm       float64 `json:"heightCm"`
	PickupLocation string  `json:"pickupLocation"`
}

// FingerprintCreateShipment builds a deterministic hash of the create-shipment payload (excluding the idempotency key).
func FingerprintCreateShipment(input shipmenttypes.CreateShipmentInput) (string, error) {
	payload, err := json.Marshal(normalizedCreateShipmentInput{
		OrderID:        strings.TrimSpace(input.OrderID),
		Type:           strings.ToUpper(strings.TrimSpace(input.Type)),
		PackageCount:   input.PackageCount,
		WeightGrams:    input.WeightGrams,
		LengthCm:       input.Dimensions.LengthCm,
		BreadthCm:      input.Dimensions.BreadthCm,
		HeightCm:       input.Dimensions.HeightCm,
		PickupLocation: strings.TrimSpace(input.PickupLocation),
	})
	if err != nil {
		return "", err
	}
	sum := sha256.Sum256(payload)
	return hex.EncodeToString(sum[:]), nil
}

// BulkItemKey derives the per-order idempotency key of a bulk request.
func BulkItemKey(bulkKey, orderID string) string {
	if strings.TrimSpace(bulkKey) == "" {
		return ""
	}
	return bulkKey + ":" + orderID
}
