//go:build pact
// +build pact

package pacttest

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

const (
	ProviderName = "delhivery-api"
	ConsumerName = "storefront-admin"

	StatePincodeServed      = "pincode 411001 is serviceable"
	StatePincodeUnserved    = "pincode 999999 is not serviceable"
	StateWaybillInTransit   = "waybill 1234567890123 is in transit"
	StateWaybillCancellable = "waybill 1234567890123 is manifested"
	StateWarehouseUnknown   = "no warehouse named Pact Warehouse"
)

const (
	APIToken        = "pact-token"
	ServedPincode   = "411001"
	UnservedPincode = "999999"
	ExistingWaybill = "1234567890123"
	WarehouseName   = "Pact Warehouse"
)

// PactDir returns the workspace-level directory for generated pact files.
func PactDir(t testing.TB) string {
	t.Helper()
	dir := filepath.Join(projectRoot(t), "pacts")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("create pact dir: %v", err)
	}
	return dir
}

// PactFile returns the canonical pact file path for the carrier consumer.
func PactFile(t testing.TB) string {
	t.Helper()
	return filepath.Join(PactDir(t), ConsumerName+"-"+ProviderName+".json")
}

// LogDir returns the log output directory for pact-go.
func LogDir(t testing.TB) string {
	t.Helper()
	dir := filepath.Join(projectRoot(t), "bin", "pact-logs")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("create pact log dir: %v", err)
	}
	return dir
}

// ExampleWarehousePayload provides stable test data for warehouse registration.
func ExampleWarehousePayload() map[string]any {
	return map[string]any{
		"name":           WarehouseName,
		"phone":          "9876543210",
		"address":        "Plot 4, MIDC",
		"city":           "Pune",
		"country":        "India",
		"pin":            ServedPincode,
		"return_address": "Plot 4, MIDC",
		"return_pin":     ServedPincode,
		"return_city":    "Pune",
		"return_country": "India",
	}
}

// projectRoot walks up from this file to the workspace root.
func projectRoot(t testing.TB) string {
	t.Helper()
	_, file, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatal("cannot determine caller for pact paths")
	}
	return filepath.Clean(filepath.Join(filepath.Dir(file), "..", ".."))
}
