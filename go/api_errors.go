package adminserver

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	catalogapp "github.com/Apurer/storefront-admin/internal/domains/catalog/application"
	catalogports "github.com/Apurer/storefront-admin/internal/domains/catalog/ports"
	contentapp "github.com/Apurer/storefront-admin/internal/domains/content/application"
	contentports "github.com/Apurer/storefront-admin/internal/domains/content/ports"
	ordersapp "github.com/Apurer/storefront-admin/internal/domains/orders/application"
	ordersdomain "github.com/Apurer/storefront-admin/internal/domains/orders/domain"
	ordersports "github.com/Apurer/storefront-admin/internal/domains/orders/ports"
	shipmentsapp "github.com/Apurer/storefront-admin/internal/domains/shipments/application"
	shipmentsports "github.com/Apurer/storefront-admin/internal/domains/shipments/ports"
	warehousesapp "github.com/Apurer/storefront-admin/internal/domains/warehouses/application"
	warehousesports "github.com/Apurer/storefront-admin/internal/domains/warehouses/ports"
	"github.com/Apurer/storefront-admin/internal/platform/storage"
	apierrors "github.com/Apurer/storefront-admin/internal/shared/errors"
)

// responder maps every bounded context's sentinel errors onto problem envelopes.
var responder = apierrors.NewChainedResponder("",
	apierrors.MapSentinel(apierrors.ErrNotFound,
		ordersports.ErrNotFound,
		ordersdomain.ErrLineItemNotFound,
		shipmentsports.ErrNotFound,
		catalogports.ErrNotFound,
		warehousesports.ErrNotFound,
		contentports.ErrNotFound,
	),
	apierrors.MapSentinel(apierrors.ErrBadGateway,
		shipmentsports.ErrCarrier,
		warehousesports.ErrRegistration,
	),
	apierrors.MapSentinel(apierrors.ErrPayloadTooLarge, storage.ErrTooLarge),
	apierrors.MapSentinel(apierrors.ErrValidation,
		ordersapp.ErrInvalidInput,
		shipmentsapp.ErrInvalidInput,
		catalogapp.ErrInvalidInput,
		warehousesapp.ErrInvalidInput,
		contentapp.ErrInvalidInput,
		storage.ErrEmptyFile,
		storage.ErrUnsupportedType,
	),
	apierrors.MapSentinel(apierrors.ErrConflict,
		ordersapp.ErrConflict,
		shipmentsapp.ErrConflict,
		warehousesapp.ErrConflict,
		contentapp.ErrConflict,
	),
)

// respondServiceError renders a use case failure.
func respondServiceError(c *gin.Context, err error) {
	if err == nil {
		return
	}
	if errors.Is(err, errServiceUnavailable) {
		responder.Respond(c, apierrors.ProblemDetail{
			Type:   apierrors.TypeInternal,
			Title:  "Service Unavailable",
			Status: http.StatusServiceUnavailable,
			Detail: err.Error(),
		})
		return
	}
	responder.RespondError(c, err)
}

// respondError preserves the status chosen by the handler for transport-level failures.
func respondError(c *gin.Context, status int, err error) {
	if err == nil {
		return
	}
	var problem apierrors.ProblemDetail
	switch status {
	case http.StatusBadRequest:
		problem = apierrors.ErrBadRequest.WithDetail(err.Error())
	case http.StatusNotFound:
		problem = apierrors.ErrNotFound.WithDetail(err.Error())
	case http.StatusRequestEntityTooLarge:
		problem = apierrors.ErrPayloadTooLarge.WithDetail(err.Error())
	default:
		problem = apierrors.ErrInternal.WithDetail(err.Error())
	}
	responder.Respond(c, problem)
}

var errServiceUnavailable = errors.New("service not configured")
