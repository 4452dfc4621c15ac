package application

import (
	"context"
	"errors"
	"log/slog"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	ordersdomain "github.com/Apurer/storefront-admin/internal/domains/orders/domain"
	shipmenttypes "github.com/Apurer/storefront-admin/internal/domains/shipments/application/types"
	"github.com/Apurer/storefront-admin/internal/domains/shipments/domain"
	"github.com/Apurer/storefront-admin/internal/domains/shipments/ports"
)

var pincodePattern = regexp.MustCompile(`^[1-9][0-9]{5}$`)

// Service orchestrates the shipments bounded context use cases.
type Service struct {
	repo           ports.Repository
	orders         ports.OrderReader
	carrier        ports.Carrier
	idempotency    ports.IdempotencyStore
	pickupLocation string
	sellerName     string
	logger         *slog.Logger
	now            func() time.Time
}

// Option configures optional collaborators of the service.
type Option func(*Service)

// WithIdempotencyStore enables replay of create requests carrying an idempotency key.
func WithIdempotencyStore(store ports.IdempotencyStore) Option {
	return func(s *Service) {
		s.idempotency = store
	}
}

// WithPickupLocation sets the registered warehouse used when a request names none.
func WithPickupLocation(name string) Option {
	return func(s *Service) {
		s.pickupLocation = strings.TrimSpace(name)
	}
}

// WithSellerName sets the seller printed on labels.
func WithSellerName(name string) Option {
	return func(s *Service) {
		s.sellerName = strings.TrimSpace(name)
	}
}

// WithLogger sets the logger used for best-effort tracking refreshes.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// NewService wires the shipments service with its dependencies.
func NewService(repo ports.Repository, orders ports.OrderReader, carrier ports.Carrier, opts ...Option) *Service {
	s := &Service{
		repo:    repo,
		orders:  orders,
		carrier: carrier,
		logger:  slog.Default(),
		now:     func() time.Time { return time.Now().UTC() },
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

var _ ports.Service = (*Service)(nil)

// ListForOrder returns the shipments of an order together with the operations currently allowed.
func (s *Service) ListForOrder(ctx context.Context, orderID string) (*shipmenttypes.OrderShipments, error) {
	orderID = strings.TrimSpace(orderID)
	if orderID == "" {
		return nil, mapError(errMissingOrderID)
	}
	order, err := s.orders.GetOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	shipments, err := s.repo.ListByOrder(ctx, orderID)
	if err != nil {
		return nil, mapError(err)
	}
	return &shipmenttypes.OrderShipments{
		OrderID:     orderID,
		OrderStatus: order.Status,
		Shipments:   shipments,
		Actions:     domain.AvailableActions(order.Status, values(shipments)),
	}, nil
}

// Create manifests a new consignment for an order.
func (s *Service) Create(ctx context.Context, input shipmenttypes.CreateShipmentInput) (*domain.Shipment, error) {
	orderID := strings.TrimSpace(input.OrderID)
	if orderID == "" {
		return nil, mapError(errMissingOrderID)
	}
	shipmentType, err := domain.ParseType(input.Type)
	if err != nil {
		return nil, mapError(err)
	}
	packages := 1
	if shipmentType == domain.TypeMPS {
		if input.PackageCount < 2 {
			return nil, mapError(domain.ErrMPSPackageCount)
		}
		packages = input.PackageCount
	}
	if input.WeightGrams <= 0 {
		return nil, mapError(domain.ErrInvalidWeight)
	}

	key := strings.TrimSpace(input.IdempotencyKey)
	var fingerprint string
	if key != "" && s.idempotency != nil {
		fingerprint, err = FingerprintCreateShipment(input)
		if err != nil {
			return nil, err
		}
		replayed, err := s.replay(ctx, key, fingerprint)
		if err != nil || replayed != nil {
			return replayed, mapError(err)
		}
	}

	order, err := s.orders.GetOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	existing, err := s.repo.ListByOrder(ctx, orderID)
	if err != nil {
		return nil, mapError(err)
	}
	if !domain.AvailableActions(order.Status, values(existing)).CanCreate(shipmentType) {
		return nil, mapError(domain.ErrActionUnavailable)
	}
	if err := order.Address.Validate(); err != nil {
		return nil, mapError(err)
	}

	request := s.buildRequest(order, shipmentType, packages, input)
	if shipmentType == domain.TypeMPS {
		waybills, err := s.carrier.FetchWaybills(ctx, packages)
		if err != nil {
			return nil, err
		}
		request.Waybills = waybills
	}

	result, err := s.carrier.CreateShipment(ctx, request)
	if err != nil {
		return nil, err
	}
	waybills := result.Waybills
	if len(waybills) == 0 {
		waybills = request.Waybills
	}
	if len(waybills) == 0 {
		return nil, domain.ErrNoWaybill
	}

	now := s.now()
	shipment := &domain.Shipment{
		ID:             uuid.NewString(),
		OrderID:        orderID,
		Type:           shipmentType,
		Waybills:       waybills,
		Status:         domain.StatusCreated,
		CarrierStatus:  result.Status,
		PickupLocation: request.PickupLocation,
		PaymentMode:    request.PaymentMode,
		CODAmount:      request.CODAmount,
		PackageCount:   packages,
		WeightGrams:    input.WeightGrams,
		Dimensions:     input.Dimensions,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	saved, err := s.repo.Save(ctx, shipment)
	if err != nil {
		return nil, mapError(err)
	}

	if key != "" && s.idempotency != nil {
		stored, err := s.idempotency.Save(ctx, ports.IdempotencyRecord{
			Key:         key,
			RequestHash: fingerprint,
			ShipmentID:  saved.ID,
			CreatedAt:   now,
			UpdatedAt:   now,
		})
		if err != nil {
			if errors.Is(err, ports.ErrIdempotencyConflict) && stored != nil && stored.RequestHash == fingerprint {
				return s.repo.GetByID(ctx, stored.ShipmentID)
			}
			return nil, mapError(err)
		}
	}
	return saved, nil
}

func (s *Service) replay(ctx context.Context, key, fingerprint string) (*domain.Shipment, error) {
	record, err := s.idempotency.Get(ctx, key)
	if err != nil || record == nil {
		return nil, err
	}
	if record.RequestHash != fingerprint {
		return nil, ports.ErrIdempotencyConflict
	}
	return s.repo.GetByID(ctx, record.ShipmentID)
}

func (s *Service) buildRequest(order *ordersdomain.Order, shipmentType domain.Type, packages int, input shipmenttypes.CreateShipmentInput) ports.CreateRequest {
	pickup := strings.TrimSpace(input.PickupLocation)
	if pickup == "" {
		pickup = s.pickupLocation
	}
	name := order.Address.Name
	if name == "" {
		name = order.CustomerName
	}
	phone := order.Address.Phone
	if phone == "" {
		phone = order.CustomerPhone
	}
	address := order.Address.Line1
	if order.Address.Line2 != "" {
		address += ", " + order.Address.Line2
	}

	names := make([]string, 0, len(order.Items))
	quantity := 0
	for _, item := range order.Items {
		if item.Status == ordersdomain.AdminCancelled {
			continue
		}
		quantity += item.Quantity
		if item.Name != "" {
			names = append(names, item.Name)
		}
	}

	mode, cod := paymentFor(order, shipmentType)
	return ports.CreateRequest{
		OrderID: order.ID,
		Type:    shipmentType,
		Consignee: ports.Consignee{
			Name:    name,
			Phone:   phone,
			Address: address,
			City:    order.Address.City,
			State:   order.Address.State,
			Pincode: order.Address.Pincode,
			Country: order.Address.Country,
		},
		PaymentMode:    mode,
		CODAmount:      cod,
		TotalAmount:    order.TotalAmount,
		ProductsDesc:   strings.Join(names, ", "),
		Quantity:       quantity,
		WeightGrams:    input.WeightGrams,
		Dimensions:     input.Dimensions,
		PickupLocation: pickup,
		SellerName:     s.sellerName,
		PackageCount:   packages,
	}
}

func paymentFor(order *ordersdomain.Order, shipmentType domain.Type) (domain.PaymentMode, decimal.Decimal) {
	switch shipmentType {
	case domain.TypeReverse:
		return domain.PaymentPickup, decimal.Zero
	case domain.TypeReplacement:
		return domain.PaymentREPL, decimal.Zero
	}
	if order.PaymentMethod == ordersdomain.PaymentCOD && !order.IsPaid {
		return domain.PaymentCOD, order.TotalAmount
	}
	return domain.PaymentPrepaid, decimal.Zero
}

// Cancel cancels the consignment at the carrier and marks the record cancelled.
func (s *Service) Cancel(ctx context.Context, waybill string) (*domain.Shipment, error) {
	shipment, err := s.lookup(ctx, waybill, domain.ActionCancel)
	if err != nil {
		return nil, err
	}
	if err := s.carrier.CancelShipment(ctx, shipment.MasterWaybill()); err != nil {
		return nil, err
	}
	if err := shipment.Cancel(s.now()); err != nil {
		return nil, mapError(err)
	}
	saved, err := s.repo.Save(ctx, shipment)
	if err != nil {
		return nil, mapError(err)
	}
	return saved, nil
}

// Edit pushes consignee, weight or payment changes for a consignment that has not been picked up.
func (s *Service) Edit(ctx context.Context, input shipmenttypes.EditShipmentInput) (*domain.Shipment, error) {
	shipment, err := s.lookup(ctx, input.Waybill, domain.ActionEdit)
	if err != nil {
		return nil, err
	}
	var mode domain.PaymentMode
	switch strings.ToLower(strings.TrimSpace(input.PaymentMode)) {
	case "":
	case "cod":
		mode = domain.PaymentCOD
	case "prepaid":
		mode = domain.PaymentPrepaid
	default:
		return nil, mapError(errInvalidPaymentMode)
	}
	if input.WeightGrams < 0 {
		return nil, mapError(domain.ErrInvalidWeight)
	}

	err = s.carrier.EditShipment(ctx, ports.EditRequest{
		Waybill:     shipment.MasterWaybill(),
		Name:        strings.TrimSpace(input.Name),
		Phone:       strings.TrimSpace(input.Phone),
		Address:     strings.TrimSpace(input.Address),
		WeightGrams: input.WeightGrams,
		PaymentMode: mode,
		CODAmount:   input.CODAmount,
	})
	if err != nil {
		return nil, err
	}

	if input.WeightGrams > 0 {
		shipment.WeightGrams = input.WeightGrams
	}
	if mode != "" {
		shipment.PaymentMode = mode
		if mode == domain.PaymentPrepaid {
			shipment.CODAmount = decimal.Zero
		}
	}
	if input.CODAmount != nil {
		shipment.CODAmount = *input.CODAmount
	}
	shipment.UpdatedAt = s.now()
	saved, err := s.repo.Save(ctx, shipment)
	if err != nil {
		return nil, mapError(err)
	}
	return saved, nil
}

// Track reads the carrier status of the given waybills. Known shipments have their own
// status refreshed; orders are never touched.
func (s *Service) Track(ctx context.Context, waybills []string) ([]ports.TrackResult, error) {
	cleaned := make([]string, 0, len(waybills))
	seen := make(map[string]struct{}, len(waybills))
	for _, waybill := range waybills {
		waybill = strings.TrimSpace(waybill)
		if waybill == "" {
			continue
		}
		if _, ok := seen[waybill]; ok {
			continue
		}
		seen[waybill] = struct{}{}
		cleaned = append(cleaned, waybill)
	}
	if len(cleaned) == 0 {
		return nil, mapError(errMissingWaybill)
	}

	results, err := s.carrier.Track(ctx, cleaned)
	if err != nil {
		return nil, err
	}
	for _, result := range results {
		s.refresh(ctx, result)
	}
	return results, nil
}

func (s *Service) refresh(ctx context.Context, result ports.TrackResult) {
	shipment, err := s.repo.GetByWaybill(ctx, result.Waybill)
	if err != nil {
		if !errors.Is(err, ports.ErrNotFound) {
			s.logger.WarnContext(ctx, "shipment lookup failed during tracking",
				slog.String("shipment.waybill", result.Waybill), slog.String("error", err.Error()))
		}
		return
	}
	if !shipment.ApplyTracking(result.Status, result.ScannedAt) {
		return
	}
	shipment.UpdatedAt = s.now()
	if _, err := s.repo.Save(ctx, shipment); err != nil {
		s.logger.WarnContext(ctx, "shipment tracking refresh failed",
			slog.String("shipment.waybill", result.Waybill), slog.String("error", err.Error()))
	}
}

// Label fetches the packing slip and remembers its URL.
func (s *Service) Label(ctx context.Context, waybill string) (*ports.Label, error) {
	shipment, err := s.lookup(ctx, waybill, domain.ActionLabel)
	if err != nil {
		return nil, err
	}
	label, err := s.carrier.PackingSlip(ctx, shipment.MasterWaybill())
	if err != nil {
		return nil, err
	}
	if label.URL != "" && label.URL != shipment.LabelURL {
		shipment.LabelURL = label.URL
		shipment.UpdatedAt = s.now()
		if _, err := s.repo.Save(ctx, shipment); err != nil {
			return nil, mapError(err)
		}
	}
	return label, nil
}

// Serviceability asks the carrier what it offers for a pincode.
func (s *Service) Serviceability(ctx context.Context, pincode string) (*ports.Serviceability, error) {
	pincode = strings.TrimSpace(pincode)
	if !pincodePattern.MatchString(pincode) {
		return nil, mapError(errInvalidPincode)
	}
	return s.carrier.Serviceability(ctx, pincode)
}

// lookup resolves a waybill and checks that action is currently allowed on it.
func (s *Service) lookup(ctx context.Context, waybill string, action domain.Action) (*domain.Shipment, error) {
	waybill = strings.TrimSpace(waybill)
	if waybill == "" {
		return nil, mapError(errMissingWaybill)
	}
	shipment, err := s.repo.GetByWaybill(ctx, waybill)
	if err != nil {
		return nil, mapError(err)
	}
	actions := domain.AvailableActions("", []domain.Shipment{*shipment})
	if !actions.Allows(shipment.MasterWaybill(), action) {
		return nil, mapError(domain.ErrActionUnavailable)
	}
	return shipment, nil
}

func values(shipments []*domain.Shipment) []domain.Shipment {
	out := make([]domain.Shipment, 0, len(shipments))
	for _, shipment := range shipments {
		out = append(out, *shipment)
	}
	return out
}
