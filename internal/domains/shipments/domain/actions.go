package domain

import (
	ordersdomain "github.com/Apurer/storefront-admin/internal/domains/orders/domain"
)

// Action is an operation on an existing shipment.
type Action string

const (
	ActionTrack  Action = "track"
	ActionLabel  Action = "label"
	ActionEdit   Action = "edit"
	ActionCancel Action = "cancel"
)

// ActionSet lists the shipment types that may be created and the actions allowed per
// existing shipment, keyed by master waybill.
type ActionSet struct {
	Create   []Type              `json:"create"`
	Shipment map[string][]Action `json:"shipments"`
}

// CanCreate reports whether a shipment of type t may be created.
func (a ActionSet) CanCreate(t Type) bool {
	for _, allowed := range a.Create {
		if allowed == t {
			return true
		}
	}
	return false
}

// Allows reports whether action is permitted on the shipment identified by waybill.
func (a ActionSet) Allows(waybill string, action Action) bool {
	for _, allowed := range a.Shipment[waybill] {
		if allowed == action {
			return true
		}
	}
	return false
}

// AvailableActions derives the legal shipment operations from the order status and the
// shipments already recorded for the order.
func AvailableActions(orderStatus ordersdomain.WebsiteStatus, shipments []Shipment) ActionSet {
	set := ActionSet{Create: []Type{}, Shipment: map[string][]Action{}}

	active := map[Type]bool{}
	for _, s := range shipments {
		if s.Active() {
			active[s.Type] = true
		}
	}

	switch orderStatus {
	case ordersdomain.WebsiteProcessing, ordersdomain.WebsiteConfirmed:
		if !active[TypeForward] && !active[TypeMPS] {
			set.Create = append(set.Create, TypeForward, TypeMPS)
		}
	case ordersdomain.WebsiteDelivered:
		if !active[TypeReverse] {
			set.Create = append(set.Create, TypeReverse)
		}
		if !active[TypeReplacement] {
			set.Create = append(set.Create, TypeReplacement)
		}
	}

	for _, s := range shipments {
		waybill := s.MasterWaybill()
		if waybill == "" {
			continue
		}
		set.Shipment[waybill] = shipmentActions(s.Status)
	}
	return set
}

func shipmentActions(status Status) []Action {
	actions := []Action{ActionTrack}
	switch status {
	case StatusCreated:
		actions = append(actions, ActionLabel, ActionEdit)
	case StatusDispatched:
		actions = append(actions, ActionLabel)
	}
	if status != StatusDelivered && status != StatusCancelled {
		actions = append(actions, ActionCancel)
	}
	return actions
}
