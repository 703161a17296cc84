package authz

import "sort"

// RecordKind tipo de registro sobre el que se consultan acciones.
type RecordKind string

const (
	KindProduct       RecordKind = "product"
	KindPurchaseOrder RecordKind = "purchase_order"
	KindGoodsReceipt  RecordKind = "goods_receipt"
)

// Acciones sobre registros.
const (
	ActionView    = "view"
	ActionCreate  = "create"
	ActionEdit    = "edit"
	ActionApprove = "approve"
	ActionReceive = "receive"
	ActionCancel  = "cancel"
	ActionPrint   = "print"
)

// RecordActions requisito de cada acción por tipo de registro.
var RecordActions = map[RecordKind]map[string]Requirement{
	KindProduct: {
		ActionView:  Single(PermInventoryRead),
		ActionEdit:  Single(PermInventoryWrite),
		ActionPrint: Single(PermLabelsPrint),
	},
	KindPurchaseOrder: {
		ActionView:    AnyOf(PermPurchasingRead, PermReceivingWrite),
		ActionCreate:  Single(PermPurchasingWrite),
		ActionEdit:    Single(PermPurchasingWrite),
		ActionApprove: Single(PermPurchasingApprove),
		ActionCancel:  AnyOf(PermPurchasingWrite, PermPurchasingApprove),
		ActionReceive: Single(PermReceivingWrite),
	},
	KindGoodsReceipt: {
		ActionView:   AnyOf(PermReceivingWrite, PermReportsRead),
		ActionCreate: Single(PermReceivingWrite),
		ActionPrint:  Single(PermLabelsPrint),
	},
}

// CanPerform informa si a puede ejecutar action sobre un registro de tipo kind.
// Tipos o acciones desconocidos se niegan, incluso para admin.
func CanPerform(a Authorization, kind RecordKind, action string) bool {
	actions, ok := RecordActions[kind]
	if !ok {
		return false
	}
	req, ok := actions[action]
	if !ok {
		return false
	}
	return req.SatisfiedBy(a)
}

// AllowedActions acciones permitidas sobre kind, ordenadas alfabéticamente.
func AllowedActions(a Authorization, kind RecordKind) []string {
	out := []string{}
	for action, req := range RecordActions[kind] {
		if req.SatisfiedBy(a) {
			out = append(out, action)
		}
	}
	sort.Strings(out)
	return out
}
