// Package memory persistencia en memoria ("best effort", modo local y tests).
// Todos los repositorios comparten un Store protegido por mutex; las lecturas devuelven copias.
package memory

import (
	"sync"

	"github.com/jhoicas/core-stock/internal/domain/entity"
	"github.com/jhoicas/core-stock/internal/domain/reorder"
)

// Store estado compartido de los repositorios en memoria.
type Store struct {
	mu        sync.RWMutex
	txMu      sync.Mutex
	snapshots map[string]reorder.StockSnapshot
	issues    []reorder.IssueRecord
	suppliers map[string]entity.Supplier
	users     map[string]entity.User // por ID
	orders    map[string]entity.PurchaseOrder
	receipts  map[string]entity.GoodsReceipt
}

// NewStore store vacío.
func NewStore() *Store {
	return &Store{
		snapshots: make(map[string]reorder.StockSnapshot),
		suppliers: make(map[string]entity.Supplier),
		users:     make(map[string]entity.User),
		orders:    make(map[string]entity.PurchaseOrder),
		receipts:  make(map[string]entity.GoodsReceipt),
	}
}

// PutSnapshot inserta o reemplaza el stock de un SKU.
func (s *Store) PutSnapshot(snap reorder.StockSnapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snapshots[snap.SKU] = snap
}

// AddIssues agrega salidas al historial.
func (s *Store) AddIssues(issues ...reorder.IssueRecord) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.issues = append(s.issues, issues...)
}

// PutSupplier inserta o reemplaza un proveedor.
func (s *Store) PutSupplier(sup entity.Supplier) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.suppliers[sup.ID] = sup
}

// PutUser inserta o reemplaza un usuario.
func (s *Store) PutUser(u entity.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users[u.ID] = copyUser(u)
}

// state copia del estado mutable por transacciones.
type state struct {
	snapshots map[string]reorder.StockSnapshot
	issues    []reorder.IssueRecord
	orders    map[string]entity.PurchaseOrder
	receipts  map[string]entity.GoodsReceipt
}

func (s *Store) save() state {
	s.mu.RLock()
	defer s.mu.RUnlock()
	st := state{
		snapshots: make(map[string]reorder.StockSnapshot, len(s.snapshots)),
		issues:    append([]reorder.IssueRecord(nil), s.issues...),
		orders:    make(map[string]entity.PurchaseOrder, len(s.orders)),
		receipts:  make(map[string]entity.GoodsReceipt, len(s.receipts)),
	}
	for k, v := range s.snapshots {
		st.snapshots[k] = v
	}
	for k, v := range s.orders {
		st.orders[k] = copyOrder(v)
	}
	for k, v := range s.receipts {
		st.receipts[k] = copyReceipt(v)
	}
	return st
}

func (s *Store) restore(st state) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snapshots = st.snapshots
	s.issues = st.issues
	s.orders = st.orders
	s.receipts = st.receipts
}

func copyOrder(po entity.PurchaseOrder) entity.PurchaseOrder {
	po.Lines = append([]entity.PurchaseOrderLine(nil), po.Lines...)
	if po.SubmittedAt != nil {
		t := *po.SubmittedAt
		po.SubmittedAt = &t
	}
	return po
}

func copyReceipt(gr entity.GoodsReceipt) entity.GoodsReceipt {
	gr.Lines = append([]entity.GoodsReceiptLine(nil), gr.Lines...)
	return gr
}

func copyUser(u entity.User) entity.User {
	u.Roles = append([]string(nil), u.Roles...)
	u.Permissions = append([]string(nil), u.Permissions...)
	return u
}
