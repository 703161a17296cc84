package memory

import (
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/core-stock/internal/domain/authz"
	"github.com/jhoicas/core-stock/internal/domain/entity"
	"github.com/jhoicas/core-stock/internal/domain/reorder"
)

// DemoPassword contraseña de todos los usuarios demo.
const DemoPassword = "demo1234"

// SeedConfig parámetros del generador de datos demo.
type SeedConfig struct {
	Seed        uint64    // misma semilla, mismos datos
	Now         time.Time // fin del historial de salidas
	HistoryDays int       // 0 = reorder.DefaultHistoryDays
}

type seedSupplier struct {
	id, name, email string
	leadTime        int
}

var demoSuppliers = []seedSupplier{
	{"SUP-ACME", "Ferretería Acme S.A.S.", "pedidos@acme.example", 7},
	{"SUP-ANDES", "Distribuidora Andes", "compras@andes.example", 12},
	{"SUP-ELEC", "Eléctricos del Valle", "ventas@electricos.example", 5},
	{"SUP-PINT", "Pinturas Nacionales", "oc@pinturas.example", 10},
}

type seedItem struct {
	sku, name, supplier string
	pack                int
	cost                string
	daily               float64 // consumo diario medio
}

var demoCatalog = []seedItem{
	{"TOR-0001", "Tornillo drywall 6x1\"", "SUP-ACME", 100, "45", 38},
	{"TOR-0002", "Tornillo autoperforante 8x3/4\"", "SUP-ACME", 100, "60", 22},
	{"CHA-0001", "Chazo plástico 1/4\"", "SUP-ACME", 50, "30", 15},
	{"BRO-0001", "Broca concreto 3/8\"", "SUP-ACME", 10, "8900", 0.6},
	{"CIN-0001", "Cinta teflón 1/2\"", "SUP-ANDES", 12, "1200", 4},
	{"TUB-0001", "Tubo PVC presión 1/2\" x 6m", "SUP-ANDES", 10, "14500", 2.2},
	{"COD-0001", "Codo PVC 1/2\" 90°", "SUP-ANDES", 25, "650", 9},
	{"SOL-0001", "Soldadura PVC 1/4 gal", "SUP-ANDES", 6, "23800", 0.4},
	{"CAB-0001", "Cable THHN 12 AWG (rollo 100m)", "SUP-ELEC", 1, "189000", 0.15},
	{"INT-0001", "Interruptor sencillo", "SUP-ELEC", 20, "4200", 3.5},
	{"TOM-0001", "Toma doble polo a tierra", "SUP-ELEC", 20, "5600", 3},
	{"BOM-0001", "Bombillo LED 9W", "SUP-ELEC", 24, "5900", 7},
	{"PIN-0001", "Vinilo tipo 1 blanco galón", "SUP-PINT", 4, "62000", 1.8},
	{"PIN-0002", "Esmalte negro 1/4 gal", "SUP-PINT", 6, "21500", 0.7},
	{"BRC-0001", "Brocha 3\"", "SUP-PINT", 12, "7800", 1.1},
	{"RDL-0001", "Rodillo felpa 9\"", "SUP-PINT", 6, "15900", 0},
}

type seedUser struct {
	id, email, name string
	roles           []string
	extra           []string
}

var demoUsers = []seedUser{
	{"u-admin", "admin@corestock.local", "Administrador", []string{authz.RoleAdmin}, nil},
	{"u-bodega", "bodega@corestock.local", "Bodeguero", []string{authz.RoleBodeguero}, nil},
	{"u-compras", "compras@corestock.local", "Comprador", []string{authz.RoleComprador}, []string{string(authz.KeyPOApprove)}},
	{"u-ventas", "ventas@corestock.local", "Vendedor", []string{authz.RoleVendedor}, nil},
	{"u-auditor", "auditor@corestock.local", "Auditor", []string{authz.RoleAuditor}, nil},
}

// Seed llena store con proveedores, SKUs, historial de salidas y usuarios demo.
// Es determinista: la misma SeedConfig produce exactamente los mismos datos.
func Seed(store *Store, cfg SeedConfig) error {
	if cfg.Now.IsZero() {
		cfg.Now = time.Now()
	}
	if cfg.HistoryDays <= 0 {
		cfg.HistoryDays = reorder.DefaultHistoryDays
	}
	rng := rand.New(rand.NewPCG(cfg.Seed, cfg.Seed^0x9e3779b97f4a7c15))

	leadBySupplier := make(map[string]int, len(demoSuppliers))
	for _, s := range demoSuppliers {
		store.PutSupplier(entity.Supplier{ID: s.id, Name: s.name, Email: s.email, LeadTimeDays: s.leadTime})
		leadBySupplier[s.id] = s.leadTime
	}

	last := cfg.Now.Add(-time.Hour)
	for _, it := range demoCatalog {
		cost, err := decimal.NewFromString(it.cost)
		if err != nil {
			return fmt.Errorf("seed %s: costo: %w", it.sku, err)
		}
		lead := leadBySupplier[it.supplier] + rng.IntN(3) - 1
		if lead < 1 {
			lead = 1
		}
		coverDays := float64(lead)
		minQty := int(it.daily*coverDays) + it.pack
		// stock entre 0.3x y 3x el mínimo: unos SKUs quedan como candidatos y otros no
		stock := int(float64(minQty) * (0.3 + rng.Float64()*2.7))

		store.PutSnapshot(reorder.StockSnapshot{
			SKU:          it.sku,
			Name:         it.name,
			Stock:        stock,
			Min:          minQty,
			PackSize:     it.pack,
			LeadTimeDays: lead,
			SupplierID:   it.supplier,
			UnitCost:     cost,
		})

		if it.daily <= 0 {
			continue
		}
		for d := 0; d < cfg.HistoryDays; d++ {
			// salidas agrupadas: en promedio un despacho cada dos días
			if rng.Float64() >= 0.5 {
				continue
			}
			qty := int(it.daily * 2 * (0.5 + rng.Float64()))
			if qty < 1 {
				qty = 1
			}
			store.AddIssues(reorder.IssueRecord{
				SKU:      it.sku,
				Date:     last.AddDate(0, 0, -d),
				Quantity: qty,
			})
		}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(DemoPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("seed: hash password: %w", err)
	}
	created := cfg.Now.AddDate(0, 0, -cfg.HistoryDays).UTC()
	for _, u := range demoUsers {
		store.PutUser(entity.User{
			ID:           u.id,
			Email:        u.email,
			PasswordHash: string(hash),
			Name:         u.name,
			Roles:        u.roles,
			Permissions:  u.extra,
			Status:       entity.UserStatusActive,
			CreatedAt:    created,
			UpdatedAt:    created,
		})
	}
	return nil
}
