package migrations

import (
	"context"

	"github.com/contaflow/ledgerhub/db/models"
	"github.com/uptrace/bun"
)

// Minimal standard PUC seed: the six classes, common groups and a few
// detail subaccounts. Tenants extend it with custom accounts in their own
// chart.
func init() {
	type seed struct {
		code       string
		name       string
		level      int
		isDetail   bool
		thirdParty bool
		costCenter bool
	}

	seeds := []seed{
		{code: "1", name: "Activo", level: 1},
		{code: "11", name: "Disponible", level: 2},
		{code: "1105", name: "Caja", level: 3},
		{code: "110505", name: "Caja general", level: 4, isDetail: true},
		{code: "110510", name: "Cajas menores", level: 4, isDetail: true},
		{code: "1110", name: "Bancos", level: 3},
		{code: "111005", name: "Moneda nacional", level: 4, isDetail: true},
		{code: "13", name: "Deudores", level: 2},
		{code: "1305", name: "Clientes", level: 3, isDetail: true, thirdParty: true},
		{code: "2", name: "Pasivo", level: 1},
		{code: "22", name: "Proveedores", level: 2},
		{code: "2205", name: "Proveedores nacionales", level: 3, isDetail: true, thirdParty: true},
		{code: "23", name: "Cuentas por pagar", level: 2},
		{code: "2335", name: "Costos y gastos por pagar", level: 3, isDetail: true, thirdParty: true},
		{code: "3", name: "Patrimonio", level: 1},
		{code: "31", name: "Capital social", level: 2},
		{code: "3115", name: "Aportes sociales", level: 3, isDetail: true},
		{code: "4", name: "Ingresos", level: 1},
		{code: "41", name: "Operacionales", level: 2},
		{code: "4135", name: "Comercio al por mayor y al por menor", level: 3, isDetail: true},
		{code: "5", name: "Gastos", level: 1},
		{code: "51", name: "Operacionales de administracion", level: 2},
		{code: "5105", name: "Gastos de personal", level: 3, isDetail: true, costCenter: true},
		{code: "6", name: "Costos de ventas", level: 1},
		{code: "61", name: "Costo de ventas y de prestacion de servicios", level: 2},
		{code: "6135", name: "Comercio al por mayor y al por menor", level: 3, isDetail: true, costCenter: true},
	}

	Migrations.MustRegister(func(ctx context.Context, db *bun.DB) error {
		byCode := map[string]int64{}
		for _, s := range seeds {
			account := models.Account{
				Code:               s.code,
				Name:               s.name,
				AccountClass:       s.code[:1],
				Level:              s.level,
				IsDetail:           s.isDetail,
				RequiresThirdParty: s.thirdParty,
				RequiresCostCenter: s.costCenter,
				IsActive:           true,
			}
			// parent is the longest seeded prefix; seeds are ordered
			// parents-first
			for i := len(s.code) - 1; i >= 1; i-- {
				if id, ok := byCode[s.code[:i]]; ok {
					account.ParentID = id
					break
				}
			}
			if _, err := db.NewInsert().Model(&account).Exec(ctx); err != nil {
				return err
			}
			byCode[s.code] = account.ID
		}
		return nil
	}, nil)
}
