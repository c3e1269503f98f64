package calculator_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/lfarias/juris-api/internal/application/calculator"
	"github.com/lfarias/juris-api/internal/domain/entity"
)

func TestSimulateBilling_ModalidadeFixaParcelada(t *testing.T) {
	p := &entity.Process{
		BillingMode:  entity.BillingFixed,
		FixedAmount:  decimal.NewFromInt(9000),
		Installments: 4,
	}

	proj := calculator.SimulateBilling(p, decimal.Zero)

	assert.Equal(t, entity.BillingFixed, proj.Mode)
	assert.True(t, proj.FixedTotal.Equal(decimal.NewFromInt(9000)))
	assert.Equal(t, 4, proj.Installments)
	assert.True(t, proj.InstallmentValue.Equal(decimal.NewFromInt(2250)))
	assert.True(t, proj.ContingencyShare.IsZero())
	assert.True(t, proj.ProjectedTotal.Equal(decimal.NewFromInt(9000)))
}

func TestSimulateBilling_ModalidadeExito(t *testing.T) {
	p := &entity.Process{
		BillingMode:    entity.BillingContingency,
		ContingencyPct: decimal.NewFromInt(20),
	}

	proj := calculator.SimulateBilling(p, decimal.NewFromInt(50000))

	assert.True(t, proj.FixedTotal.IsZero())
	assert.True(t, proj.ContingencyShare.Equal(decimal.NewFromInt(10000)), "20%% do proveito esperado")
	assert.True(t, proj.ProjectedTotal.Equal(decimal.NewFromInt(10000)))
}

func TestSimulateBilling_ModalidadeMista(t *testing.T) {
	p := &entity.Process{
		BillingMode:    entity.BillingMixed,
		FixedAmount:    decimal.NewFromInt(6000),
		EntryAmount:    decimal.NewFromInt(2000),
		ContingencyPct: decimal.NewFromInt(10),
		Installments:   3,
	}

	proj := calculator.SimulateBilling(p, decimal.NewFromInt(30000))

	assert.True(t, proj.EntryAmount.Equal(decimal.NewFromInt(2000)))
	assert.True(t, proj.FixedTotal.Equal(decimal.NewFromInt(6000)))
	assert.True(t, proj.InstallmentValue.Equal(decimal.NewFromInt(2000)))
	assert.True(t, proj.ContingencyShare.Equal(decimal.NewFromInt(3000)))
	// 2000 entrada + 6000 fixo + 3000 êxito
	assert.True(t, proj.ProjectedTotal.Equal(decimal.NewFromInt(11000)))
}

func TestSimulateBilling_ExitoSemProveitoEsperado(t *testing.T) {
	p := &entity.Process{
		BillingMode:    entity.BillingContingency,
		ContingencyPct: decimal.NewFromInt(20),
	}

	proj := calculator.SimulateBilling(p, decimal.Zero)
	assert.True(t, proj.ProjectedTotal.IsZero())
}
