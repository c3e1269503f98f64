// Package pdf implementa a renderização do relatório gerencial em PDF
// usando Maroto v2.
//
// Layout da página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Relatório Gerencial       │  Período + data geração │
//	│  ─────────────────────────────────────────────────────────  │
//	│  SEÇÕES: Clientes / Processos / Financeiro (rótulo | valor) │
//	│  ─────────────────────────────────────────────────────────  │
//	│  ALERTAS: nível + mensagem                                   │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"fmt"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/lfarias/juris-api/internal/application/report"
)

// ── Paleta de cores ───────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 30, Green: 60, Blue: 110}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorAlert   = &props.Color{Red: 170, Green: 40, Blue: 40}
)

// MarotoReportGenerator implementa report.Generator usando Maroto v2.
type MarotoReportGenerator struct{}

// NewMarotoReportGenerator constrói o gerador.
func NewMarotoReportGenerator() *MarotoReportGenerator { return &MarotoReportGenerator{} }

// Generate renderiza o relatório e devolve os bytes do PDF.
func (g *MarotoReportGenerator) Generate(rep report.Report) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle(rep.Title, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(rep))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))

	for _, sec := range rep.Sections {
		m.AddRows(sectionTitleRow(sec.Title))
		for _, l := range sec.Lines {
			m.AddRows(lineRow(l))
		}
		m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.2}))
	}

	if len(rep.Alerts) > 0 {
		m.AddRows(sectionTitleRow("Alertas"))
		for _, a := range rep.Alerts {
			m.AddRows(alertRow(a.Level, a.Message))
		}
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: gerar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Seções ────────────────────────────────────────────────────────────────────

func headerRow(rep report.Report) core.Row {
	return row.New(16).Add(
		col.New(7).Add(
			text.New(rep.Title, props.Text{
				Style: fontstyle.Bold, Size: 14, Color: colorPrimary, Top: 1,
			}),
		),
		col.New(5).Add(
			text.New(rep.Period, props.Text{
				Style: fontstyle.Bold, Size: 11, Align: align.Right, Top: 1,
			}),
			text.New("Gerado em "+rep.GeneratedAt.Format("02/01/2006 15:04"), props.Text{
				Size: 8, Align: align.Right, Top: 9, Color: colorGray,
			}),
		),
	)
}

func sectionTitleRow(title string) core.Row {
	return row.New(9).Add(
		col.New(12).Add(
			text.New(title, props.Text{
				Style: fontstyle.Bold, Size: 10, Color: colorPrimary, Top: 2,
			}),
		),
	)
}

func lineRow(l report.Line) core.Row {
	return row.New(6).Add(
		col.New(7).Add(
			text.New(l.Label, props.Text{Size: 9, Top: 1}),
		),
		col.New(5).Add(
			text.New(l.Value, props.Text{Size: 9, Top: 1, Align: align.Right}),
		),
	)
}

func alertRow(level, message string) core.Row {
	return row.New(6).Add(
		col.New(2).Add(
			text.New(level, props.Text{
				Size: 8, Top: 1, Style: fontstyle.Bold, Color: colorAlert,
			}),
		),
		col.New(10).Add(
			text.New(message, props.Text{Size: 9, Top: 1}),
		),
	)
}
