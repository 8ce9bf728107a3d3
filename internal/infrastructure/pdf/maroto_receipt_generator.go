// Package pdf renders order receipts with Maroto v2.
//
// A4 layout:
//
//	┌─────────────────────────────────────────────────────┐
//	│  HEADER: Franchise name   │  Order # + date          │
//	│  ─────────────────────────────────────────────────  │
//	│  DINER: name + email                                 │
//	│  ─────────────────────────────────────────────────  │
//	│  TABLE: Item | Description | Price                   │
//	│  ─────────────────────────────────────────────────  │
//	│  TOTAL                                               │
//	└─────────────────────────────────────────────────────┘
package pdf

import (
	"context"
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

	"github.com/jhoicas/pizza-service/internal/application/usecase"
	"github.com/jhoicas/pizza-service/internal/domain/entity"
)

var (
	colorPrimary = &props.Color{Red: 178, Green: 34, Blue: 34}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

var _ usecase.ReceiptGenerator = (*MarotoReceiptGenerator)(nil)

// MarotoReceiptGenerator implements usecase.ReceiptGenerator using Maroto v2.
type MarotoReceiptGenerator struct{}

// NewMarotoReceiptGenerator builds the generator.
func NewMarotoReceiptGenerator() *MarotoReceiptGenerator { return &MarotoReceiptGenerator{} }

// GenerateReceipt renders the receipt and returns its bytes. Franchise may
// be nil when it has since been deleted.
func (g *MarotoReceiptGenerator) GenerateReceipt(
	_ context.Context,
	order *entity.Order,
	diner *entity.User,
	franchise *entity.Franchise,
) ([]byte, error) {
	franchiseName := "JWT Pizza"
	if franchise != nil {
		franchiseName = franchise.Name
	}

	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle(fmt.Sprintf("Order %d receipt", order.ID), true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(order, franchiseName))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(dinerRow(diner))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	for _, r := range itemRows(order.Items) {
		m.AddRows(r)
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalRow(order))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generate receipt: %w", err)
	}
	return doc.GetBytes(), nil
}

// headerRow: franchise name (left), order number + date (right).
func headerRow(order *entity.Order, franchiseName string) core.Row {
	return row.New(18).Add(
		col.New(7).Add(
			text.New(franchiseName, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New(fmt.Sprintf("Store #%d", order.StoreID), props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New(fmt.Sprintf("Order #%d", order.ID), props.Text{
				Style: fontstyle.Bold, Size: 11, Align: align.Right, Top: 1,
			}),
			text.New(order.Date.Format("02 Jan 2006 15:04"), props.Text{
				Size: 9, Align: align.Right, Top: 9, Color: colorGray,
			}),
		),
	)
}

func dinerRow(diner *entity.User) core.Row {
	return row.New(10).Add(
		col.New(12).Add(
			text.New("Diner: "+diner.Name, props.Text{Size: 9, Top: 1}),
			text.New(diner.Email, props.Text{Size: 8, Top: 6, Color: colorGray}),
		),
	)
}

func tableHeaderRow() core.Row {
	return row.New(7).Add(
		col.New(2).Add(text.New("Item", props.Text{Style: fontstyle.Bold, Size: 9, Top: 1})),
		col.New(7).Add(text.New("Description", props.Text{Style: fontstyle.Bold, Size: 9, Top: 1})),
		col.New(3).Add(text.New("Price", props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right, Top: 1})),
	)
}

func itemRows(items []entity.OrderItem) []core.Row {
	rows := make([]core.Row, 0, len(items))
	for _, it := range items {
		rows = append(rows, row.New(6).Add(
			col.New(2).Add(text.New(fmt.Sprintf("#%d", it.MenuID), props.Text{Size: 8, Top: 1})),
			col.New(7).Add(text.New(it.Description, props.Text{Size: 8, Top: 1})),
			col.New(3).Add(text.New("$"+it.Price.StringFixed(2), props.Text{Size: 8, Align: align.Right, Top: 1})),
		))
	}
	return rows
}

func totalRow(order *entity.Order) core.Row {
	return row.New(9).Add(
		col.New(9).Add(text.New("TOTAL", props.Text{Style: fontstyle.Bold, Size: 10, Align: align.Right, Top: 2})),
		col.New(3).Add(text.New("$"+order.Total().StringFixed(2), props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right, Top: 2, Color: colorPrimary,
		})),
	)
}
