package pdf

import (
	"fmt"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/shopspring/decimal"
)

// Company is the issuer identity printed in the document header.
type Company struct {
	Name    string
	TaxID   string
	Address string
}

// Client is the customer block of a rendered quotation.
type Client struct {
	Name    string
	TaxID   string
	Phone   string
	Email   string
	Address string
}

// Line is one item row in the quotation table.
type Line struct {
	Code      string
	Product   string
	Quantity  decimal.Decimal
	UnitPrice decimal.Decimal
	Subtotal  decimal.Decimal
}

// Quotation is the finalized payload a document is rendered from. Rendering
// has no persistence side effects.
type Quotation struct {
	Number       string
	Date         string
	Client       Client
	Lines        []Line
	Total        decimal.Decimal
	PaymentTerms string
	ValidityDate string
	Observations string
}

// DocumentName returns the canonical file name for a quotation document.
func DocumentName(number string) string {
	return fmt.Sprintf("orcamento_%s.pdf", number)
}

// Renderer turns quotation payloads into printable PDF documents.
type Renderer struct {
	company Company
}

// NewRenderer builds a renderer issuing documents under the given identity.
func NewRenderer(company Company) *Renderer {
	return &Renderer{company: company}
}

// Render produces the PDF bytes for a quotation.
func (r *Renderer) Render(q Quotation) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(18).
		WithRightMargin(18).
		WithTopMargin(15).
		WithBottomMargin(15).
		Build()

	m := maroto.New(cfg)

	r.addHeader(m, q)
	addClientSection(m, q.Client)
	addTableHeader(m)
	for _, line := range q.Lines {
		addTableRow(m, line)
	}
	addTotal(m, q.Total)
	addClosingSections(m, q)

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("failed to generate PDF: %w", err)
	}

	return doc.GetBytes(), nil
}

func (r *Renderer) addHeader(m core.Maroto, q Quotation) {
	m.AddRows(
		row.New(10).Add(
			col.New(12).Add(
				text.New(r.company.Name, props.Text{
					Size:  15,
					Style: fontstyle.Bold,
					Align: align.Center,
				}),
			),
		),
		row.New(5).Add(
			col.New(12).Add(
				text.New(fmt.Sprintf("CNPJ: %s", r.company.TaxID), props.Text{Size: 9}),
			),
		),
		row.New(5).Add(
			col.New(12).Add(
				text.New(fmt.Sprintf("Endereço: %s", r.company.Address), props.Text{Size: 9}),
			),
		),
		row.New(4),
		row.New(9).Add(
			col.New(12).Add(
				text.New("ORÇAMENTO", props.Text{Size: 13, Style: fontstyle.Bold}),
			),
		),
		row.New(6).Add(
			col.New(6).Add(
				text.New(fmt.Sprintf("Nº: %s", q.Number), props.Text{Size: 9}),
			),
			col.New(6).Add(
				text.New(fmt.Sprintf("Data: %s", q.Date), props.Text{Size: 9, Align: align.Right}),
			),
		),
	)
}

func addClientSection(m core.Maroto, c Client) {
	m.AddRows(
		row.New(4),
		row.New(7).Add(
			col.New(12).Add(
				text.New("Cliente", props.Text{Size: 11, Style: fontstyle.Bold}),
			),
		),
		detailRow(fmt.Sprintf("Nome/Razão Social: %s", c.Name)),
		detailRow(fmt.Sprintf("CNPJ: %s", c.TaxID)),
		detailRow(fmt.Sprintf("Endereço: %s", c.Address)),
	)

	// Phone and e-mail are optional in the source data; blank lines are noise.
	if c.Phone != "" {
		m.AddRows(detailRow(fmt.Sprintf("Telefone: %s", c.Phone)))
	}
	if c.Email != "" {
		m.AddRows(detailRow(fmt.Sprintf("E-mail: %s", c.Email)))
	}

	m.AddRows(row.New(4))
}

func detailRow(content string) core.Row {
	return row.New(5).Add(
		col.New(12).Add(
			text.New(content, props.Text{Size: 9}),
		),
	)
}

func addTableHeader(m core.Maroto) {
	headerBg := &props.Color{Red: 220, Green: 220, Blue: 220}
	headerCell := props.Cell{BackgroundColor: headerBg}
	headerText := props.Text{Size: 9, Style: fontstyle.Bold}
	headerTextRight := headerText
	headerTextRight.Align = align.Right

	m.AddRows(
		row.New(7).Add(
			col.New(2).Add(text.New("Cód.", headerText)).WithStyle(&headerCell),
			col.New(5).Add(text.New("Produto", headerText)).WithStyle(&headerCell),
			col.New(1).Add(text.New("Qtd", headerTextRight)).WithStyle(&headerCell),
			col.New(2).Add(text.New("Vlr Unit.", headerTextRight)).WithStyle(&headerCell),
			col.New(2).Add(text.New("Subtotal", headerTextRight)).WithStyle(&headerCell),
		),
	)
}

func addTableRow(m core.Maroto, line Line) {
	cellText := props.Text{Size: 8}
	cellTextRight := cellText
	cellTextRight.Align = align.Right

	m.AddRows(
		row.New(6).Add(
			col.New(2).Add(text.New(line.Code, cellText)),
			col.New(5).Add(text.New(line.Product, cellText)),
			col.New(1).Add(text.New(FormatQuantity(line.Quantity), cellTextRight)),
			col.New(2).Add(text.New(FormatBRL(line.UnitPrice), cellTextRight)),
			col.New(2).Add(text.New(FormatBRL(line.Subtotal), cellTextRight)),
		),
	)
}

func addTotal(m core.Maroto, total decimal.Decimal) {
	m.AddRows(
		row.New(4),
		row.New(8).Add(
			col.New(12).Add(
				text.New(fmt.Sprintf("Total: %s", FormatBRL(total)), props.Text{
					Size:  11,
					Style: fontstyle.Bold,
					Align: align.Right,
				}),
			),
		),
	)
}

func addClosingSections(m core.Maroto, q Quotation) {
	if q.PaymentTerms != "" {
		m.AddRows(
			row.New(4),
			sectionTitleRow("Condições de Pagamento"),
			detailRow(q.PaymentTerms),
		)
	}

	if q.ValidityDate != "" {
		m.AddRows(detailRow(fmt.Sprintf("Válido até: %s", q.ValidityDate)))
	}

	if q.Observations != "" {
		m.AddRows(
			row.New(4),
			sectionTitleRow("Observações"),
			detailRow(q.Observations),
		)
	}
}

func sectionTitleRow(title string) core.Row {
	return row.New(7).Add(
		col.New(12).Add(
			text.New(title, props.Text{Size: 11, Style: fontstyle.Bold}),
		),
	)
}
