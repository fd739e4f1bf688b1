package render

import (
	"fmt"
	"strings"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/page"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/orientation"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
)

var (
	grey     = &props.Color{Red: 100, Green: 100, Blue: 100}
	darkBg   = &props.Color{Red: 33, Green: 37, Blue: 41}
	lightBg  = &props.Color{Red: 245, Green: 243, Blue: 239}
	whiteTxt = &props.Color{Red: 255, Green: 255, Blue: 255}
)

// GeneratePDF renders the projection to PDF bytes: one page per section,
// then the summary page.
func GeneratePDF(p Projection) ([]byte, error) {
	cfg := config.NewBuilder().
		WithOrientation(orientation.Vertical).
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).
		WithTopMargin(10).
		WithRightMargin(10).
		WithPageNumber(props.PageNumber{
			Pattern: "Page {current} of {total}",
			Place:   props.RightBottom,
			Size:    7,
			Color:   grey,
		}).
		Build()

	m := maroto.New(cfg)

	for _, sp := range p.Pages {
		pg := page.New()
		pg.Add(sectionPageRows(p.Info, sp)...)
		m.AddPages(pg)
	}

	pg := page.New()
	pg.Add(summaryPageRows(p.Info, p.Summary)...)
	m.AddPages(pg)

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("generate pdf: %w", err)
	}
	return doc.GetBytes(), nil
}

func sectionPageRows(info DocumentInfo, sp SectionPage) []core.Row {
	var rows []core.Row

	if sp.ShowHeader {
		rows = append(rows, headerRows(info)...)
	}

	// Section title: "A. Foundation"
	rows = append(rows,
		row.New(10).Add(
			col.New(12).Add(text.New(fmt.Sprintf("%s. %s", sp.Letter, sp.Name), props.Text{
				Size:  12,
				Style: fontstyle.Bold,
				Align: align.Left,
			})),
		),
		row.New(2),
	)

	// Subsection A: materials table
	rows = append(rows,
		row.New(7).Add(
			col.New(12).Add(text.New("A. Materials", props.Text{
				Size: 9, Style: fontstyle.Bold, Align: align.Left, Color: grey,
			})),
		),
	)
	rows = append(rows, materialsTable(sp)...)

	// Subsection B: labour, omitted when the section carries no labor cost
	if sp.HasLabor {
		rows = append(rows,
			row.New(3),
			row.New(7).Add(
				col.New(12).Add(text.New("B. Labour", props.Text{
					Size: 9, Style: fontstyle.Bold, Align: align.Left, Color: grey,
				})),
			),
			row.New(7).Add(
				col.New(9).Add(text.New("Labour charge", props.Text{Size: 8, Align: align.Left})),
				col.New(3).Add(text.New(sp.LaborCost, props.Text{Size: 8, Align: align.Right})),
			).WithStyle(&props.Cell{BackgroundColor: lightBg}),
		)
	}

	rows = append(rows,
		row.New(3),
		row.New(8).Add(
			col.New(9).Add(text.New("Section Total", props.Text{
				Size: 9, Style: fontstyle.Bold, Align: align.Right,
			})),
			col.New(3).Add(text.New(sp.SectionTotal, props.Text{
				Size: 9, Style: fontstyle.Bold, Align: align.Right,
			})),
		),
	)

	return rows
}

func headerRows(info DocumentInfo) []core.Row {
	title := strings.ToUpper(info.Type)

	rows := []core.Row{
		row.New(10).Add(
			col.New(6).Add(text.New(info.CompanyName, props.Text{
				Size: 14, Style: fontstyle.Bold, Align: align.Left,
			})),
			col.New(6).Add(text.New(title, props.Text{
				Size: 14, Style: fontstyle.Bold, Align: align.Right, Color: darkBg,
			})),
		),
		row.New(8).Add(
			col.New(6).Add(text.New(joinNonEmpty([]string{info.CompanyAddress, info.CompanyPhone, info.CompanyEmail}, " | "), props.Text{
				Size: 8, Align: align.Left, Color: grey,
			})),
			col.New(6).Add(text.New(fmt.Sprintf("No: %s", info.Number), props.Text{
				Size: 10, Style: fontstyle.Bold, Align: align.Right,
			})),
		),
	}

	dateLine := "Date: " + info.IssueDate.Format("02 Jan 2006")
	if info.DueDate != nil {
		dateLine += "   Due: " + info.DueDate.Format("02 Jan 2006")
	}

	rows = append(rows,
		row.New(7).Add(
			col.New(6).Add(text.New("BILL TO", props.Text{
				Size: 7, Style: fontstyle.Bold, Align: align.Left, Color: grey,
			})).WithStyle(&props.Cell{BackgroundColor: lightBg}),
			col.New(6).Add(text.New(dateLine, props.Text{Size: 8, Align: align.Right})),
		),
		row.New(7).Add(
			col.New(6).Add(text.New(info.CustomerName, props.Text{
				Size: 9, Style: fontstyle.Bold, Align: align.Left,
			})),
		),
	)
	if info.CustomerAddress != "" {
		rows = append(rows,
			row.New(7).Add(
				col.New(6).Add(text.New(info.CustomerAddress, props.Text{Size: 8, Align: align.Left})),
			),
		)
	}
	rows = append(rows, row.New(3))
	return rows
}

func materialsTable(sp SectionPage) []core.Row {
	headerText := props.Text{
		Size: 7, Style: fontstyle.Bold, Align: align.Center, Color: whiteTxt,
	}
	headerTextLeft := headerText
	headerTextLeft.Align = align.Left
	headerCell := props.Cell{BackgroundColor: darkBg}

	rows := []core.Row{
		row.New(8).Add(
			col.New(5).Add(text.New("Description", headerTextLeft)).WithStyle(&headerCell),
			col.New(1).Add(text.New("Unit", headerText)).WithStyle(&headerCell),
			col.New(1).Add(text.New("Qty", headerText)).WithStyle(&headerCell),
			col.New(2).Add(text.New("Rate", headerText)).WithStyle(&headerCell),
			col.New(1).Add(text.New("Tax", headerText)).WithStyle(&headerCell),
			col.New(2).Add(text.New("Amount", headerText)).WithStyle(&headerCell),
		),
	}

	cellText := props.Text{Size: 8, Align: align.Left}
	numText := props.Text{Size: 8, Align: align.Right}

	for i, it := range sp.Materials {
		r := row.New(7).Add(
			col.New(5).Add(text.New(it.Description, cellText)),
			col.New(1).Add(text.New(it.Unit, cellText)),
			col.New(1).Add(text.New(it.Quantity, numText)),
			col.New(2).Add(text.New(it.UnitPrice, numText)),
			col.New(1).Add(text.New(it.TaxRate, numText)),
			col.New(2).Add(text.New(it.LineTotal, numText)),
		)
		if i%2 == 1 {
			r.WithStyle(&props.Cell{BackgroundColor: lightBg})
		}
		rows = append(rows, r)
	}

	rows = append(rows,
		row.New(7).Add(
			col.New(10).Add(text.New("Materials Total", props.Text{
				Size: 8, Style: fontstyle.Bold, Align: align.Right,
			})),
			col.New(2).Add(text.New(sp.MaterialsTotal, props.Text{
				Size: 8, Style: fontstyle.Bold, Align: align.Right,
			})),
		),
	)
	return rows
}

func summaryPageRows(info DocumentInfo, s SummaryPage) []core.Row {
	headerText := props.Text{
		Size: 7, Style: fontstyle.Bold, Align: align.Center, Color: whiteTxt,
	}
	headerTextLeft := headerText
	headerTextLeft.Align = align.Left
	headerCell := props.Cell{BackgroundColor: darkBg}

	rows := []core.Row{
		row.New(10).Add(
			col.New(12).Add(text.New("Summary", props.Text{
				Size: 12, Style: fontstyle.Bold, Align: align.Left,
			})),
		),
		row.New(8).Add(
			col.New(1).Add(text.New("", headerText)).WithStyle(&headerCell),
			col.New(5).Add(text.New("Section", headerTextLeft)).WithStyle(&headerCell),
			col.New(2).Add(text.New("Materials", headerText)).WithStyle(&headerCell),
			col.New(2).Add(text.New("Labour", headerText)).WithStyle(&headerCell),
			col.New(2).Add(text.New("Subtotal", headerText)).WithStyle(&headerCell),
		),
	}

	cellText := props.Text{Size: 8, Align: align.Left}
	numText := props.Text{Size: 8, Align: align.Right}

	for i, r := range s.Rows {
		tr := row.New(7).Add(
			col.New(1).Add(text.New(r.Letter, cellText)),
			col.New(5).Add(text.New(r.Name, cellText)),
			col.New(2).Add(text.New(r.Materials, numText)),
			col.New(2).Add(text.New(r.Labor, numText)),
			col.New(2).Add(text.New(r.Subtotal, numText)),
		)
		if i%2 == 1 {
			tr.WithStyle(&props.Cell{BackgroundColor: lightBg})
		}
		rows = append(rows, tr)
	}

	totalRow := func(label, value string, bold bool) core.Row {
		style := props.Text{Size: 8, Align: align.Right}
		if bold {
			style.Style = fontstyle.Bold
			style.Size = 9
		}
		return row.New(7).Add(
			col.New(10).Add(text.New(label, style)),
			col.New(2).Add(text.New(value, style)),
		)
	}

	rows = append(rows,
		row.New(3),
		totalRow("Total Materials", s.TotalMaterials, false),
		totalRow("Total Labour", s.TotalLabor, false),
		totalRow("Tax (included)", s.TotalTax, false),
		totalRow("Grand Total", s.GrandTotal, true),
	)

	if s.PaidAmount != "" {
		rows = append(rows, totalRow("Paid", s.PaidAmount, false))
	}
	if s.BalanceDue != "" {
		rows = append(rows, totalRow("Balance Due", s.BalanceDue, true))
	}

	if info.Notes != "" {
		rows = append(rows,
			row.New(5),
			row.New(6).Add(col.New(12).Add(text.New("Notes", props.Text{
				Size: 7, Style: fontstyle.Bold, Align: align.Left, Color: grey,
			}))),
			row.New(7).Add(col.New(12).Add(text.New(info.Notes, props.Text{Size: 8, Align: align.Left}))),
		)
	}
	if info.Terms != "" {
		rows = append(rows,
			row.New(6).Add(col.New(12).Add(text.New("Terms & Conditions", props.Text{
				Size: 7, Style: fontstyle.Bold, Align: align.Left, Color: grey,
			}))),
			row.New(7).Add(col.New(12).Add(text.New(info.Terms, props.Text{Size: 8, Align: align.Left}))),
		)
	}

	return rows
}

func joinNonEmpty(parts []string, sep string) string {
	var out []string
	for _, p := range parts {
		if strings.TrimSpace(p) != "" {
			out = append(out, p)
		}
	}
	return strings.Join(out, sep)
}
