package report

import (
	"fmt"
	"strconv"
	"strings"

	"smartcalda/entities"
)

// Disclaimer printed on every page, verbatim.
const Disclaimer = "Esta recomendação é uma ferramenta de apoio à decisão e não substitui o receituário agronômico."

// Title of the document header.
const Title = "Smart Recomendação Agrícola"

// PlotLine is one row of the "talhões selecionados" table.
type PlotLine struct {
	ID        string  `json:"id"`
	Area      float64 `json:"area"`
	AreaLabel string  `json:"area_label"`
}

// ProductLine is one row of the products table; Total is dose × totalArea
// and TotalLabel carries the quantity unit (the part before "/ha").
type ProductLine struct {
	Name       string  `json:"name"`
	DoseLabel  string  `json:"dose_label"`
	Total      float64 `json:"total"`
	TotalLabel string  `json:"total_label"`
}

// Page is the render contract for one recommendation record.
type Page struct {
	Index int `json:"index"`
	Count int `json:"count"`

	Date         string `json:"date"`
	Sector       string `json:"sector"`
	Farm         string `json:"farm"`
	Unit         string `json:"unit"`
	Section      string `json:"section"`
	CuttingStage string `json:"cutting_stage"`

	CostCenter    string `json:"cost_center"`
	OperationCode string `json:"operation_code"`
	FlowRate      string `json:"flow_rate"`
	TankCapacity  string `json:"tank_capacity"`
	Supervisor    string `json:"supervisor"`

	Plots          []PlotLine    `json:"plots"`
	TotalAreaLabel string        `json:"total_area_label"`
	FactorWarning  string        `json:"factor_warning,omitempty"`
	Products       []ProductLine `json:"products"`
	Disclaimer     string        `json:"disclaimer"`
}

// Document is the exporter input: one page per record, in list order.
type Document struct {
	Title string `json:"title"`
	Pages []Page `json:"pages"`
}

// BuildDocument derives the printable data from a finalized report list.
func BuildDocument(summaries []entities.RecommendationSummary) Document {
	doc := Document{Title: Title}
	for i, s := range summaries {
		page := Page{
			Index:          i + 1,
			Count:          len(summaries),
			Date:           s.Date.Format("02/01/2006 15:04"),
			Sector:         s.Sector,
			Farm:           s.Farm,
			Unit:           s.Unit,
			Section:        s.Section,
			CuttingStage:   s.CuttingStage,
			CostCenter:     s.CostCenter,
			OperationCode:  s.OperationCode,
			FlowRate:       s.FlowRate,
			TankCapacity:   s.TankCapacity,
			Supervisor:     s.Supervisor,
			TotalAreaLabel: fmt.Sprintf("%.2f ha", s.TotalArea),
			Disclaimer:     Disclaimer,
		}
		for _, p := range s.SelectedPlots {
			page.Plots = append(page.Plots, PlotLine{
				ID:        p.ID,
				Area:      p.Area,
				AreaLabel: fmt.Sprintf("%.2f ha", p.Area),
			})
		}
		if s.AreaFactor != 0 && s.AreaFactor != 1 {
			page.FactorWarning = fmt.Sprintf(
				"Atenção: fator de multiplicação de área %s aplicado aos talhões.",
				strconv.FormatFloat(s.AreaFactor, 'f', -1, 64))
		}
		for _, in := range s.Inputs {
			total := in.Dose * s.TotalArea
			page.Products = append(page.Products, ProductLine{
				Name:       in.Name,
				DoseLabel:  fmt.Sprintf("%s %s", strconv.FormatFloat(in.Dose, 'f', -1, 64), in.Unit),
				Total:      total,
				TotalLabel: fmt.Sprintf("%.2f %s", total, quantityUnit(in.Unit)),
			})
		}
		doc.Pages = append(doc.Pages, page)
	}
	return doc
}

// quantityUnit extracts "L" from "L/ha".
func quantityUnit(unit string) string {
	return strings.SplitN(unit, "/", 2)[0]
}

// FileName picks the download name: one file per run, named after the
// sector when the run covered a single one.
func FileName(summaries []entities.RecommendationSummary) string {
	if len(summaries) == 1 {
		return fmt.Sprintf("Recomendacao_Setor_%s.pdf", sanitize(summaries[0].Sector))
	}
	return "Relatorio_Multiplos_Setores.pdf"
}

func sanitize(s string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			return r
		}
		return '_'
	}, s)
}
