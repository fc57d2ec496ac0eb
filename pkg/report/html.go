package report

import (
	"bytes"
	"html/template"
)

// RenderHTML produces the printable document, one page section per record.
// Typography here is deliberately plain; the PDF step only prints it.
func RenderHTML(doc Document) (string, error) {
	var buf bytes.Buffer
	if err := pageTemplate.Execute(&buf, doc); err != nil {
		return "", err
	}
	return buf.String(), nil
}

var pageTemplate = template.Must(template.New("report").Parse(`<!DOCTYPE html>
<html lang="pt-BR">
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<style>
  body { font-family: Helvetica, Arial, sans-serif; font-size: 12px; color: #111; margin: 24px; }
  h1 { color: #166534; font-size: 20px; margin-bottom: 2px; }
  .meta { color: #555; font-size: 10px; margin-bottom: 12px; }
  .box { background: #dcfce7; border-radius: 6px; padding: 10px 14px; margin-bottom: 14px; }
  .box h2 { font-size: 13px; margin: 0 0 6px 0; }
  .cols { display: flex; gap: 40px; }
  .cols div { flex: 1; }
  .warn { color: #92400e; background: #fef3c7; border: 1px solid #fde68a; padding: 6px 10px; border-radius: 4px; margin: 10px 0; font-size: 11px; }
  table { border-collapse: collapse; width: 100%; margin: 10px 0; }
  th { background: #16a34a; color: #fff; text-align: left; padding: 5px 8px; font-size: 11px; }
  td { border: 1px solid #d1d5db; padding: 5px 8px; font-size: 11px; }
  .disclaimer { color: #b91c1c; font-style: italic; font-weight: bold; font-size: 10px; text-align: center; margin-top: 18px; }
  .pagenum { color: #999; font-size: 9px; text-align: right; }
  .page { page-break-after: always; }
  .page:last-child { page-break-after: auto; }
</style>
</head>
<body>
{{range .Pages}}
<div class="page">
  <h1>{{$.Title}}</h1>
  <p class="meta">Data da Recomendação: {{.Date}}</p>

  <div class="box">
    <h2>Detalhes do Local</h2>
    <div class="cols">
      <div>
        <p>Fazenda: {{.Farm}}</p>
        <p>Unidade: {{.Unit}}</p>
        <p>Seção: {{.Section}}</p>
      </div>
      <div>
        <p>Setor: {{.Sector}}</p>
        <p>Estágio de Corte: {{.CuttingStage}}</p>
        <p>Área Total Selecionada: {{.TotalAreaLabel}}</p>
      </div>
    </div>
    <h2>Dados Operacionais</h2>
    <div class="cols">
      <div>
        <p>Centro de Custos: {{.CostCenter}}</p>
        <p>Vazão: {{.FlowRate}}</p>
        <p>Encarregado: {{.Supervisor}}</p>
      </div>
      <div>
        <p>Cód. Operação: {{.OperationCode}}</p>
        <p>Capacidade Tanque: {{.TankCapacity}}</p>
      </div>
    </div>
  </div>

  {{if .FactorWarning}}<p class="warn">{{.FactorWarning}}</p>{{end}}

  <table>
    <tr><th>Talhões Selecionados</th><th>Área Individual</th></tr>
    {{range .Plots}}<tr><td>{{.ID}}</td><td>{{.AreaLabel}}</td></tr>
    {{end}}
  </table>

  <table>
    <tr><th>Insumo / Defensivo</th><th>Dose Aplicada</th><th>Quantidade Total</th></tr>
    {{range .Products}}<tr><td>{{.Name}}</td><td>{{.DoseLabel}}</td><td>{{.TotalLabel}}</td></tr>
    {{end}}
  </table>

  <p class="disclaimer">AVISO: {{.Disclaimer}}</p>
  <p class="pagenum">Página {{.Index}} de {{.Count}}</p>
</div>
{{end}}
</body>
</html>
`))
