package sheet

// Column-name variants seen in the real registration and stock workbooks.
// Order matters: the first alias whose normalized form exists as a column
// wins, and the first alias also seeds the partial-match fallback.
var (
	SectorCols  = []string{"Setor", "Cód. Setor", "Codigo Setor", "Set"}
	FarmCols    = []string{"Fazenda", "Nome da Fazenda", "Nm Fazenda", "Fzda", "Propriedade"}
	UnitCols    = []string{"Unidade", "Und"}
	SectionCols = []string{"Seção", "Secao", "Sec"}
	StageCols   = []string{"Estágio de corte", "Estágio", "Estagio", "Corte", "Est. Corte"}
	PlotCols    = []string{"Talhão", "Talhao", "Talh", "Cd. Talhao"}
	AreaCols    = []string{"Área (ha)", "Area (ha)", "Area", "Area ha", "Hectares"}
)

// Stock ledger columns.
var (
	StockNameCols     = []string{"Insumo", "Produto", "Descricao", "Nome"}
	StockUnitCols     = []string{"Unidade", "UN", "Und"}
	StockTotalCols    = []string{"Total em estoque", "Estoque Total", "Total", "Quantidade"}
	StockReservedCols = []string{"Reservado com O.S", "Reservado", "Bloqueado"}
	StockBalanceCols  = []string{"Saldo", "Disponivel"}
)
