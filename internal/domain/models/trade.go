package models

// TradeRecord represents a single normalized row from a broker trade export.
// Each record is derived from exactly one row of one source file.
//
// Column mapping (Portuguese header → field):
//
//	Ativo           → Asset
//	Abertura        → OpenTime   (DD/MM/YYYY HH:MM:SS → YYYY-MM-DDTHH:MM:SS)
//	Fechamento      → CloseTime  (same as OpenTime)
//	Tempo Operação  → Duration   (kept as-is)
//	Qtd Compra      → Quantity and Contracts
//	Lado            → Side       (kept as-is, e.g. "Compra"/"Venda")
//	Preço Compra    → OpenPrice
//	Preço Venda     → ClosePrice
//	Res. Operação   → Result
//
// Brokerage and B3Fees are always zero at ingestion time.
type TradeRecord struct {
	ID         string  `json:"id" yaml:"id" example:"trade-2024-03.csv-0"`
	Asset      string  `json:"asset" yaml:"asset" example:"WINFUT"`
	OpenTime   string  `json:"openTime" yaml:"openTime" example:"2024-03-15T09:05:00"`
	CloseTime  string  `json:"closeTime" yaml:"closeTime" example:"2024-03-15T09:10:00"`
	Duration   string  `json:"duration" yaml:"duration" example:"5min"`
	Quantity   float64 `json:"quantity" yaml:"quantity" example:"1"`
	Side       string  `json:"side" yaml:"side" example:"Compra"`
	OpenPrice  float64 `json:"openPrice" yaml:"openPrice" example:"120500"`
	ClosePrice float64 `json:"closePrice" yaml:"closePrice" example:"120600"`
	Result     float64 `json:"result" yaml:"result" example:"100"`
	// Contracts mirrors Quantity; both come from the same export column.
	Contracts float64 `json:"contracts" yaml:"contracts" example:"1"`
	Brokerage float64 `json:"brokerage" yaml:"brokerage" example:"0"`
	B3Fees    float64 `json:"b3_fees" yaml:"b3_fees" example:"0"`
}
