package bybit

// CategorySpot is the product category for spot executions.
const CategorySpot = "spot"

// ExecutionListResult from GET /v5/execution/list
type ExecutionListResult struct {
	List           []Execution `json:"list"`
	NextPageCursor string      `json:"nextPageCursor"`
}

// Execution represents one fill from the V5 execution history.
// Numeric fields arrive as strings; ExecTime is epoch milliseconds as a
// string.
type Execution struct {
	Symbol      string `json:"symbol"`
	ExecID      string `json:"execId"`
	OrderID     string `json:"orderId"`
	Side        string `json:"side"` // "Buy" / "Sell"
	ExecPrice   string `json:"execPrice"`
	ExecQty     string `json:"execQty"`
	ExecValue   string `json:"execValue"`
	ExecFee     string `json:"execFee"`
	FeeCurrency string `json:"feeCurrency"`
	ExecTime    string `json:"execTime"`
	IsMaker     bool   `json:"isMaker"`
}
