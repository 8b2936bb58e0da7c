package bybit

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/aqleung/trade-ledger/internal/model"
)

// Normalize maps a tagged Bybit payload to the universal record. It is the
// model.ExchangeBybit entry in the pipeline's normalizer table.
func Normalize(payload any) (model.Trade, error) {
	e, ok := payload.(Execution)
	if !ok {
		return model.Trade{}, fmt.Errorf("bybit normalize: unexpected payload type %T", payload)
	}
	return e.ToModel(), nil
}

// ToModel converts a raw execution to the universal record.
//
// Bybit supplies the quote value itself (execValue, carrying the exchange's
// own rounding), so Total trusts it verbatim and is only recomputed from
// price*quantity when the field is absent. The side string passes through
// uppercased.
func (e Execution) ToModel() model.Trade {
	price := model.ParseDecimal(e.ExecPrice)
	quantity := model.ParseDecimal(e.ExecQty)

	total := model.ParseDecimal(e.ExecValue)
	if e.ExecValue == "" {
		total = price * quantity
	}

	fee := e.ExecFee
	if fee == "" {
		fee = "0"
	}

	var timeMs int64
	if e.ExecTime != "" {
		if ms, err := strconv.ParseInt(e.ExecTime, 10, 64); err == nil {
			timeMs = ms
		}
	}

	return model.Trade{
		Exchange: model.ExchangeBybit,
		Symbol:   e.Symbol,
		TradeID:  e.ExecID,
		OrderID:  e.OrderID,
		Price:    model.FormatDecimal(price),
		Quantity: model.FormatDecimal(quantity),
		Total:    model.FormatDecimal(total),
		Side:     model.Side(strings.ToUpper(e.Side)),
		Time:     model.FormatTime(timeMs),
		Fee:      fee,
		FeeAsset: e.FeeCurrency,
		IsMaker:  model.FormatBool(e.IsMaker),
	}
}
