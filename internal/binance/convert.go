package binance

import (
	"fmt"
	"strconv"

	"github.com/aqleung/trade-ledger/internal/model"
)

// Normalize maps a tagged Binance payload to the universal record. It is the
// model.ExchangeBinance entry in the pipeline's normalizer table.
func Normalize(payload any) (model.Trade, error) {
	t, ok := payload.(Trade)
	if !ok {
		return model.Trade{}, fmt.Errorf("binance normalize: unexpected payload type %T", payload)
	}
	return t.ToModel(), nil
}

// ToModel converts a raw execution to the universal record.
//
// Binance reports no quote value on executions, so Total is always recomputed
// as price*quantity. Fee metadata passes through verbatim.
func (t Trade) ToModel() model.Trade {
	price := model.ParseDecimal(t.Price)
	quantity := model.ParseDecimal(t.Qty)

	side := model.SideSell
	if t.IsBuyer {
		side = model.SideBuy
	}

	fee := t.Commission
	if fee == "" {
		fee = "0"
	}

	return model.Trade{
		Exchange: model.ExchangeBinance,
		Symbol:   t.Symbol,
		TradeID:  strconv.FormatInt(t.ID, 10),
		OrderID:  strconv.FormatInt(t.OrderID, 10),
		Price:    model.FormatDecimal(price),
		Quantity: model.FormatDecimal(quantity),
		Total:    model.FormatDecimal(price * quantity),
		Side:     side,
		Time:     model.FormatTime(t.Time),
		Fee:      fee,
		FeeAsset: t.CommissionAsset,
		IsMaker:  model.FormatBool(t.IsMaker),
	}
}
