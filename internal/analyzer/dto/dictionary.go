package dto

// TickerEntry is one row of the screener payload.
type TickerEntry struct {
	Symbol string `json:"s"`
	Name   string `json:"n"`
}

// ScreenerResponse is the payload shape of the dictionary source: {"data": {"data": [...]}}.
type ScreenerResponse struct {
	Data *struct {
		Data []TickerEntry `json:"data"`
	} `json:"data"`
}
