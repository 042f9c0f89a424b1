package client

// Currency is a crypto asset supported by the gateway and the network it
// settles on. ID is the identifier used in API requests.
type Currency struct {
	ID         string
	Symbol     string
	Blockchain string
}

var currencies = []Currency{
	{ID: "BTC", Symbol: "BTC", Blockchain: "BTC"},
	{ID: "LTC", Symbol: "LTC", Blockchain: "LTC"},
	{ID: "BCH", Symbol: "BCH", Blockchain: "BCH"},
	{ID: "ADA", Symbol: "ADA", Blockchain: "ADA"},
	{ID: "DOGE", Symbol: "DOGE", Blockchain: "DOGE"},
	{ID: "XRP", Symbol: "XRP", Blockchain: "XRP"},
	{ID: "USDTE", Symbol: "USDT", Blockchain: "ERC20"},
	{ID: "USDTT", Symbol: "USDT", Blockchain: "TRC20"},
	{ID: "BNB", Symbol: "BNB", Blockchain: "BEP2"},
	{ID: "EURS", Symbol: "EURS", Blockchain: "EURS"},
	{ID: "USDC", Symbol: "USDC", Blockchain: "ERC20"},
	{ID: "BNB-BSC", Symbol: "BNB", Blockchain: "BEP20"},
}

// Currencies returns a copy of the supported currency list.
func Currencies() []Currency {
	return append([]Currency(nil), currencies...)
}

// LookupCurrency finds a currency by its API id.
func LookupCurrency(id string) (Currency, bool) {
	for _, c := range currencies {
		if c.ID == id {
			return c, true
		}
	}
	return Currency{}, false
}
