package dto

import "strings"

var assetSymbols = map[string]string{
	// indices
	"nasdaq":    "^IXIC",
	"nasdaq100": "^NDX",
	"s&p500":    "^GSPC",
	"dow":       "^DJI",
	"dax":       "^GDAXI",
	"nikkei":    "^N225",
	"ftse100":   "^FTSE",
	"vix":       "^VIX",

	// forex
	"usd/jpy": "JPY=X",
	"eur/usd": "EURUSD=X",
	"gbp/usd": "GBP=X",
	"usd/cad": "CAD=X",
	"aud/usd": "AUD=X",
	"nzd/usd": "NZD=X",
	"usd/chf": "CHF=X",
	"eur/jpy": "EURJPY=X",
	"gbp/jpy": "GBPJPY=X",
	"aud/jpy": "AUDJPY=X",
	"eur/gbp": "EURGBP=X",
	"eur/chf": "EURCHF=X",
	"usd/mxn": "MXN=X",
	"usd/inr": "INR=X",
	"usd/cny": "CNY=X",

	// commodities
	"gold":        "GC=F",
	"silver":      "SI=F",
	"crude oil":   "CL=F",
	"brent oil":   "BZ=F",
	"palladium":   "PA=F",
	"platinum":    "PL=F",
	"copper":      "HG=F",
	"natural gas": "NG=F",

	// crypto
	"bitcoin":   "BTC-USD",
	"ethereum":  "ETH-USD",
	"solana":    "SOL-USD",
	"cardano":   "ADA-USD",
	"polkadot":  "DOT-USD",
	"ripple":    "XRP-USD",
	"litecoin":  "LTC-USD",
	"chainlink": "LINK-USD",

	// stocks
	"apple":              "AAPL",
	"microsoft":          "MSFT",
	"amazon":             "AMZN",
	"tesla":              "TSLA",
	"meta":               "META",
	"facebook":           "META",
	"google":             "GOOGL",
	"alphabet":           "GOOGL",
	"nvidia":             "NVDA",
	"netflix":            "NFLX",
	"amd":                "AMD",
	"intel":              "INTC",
	"disney":             "DIS",
	"mcdonalds":          "MCD",
	"coca cola":          "KO",
	"pepsi":              "PEP",
	"visa":               "V",
	"mastercard":         "MA",
	"jpmorgan":           "JPM",
	"bank of america":    "BAC",
	"walmart":            "WMT",
	"home depot":         "HD",
	"procter & gamble":   "PG",
	"berkshire hathaway": "BRK-B",
	"palantir":           "PLTR",
	"coinbase":           "COIN",
	"shell":              "SHEL.L",
	"sap":                "SAP.DE",
	"lvmh":               "MC.PA",
	"toyota":             "7203.T",
	"sony":               "6758.T",
	"tencent":            "0700.HK",
	"samsung":            "005930.KS",
	"bhp":                "BHP.AX",

	// funds
	"sp500 etf":  "SPY",
	"nasdaq etf": "QQQ",
	"dow etf":    "DIA",
	"gld etf":    "GLD",
	"tlt etf":    "TLT",
	"arkk etf":   "ARKK",
}

// ResolveSymbol maps a friendly asset name to its Yahoo Finance ticker.
// Unknown names are treated as tickers already.
func ResolveSymbol(name string) string {
	key := strings.ToLower(strings.TrimSpace(name))
	if symbol, ok := assetSymbols[key]; ok {
		return symbol
	}
	return strings.ToUpper(strings.TrimSpace(name))
}
