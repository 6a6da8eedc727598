package domain

import (
	"fmt"
	"strings"
)

// QuoteAttribute names a single field that can be requested from a quote service
type QuoteAttribute string

const (
	QuoteAttrSymbol         QuoteAttribute = "SYMBOL"
	QuoteAttrCompanyName    QuoteAttribute = "COMPANY_NAME"
	QuoteAttrLastTradePrice QuoteAttribute = "LAST_TRADE_PRICE"
	QuoteAttrBookValue      QuoteAttribute = "BOOK_VALUE"
	QuoteAttrEarningsPS     QuoteAttribute = "EARNINGS_PS"
	QuoteAttrDividendPS     QuoteAttribute = "DIVIDEND_PS"
	QuoteAttrExDividendDate QuoteAttribute = "EX_DIVIDEND_DATE"
	QuoteAttrDividendDate   QuoteAttribute = "DIVIDEND_DATE"
	QuoteAttrDividendYield  QuoteAttribute = "DIVIDEND_YIELD"
	QuoteAttrPriceSales     QuoteAttribute = "PRICE_SALES"
	QuoteAttrPriceBook      QuoteAttribute = "PRICE_BOOK"
	QuoteAttrPriceEarnings  QuoteAttribute = "PRICE_EARNINGS"
)

// QuoteAttributes lists every supported attribute in declaration order
func QuoteAttributes() []QuoteAttribute {
	return []QuoteAttribute{
		QuoteAttrSymbol,
		QuoteAttrCompanyName,
		QuoteAttrLastTradePrice,
		QuoteAttrBookValue,
		QuoteAttrEarningsPS,
		QuoteAttrDividendPS,
		QuoteAttrExDividendDate,
		QuoteAttrDividendDate,
		QuoteAttrDividendYield,
		QuoteAttrPriceSales,
		QuoteAttrPriceBook,
		QuoteAttrPriceEarnings,
	}
}

// ParseQuoteAttribute converts a name such as "LAST_TRADE_PRICE" into a QuoteAttribute
func ParseQuoteAttribute(s string) (QuoteAttribute, error) {
	name := QuoteAttribute(strings.TrimSpace(s))
	for _, attr := range QuoteAttributes() {
		if attr == name {
			return attr, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownQuoteAttr, s)
}

// Quote is one row of a quote query: requested attribute -> raw value
type Quote map[QuoteAttribute]string
