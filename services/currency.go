package services

import (
	"context"
	"log"
	"math"
	"sort"
	"strings"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const (
	DefaultCountry = "DEFAULT"

	currencyPrefTTL    = 30 * 24 * time.Hour
	currencyPrefPrefix = "currency:pref:"
)

type Currency struct {
	Country string  `json:"country"`
	Code    string  `json:"code"`
	Symbol  string  `json:"symbol"`
	Rate    float64 `json:"rate"`
}

// DisplayPrice is a converted, rounded amount. It has no conversion method on purpose:
// only base amounts are ever converted.
type DisplayPrice struct {
	Amount int64  `json:"amount"`
	Code   string `json:"code"`
	Symbol string `json:"symbol"`
}

var currencyTable = map[string]Currency{
	"GH":           {Country: "GH", Code: "GHS", Symbol: "GH₵", Rate: 1},
	"NG":           {Country: "NG", Code: "NGN", Symbol: "₦", Rate: 250},
	"US":           {Country: "US", Code: "USD", Symbol: "$", Rate: 0.08},
	"GB":           {Country: "GB", Code: "GBP", Symbol: "£", Rate: 0.06},
	DefaultCountry: {Country: DefaultCountry, Code: "GHS", Symbol: "GH₵", Rate: 1},
}

// LookupCurrency returns the entry for a country code, or DEFAULT for anything unknown.
func LookupCurrency(country string) Currency {
	if c, ok := currencyTable[strings.ToUpper(strings.TrimSpace(country))]; ok {
		return c
	}
	return currencyTable[DefaultCountry]
}

func IsSupportedCountry(country string) bool {
	_, ok := currencyTable[strings.ToUpper(strings.TrimSpace(country))]
	return ok
}

// Currencies lists the table sorted by country code, DEFAULT last.
func Currencies() []Currency {
	out := make([]Currency, 0, len(currencyTable))
	for _, c := range currencyTable {
		out = append(out, c)
	}
	rank := func(c Currency) string {
		if c.Country == DefaultCountry {
			return "~"
		}
		return c.Country
	}
	sort.Slice(out, func(i, j int) bool { return rank(out[i]) < rank(out[j]) })
	return out
}

func (c Currency) Convert(base float64) DisplayPrice {
	return DisplayPrice{Amount: int64(math.Round(base * c.Rate)), Code: c.Code, Symbol: c.Symbol}
}

var amountPrinter = message.NewPrinter(language.English)

// FormatPrice renders "<symbol> <amount>" with thousands separators, e.g. "₦ 50,000".
func FormatPrice(p DisplayPrice) string {
	return p.Symbol + " " + amountPrinter.Sprintf("%d", p.Amount)
}

func (p DisplayPrice) String() string { return FormatPrice(p) }

// CurrencyResolver decides which currency a client sees.
type CurrencyResolver struct {
	cache Cache
	geo   GeoLocator
}

func NewCurrencyResolver(cache Cache, geo GeoLocator) *CurrencyResolver {
	return &CurrencyResolver{cache: cache, geo: geo}
}

// Resolve uses the stored preference, then geolocation (stored on success), then DEFAULT.
// It never fails; lookup problems are logged and fall back to DEFAULT without storing it.
func (r *CurrencyResolver) Resolve(ctx context.Context, clientKey, ip string) Currency {
	if clientKey != "" {
		var country string
		found, err := r.cache.Get(ctx, currencyPrefPrefix+clientKey, &country)
		if err != nil {
			log.Printf("currency: preference lookup failed for %s: %v", clientKey, err)
		} else if found && IsSupportedCountry(country) {
			return LookupCurrency(country)
		}
	}

	if r.geo == nil {
		return LookupCurrency(DefaultCountry)
	}
	country, err := r.geo.CountryCode(ctx, ip)
	if err != nil {
		log.Printf("currency: geolocation failed for %q: %v", ip, err)
		return LookupCurrency(DefaultCountry)
	}

	cur := LookupCurrency(country)
	if clientKey != "" {
		if err := r.cache.Set(ctx, currencyPrefPrefix+clientKey, cur.Country, currencyPrefTTL); err != nil {
			log.Printf("currency: failed to store preference for %s: %v", clientKey, err)
		}
	}
	return cur
}

// SetPreference stores an explicit choice for the client.
func (r *CurrencyResolver) SetPreference(ctx context.Context, clientKey, country string) (Currency, error) {
	if !IsSupportedCountry(country) {
		return Currency{}, ErrUnknownCurrency
	}
	cur := LookupCurrency(country)
	if err := r.cache.Set(ctx, currencyPrefPrefix+clientKey, cur.Country, currencyPrefTTL); err != nil {
		return Currency{}, err
	}
	return cur, nil
}
