// Package catalog defines the album domain record and the error taxonomy shared
// by the feed decoder, the repository and the view-state reducers.
package catalog

import "github.com/shopspring/decimal"

// Album is the normalized, UI-agnostic representation of one chart entry.
// Values are built once by the feed decoder and never mutated afterwards.
type Album struct {
	ID         string
	Name       string
	ArtistName string
	Genre      string

	ArtworkSmall  string
	ArtworkMedium string
	ArtworkLarge  string

	Price       string
	PriceAmount decimal.NullDecimal
	Currency    string

	ReleaseDate          string
	ReleaseDateFormatted string

	ItemCount int
	Copyright string
	URL       string
}

// Equal reports whether two albums carry the same data. Price amounts are
// compared numerically so "9.99" and "9.990" are equal.
func (a Album) Equal(b Album) bool {
	if a.PriceAmount.Valid != b.PriceAmount.Valid {
		return false
	}
	if a.PriceAmount.Valid && !a.PriceAmount.Decimal.Equal(b.PriceAmount.Decimal) {
		return false
	}
	a.PriceAmount, b.PriceAmount = decimal.NullDecimal{}, decimal.NullDecimal{}
	return a == b
}

// HasPriceAmount reports whether the feed carried a parsable numeric price.
func (a Album) HasPriceAmount() bool {
	return a.PriceAmount.Valid
}
