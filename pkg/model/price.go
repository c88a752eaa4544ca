package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"sort"
)

// SizedPrice is one serving size and its price in euro.
type SizedPrice struct {
	Size  string  `json:"size"`
	Price float64 `json:"price"`
}

// PriceList is the canonical price representation. The column scans three
// historical JSON shapes (an array of {size, price}, a map of size to
// price, and a map of size to {price: x}) and always writes the canonical
// array back.
type PriceList []SizedPrice

// Legacy scalar tap columns map to fixed serving sizes.
const (
	sizeSmall  = "0.2L"
	sizeMedium = "0.4L"
	sizeLarge  = "1L"
)

func (p PriceList) Value() (driver.Value, error) {
	if len(p) == 0 {
		return nil, nil
	}

	return json.Marshal(p)
}

func (p *PriceList) Scan(value interface{}) error {
	if value == nil {
		*p = nil

		return nil
	}

	var raw []byte

	switch typed := value.(type) {
	case []byte:
		raw = typed
	case string:
		raw = []byte(typed)
	default:
		return fmt.Errorf("cannot scan %T into PriceList", value)
	}

	normalized, err := NormalizePriceJSON(raw)
	if err != nil {
		return err
	}

	*p = normalized

	return nil
}

func (p PriceList) positive() PriceList {
	kept := make(PriceList, 0, len(p))

	for _, price := range p {
		if price.Price > 0 {
			kept = append(kept, price)
		}
	}

	return kept
}

// NormalizePriceJSON folds any of the historical price shapes into a
// canonical list, dropping non-positive prices. Array entries keep their
// order; map entries are sorted by size for a stable result.
func NormalizePriceJSON(raw []byte) (PriceList, error) {
	if len(raw) == 0 {
		return nil, nil
	}

	var asArray []SizedPrice
	if err := json.Unmarshal(raw, &asArray); err == nil {
		return PriceList(asArray).positive(), nil
	}

	var asMap map[string]json.RawMessage
	if err := json.Unmarshal(raw, &asMap); err != nil {
		return nil, fmt.Errorf("unrecognized price shape: %w", err)
	}

	list := make(PriceList, 0, len(asMap))

	for size, entry := range asMap {
		var price float64
		if err := json.Unmarshal(entry, &price); err != nil {
			var nested struct {
				Price float64 `json:"price"`
			}

			if err := json.Unmarshal(entry, &nested); err != nil {
				return nil, fmt.Errorf("unrecognized price shape for size %q: %w", size, err)
			}

			price = nested.Price
		}

		if price > 0 {
			list = append(list, SizedPrice{Size: size, Price: price})
		}
	}

	sort.Slice(list, func(i, j int) bool { return list[i].Size < list[j].Size })

	return list, nil
}

func legacyPrices(small, medium, large *float64) PriceList {
	var list PriceList

	for _, entry := range []struct {
		size  string
		price *float64
	}{
		{sizeSmall, small},
		{sizeMedium, medium},
		{sizeLarge, large},
	} {
		if entry.price != nil && *entry.price > 0 {
			list = append(list, SizedPrice{Size: entry.size, Price: *entry.price})
		}
	}

	return list
}
