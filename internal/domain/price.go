package domain

const (
	msgNegativePrice   = "Price cannot be negative"
	msgPriceRangeOrder = "The minimum price should be bigger than the maximum price"
)

// Price 可选价格，给出时必须 >= 0
type Price struct{ value *int }

func NewPrice(v *int) (Price, error) {
	if v != nil && *v < 0 {
		return Price{}, newError(KindInvalidPrice, msgNegativePrice)
	}
	return Price{value: clone(v)}, nil
}

func (p Price) Value() *int { return clone(p.value) }

// PriceRange 价格区间；顺序错误也归为 InvalidPrice
type PriceRange struct {
	Range[int]
}

func NewPriceRange(min, max *int) (PriceRange, error) {
	lo, err := NewPrice(min)
	if err != nil {
		return PriceRange{}, err
	}
	hi, err := NewPrice(max)
	if err != nil {
		return PriceRange{}, err
	}
	r, err := NewRange(lo.value, hi.value)
	if err != nil {
		return PriceRange{}, newError(KindInvalidPrice, msgPriceRangeOrder)
	}
	return PriceRange{Range: r}, nil
}
