package domain

// CriteriaInput 告警与搜索共用的原始条件
type CriteriaInput struct {
	PostalCode          string
	MinimumPrice        *int
	MaximumPrice        *int
	MinimumRooms        *int
	MaximumRooms        *int
	MinimumSquareMeters *int
	MaximumSquareMeters *int
}

// Criteria 已校验的条件，告警匹配和搜索走同一条路径
type Criteria struct {
	postalCode PostalCode
	price      PriceRange
	rooms      Range[int]
	area       Range[int]
}

// NewCriteria 校验顺序：邮编 → 价格 → 房间数 → 面积
func NewCriteria(in CriteriaInput) (Criteria, error) {
	pc, err := NewPostalCode(in.PostalCode)
	if err != nil {
		return Criteria{}, err
	}
	price, err := NewPriceRange(in.MinimumPrice, in.MaximumPrice)
	if err != nil {
		return Criteria{}, err
	}
	rooms, err := NewRange(in.MinimumRooms, in.MaximumRooms)
	if err != nil {
		return Criteria{}, err
	}
	area, err := NewRange(in.MinimumSquareMeters, in.MaximumSquareMeters)
	if err != nil {
		return Criteria{}, err
	}
	return Criteria{postalCode: pc, price: price, rooms: rooms, area: area}, nil
}

// Matches 四个条件全部满足才算命中
func (c Criteria) Matches(l Listing) bool {
	return c.postalCode.Matches(l.PostalCode) &&
		c.price.InRange(l.Price) &&
		c.rooms.InRange(l.NumberOfRooms) &&
		c.area.InRange(l.SquareMeters)
}

func (c Criteria) PostalCode() PostalCode { return c.postalCode }
func (c Criteria) Price() PriceRange      { return c.price }
func (c Criteria) Rooms() Range[int]      { return c.rooms }
func (c Criteria) Area() Range[int]       { return c.area }

// Filter 保持原有顺序
func Filter(c Criteria, listings []Listing) []Listing {
	out := make([]Listing, 0, len(listings))
	for _, l := range listings {
		if c.Matches(l) {
			out = append(out, l)
		}
	}
	return out
}
