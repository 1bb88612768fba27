package domain

// Listing 已发布的房源，发布后不可变
type Listing struct {
	ID            int    `json:"id"`
	Description   string `json:"description"`
	PostalCode    string `json:"postalCode"`
	Price         int    `json:"price"`
	NumberOfRooms int    `json:"numberOfRooms"`
	SquareMeters  int    `json:"squareMeters"`
	OwnerID       int    `json:"ownerId"`
}

// Validate 发布前只校验邮编和价格
func (l Listing) Validate() error {
	if _, err := NewPostalCode(l.PostalCode); err != nil {
		return err
	}
	price := l.Price
	if _, err := NewPrice(&price); err != nil {
		return err
	}
	return nil
}
