package domain

import (
	"fmt"
	"strings"
)

// Channel 通知渠道
type Channel string

const (
	ChannelEmail Channel = "email"
	ChannelSMS   Channel = "sms"
	ChannelPush  Channel = "push"
)

// ParseChannel 大小写不敏感
func ParseChannel(s string) (Channel, bool) {
	switch c := Channel(strings.ToLower(s)); c {
	case ChannelEmail, ChannelSMS, ChannelPush:
		return c, true
	}
	return "", false
}

// ValidateAlertType 仅在创建告警时使用；派发时未知渠道直接跳过
func ValidateAlertType(s string) (Channel, error) {
	c, ok := ParseChannel(s)
	if !ok {
		return "", newError(KindInvalidAlertType, fmt.Sprintf("The alert type %s does not exist", s))
	}
	return c, nil
}

// Alert 买家的常驻搜索条件 + 通知渠道，创建后不可变
type Alert struct {
	UserID              int    `json:"userId"`
	AlertType           string `json:"alertType"`
	PostalCode          string `json:"postalCode"`
	MinimumPrice        *int   `json:"minimumPrice"`
	MaximumPrice        *int   `json:"maximumPrice"`
	MinimumRooms        *int   `json:"minimumRooms"`
	MaximumRooms        *int   `json:"maximumRooms"`
	MinimumSquareMeters *int   `json:"minimumSquareMeters"`
	MaximumSquareMeters *int   `json:"maximumSquareMeters"`
}

func (a Alert) CriteriaInput() CriteriaInput {
	return CriteriaInput{
		PostalCode:          a.PostalCode,
		MinimumPrice:        a.MinimumPrice,
		MaximumPrice:        a.MaximumPrice,
		MinimumRooms:        a.MinimumRooms,
		MaximumRooms:        a.MaximumRooms,
		MinimumSquareMeters: a.MinimumSquareMeters,
		MaximumSquareMeters: a.MaximumSquareMeters,
	}
}

// Criteria 与搜索请求共用 NewCriteria
func (a Alert) Criteria() (Criteria, error) { return NewCriteria(a.CriteriaInput()) }
