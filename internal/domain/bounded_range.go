package domain

import (
	"cmp"
	"fmt"
)

// Range 可选上下界的闭区间；缺失的边界视为开放
type Range[T cmp.Ordered] struct {
	min *T
	max *T
}

// NewRange 两端都给出且 min > max 时返回 InvalidRange
func NewRange[T cmp.Ordered](min, max *T) (Range[T], error) {
	if min != nil && max != nil && *min > *max {
		return Range[T]{}, newError(KindInvalidRange,
			fmt.Sprintf("The minimum %v should not be bigger than the maximum %v", *min, *max))
	}
	return Range[T]{min: clone(min), max: clone(max)}, nil
}

// InRange 缺失的边界永远不会导致不匹配
func (r Range[T]) InRange(v T) bool {
	return (r.min == nil || v >= *r.min) && (r.max == nil || v <= *r.max)
}

func (r Range[T]) Min() *T { return clone(r.min) }
func (r Range[T]) Max() *T { return clone(r.max) }

// Unbounded 两端都缺失
func (r Range[T]) Unbounded() bool { return r.min == nil && r.max == nil }

func clone[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
