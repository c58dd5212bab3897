package gst

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidLineItem is matched by every *InvalidLineItemError.
	ErrInvalidLineItem = errors.New("invalid line item")
	// ErrInvalidDiscount is returned when a document discount is negative.
	ErrInvalidDiscount = errors.New("document discount must not be negative")
)

// InvalidLineItemError reports the first field of a line item that fails
// input validation.
type InvalidLineItemError struct {
	Index  int
	Field  string
	Reason string
}

func (e *InvalidLineItemError) Error() string {
	return fmt.Sprintf("line item %d: %s %s", e.Index+1, e.Field, e.Reason)
}

// Is lets errors.Is match ErrInvalidLineItem.
func (e *InvalidLineItemError) Is(target error) bool {
	return target == ErrInvalidLineItem
}

// Warning codes attached to a built invoice. Warnings never block a build.
const (
	WarnDiscountExceedsTotal = "DISCOUNT_EXCEEDS_TOTAL"
	WarnJurisdictionUnknown  = "JURISDICTION_UNKNOWN"
)
