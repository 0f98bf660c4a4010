package order

import (
	"deliverytracking/internal/pkg/errs"
)

// Type distinguishes the two order families served by the store. They live in
// separate tables and follow different status walks, but share the delivery
// tracking workflow.
type Type string

const (
	// TypeNormal is a regular catalog order.
	TypeNormal Type = "normal"
	// TypeCustom is a quoted-to-order request.
	TypeCustom Type = "custom"
)

// TypeFromString parses an order type from its wire representation.
// An empty string defaults to normal, matching the store's behavior when the
// orderType query parameter is omitted.
func TypeFromString(s string) (Type, error) {
	switch Type(s) {
	case TypeNormal, "":
		return TypeNormal, nil
	case TypeCustom:
		return TypeCustom, nil
	default:
		return "", errs.NewValueIsInvalidError("orderType")
	}
}

// Validate checks the type is one of the two known families.
func (t Type) Validate() error {
	if t != TypeNormal && t != TypeCustom {
		return errs.NewValueIsInvalidError("orderType")
	}
	return nil
}

// String returns the wire representation of the type.
func (t Type) String() string {
	return string(t)
}

// InitialStatus returns the status a freshly created order of this type starts in.
func (t Type) InitialStatus() Status {
	if t == TypeCustom {
		return StatusToBeQuoted
	}
	return StatusPending
}
