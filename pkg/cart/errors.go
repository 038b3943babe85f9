package cart

type Code int

const (
	CodeInvalidArgument Code = iota
	CodeFailedPrecondition
)

func (c Code) String() string {
	switch c {
	case CodeInvalidArgument:
		return "INVALID_ARGUMENT"
	case CodeFailedPrecondition:
		return "FAILED_PRECONDITION"
	default:
		return "UNKNOWN"
	}
}

const (
	ErrMsgProductInactive = "Product is not available"
	ErrMsgNoVariants      = "Product has no variants"
	ErrMsgVariantNotFound = "Variant not found"
	ErrMsgAddonNotFound   = "Add-on not found"
	ErrMsgOptionNotFound  = "Add-on option not found"
	ErrMsgRequiredAddon   = "Please select all required add-ons"
	ErrMsgItemNotInCart   = "Item not in cart"
)

// Error is returned when a product cannot be configured into a cart line.
type Error struct {
	Code    Code
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

func failedPrecondition(message string) *Error {
	return &Error{Code: CodeFailedPrecondition, Message: message}
}

var (
	ErrProductInactive = failedPrecondition(ErrMsgProductInactive)
	ErrNoVariants      = failedPrecondition(ErrMsgNoVariants)
	ErrRequiredAddon   = failedPrecondition(ErrMsgRequiredAddon)
	ErrVariantNotFound = &Error{Code: CodeInvalidArgument, Message: ErrMsgVariantNotFound}
	ErrAddonNotFound   = &Error{Code: CodeInvalidArgument, Message: ErrMsgAddonNotFound}
	ErrOptionNotFound  = &Error{Code: CodeInvalidArgument, Message: ErrMsgOptionNotFound}
)
