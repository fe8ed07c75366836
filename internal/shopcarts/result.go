package shopcarts

import "errors"

// Status literals shown in the flash areas. The wording, capitalization
// included, is part of the operator-facing contract.
const (
	MsgSuccess     = "Success"
	MsgCartDeleted = "Shopcart has been Deleted!"
	MsgItemDeleted = "Item has been Deleted!"

	// MsgServerError is the fallback when the transport fails below the
	// HTTP layer or the service returns no structured message.
	MsgServerError = "Server error!"
)

// Result is the tagged outcome threaded from an action to the status
// reporter. Classification rides on OK, not on matching the message text.
type Result struct {
	OK      bool
	Message string
}

// Succeeded builds a success result carrying one of the status literals.
func Succeeded(message string) Result {
	return Result{OK: true, Message: message}
}

// Failed classifies an action error: a structured server rejection surfaces
// its message verbatim, anything else gets the generic fallback.
func Failed(err error) Result {
	return Result{OK: false, Message: FailureMessage(err)}
}

// FailureMessage maps an action error to the text shown to the operator.
func FailureMessage(err error) string {
	var se *ServerError
	if errors.As(err, &se) && se.Message != "" {
		return se.Message
	}
	return MsgServerError
}
