package errors

type Error string

const (
	ErrServiceAlreadyStopped = Error("service already stopped")
	ErrInvalidPort           = Error("invalid port")
)

// Error implements the golang standard library error interface.
// This allows us to declare errors as constants
func (e Error) Error() string {
	return string(e)
}
