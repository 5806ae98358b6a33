package payments

import "encoding/json"

type ErrorKind int

const (
	InvalidInput ErrorKind = iota
	UpstreamFailure
)

// Error is the only error type returned by the gateway client. Status and
// Body carry the upstream HTTP response when one exists, so handlers can pass
// the gateway's own error shape through to the caller.
type Error struct {
	Kind    ErrorKind
	Status  int
	Body    json.RawMessage
	Message string
}

func (e *Error) Error() string { return e.Message }
