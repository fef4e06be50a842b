// Package apperror classifies failures so the HTTP layer can map them to a
// status code in one place.
package apperror

import (
	"net/http"

	"github.com/pkg/errors"
)

type Kind int

const (
	KindInternal Kind = iota
	KindValidation
	KindAuthentication
	KindAuthorization
	KindNotFound
	KindPaymentRequired
	KindUpstream
)

var statusByKind = map[Kind]int{
	KindInternal:        http.StatusInternalServerError,
	KindValidation:      http.StatusBadRequest,
	KindAuthentication:  http.StatusUnauthorized,
	KindAuthorization:   http.StatusForbidden,
	KindNotFound:        http.StatusNotFound,
	KindPaymentRequired: http.StatusPaymentRequired,
	KindUpstream:        http.StatusInternalServerError,
}

var kindNames = map[Kind]string{
	KindInternal:        "internal",
	KindValidation:      "validation",
	KindAuthentication:  "authentication",
	KindAuthorization:   "authorization",
	KindNotFound:        "not_found",
	KindPaymentRequired: "payment_required",
	KindUpstream:        "upstream",
}

func (k Kind) Status() int {
	if s, ok := statusByKind[k]; ok {
		return s
	}
	return http.StatusInternalServerError
}

func (k Kind) String() string {
	if n, ok := kindNames[k]; ok {
		return n
	}
	return "unknown"
}

// Error is a classified failure. Message is safe to show to clients.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

// Is matches errors of the same kind and message so a sentinel still
// matches after Wrap attaches a cause.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Kind == e.Kind && t.Message == e.Message
}

// New builds an unwrapped error, suitable for package-level sentinels.
func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// Wrap attaches cause to a copy of sentinel.
func Wrap(sentinel *Error, cause error) error {
	return errors.WithStack(&Error{Kind: sentinel.Kind, Message: sentinel.Message, Err: cause})
}

func Validation(message string) error {
	return errors.WithStack(New(KindValidation, message))
}

func Authentication(message string) error {
	return errors.WithStack(New(KindAuthentication, message))
}

func Authorization(message string) error {
	return errors.WithStack(New(KindAuthorization, message))
}

func NotFound(message string) error {
	return errors.WithStack(New(KindNotFound, message))
}

func PaymentRequired(message string) error {
	return errors.WithStack(New(KindPaymentRequired, message))
}

// Upstream reports a failure in a third-party collaborator such as the
// payment gateway or the mail server.
func Upstream(message string, cause error) error {
	return errors.WithStack(&Error{Kind: KindUpstream, Message: message, Err: cause})
}

func Internal(message string, cause error) error {
	return errors.WithStack(&Error{Kind: KindInternal, Message: message, Err: cause})
}

// KindOf returns the kind of the first classified error in the chain.
// Unclassified errors are internal.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

// MessageOf returns the client-facing message, falling back to fallback for
// unclassified errors.
func MessageOf(err error, fallback string) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return fallback
}

func StatusOf(err error) int {
	return KindOf(err).Status()
}
