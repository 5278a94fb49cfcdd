package apperror

import (
	"errors"
	"net/http"
)

// error kinds shared by all services.
var (
	ErrValidation    = errors.New("validation error")
	ErrNotFound      = errors.New("not found")
	ErrCapacity      = errors.New("capacity error")
	ErrAuthorization = errors.New("authorization error")
	ErrTurn          = errors.New("turn error")
	ErrDependency    = errors.New("dependency error")
)

var (
	ErrUsernameRequired = New(ErrValidation, "username is required")
	ErrRoomIDRequired   = New(ErrValidation, "room ID is required")
	ErrCellRequired     = New(ErrValidation, "cell is required")
	ErrInvalidCell      = New(ErrValidation, "cell value must range between 0-8")
	ErrCellTaken        = New(ErrValidation, "cell is taken")
	ErrInvalidPlayers   = New(ErrValidation, "a match needs exactly two distinct players")
	ErrInvalidJSON      = New(ErrValidation, "invalid JSON")
	ErrUnknownCommand   = New(ErrValidation, "unknown command")
	ErrWinnerNotPlayer  = New(ErrValidation, "winner is not part of the game")

	ErrRoomNotFound   = New(ErrNotFound, "room not found")
	ErrNoActiveMatch  = New(ErrNotFound, "no active match in this room")
	ErrPlayerNotFound = New(ErrNotFound, "player not found")

	ErrRoomFull = New(ErrCapacity, "room is full")

	ErrNotAPlayer = New(ErrAuthorization, "not a player in this match")

	ErrNotYourTurn = New(ErrTurn, "please wait for your turn")
)

// Error - is an application error that belongs to one of the kinds above.
type Error struct {
	kind    error
	message string
	cause   error
}

// New - creates an error of the given kind.
func New(kind error, message string) *Error {
	return &Error{kind: kind, message: message}
}

// Wrap - creates an error of the given kind caused by another error.
func Wrap(kind error, message string, cause error) *Error {
	return &Error{kind: kind, message: message, cause: cause}
}

func (that *Error) Error() string {
	if that.cause != nil {
		return that.message + ": " + that.cause.Error()
	}

	return that.message
}

func (that *Error) Unwrap() []error {
	if that.cause != nil {
		return []error{that.kind, that.cause}
	}

	return []error{that.kind}
}

// Kind - returns the kind of the error, or nil for foreign errors.
func Kind(err error) error {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.kind
	}

	for _, kind := range []error{ErrValidation, ErrNotFound, ErrCapacity, ErrAuthorization, ErrTurn, ErrDependency} {
		if errors.Is(err, kind) {
			return kind
		}
	}

	return nil
}

// Message - returns the message that is safe to show to a player.
func Message(err error) string {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Error()
	}

	return "internal error"
}

// HTTPStatus - maps an error to the status code of the REST surfaces.
func HTTPStatus(err error) int {
	switch Kind(err) {
	case ErrValidation, ErrCapacity:
		return http.StatusBadRequest
	case ErrNotFound:
		return http.StatusNotFound
	case ErrAuthorization:
		return http.StatusForbidden
	case ErrTurn:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
