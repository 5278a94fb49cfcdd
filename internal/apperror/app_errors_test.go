package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

var errConnRefused = errors.New("connection refused")

func TestError_Kinds(t *testing.T) {
	t.Run("Concrete errors match their kind", func(t *testing.T) {
		assert.ErrorIs(t, ErrCellTaken, ErrValidation)
		assert.ErrorIs(t, ErrNoActiveMatch, ErrNotFound)
		assert.ErrorIs(t, ErrRoomFull, ErrCapacity)
		assert.ErrorIs(t, ErrNotAPlayer, ErrAuthorization)
		assert.ErrorIs(t, ErrNotYourTurn, ErrTurn)
	})

	t.Run("Kind survives fmt wrapping", func(t *testing.T) {
		// Given: an app error wrapped by a caller
		err := fmt.Errorf("failed to make move: %w", ErrNotYourTurn)

		// Then: the kind and the message are still reachable
		assert.Equal(t, ErrTurn, Kind(err))
		assert.Equal(t, "please wait for your turn", Message(err))
	})

	t.Run("Wrapped cause is reachable", func(t *testing.T) {
		// Given: a dependency error caused by a transport failure
		err := Wrap(ErrDependency, "couldn't start game", errConnRefused)

		// Then: both the kind and the cause match
		assert.ErrorIs(t, err, ErrDependency)
		assert.ErrorIs(t, err, errConnRefused)
		assert.Equal(t, "couldn't start game: connection refused", err.Error())
	})

	t.Run("Foreign errors have no kind", func(t *testing.T) {
		assert.NoError(t, Kind(errConnRefused))
		assert.Equal(t, "internal error", Message(errConnRefused))
	})
}

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{name: "validation", err: ErrUsernameRequired, want: http.StatusBadRequest},
		{name: "capacity", err: ErrRoomFull, want: http.StatusBadRequest},
		{name: "not found", err: ErrRoomNotFound, want: http.StatusNotFound},
		{name: "authorization", err: ErrNotAPlayer, want: http.StatusForbidden},
		{name: "turn", err: ErrNotYourTurn, want: http.StatusConflict},
		{name: "dependency", err: Wrap(ErrDependency, "couldn't start game", errConnRefused), want: http.StatusInternalServerError},
		{name: "foreign", err: errConnRefused, want: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, HTTPStatus(tt.err))
		})
	}
}
