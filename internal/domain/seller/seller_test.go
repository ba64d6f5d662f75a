package seller

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewValidation(t *testing.T) {
	_, err := New("id-1", "", "Chilonzor", "901234567", "secret")
	require.ErrorIs(t, err, ErrInvalidName)

	_, err = New("id-1", "Olim", "Chilonzor", "90-12-34", "secret")
	require.ErrorIs(t, err, ErrInvalidPhone)

	_, err = New("id-1", "Olim", "Chilonzor", "901234567", "abc")
	require.ErrorIs(t, err, ErrPasswordTooWeak)

	s, err := New("id-1", "Olim", "Chilonzor", "901234567", "secret")
	require.NoError(t, err)
	require.False(t, s.Bound())
}

func TestBindIsPermanent(t *testing.T) {
	s, err := New("id-1", "Olim", "Chilonzor", "901234567", "secret")
	require.NoError(t, err)

	require.NoError(t, s.Bind("actor-x"))
	require.True(t, s.Bound())

	// Same actor is idempotent, a different actor is rejected.
	require.NoError(t, s.Bind("actor-x"))
	require.ErrorIs(t, s.Bind("actor-y"), ErrAlreadyBound)
	require.Equal(t, "actor-x", s.ActorID)
}

func TestDigitsOnly(t *testing.T) {
	require.True(t, DigitsOnly("901234567"))
	require.False(t, DigitsOnly(""))
	require.False(t, DigitsOnly("90 12"))
	require.False(t, DigitsOnly("90a12"))
}
