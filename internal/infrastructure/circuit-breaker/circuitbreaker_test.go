package circuitbreaker

import (
	"errors"
	"testing"

	"github.com/sony/gobreaker/v2"
	"github.com/stretchr/testify/assert"
)

func TestCircuitBreakerTrips(t *testing.T) {
	cb := CreateCircuitBreaker("test")
	failure := errors.New("down")

	for i := 0; i < 3; i++ {
		_, err := cb.Execute(func() ([]byte, error) { return nil, failure })
		assert.ErrorIs(t, err, failure)
	}

	assert.Equal(t, gobreaker.StateOpen, cb.State())

	_, err := cb.Execute(func() ([]byte, error) { return []byte("ok"), nil })
	assert.ErrorIs(t, err, gobreaker.ErrOpenState)
}

func TestCircuitBreakerStaysClosedOnSuccess(t *testing.T) {
	cb := CreateCircuitBreaker("test")

	for i := 0; i < 5; i++ {
		body, err := cb.Execute(func() ([]byte, error) { return []byte("ok"), nil })
		assert.NoError(t, err)
		assert.Equal(t, []byte("ok"), body)
	}

	assert.Equal(t, gobreaker.StateClosed, cb.State())
}
