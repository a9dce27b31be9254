package errx

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errBoom = errors.New("boom")

func TestAppErrorChain(t *testing.T) {
	err := fmt.Errorf("lookup: %w", NotFound(errBoom, "product not found"))

	assert.True(t, errors.Is(err, errBoom))
	assert.Equal(t, http.StatusNotFound, StatusOf(err))
	assert.Equal(t, "product not found", MessageOf(err))
	assert.Equal(t, "lookup: product not found: boom", err.Error())

	var appErr *AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, http.StatusNotFound, appErr.Status)
}

func TestAppErrorWithoutCause(t *testing.T) {
	err := Unprocessable(nil, "cart is empty")
	assert.Equal(t, "cart is empty", err.Error())
	assert.Nil(t, err.Unwrap())
}

func TestPlainErrorsAreInternal(t *testing.T) {
	assert.Equal(t, http.StatusInternalServerError, StatusOf(errBoom))
	assert.Equal(t, SystemErrorMessage, MessageOf(errBoom))
}

func TestWrapRedis(t *testing.T) {
	assert.NoError(t, WrapRedis(nil))

	missing := WrapRedis(redis.Nil)
	assert.Equal(t, http.StatusNotFound, StatusOf(missing))
	assert.True(t, errors.Is(missing, redis.Nil))

	failed := WrapRedis(errBoom)
	assert.Equal(t, http.StatusBadGateway, StatusOf(failed))
	assert.Equal(t, RedisErrorMessage, MessageOf(failed))
}
