package api_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DaveBerkeley/panglos-sub001/api"
)

func TestErrorContextAndUnwrap(t *testing.T) {
	err := api.NewError(api.ErrCodeInvalidConfig, "ring capacity").
		WithContext("capacity", 12).
		Wrap(api.ErrInvalidArgument)

	require.ErrorIs(t, err, api.ErrInvalidArgument)
	assert.Contains(t, err.Error(), "ring capacity: invalid argument")
	assert.Contains(t, err.Error(), "capacity:12")

	var target *api.Error
	require.True(t, errors.As(err, &target))
	assert.Equal(t, api.ErrCodeInvalidConfig, target.Code)
	assert.Equal(t, "invalid_config", target.Code.String())
}

func TestErrorWithoutContext(t *testing.T) {
	err := &api.Error{Code: api.ErrCodeClosed, Message: "closed"}
	assert.Equal(t, "closed", err.Error())
	assert.Equal(t, "code(99)", api.ErrorCode(99).String())
}

func TestChanSemaphoreAndHook(t *testing.T) {
	sem := api.NewChanSemaphore(2)
	hook := &api.RecordingHook{}
	hook.Post(sem)
	hook.Post(sem)
	sem.Wait()
	sem.Wait()
	assert.Equal(t, int64(2), hook.Posts())

	var l api.CountingLocker
	l.Lock()
	l.Unlock()
	assert.Equal(t, int64(1), l.Locks())
}
