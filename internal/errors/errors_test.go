package errors_test

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	apperrors "smartparking/internal/errors"
)

func TestCodesAndStatuses(t *testing.T) {
	tests := []struct {
		err    error
		code   string
		status int
	}{
		{apperrors.InvalidInput("bad hours"), apperrors.CodeInvalidInput, http.StatusBadRequest},
		{apperrors.UserNotEligible("no vehicle"), apperrors.CodeUserNotEligible, http.StatusBadRequest},
		{apperrors.NotFound("missing"), apperrors.CodeNotFound, http.StatusNotFound},
		{apperrors.CapacityExceeded("full"), apperrors.CodeCapacityExceeded, http.StatusConflict},
		{apperrors.ArtifactUnavailable(nil, "no ticket"), apperrors.CodeArtifactUnavailable, http.StatusBadGateway},
		{apperrors.StoreUnavailable(stderrors.New("down")), apperrors.CodeStoreUnavailable, http.StatusInternalServerError},
		{apperrors.InvalidStatus("terminal"), apperrors.CodeInvalidStatus, http.StatusConflict},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.code, apperrors.CodeOf(tt.err))
		assert.Equal(t, tt.status, apperrors.StatusOf(tt.err))
	}
}

func TestUnknownErrorReadsAsStoreFailure(t *testing.T) {
	err := stderrors.New("boom")
	assert.Equal(t, apperrors.CodeStoreUnavailable, apperrors.CodeOf(err))
	assert.Equal(t, http.StatusInternalServerError, apperrors.StatusOf(err))
}

func TestWrappedErrorKeepsCode(t *testing.T) {
	inner := apperrors.CapacityExceeded("car section is full")
	wrapped := fmt.Errorf("reserving: %w", inner)
	assert.Equal(t, apperrors.CodeCapacityExceeded, apperrors.CodeOf(wrapped))
	assert.True(t, stderrors.Is(wrapped, apperrors.CapacityExceeded("other message")),
		"two errors with the same code compare equal under errors.Is")
}

func TestStoreUnavailableWraps(t *testing.T) {
	cause := stderrors.New("connection refused")
	err := apperrors.StoreUnavailable(cause)
	assert.True(t, stderrors.Is(err, cause))
}
