package errors

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWrapKeepsCode(t *testing.T) {
	base := New(CodeNoHeaders, "no headers")
	wrapped := Wrap(base, "parse failed")

	assert.Equal(t, CodeNoHeaders, GetCode(wrapped))
	assert.Equal(t, "parse failed: no headers", wrapped.Error())
	assert.True(t, stderrors.Is(wrapped, base))
}

func TestWrapPlainErrorIsInternal(t *testing.T) {
	cause := stderrors.New("boom")
	wrapped := Wrap(cause, "step 3")

	assert.Equal(t, CodeInternalError, GetCode(wrapped))
	assert.ErrorIs(t, wrapped, cause)
	assert.Nil(t, Wrap(nil, "ignored"))
}

func TestGetCodeLooksThroughWrapping(t *testing.T) {
	err := fmt.Errorf("handler: %w", DatasetNotFound("abc"))
	assert.Equal(t, CodeDatasetNotFound, GetCode(err))
	assert.Equal(t, CodeDatasetNotFound, GetCode(Wrap(err, "lookup")))
	assert.Equal(t, "UNKNOWN", GetCode(stderrors.New("plain")))
}

func TestWrapfFormatsContext(t *testing.T) {
	wrapped := Wrapf(New(CodeDatabaseError, "connection refused"), "failed to load dataset %s", "abc")

	assert.Equal(t, CodeDatabaseError, GetCode(wrapped))
	assert.Equal(t, "failed to load dataset abc: connection refused", wrapped.Error())
	assert.Nil(t, Wrapf(nil, "ignored %d", 1))
}

func TestWithCodeOverridesCode(t *testing.T) {
	base := New(CodeInternalError, "boom")
	coded := WithCode(base, CodeExternalService, "openai unavailable")

	assert.Equal(t, CodeExternalService, GetCode(coded))
	assert.ErrorIs(t, coded, base)
	assert.Equal(t, CodeExternalService, GetCode(fmt.Errorf("call: %w", coded)))
	assert.Nil(t, WithCode(nil, CodeNotFound, "ignored"))
}

func TestIsAppError(t *testing.T) {
	assert.True(t, IsAppError(InvalidInput("bad")))
	assert.True(t, IsAppError(fmt.Errorf("handler: %w", DatasetNotFound("abc"))))
	assert.False(t, IsAppError(stderrors.New("plain")))
	assert.False(t, IsAppError(nil))
}

func TestCodeClassification(t *testing.T) {
	assert.True(t, IsInputError(CodeEmptyFile))
	assert.True(t, IsInputError(CodeUnsupportedFormat))
	assert.False(t, IsInputError(CodeDatasetNotFound))
	assert.True(t, IsNotFound(CodeAnalysisNotFound))
	assert.True(t, IsNotFound(CodeNotFound))
	assert.False(t, IsNotFound(CodeInternalError))
}
