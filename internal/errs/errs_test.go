package errs

import (
	"errors"
	"testing"

	perrors "github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

func TestExtractionKind(t *testing.T) {
	ast := assert.New(t)

	err := perrors.Wrap(NewExtractionError(KindNotReady, "server"), "extract")
	ast.True(IsKind(err, KindNotReady))
	ast.False(IsKind(err, KindConnectionError))
	ast.False(IsKind(errors.New("plain"), KindNotReady))
}

func TestExtractionMessage(t *testing.T) {
	ast := assert.New(t)

	ee := &ExtractionError{Kind: KindServerHTTPError, Status: 404, Reason: "Not Found"}
	ast.Equal("extraction error (server-http-error), status 404 Not Found", ee.Error())

	ee = &ExtractionError{Kind: KindConnectionError, Err: errors.New("refused")}
	ast.Equal("extraction error (connection-error): refused", ee.Error())
	ast.Equal("refused", errors.Unwrap(ee).Error())
}

func TestNotFound(t *testing.T) {
	ast := assert.New(t)

	err := perrors.Wrap(&NotFoundError{Table: "metadataextractor_tika", Key: "1"}, "load")
	ast.True(IsNotFound(err))

	var ni *NoIdError
	ast.True(errors.As(perrors.WithStack(&NoIdError{Op: "delete"}), &ni))
	ast.Equal("delete", ni.Op)
}
