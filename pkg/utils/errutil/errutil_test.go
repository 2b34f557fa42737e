package errutil_test

import (
	"context"
	"errors"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/lab9-dev/pythia/pkg/utils/errutil"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gt"
)

func TestHandle(t *testing.T) {
	ctx := context.Background()

	t.Run("nil passes through", func(t *testing.T) {
		gt.NoError(t, errutil.Handle(ctx, nil, "should not log"))
	})

	t.Run("returns the error unchanged", func(t *testing.T) {
		sentinel := goerr.New("upstream down")
		wrapped := goerr.Wrap(sentinel, "fetch failed", goerr.V("attempt", 3))

		err := errutil.Handle(ctx, wrapped, "team fetch failed")
		gt.Error(t, err).Is(sentinel)
		gt.Value(t, err).Equal(wrapped)
	})

	t.Run("plain errors are accepted too", func(t *testing.T) {
		plain := errors.New("boom")
		gt.Error(t, errutil.Handle(ctx, plain, "handler failed")).Is(plain)
	})
}

func TestHandleHTTP(t *testing.T) {
	ctx := context.Background()

	t.Run("writes status and message", func(t *testing.T) {
		rec := httptest.NewRecorder()
		errutil.HandleHTTP(ctx, rec, goerr.New("bad payload"), 400)

		gt.Value(t, rec.Code).Equal(400)
		gt.Bool(t, strings.Contains(rec.Body.String(), "bad payload")).True()
	})

	t.Run("nil error writes nothing", func(t *testing.T) {
		rec := httptest.NewRecorder()
		errutil.HandleHTTP(ctx, rec, nil, 500)

		gt.Value(t, rec.Code).Equal(200)
		gt.Value(t, rec.Body.Len()).Equal(0)
	})
}
