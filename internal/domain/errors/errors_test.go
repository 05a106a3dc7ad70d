package errors

import (
	stderrors "errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestValidationErrorCollectsItems(t *testing.T) {
	var ve ValidationError
	require.NoError(t, ve.Err())

	ve.Add("site.url", "must not be empty")
	ve.Addf("build.summary_length", "must be >= %d", 0)

	err := ve.Err()
	require.Error(t, err)
	require.True(t, stderrors.Is(err, ErrInvalid))
	require.Equal(t, "validation failed:\n - site.url: must not be empty\n - build.summary_length: must be >= 0", err.Error())
}

func TestValidationErrorNest(t *testing.T) {
	var inner ValidationError
	inner.Add("twitter.site", "should start with @")
	inner.Add("", "whole block is odd")

	var outer ValidationError
	outer.Nest("seo", inner)

	require.Equal(t, []FieldError{
		{Field: "seo.twitter.site", Message: "should start with @"},
		{Field: "seo", Message: "whole block is odd"},
	}, outer.Items)
}

func TestFieldErrorWithoutField(t *testing.T) {
	require.Equal(t, "boom", FieldError{Message: "boom"}.Error())
	require.Equal(t, "validation failed", ValidationError{}.Error())
}
