package validation_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/samirrijal/olistboard/internal/pkg/validation"
)

func TestStruct_RangeQuery(t *testing.T) {
	require.NoError(t, validation.Struct(&validation.RangeQuery{}))
	require.NoError(t, validation.Struct(&validation.RangeQuery{Start: "2017-01-05", End: "2018-08-29"}))

	err := validation.Struct(&validation.RangeQuery{Start: "05/01/2017", End: "2018-13-01"})
	var verr *validation.Error
	require.True(t, errors.As(err, &verr))
	require.Len(t, verr.Fields, 2)
	assert.Equal(t, "start", verr.Fields[0].Field)
	assert.Equal(t, "end", verr.Fields[1].Field)
	assert.Contains(t, err.Error(), "YYYY-MM-DD")
}

func TestStruct_PageQuery(t *testing.T) {
	require.NoError(t, validation.Struct(&validation.PageQuery{Offset: 0, Limit: 50}))

	err := validation.Struct(&validation.PageQuery{Offset: -1, Limit: 1000})
	var verr *validation.Error
	require.True(t, errors.As(err, &verr))
	require.Len(t, verr.Fields, 2)
	assert.Equal(t, "offset must be greater than or equal to 0", verr.Fields[0].Message)
	assert.Equal(t, "limit must be less than or equal to 500", verr.Fields[1].Message)
}
