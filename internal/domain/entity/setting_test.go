package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/owaies/QuizApp/internal/pkg/errors"
)

func TestParseQuestionLimit(t *testing.T) {
	limit, err := ParseQuestionLimit("5")
	require.NoError(t, err)
	assert.Equal(t, 5, limit)

	limit, err = ParseQuestionLimit(" 0 ")
	require.NoError(t, err)
	assert.Equal(t, 0, limit)

	for _, bad := range []string{"-1", "abc", "", "2.5"} {
		_, err := ParseQuestionLimit(bad)
		assert.ErrorIs(t, err, apperrors.ErrValidation, "значение %q должно быть отклонено", bad)
	}
}
