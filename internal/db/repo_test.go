package db

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListQuery_Normalize(t *testing.T) {
	tests := []struct {
		name    string
		in      ListQuery
		want    ListQuery
		wantErr bool
	}{
		{name: "Defaults", in: ListQuery{}, want: ListQuery{Limit: DefaultLimit}},
		{name: "Clamped", in: ListQuery{Limit: 500, Offset: 40}, want: ListQuery{Limit: MaxLimit, Offset: 40}},
		{name: "TrimsSearch", in: ListQuery{Search: "  fiesta ", Limit: 5}, want: ListQuery{Search: "fiesta", Limit: 5}},
		{name: "NegativeLimit", in: ListQuery{Limit: -1}, wantErr: true},
		{name: "NegativeOffset", in: ListQuery{Offset: -10}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.in.Normalize()
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidPage)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestEscapeLike(t *testing.T) {
	assert.Equal(t, `50\% off\_now \\o/`, escapeLike(`50% off_now \o/`))
	assert.Equal(t, "plain", escapeLike("plain"))
}

func TestBase_Stamp(t *testing.T) {
	var b Base
	b.Stamp(BaseTime, true)
	assert.Equal(t, BaseTime, b.CreatedAt)
	assert.Nil(t, b.UpdatedAt)

	later := BaseTime.Add(1)
	b.Stamp(later, false)
	assert.Equal(t, BaseTime, b.CreatedAt)
	require.NotNil(t, b.UpdatedAt)
	assert.Equal(t, later, *b.UpdatedAt)
}
