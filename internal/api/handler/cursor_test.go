package handler

import (
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPageCursor_RoundTrip(t *testing.T) {
	encoded := EncodePageCursor(&PageCursor{Offset: 40, Sort: "company"})

	cursor, err := DecodePageCursor(encoded)
	require.NoError(t, err)
	require.NotNil(t, cursor)
	assert.Equal(t, 40, cursor.Offset)
	assert.Equal(t, "company", cursor.Sort)
}

func TestDecodePageCursor(t *testing.T) {
	encode := func(s string) string {
		return base64.URLEncoding.EncodeToString([]byte(s))
	}

	tests := []struct {
		name    string
		input   string
		wantNil bool
		wantErr bool
	}{
		{name: "empty means first page", input: "", wantNil: true},
		{name: "not base64", input: "@@@", wantErr: true},
		{name: "missing separator", input: encode("20"), wantErr: true},
		{name: "non numeric offset", input: encode("abc|newest"), wantErr: true},
		{name: "negative offset", input: encode("-5|newest"), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cursor, err := DecodePageCursor(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			if tt.wantNil {
				assert.Nil(t, cursor)
			}
		})
	}
}
