package handler

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidator_ChangeItemLocationRequest(t *testing.T) {
	v := GetValidator()

	tests := []struct {
		name    string
		req     ChangeItemLocationRequest
		wantErr bool
	}{
		// CASE 1: Best Case
		{"valid ids", ChangeItemLocationRequest{ItemID: "item-1", LocationID: "loc-1"}, false},

		// CASE 2: Boundary
		{"max length id", ChangeItemLocationRequest{ItemID: strings.Repeat("a", 64), LocationID: "l"}, false},
		{"too long id", ChangeItemLocationRequest{ItemID: strings.Repeat("a", 65), LocationID: "l"}, true},

		// CASE 3: Edge
		{"blank item id", ChangeItemLocationRequest{ItemID: "   ", LocationID: "l"}, true},

		// CASE 4: Invalid Case
		{"missing location", ChangeItemLocationRequest{ItemID: "i"}, true},
		{"path characters", ChangeItemLocationRequest{ItemID: "../x", LocationID: "l"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.ValidateStruct(tt.req)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestFormatValidationError(t *testing.T) {
	err := GetValidator().ValidateStruct(ChangeItemLocationRequest{ItemID: " "})
	require.Error(t, err)

	fields := FormatValidationError(err)
	assert.Equal(t, "Must not be blank", fields["item_id"])
	assert.Equal(t, "This field is required", fields["location_id"])

	assert.Nil(t, FormatValidationError(nil))
	assert.Equal(t, map[string]string{"error": "Invalid request format"}, FormatValidationError(assert.AnError))
}
