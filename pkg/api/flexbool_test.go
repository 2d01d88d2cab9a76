package api

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFlexBool_Unmarshal(t *testing.T) {
	tests := []struct {
		input   string
		want    bool
		wantErr bool
	}{
		{input: `true`, want: true},
		{input: `false`, want: false},
		{input: `1`, want: true},
		{input: `0`, want: false},
		{input: `"1"`, want: true},
		{input: `"0"`, want: false},
		{input: `"true"`, wantErr: true},
		{input: `2`, wantErr: true},
		{input: `"yes"`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			var req UpdatePreferencesRequest
			err := json.Unmarshal([]byte(`{"ui_show_base_labels":`+tt.input+`}`), &req)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.NotNil(t, req.UIShowBaseLabels)
			assert.Equal(t, tt.want, bool(*req.UIShowBaseLabels))
		})
	}
}

func TestFlexBool_Absent(t *testing.T) {
	var req UpdatePreferencesRequest
	require.NoError(t, json.Unmarshal([]byte(`{"ui_theme":"light"}`), &req))
	assert.Nil(t, req.UIShowBaseLabels)
	require.NotNil(t, req.UITheme)
	assert.Equal(t, "light", *req.UITheme)
}

func TestFlexBool_Marshal(t *testing.T) {
	data, err := json.Marshal(User{UIShowBaseLabels: true})
	require.NoError(t, err)
	assert.Contains(t, string(data), `"ui_show_base_labels":true`)
}
