package handlers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestServiceActiveFilter(t *testing.T) {
	cases := []struct {
		name    string
		isAdmin bool
		param   string
		want    *bool // nil means no clause
	}{
		{"guest default sees active only", false, "", boolptr(true)},
		{"guest may ask for active explicitly", false, "true", boolptr(true)},
		{"guest cannot ask for disabled", false, "false", boolptr(true)},
		{"guest garbage falls back to active", false, "yes", boolptr(true)},
		{"admin default sees everything", true, "", nil},
		{"admin filters active", true, "true", boolptr(true)},
		{"admin filters disabled", true, "false", boolptr(false)},
		{"admin garbage falls back to everything", true, "1", nil},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := serviceActiveFilter(tc.isAdmin, tc.param)
			if tc.want == nil {
				assert.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			assert.Equal(t, *tc.want, *got)
		})
	}
}

func boolptr(b bool) *bool { return &b }
