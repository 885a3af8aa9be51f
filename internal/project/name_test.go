package project

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateName(t *testing.T) {
	tests := []struct {
		name    string
		wantErr string
	}{
		{name: "my-app"},
		{name: "workspace.v2"},
		{name: "a_b-c"},
		{name: "", wantErr: "greater than zero"},
		{name: ".hidden", wantErr: "start with a period"},
		{name: "_private", wantErr: "start with an underscore"},
		{name: "MyApp", wantErr: "capital letters"},
		{name: " app", wantErr: "leading or trailing spaces"},
		{name: "node_modules", wantErr: "not a valid package name"},
		{name: "a~b", wantErr: "special characters"},
		{name: "a b", wantErr: "URL-friendly"},
		{name: strings.Repeat("a", 215), wantErr: "more than 214"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateName(tt.name)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.True(t, errors.Is(err, ErrInvalidName))
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}
