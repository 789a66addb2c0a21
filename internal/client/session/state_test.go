package session

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSnapshot_DisplayName(t *testing.T) {
	tests := []struct {
		name string
		snap Snapshot
		want string
	}{
		{name: "no profile", snap: Snapshot{}, want: ""},
		{name: "both names", snap: Snapshot{HasProfile: true, FirstName: "Jane", LastName: "Doe"}, want: "Jane Doe"},
		{name: "first only", snap: Snapshot{HasProfile: true, FirstName: "Jane"}, want: "Jane"},
		{name: "last only", snap: Snapshot{HasProfile: true, LastName: "Doe"}, want: "Doe"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.snap.DisplayName())
		})
	}
}
