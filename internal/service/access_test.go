package service

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/okunev/usermgmt/internal/model"
)

func TestCanModify(t *testing.T) {
	self := uuid.New()
	other := uuid.New()

	tests := []struct {
		name      string
		principal model.User
		target    uuid.UUID
		want      bool
	}{
		{
			name:      "owner may modify own record",
			principal: model.User{ID: self, IsSuperuser: false},
			target:    self,
			want:      true,
		},
		{
			name:      "non-superuser may not modify others",
			principal: model.User{ID: self, IsSuperuser: false},
			target:    other,
			want:      false,
		},
		{
			name:      "superuser may modify others",
			principal: model.User{ID: self, IsSuperuser: true},
			target:    other,
			want:      true,
		},
		{
			name:      "superuser may modify own record",
			principal: model.User{ID: self, IsSuperuser: true},
			target:    self,
			want:      true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CanModify(tt.principal, tt.target))
		})
	}
}
