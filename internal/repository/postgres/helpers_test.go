package postgres

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/greencity/place-service/internal/domain"
)

func TestEscapeLike(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"vegan", "vegan"},
		{"100%", `100\%`},
		{"a_b", `a\_b`},
		{`back\slash`, `back\\slash`},
		{`%_\`, `\%\_\\`},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, escapeLike(tt.in))
	}
}

func TestBuildFilterWhere_TextIsLiteral(t *testing.T) {
	where, args := buildFilterWhere(domain.FilterPlace{Text: "100%"})

	assert.Contains(t, where, "p.name ILIKE $2")
	assert.Equal(t, domain.StatusApproved, args[0])
	assert.Equal(t, `%100\%%`, args[1])
}
