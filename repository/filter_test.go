package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFilterConstructors(t *testing.T) {
	f := Prefix("object_id", "dev-")
	assert.Equal(t, Filter{Column: "object_id", Op: FilterPrefix, Value: "dev-"}, f)

	f = Equals("type", "sensor")
	assert.Equal(t, Filter{Column: "type", Op: FilterEquals, Value: "sensor"}, f)

	f = GreaterThan("last_modified", int64(42))
	assert.Equal(t, Filter{Column: "last_modified", Op: FilterGreaterThan, Value: int64(42)}, f)
}

func TestEscapeLike(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{input: "plain", want: "plain"},
		{input: "50%", want: `50\%`},
		{input: "a_b", want: `a\_b`},
		{input: `back\slash`, want: `back\\slash`},
		{input: `%_\`, want: `\%\_\\`},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, escapeLike(tt.input))
	}
}
