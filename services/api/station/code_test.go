package station

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"150", "0150"},
		{"0150", "0150"},
		{"2", "0002"},
		{"12345", "12345"},
		{"1234", "1234"},
		{" 150 ", "0150"},
		{"", ""},
		{"   ", ""},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, Normalize(tc.in), "Normalize(%q)", tc.in)
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	for _, code := range []string{"1", "42", "150", "0150", "98765", ""} {
		once := Normalize(code)
		assert.Equal(t, once, Normalize(once))
	}
}

func TestNormalizeEquivalence(t *testing.T) {
	assert.Equal(t, Normalize("150"), Normalize("0150"))
	assert.NotEqual(t, Normalize("150"), Normalize("1500"))
}

func TestEnsureSuffix(t *testing.T) {
	assert.Equal(t, "시청"+NameSuffix, EnsureSuffix("시청"))
	assert.Equal(t, "시청"+NameSuffix, EnsureSuffix("시청"+NameSuffix))
	assert.Equal(t, "", EnsureSuffix(""))
}
