package taglist

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []string
	}{
		{"empty", "", nil},
		{"only separators", ",,, ,", nil},
		{"single", "ml", []string{"ml"}},
		{"trim and lower", " ML , Nlp ", []string{"ml", "nlp"}},
		{"drops empties", "ml,,nlp,", []string{"ml", "nlp"}},
		{"dedupe keeps first", "nlp,ml,NLP", []string{"nlp", "ml"}},
		{"inner spaces kept", "machine learning", []string{"machine learning"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Parse(tt.in))
		})
	}
}

func TestCanonical(t *testing.T) {
	assert.Equal(t, "ml,nlp", Canonical(" ML,,nlp, ml "))
	assert.Equal(t, "", Canonical(""))
}

func TestJoin(t *testing.T) {
	assert.Equal(t, "a,b", Join([]string{"A", " b", "a", ""}))
	assert.Equal(t, "", Join(nil))
}

func TestContains(t *testing.T) {
	assert.True(t, Contains("ml,nlp", "ml"))
	assert.True(t, Contains("ml,nlp", " NLP "))
	assert.False(t, Contains("html,nlp", "ml"))
	assert.False(t, Contains("", "ml"))
}

func TestReplace(t *testing.T) {
	tests := []struct {
		name        string
		s, old, new string
		want        string
	}{
		{"simple", "ml,nlp", "ml", "machine-learning", "machine-learning,nlp"},
		{"substring untouched", "html,ml", "ml", "x", "html,x"},
		{"absent", "nlp", "ml", "x", "nlp"},
		{"collapses onto existing", "ml,nlp,x", "ml", "x", "x,nlp"},
		{"only token", "ml", "ml", "ai", "ai"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Replace(tt.s, tt.old, tt.new))
		})
	}
}

func TestRemove(t *testing.T) {
	assert.Equal(t, "nlp", Remove("ml,nlp", "ml"))
	assert.Equal(t, "html,nlp", Remove("html,ml,nlp", "ml"))
	assert.Equal(t, "", Remove("ml", "ml"))
	assert.Equal(t, "nlp", Remove("nlp", "ml"))
}
