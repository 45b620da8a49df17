package stopword

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadEnglish(t *testing.T) {
	s, err := Load("english")
	require.NoError(t, err)

	assert.Len(t, s, 179)
	assert.True(t, s.Contains("The"))
	assert.True(t, s.Contains("THIS"))
	assert.True(t, s.Contains("don’t"))
	assert.False(t, s.Contains("tutorial"))
}

func TestLoadUnknown(t *testing.T) {
	_, err := Load("klingon")
	require.Error(t, err)
}

func TestFilter(t *testing.T) {
	s, err := Load("English")
	require.NoError(t, err)

	words := []string{"This", "is", "where", "I", "need", "to", "put", "my", "text"}
	assert.Equal(t, []string{"need", "put", "text"}, s.Filter(words))
	assert.Empty(t, s.Filter(nil))
}

func TestAdd(t *testing.T) {
	s := Set{}
	s.Add("Foo", " ", "bar")

	assert.Equal(t, []string{"bar", "foo"}, s.Words())
}

func TestLanguages(t *testing.T) {
	assert.Equal(t, []string{"english", "spanish"}, Languages())
}
