package vocab

import (
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/revelaction/annotext/stopword"
)

func TestStringStoreRoundTrip(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		ss := NewStringStore()
		s := rapid.String().Draw(t, "s")

		h := ss.Add(s)
		got, err := ss.Lookup(h)
		if err != nil {
			t.Fatalf("lookup: %v", err)
		}
		if got != s {
			t.Fatalf("got %q want %q", got, s)
		}
		if ss.Add(s) != h {
			t.Fatalf("add is not idempotent for %q", s)
		}
	})
}

func TestStringStoreUnknown(t *testing.T) {
	ss := NewStringStore()
	_, err := ss.Lookup(42)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnknownHash))
}

func TestStringStoreConcurrent(t *testing.T) {
	ss := NewStringStore()
	words := []string{"new", "old", "red", "ford", "puma"}

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for _, w := range words {
				ss.Add(w)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, len(words), ss.Len())
	assert.True(t, ss.Contains("ford"))
	assert.Equal(t, Hash("new"), ss.Add("new"))
}

func TestLexeme(t *testing.T) {
	stop, err := stopword.Load("english")
	require.NoError(t, err)

	v := New(stop)
	lx := v.Lexeme("This")

	assert.Equal(t, "this", lx.Lower)
	assert.Equal(t, "Xxxx", lx.Shape)
	assert.True(t, lx.IsAlpha)
	assert.True(t, lx.IsStop)
	assert.False(t, lx.LikeNum)

	s, err := v.Strings.Lookup(lx.Orth)
	require.NoError(t, err)
	assert.Equal(t, "This", s)
	assert.True(t, v.Strings.Contains("this"))
}
