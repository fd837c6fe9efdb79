package text

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnagram(t *testing.T) {
	assert.True(t, Anagram("listen", "silent"))
	assert.True(t, Anagram("Dormitory", "dirtyROOM"))
	assert.True(t, Anagram("", ""))
	assert.False(t, Anagram("hello", "world"))
	assert.False(t, Anagram("aab", "abb"))
	// Spaces count as characters.
	assert.False(t, Anagram("a b", "ab"))
}

func TestReverseWords(t *testing.T) {
	assert.Equal(t, "world hello", ReverseWords("hello world"))
	assert.Equal(t, "c b a", ReverseWords("  a \t b\n c  "))
	assert.Equal(t, "", ReverseWords("   "))
	assert.Equal(t, "single", ReverseWords("single"))
}

func TestRemoveVowels(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"Je suis élève ingénieur.", "J ss lv ngnr."},
		{"Hello World", "Hll Wrld"},
		{"rhythm", "rhthm"},
		{"AEIOUYaeiouy", ""},
		{"Œuvre façade", "vr fcd"},
		{"Straße Łódź", "Strss Ldz"},
		{"", ""},
	}
	for _, tt := range tests {
		got, err := RemoveVowels(tt.input)
		require.NoError(t, err)
		assert.Equal(t, tt.expected, got, "input %q", tt.input)
	}
}

func TestFold(t *testing.T) {
	got, err := Fold("Crème brûlée à Noël")
	require.NoError(t, err)
	assert.Equal(t, "Creme brulee a Noel", got)
}

func TestIsPalindrome(t *testing.T) {
	assert.True(t, IsPalindrome("A man a plan a canal Panama"))
	assert.True(t, IsPalindrome("racecar"))
	assert.True(t, IsPalindrome(""))
	assert.True(t, IsPalindrome("été"))
	assert.False(t, IsPalindrome("hello"))
	// Only spaces are ignored, punctuation is not.
	assert.False(t, IsPalindrome("A man, a plan, a canal: Panama"))
}
