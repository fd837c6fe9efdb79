// Package text implements the string algorithms: anagram and palindrome
// checks, word reversal, vowel removal and run-length compression.
package text

import (
	"slices"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/asaidimu/go-qsdata/core"
)

const vowels = "aeiouyAEIOUY"

// ligatures covers letters that carry no combining mark, so canonical
// decomposition leaves them untouched.
var ligatures = strings.NewReplacer(
	"æ", "ae", "Æ", "AE",
	"œ", "oe", "Œ", "OE",
	"ø", "o", "Ø", "O",
	"ß", "ss",
	"ł", "l", "Ł", "L",
	"đ", "d", "Đ", "D",
)

// Anagram reports whether a and b contain the same characters, ignoring case.
func Anagram(a, b string) bool {
	return slices.Equal(sortedRunes(a), sortedRunes(b))
}

func sortedRunes(s string) []rune {
	r := []rune(strings.ToLower(s))
	slices.Sort(r)
	return r
}

// ReverseWords reverses the order of the whitespace-separated words in s and
// joins them with single spaces.
func ReverseWords(s string) string {
	words := strings.Fields(s)
	slices.Reverse(words)
	return strings.Join(words, " ")
}

// RemoveVowels strips accents from s and then removes every vowel,
// y included. "Je suis élève ingénieur." becomes "J ss lv ngnr.".
func RemoveVowels(s string) (string, error) {
	folded, err := Fold(s)
	if err != nil {
		return "", err
	}
	return strings.Map(func(r rune) rune {
		if strings.ContainsRune(vowels, r) {
			return -1
		}
		return r
	}, folded), nil
}

// Fold maps accented letters onto their unaccented base letters.
func Fold(s string) (string, error) {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, ligatures.Replace(s))
	if err != nil {
		return "", core.InvalidArgument("cannot fold %q: %v", s, err)
	}
	return folded, nil
}

// IsPalindrome reports whether s reads the same backwards, ignoring case and
// spaces. Punctuation and other whitespace are significant.
func IsPalindrome(s string) bool {
	r := []rune(strings.ReplaceAll(strings.ToLower(s), " ", ""))
	for i, j := 0, len(r)-1; i < j; i, j = i+1, j-1 {
		if r[i] != r[j] {
			return false
		}
	}
	return true
}
