package text

import (
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/asaidimu/go-qsdata/core"
)

// DefaultMaxRunLength bounds the count of a single run accepted by
// Decompress.
const DefaultMaxRunLength = 1 << 20

// Compress run-length encodes s: every run of identical characters becomes
// the character followed by the run length, the length omitted when it is 1.
// Input containing digits cannot be decoded unambiguously and is rejected,
// as is input that is not valid UTF-8.
func Compress(s string) (string, error) {
	if !utf8.ValidString(s) {
		return "", core.InvalidArgument("the string is not valid UTF-8: %q", s)
	}
	if strings.IndexFunc(s, unicode.IsDigit) >= 0 {
		return "", core.InvalidArgument("the string should not contain numbers: %q", s)
	}

	var b strings.Builder
	var prev rune
	count := 0
	flush := func() {
		if count == 0 {
			return
		}
		b.WriteRune(prev)
		if count > 1 {
			b.WriteString(strconv.Itoa(count))
		}
	}
	for _, r := range s {
		if count > 0 && r == prev {
			count++
			continue
		}
		flush()
		prev, count = r, 1
	}
	flush()
	return b.String(), nil
}

// Decompress reverses Compress using DefaultMaxRunLength as the run limit.
func Decompress(s string) (string, error) {
	return DecompressWithLimit(s, DefaultMaxRunLength)
}

// DecompressWithLimit expands a run-length encoded string. Every non-digit
// character starts a run; the ASCII digits that follow it give the run
// length. Malformed input (a count with no character before it, a zero
// count, a count above maxRun, a non-ASCII digit or invalid UTF-8) is
// rejected.
func DecompressWithLimit(s string, maxRun int) (string, error) {
	if maxRun < 1 {
		return "", core.InvalidArgument("run limit should be positive, got %d", maxRun)
	}
	if !utf8.ValidString(s) {
		return "", core.InvalidArgument("the string is not valid UTF-8: %q", s)
	}

	var b strings.Builder
	var letter rune
	haveLetter := false
	count, digits := 0, 0

	expand := func() error {
		if digits == 0 {
			return nil
		}
		if count == 0 {
			return core.InvalidArgument("run of %q has a zero count", letter)
		}
		b.WriteString(strings.Repeat(string(letter), count-1))
		count, digits = 0, 0
		return nil
	}

	for i, r := range s {
		switch {
		case r >= '0' && r <= '9':
			if !haveLetter {
				return "", core.InvalidArgument("count at offset %d has no preceding character", i)
			}
			d := int(r - '0')
			// count*10+d must stay within maxRun, checked before multiplying.
			if d > maxRun || count > (maxRun-d)/10 {
				return "", core.InvalidArgument("run of %q exceeds the limit of %d", letter, maxRun)
			}
			count = count*10 + d
			digits++
		case unicode.IsDigit(r):
			return "", core.InvalidArgument("unsupported digit %q at offset %d", r, i)
		default:
			if err := expand(); err != nil {
				return "", err
			}
			letter, haveLetter = r, true
			b.WriteRune(r)
		}
	}
	if err := expand(); err != nil {
		return "", err
	}
	return b.String(), nil
}
