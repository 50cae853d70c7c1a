// Package rules holds the per-field validate-and-normalize functions used by
// request partials.
//
// Rules are pure: no I/O, no shared mutable state. A Rule either returns the
// value to store or an error; it never returns a partially applied value, so
// composite fields (telephone, duration) are accepted or rejected as a whole.
package rules

import (
	"errors"
	"fmt"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Rule validates the raw arguments of one set call and returns the value to store.
type Rule func(args ...any) (Value, error)

var (
	// ErrInvalid marks input that does not satisfy a field's rule.
	ErrInvalid = errors.New("invalid value")
	// ErrArity marks a set call with an unsupported number of arguments.
	ErrArity = errors.New("wrong number of arguments")
)

func invalidf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalid, fmt.Sprintf(format, args...))
}

func arityf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrArity, fmt.Sprintf(format, args...))
}

func single(args []any) (any, error) {
	if len(args) != 1 {
		return nil, arityf("expected 1 argument, got %d", len(args))
	}
	return args[0], nil
}

func singleString(args []any) (string, error) {
	arg, err := single(args)
	if err != nil {
		return "", err
	}
	s, ok := arg.(string)
	if !ok {
		return "", invalidf("expected a string, got %T", arg)
	}
	return s, nil
}

// OneOf accepts a single string that is a member of codes. The code is stored
// unchanged.
func OneOf(codes ...string) Rule {
	allowed := slices.Clone(codes)
	return func(args ...any) (Value, error) {
		s, err := singleString(args)
		if err != nil {
			return Unset, err
		}
		if !slices.Contains(allowed, s) {
			return Unset, invalidf("%q is not one of %s", s, strings.Join(allowed, ", "))
		}
		return Text(s), nil
	}
}

// Normalizer rewrites a string before it is matched and stored.
type Normalizer func(string) string

var (
	Upper       Normalizer = strings.ToUpper
	TrimSpace   Normalizer = strings.TrimSpace
	StripSpaces Normalizer = func(s string) string { return strings.Join(strings.Fields(s), "") }
	// CollapseSpaces trims and folds inner whitespace runs to one space.
	CollapseSpaces Normalizer = func(s string) string { return strings.Join(strings.Fields(s), " ") }
	// TitleCase upper-cases the first letter of each word and leaves the rest
	// alone, so "McDonald" survives.
	TitleCase Normalizer = func(s string) string {
		// Casers are stateful; one per call.
		return cases.Title(language.BritishEnglish, cases.NoLower).String(s)
	}
)

// Pattern accepts a single string which, after the normalizers run in order,
// matches re. The normalized string is stored.
func Pattern(re *regexp.Regexp, normalizers ...Normalizer) Rule {
	return func(args ...any) (Value, error) {
		s, err := singleString(args)
		if err != nil {
			return Unset, err
		}
		for _, n := range normalizers {
			s = n(s)
		}
		if !re.MatchString(s) {
			return Unset, invalidf("%q does not match the required format", s)
		}
		return Text(s), nil
	}
}

var namePattern = regexp.MustCompile(`^\p{L}[\p{L} '\-]{0,39}$`)

// Name accepts person and place names: letters, spaces, hyphens and
// apostrophes, stored title-cased with whitespace collapsed.
func Name() Rule {
	return Pattern(namePattern, CollapseSpaces, TitleCase)
}

// Digits accepts a single string of between minLen and maxLen decimal digits.
func Digits(minLen, maxLen int) Rule {
	return func(args ...any) (Value, error) {
		s, err := singleString(args)
		if err != nil {
			return Unset, err
		}
		if !isDigits(s) || len(s) < minLen || len(s) > maxLen {
			return Unset, invalidf("%q must be %d to %d digits", s, minLen, maxLen)
		}
		return Text(s), nil
	}
}

// Telephone accepts either an area code and a local number, both digit-only
// strings, stored as "{area} {number}", or a single flag from flags stored
// verbatim.
func Telephone(flags ...string) Rule {
	allowed := slices.Clone(flags)
	return func(args ...any) (Value, error) {
		switch len(args) {
		case 1:
			s, ok := args[0].(string)
			if !ok || !slices.Contains(allowed, s) {
				return Unset, invalidf("single argument must be one of %s", strings.Join(allowed, ", "))
			}
			return Text(s), nil
		case 2:
			area, okArea := args[0].(string)
			number, okNumber := args[1].(string)
			if !okArea || !okNumber {
				return Unset, invalidf("area code and number must be strings, got %T and %T", args[0], args[1])
			}
			if !isDigits(area) || !isDigits(number) {
				return Unset, invalidf("area code %q and number %q must be digits", area, number)
			}
			return Text(area + " " + number), nil
		default:
			return Unset, arityf("expected 1 or 2 arguments, got %d", len(args))
		}
	}
}

// BoundedInt accepts an integer (or numeric string) in [lo, ∞), clamping values
// above hi down to hi, or one of the sentinel codes which map to out-of-band
// integers.
func BoundedInt(lo, hi int64, sentinels map[string]int64) Rule {
	codes := make(map[string]int64, len(sentinels))
	for k, v := range sentinels {
		codes[k] = v
	}
	return func(args ...any) (Value, error) {
		arg, err := single(args)
		if err != nil {
			return Unset, err
		}
		if s, ok := arg.(string); ok {
			if n, found := codes[s]; found {
				return Int(n), nil
			}
		}
		n, ok := integerOrNumericString(arg)
		if !ok {
			return Unset, invalidf("%v is neither an integer nor a reserved code", arg)
		}
		if n < lo {
			return Unset, invalidf("%d is below the minimum of %d", n, lo)
		}
		return Int(min(n, hi)), nil
	}
}

// Dependants counts dependants: 0..7 with larger counts clamped to 7,
// "Z" (not given) stored as 8 and "Q" (not asked) stored as 9.
func Dependants() Rule {
	return BoundedInt(0, 7, map[string]int64{"Z": 8, "Q": 9})
}

// Duration accepts years and optional months as non-negative integers and
// formats them as "{y}y {m}m", "{y}y" or "{m}m". Strings are not accepted.
func Duration() Rule {
	return func(args ...any) (Value, error) {
		if len(args) < 1 || len(args) > 2 {
			return Unset, arityf("expected years and optional months, got %d arguments", len(args))
		}
		years, ok := integer(args[0])
		if !ok || years < 0 {
			return Unset, invalidf("years %v must be a non-negative integer", args[0])
		}
		var months int64
		if len(args) == 2 {
			months, ok = integer(args[1])
			if !ok || months < 0 {
				return Unset, invalidf("months %v must be a non-negative integer", args[1])
			}
		}
		return Text(formatDuration(years, months)), nil
	}
}

func formatDuration(years, months int64) string {
	switch {
	case years > 0 && months > 0:
		return strconv.FormatInt(years, 10) + "y " + strconv.FormatInt(months, 10) + "m"
	case years > 0:
		return strconv.FormatInt(years, 10) + "y"
	default:
		return strconv.FormatInt(months, 10) + "m"
	}
}

// Integer accepts an integer or a string that parses in full as one.
func Integer() Rule {
	return func(args ...any) (Value, error) {
		arg, err := single(args)
		if err != nil {
			return Unset, err
		}
		n, ok := integerOrNumericString(arg)
		if !ok {
			return Unset, invalidf("%v is not an integer", arg)
		}
		return Int(n), nil
	}
}

// TriState accepts true, false or one of the reserved codes. Booleans are
// stored as booleans and codes verbatim as text; the two are not coerced into
// each other.
func TriState(codes ...string) Rule {
	allowed := slices.Clone(codes)
	return func(args ...any) (Value, error) {
		arg, err := single(args)
		if err != nil {
			return Unset, err
		}
		switch v := arg.(type) {
		case bool:
			return Bool(v), nil
		case string:
			if slices.Contains(allowed, v) {
				return Text(v), nil
			}
		}
		return Unset, invalidf("%v must be true, false or one of %s", arg, strings.Join(allowed, ", "))
	}
}

// validate is safe for concurrent use and caches its parsed tags.
var validate = validator.New()

// Email accepts local-part@domain where the domain has at least one dot.
func Email() Rule {
	return func(args ...any) (Value, error) {
		s, err := singleString(args)
		if err != nil {
			return Unset, err
		}
		if validate.Var(s, "required,email") != nil {
			return Unset, invalidf("%q is not an email address", s)
		}
		at := strings.LastIndexByte(s, '@')
		if at < 0 || !strings.Contains(s[at+1:], ".") {
			return Unset, invalidf("%q has no domain suffix", s)
		}
		return Text(s), nil
	}
}

var postcodePattern = regexp.MustCompile(`^([A-Z]{1,2}[0-9][A-Z0-9]?)([0-9][A-Z]{2})$`)

// Postcode accepts a UK postcode in any case and spacing and stores it
// upper-cased with a single space before the inward code.
func Postcode() Rule {
	return func(args ...any) (Value, error) {
		s, err := singleString(args)
		if err != nil {
			return Unset, err
		}
		compact := strings.ToUpper(StripSpaces(s))
		m := postcodePattern.FindStringSubmatch(compact)
		if m == nil {
			return Unset, invalidf("%q is not a UK postcode", s)
		}
		return Text(m[1] + " " + m[2]), nil
	}
}
