package lints

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/text/cases"

	"github.com/stylekit/jsstyle/internal/jsast"
)

// ErrUnsupportedKey is returned for keys that are neither identifiers nor
// literals, such as computed keys. Callers skip the comparison.
var ErrUnsupportedKey = errors.New("unsupported key kind")

var folder = cases.Fold()

// Key is the semantic name of a property or specifier. Numeric literal keys
// keep their canonical text and order as strings, so 10 sorts before 9.
type Key struct {
	Text string
}

func (k Key) String() string { return k.Text }

// Compare orders two keys by their text. It returns -1, 0 or 1.
func (k Key) Compare(other Key) int {
	return strings.Compare(k.Text, other.Text)
}

// KeyOf extracts the name of a property key node. Identifiers yield their name
// and literals their value; the text is case folded unless caseSensitive.
func KeyOf(key jsast.Node, caseSensitive bool) (Key, error) {
	var k Key
	switch n := key.(type) {
	case *jsast.Identifier:
		k.Text = n.Name
	case *jsast.Literal:
		if n.Regex {
			return Key{}, fmt.Errorf("regular expression key %s: %w", n.Raw, ErrUnsupportedKey)
		}
		switch v := n.Value.(type) {
		case string:
			k.Text = v
		case float64:
			k.Text = strconv.FormatFloat(v, 'f', -1, 64)
		case bool:
			k.Text = strconv.FormatBool(v)
		case nil:
			k.Text = "null"
		default:
			panic(fmt.Sprintf("lints: literal key %s has unexpected value type %T", n.Raw, v))
		}
	default:
		return Key{}, fmt.Errorf("%T key: %w", key, ErrUnsupportedKey)
	}
	if !caseSensitive {
		k.Text = folder.String(k.Text)
	}
	return k, nil
}

// PropertyKey returns the key of an object property or the local name of an
// import specifier.
func PropertyKey(n jsast.Node, caseSensitive bool) (Key, error) {
	switch p := n.(type) {
	case *jsast.Property:
		if p.Computed {
			return Key{}, fmt.Errorf("computed key: %w", ErrUnsupportedKey)
		}
		return KeyOf(p.Key, caseSensitive)
	case *jsast.ImportSpecifier:
		return KeyOf(p.Local, caseSensitive)
	}
	return Key{}, fmt.Errorf("%T: %w", n, ErrUnsupportedKey)
}

// IsOrdered reports whether property a may precede property b. With
// favorShorthand, shorthand properties sort before all others regardless of
// name; ties on the name are ordered. An error means the pair is not
// comparable.
func IsOrdered(favorShorthand bool, a, b jsast.Node) (bool, error) {
	if favorShorthand {
		sa, sb := isShorthand(a), isShorthand(b)
		if sa != sb {
			return sa, nil
		}
	}
	ka, err := PropertyKey(a, false)
	if err != nil {
		return false, err
	}
	kb, err := PropertyKey(b, false)
	if err != nil {
		return false, err
	}
	return ka.Compare(kb) <= 0, nil
}

func isShorthand(n jsast.Node) bool {
	p, ok := n.(*jsast.Property)
	return ok && p.Shorthand
}
