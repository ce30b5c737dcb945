// Package optvalidate implements a generic "validate a keyword-style
// option set against a declared schema" engine. Its callers are
// system.CreateAccount's seed variant, the token builders' checked params
// and InitializeMultisig, and tokenswap.Initialize's curve and fee
// configuration. The seed variants of system.Transfer, Assign, and
// Allocate check their arguments without a Schema.
package optvalidate

import "github.com/pkg/errors"

// Kind identifies how a Field's value should be checked and normalized.
type Kind int

const (
	KindInt            Kind = iota // any integer
	KindNonNegativeInt             // integer >= 0
	KindPositiveInt                // integer > 0
	KindBoundedInt                 // integer in [Min, Max]
	KindString
	KindBool
	KindKey      // []byte key, checked to be keySize bytes long
	KindListOfKey
	KindInSet  // string in Set
	KindCustom // validated by Predicate
)

// Field declares one option a schema accepts.
type Field struct {
	Name      string
	Kind      Kind
	Required  bool
	Default   interface{}
	Min, Max  int64                          // KindBoundedInt
	Set       []string                       // KindInSet
	Predicate func(interface{}) (interface{}, error) // KindCustom
	Doc       string
}

// Schema is an ordered list of Fields a program builder accepts as a
// keyword-style option set.
type Schema struct {
	Name   string
	Fields []Field
}

// Validate checks opts against s: unknown fields are rejected, required
// fields must be present, and each present field is checked/normalized
// according to its Kind. On success it returns a normalized map with
// defaults applied for every field that was declared but absent.
func (s Schema) Validate(opts map[string]interface{}) (map[string]interface{}, error) {
	known := make(map[string]Field, len(s.Fields))
	for _, f := range s.Fields {
		known[f.Name] = f
	}

	for name := range opts {
		if _, ok := known[name]; !ok {
			return nil, errors.Errorf("%s: unknown option %q", s.Name, name)
		}
	}

	out := make(map[string]interface{}, len(s.Fields))
	for _, f := range s.Fields {
		v, present := opts[f.Name]
		if !present {
			if f.Required {
				return nil, errors.Errorf("%s: missing required option %q", s.Name, f.Name)
			}
			if f.Default != nil {
				out[f.Name] = f.Default
			}
			continue
		}

		normalized, err := validateField(f, v)
		if err != nil {
			return nil, errors.Wrapf(err, "%s: option %q", s.Name, f.Name)
		}
		out[f.Name] = normalized
	}

	return out, nil
}

func validateField(f Field, v interface{}) (interface{}, error) {
	switch f.Kind {
	case KindInt, KindNonNegativeInt, KindPositiveInt, KindBoundedInt:
		n, ok := toInt64(v)
		if !ok {
			return nil, errors.New("expected an integer")
		}
		switch f.Kind {
		case KindNonNegativeInt:
			if n < 0 {
				return nil, errors.New("must be non-negative")
			}
		case KindPositiveInt:
			if n <= 0 {
				return nil, errors.New("must be positive")
			}
		case KindBoundedInt:
			if n < f.Min || n > f.Max {
				return nil, errors.Errorf("must be in range [%d, %d]", f.Min, f.Max)
			}
		}
		return n, nil

	case KindString:
		s, ok := v.(string)
		if !ok {
			return nil, errors.New("expected a string")
		}
		return s, nil

	case KindBool:
		b, ok := v.(bool)
		if !ok {
			return nil, errors.New("expected a bool")
		}
		return b, nil

	case KindKey:
		b, ok := v.([]byte)
		if !ok {
			return nil, errors.New("expected a 32-byte key")
		}
		if len(b) != keySize {
			return nil, errors.New("key must be 32 bytes")
		}
		return b, nil

	case KindListOfKey:
		list, ok := v.([][]byte)
		if !ok {
			return nil, errors.New("expected a list of keys")
		}
		for i, k := range list {
			if len(k) != keySize {
				return nil, errors.Errorf("key at index %d must be 32 bytes", i)
			}
		}
		return list, nil

	case KindInSet:
		s, ok := v.(string)
		if !ok {
			return nil, errors.New("expected a string")
		}
		for _, allowed := range f.Set {
			if s == allowed {
				return s, nil
			}
		}
		return nil, errors.Errorf("must be one of %v", f.Set)

	case KindCustom:
		if f.Predicate == nil {
			return nil, errors.New("custom field has no predicate")
		}
		return f.Predicate(v)

	default:
		return nil, errors.Errorf("unknown field kind %d", f.Kind)
	}
}

// keySize mirrors solana.KeySize so that this package does not import the
// solana package.
const keySize = 32

func toInt64(v interface{}) (int64, bool) {
	switch n := v.(type) {
	case int:
		return int64(n), true
	case int32:
		return int64(n), true
	case int64:
		return n, true
	case uint8:
		return int64(n), true
	case uint32:
		return int64(n), true
	case uint64:
		return int64(n), true
	default:
		return 0, false
	}
}
