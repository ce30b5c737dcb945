package rpc

import (
	"github.com/mr-tron/base58"
	"github.com/pkg/errors"
)

// DecodeResult applies method-aware base58 decoding to a generic JSON
// result (as produced by json.Unmarshal into interface{}), turning the
// base58-encoded strings the cluster returns for keys, blockhashes, and
// signatures into their raw byte form in place. Any result carrying a
// non-nil "error" field is surfaced as an error rather than decoded.
func DecodeResult(method string, result interface{}) (interface{}, error) {
	if m, ok := result.(map[string]interface{}); ok {
		if errVal, present := m["error"]; present && errVal != nil {
			return nil, errors.Errorf("%s: %v", method, errVal)
		}
	}

	switch method {
	case "requestAirdrop", "sendTransaction":
		s, ok := result.(string)
		if !ok {
			return result, nil
		}
		return decodeBase58Field(s)

	case "getSignaturesForAddress":
		list, ok := result.([]interface{})
		if !ok {
			return result, nil
		}
		for _, entry := range list {
			if err := decodeInPlace(entry, "signature"); err != nil {
				return nil, err
			}
		}
		return list, nil

	case "getRecentBlockhash", "getLatestBlockhash":
		m := unwrapValue(result)
		if err := decodeInPlace(m, "blockhash"); err != nil {
			return nil, err
		}
		return result, nil

	case "getAccountInfo":
		if err := decodeInPlace(unwrapValue(result), "owner"); err != nil {
			return nil, err
		}
		return result, nil

	case "getMultipleAccounts":
		list, ok := unwrapValue(result).([]interface{})
		if !ok {
			return result, nil
		}
		for _, entry := range list {
			if entry == nil {
				continue
			}
			if err := decodeInPlace(entry, "owner"); err != nil {
				return nil, err
			}
		}
		return result, nil

	case "getTransaction":
		m, ok := result.(map[string]interface{})
		if !ok {
			return result, nil
		}
		if err := decodeTransactionResult(m); err != nil {
			return nil, err
		}
		return result, nil

	default:
		return result, nil
	}
}

// unwrapValue peels a {"context": ..., "value": ...} envelope, the shape
// getAccountInfo/getLatestBlockhash/getMultipleAccounts wrap their result
// in. Results with no such envelope pass through unchanged.
func unwrapValue(result interface{}) interface{} {
	m, ok := result.(map[string]interface{})
	if !ok {
		return result
	}
	if v, present := m["value"]; present {
		return v
	}
	return result
}

func decodeInPlace(v interface{}, field string) error {
	m, ok := v.(map[string]interface{})
	if !ok {
		return nil
	}
	raw, ok := m[field].(string)
	if !ok || raw == "" {
		return nil
	}
	decoded, err := base58.Decode(raw)
	if err != nil {
		return errors.Wrapf(err, "decode field %q", field)
	}
	m[field] = decoded
	return nil
}

func decodeBase58Field(s string) ([]byte, error) {
	decoded, err := base58.Decode(s)
	if err != nil {
		return nil, errors.Wrap(err, "decode base58 result")
	}
	return decoded, nil
}

func decodeTransactionResult(m map[string]interface{}) error {
	tx, ok := m["transaction"].(map[string]interface{})
	if !ok {
		return nil
	}

	message, ok := tx["message"].(map[string]interface{})
	if ok {
		if keys, ok := message["accountKeys"].([]interface{}); ok {
			for i, k := range keys {
				s, ok := k.(string)
				if !ok {
					continue
				}
				decoded, err := base58.Decode(s)
				if err != nil {
					return errors.Wrap(err, "decode accountKeys entry")
				}
				keys[i] = decoded
			}
		}
		if err := decodeInPlace(message, "recentBlockhash"); err != nil {
			return err
		}
	}

	if sigs, ok := tx["signatures"].([]interface{}); ok {
		for i, s := range sigs {
			str, ok := s.(string)
			if !ok {
				continue
			}
			decoded, err := base58.Decode(str)
			if err != nil {
				return errors.Wrap(err, "decode signatures entry")
			}
			sigs[i] = decoded
		}
	}

	return nil
}
