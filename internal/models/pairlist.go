package models

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Pair is one keyword→ledger association.
type Pair struct {
	Keyword string
	Ledger  string
}

// PairList is an ordered keyword→ledger mapping. Custom mappings are
// first-match-wins, so iteration order is part of the contract; a plain
// map would lose it. On the wire it is still a JSON object, and the
// decoder preserves the object's key order.
type PairList []Pair

// Get returns the ledger for an exact keyword and whether it was present.
func (p PairList) Get(keyword string) (string, bool) {
	for _, pair := range p {
		if pair.Keyword == keyword {
			return pair.Ledger, true
		}
	}
	return "", false
}

// MarshalJSON writes the list as a JSON object in list order.
func (p PairList) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, pair := range p {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := json.Marshal(pair.Keyword)
		if err != nil {
			return nil, err
		}
		v, err := json.Marshal(pair.Ledger)
		if err != nil {
			return nil, err
		}
		buf.Write(k)
		buf.WriteByte(':')
		buf.Write(v)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON reads a JSON object, keeping key order via the token
// stream (json.Unmarshal into a map would scramble it).
func (p *PairList) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if tok == nil {
		*p = nil
		return nil
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return fmt.Errorf("expected JSON object for mapping, got %v", tok)
	}
	out := PairList{}
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := keyTok.(string)
		if !ok {
			return fmt.Errorf("expected string key in mapping, got %v", keyTok)
		}
		var val string
		if err := dec.Decode(&val); err != nil {
			return fmt.Errorf("mapping value for %q: %w", key, err)
		}
		out = append(out, Pair{Keyword: key, Ledger: val})
	}
	if _, err := dec.Token(); err != nil { // closing brace
		return err
	}
	*p = out
	return nil
}
