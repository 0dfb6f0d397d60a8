package columns

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// LoadFile reads a column configuration file mapping content types to their
// raw column declarations:
//
//	{
//	  "product": {
//	    "price": {"title": "Price", "sortable": true},
//	    "comments": "removed"
//	  }
//	}
//
// Column order within each content type is preserved, which is why the values
// are declaration slices rather than maps.
func LoadFile(path string) (map[string][]RawDeclaration, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open columns config: %w", err)
	}
	defer f.Close()

	decls, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("failed to parse columns config %s: %w", path, err)
	}
	return decls, nil
}

// Parse decodes a column configuration document, walking the token stream by
// hand so that declaration order survives (a plain map round-trip would lose
// it).
func Parse(r io.Reader) (map[string][]RawDeclaration, error) {
	dec := json.NewDecoder(r)

	if err := expectDelim(dec, '{'); err != nil {
		return nil, err
	}

	out := make(map[string][]RawDeclaration)
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		contentType, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("expected content type key, got %v", tok)
		}

		decls, err := parseDeclarations(dec, contentType)
		if err != nil {
			return nil, err
		}
		out[contentType] = decls
	}

	if err := expectDelim(dec, '}'); err != nil {
		return nil, err
	}
	return out, nil
}

func parseDeclarations(dec *json.Decoder, contentType string) ([]RawDeclaration, error) {
	if err := expectDelim(dec, '{'); err != nil {
		return nil, fmt.Errorf("content type %q: %w", contentType, err)
	}

	var decls []RawDeclaration
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("content type %q: expected column key, got %v", contentType, tok)
		}

		var value any
		if err := dec.Decode(&value); err != nil {
			return nil, fmt.Errorf("content type %q: column %q: %w", contentType, key, err)
		}
		decls = append(decls, RawDeclaration{Key: key, Value: value})
	}

	if err := expectDelim(dec, '}'); err != nil {
		return nil, fmt.Errorf("content type %q: %w", contentType, err)
	}
	return decls, nil
}

func expectDelim(dec *json.Decoder, want json.Delim) error {
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != want {
		return fmt.Errorf("expected %q, got %v", want, tok)
	}
	return nil
}
