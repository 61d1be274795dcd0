package contentstore

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/panel/backend/internal/domain/catalog"
)

// Shape normalization. The content store changed its response envelope
// between schema versions: payloads arrive as a bare object, a bare list,
// or wrapped under "data" (object or list), and each record's fields may or
// may not sit under an "attributes" sub-object. Normalize collapses all of
// it into flat records so nothing downstream ever probes shapes ad hoc.

// ErrMalformedPayload indicates a response that matches none of the known
// envelope shapes. Distinct from an empty result: a payload that truly
// carries zero records normalizes to an empty list without error.
var ErrMalformedPayload = errors.New("contentstore: unrecognized response shape")

// Normalize converts a raw content-store response into flat records.
func Normalize(raw json.RawMessage) ([]catalog.Record, error) {
	var decoded any
	if err := json.Unmarshal(raw, &decoded); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedPayload, err)
	}

	switch v := decoded.(type) {
	case []any:
		return normalizeList(v)
	case map[string]any:
		data, hasData := v["data"]
		if !hasData {
			// No envelope at all: the object is itself one raw record
			rec, err := flattenRecord(v)
			if err != nil {
				return nil, err
			}
			return []catalog.Record{rec}, nil
		}
		switch d := data.(type) {
		case []any:
			return normalizeList(d)
		case map[string]any:
			rec, err := flattenRecord(d)
			if err != nil {
				return nil, err
			}
			return []catalog.Record{rec}, nil
		case nil:
			// data:null is the store's "no such entry" answer
			return []catalog.Record{}, nil
		default:
			return nil, fmt.Errorf("%w: data is %T", ErrMalformedPayload, data)
		}
	default:
		return nil, fmt.Errorf("%w: top level is %T", ErrMalformedPayload, decoded)
	}
}

func normalizeList(items []any) ([]catalog.Record, error) {
	records := make([]catalog.Record, 0, len(items))
	for i, item := range items {
		m, ok := item.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("%w: element %d is %T", ErrMalformedPayload, i, item)
		}
		rec, err := flattenRecord(m)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, nil
}

// flattenRecord merges any "attributes" sub-object onto the top level.
// Top-level keys win on conflict since they may already carry denormalized
// values such as id and documentId.
func flattenRecord(m map[string]any) (catalog.Record, error) {
	fields := make(map[string]any, len(m))
	if attrs, ok := m["attributes"].(map[string]any); ok {
		for k, v := range attrs {
			fields[k] = v
		}
	}
	for k, v := range m {
		if k == "attributes" {
			continue
		}
		fields[k] = v
	}

	rec := catalog.Record{Fields: fields}
	if id, ok := fields["id"].(float64); ok {
		rec.ID = int64(id)
	}
	if documentID, ok := fields["documentId"].(string); ok {
		rec.DocumentID = documentID
	}
	return rec, nil
}
