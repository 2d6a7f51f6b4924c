package domain

import (
	"fmt"
	"strconv"
	"strings"
)

// Field names used by the inventory server payloads
const (
	FieldID          = "id"
	FieldName        = "name"
	FieldLocationID  = "location_id"
	FieldLocation    = "location"
	FieldLabels      = "labels"
	FieldQuantity    = "quantity"
	FieldURL         = "url"
	FieldDescription = "description"
	FieldUpdatedAt   = "updated_at"
)

// Record is an opaque JSON object returned by the inventory server.
// No schema is assumed beyond the accessors below.
type Record map[string]any

// String returns the field as a string. Numbers are formatted without
// a trailing fraction so numeric ids compare equal to their string form.
func (r Record) String(key string) string {
	return stringify(r[key])
}

// Clone returns a shallow copy of the record.
func (r Record) Clone() Record {
	out := make(Record, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}

// Location is a storage location on the inventory server.
type Location Record

func (l Location) ID() string   { return Record(l).String(FieldID) }
func (l Location) Name() string { return Record(l).String(FieldName) }

// Item is an inventory item.
type Item Record

func (i Item) ID() string   { return Record(i).String(FieldID) }
func (i Item) Name() string { return Record(i).String(FieldName) }

// LocationID returns the item's location id whether the server sent a scalar
// location_id or an embedded location object.
func (i Item) LocationID() string {
	if id := Record(i).String(FieldLocationID); id != "" {
		return id
	}
	if loc, ok := i[FieldLocation].(map[string]any); ok {
		return stringify(loc[FieldID])
	}
	return ""
}

// LocationName returns the name of an embedded location object, if any.
func (i Item) LocationName() string {
	if loc, ok := i[FieldLocation].(map[string]any); ok {
		return stringify(loc[FieldName])
	}
	return ""
}

// Labels returns label names. Labels may be plain strings or {name} objects.
func (i Item) Labels() []string {
	raw, ok := i[FieldLabels].([]any)
	if !ok {
		return nil
	}
	labels := make([]string, 0, len(raw))
	for _, l := range raw {
		switch v := l.(type) {
		case string:
			labels = append(labels, v)
		case map[string]any:
			if name := stringify(v[FieldName]); name != "" {
				labels = append(labels, name)
			}
		}
	}
	return labels
}

// Quantity returns the item quantity, defaulting to 1 when absent.
func (i Item) Quantity() int {
	switch v := i[FieldQuantity].(type) {
	case float64:
		return int(v)
	case int:
		return v
	case string:
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return 1
}

// Notifier is a webhook registration on the inventory server.
type Notifier Record

func (n Notifier) ID() string  { return Record(n).String(FieldID) }
func (n Notifier) URL() string { return Record(n).String(FieldURL) }

func stringify(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case fmt.Stringer:
		return t.String()
	default:
		return strings.TrimSpace(fmt.Sprint(t))
	}
}
