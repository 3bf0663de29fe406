package model

import (
	"encoding/binary"
	"reflect"
	"strconv"
	"strings"
)

// Document is the unit of storage. Data holds the user supplied
// fields. Key and Value are only set on emitted map rows and on
// result collection rows.
type Document struct {
	ID       string                 `json:"_id,omitempty"`
	Rev      string                 `json:"_rev,omitempty"`
	Deleted  bool                   `json:"_deleted,omitempty"`
	LocalSeq uint64                 `json:"_local_seq,omitempty"`
	Data     map[string]interface{} `json:"data,omitempty"`
	Key      interface{}            `json:"key,omitempty"`
	Value    interface{}            `json:"value,omitempty"`
}

func (doc Document) ValidUpdateRevision(newDoc *Document) bool {
	oldRev, ok := doc.Revision()
	if ok {
		newRev, ok := newDoc.Revision()
		if !ok || newRev != oldRev {
			// update without correct rev forbidden if
			// document already exists
			return false
		}
	}
	return true
}

func (doc Document) Revision() (string, bool) {
	if doc.Rev != "" {
		return doc.Rev, true
	}
	rev, ok := doc.Data["_rev"].(string)
	return rev, ok
}

func (doc Document) NextSequence() int {
	rev, ok := doc.Revision()
	if !ok {
		return 1
	}

	i := strings.Index(rev, "-")
	if i < 0 {
		return 1 // fallback for malformed revisions
	}
	val, err := strconv.ParseInt(rev[:i], 10, 64)
	if err != nil {
		return 1 // fallback for malformed revisions
	}
	return int(val) + 1
}

func FormatLocalSeq(seq uint64) string {
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, seq)
	return string(b)
}

func (doc Document) FormatLocalSeq() string {
	return FormatLocalSeq(doc.LocalSeq)
}

// Language returns the script language of the design document,
// javascript if empty.
func (doc Document) Language() string {
	v, ok := doc.Data["language"].(string)
	if ok {
		return v
	}
	return "" // default
}

func (doc Document) IsDesignDoc() bool {
	return strings.HasPrefix(doc.ID, DesignDocPrefix)
}

func (doc Document) IsLocalDoc() bool {
	return strings.HasPrefix(doc.ID, "_local/")
}

// Field resolves a dotted path (e.g. "meta.version") inside the
// document data. Returns nil if any segment is missing.
func (doc *Document) Field(path string) interface{} {
	parts := strings.Split(path, ".")
	v := reflect.ValueOf(doc.Data)
	if v.IsZero() {
		return nil
	}

	// walk the path
	for _, part := range parts {
		// not a map return nil
		if v.Kind() != reflect.Map {
			return nil
		}

		key := reflect.ValueOf(part)
		if key.IsZero() {
			return nil
		}

		value := v.MapIndex(key)
		if !value.IsValid() || value.IsZero() {
			return nil
		} else {
			v = reflect.ValueOf(value.Interface())
		}
	}

	return v.Interface()
}

func (doc *Document) Exists(path string) bool {
	return doc.Field(path) != nil
}
