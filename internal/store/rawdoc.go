package store

import (
	"bytes"
	"fmt"

	"github.com/harentsoaR/hospital-api/internal/models"
	"go.mongodb.org/mongo-driver/bson"
)

// matches reports whether every predicate in match equals the raw field.
func matches(doc bson.Raw, match Match) bool {
	for field, want := range match {
		got, err := doc.LookupErr(field)
		if err != nil {
			return false
		}
		t, data, err := bson.MarshalValue(want)
		if err != nil || got.Type != t || !bytes.Equal(got.Value, data) {
			return false
		}
	}
	return true
}

func hasKey(entry bson.RawValue, key models.NaturalKey) bool {
	sub, ok := entry.DocumentOK()
	if !ok {
		return false
	}
	for field, want := range key {
		got, ok := sub.Lookup(field).StringValueOK()
		if !ok || got != want {
			return false
		}
	}
	return true
}

// rewrite copies doc element by element, letting edit replace or drop any
// element. Fields edit never saw can be appended through extra.
func rewrite(doc bson.Raw, edit func(key string, v bson.RawValue) (interface{}, bool, error), extra bson.D) (bson.Raw, error) {
	elems, err := doc.Elements()
	if err != nil {
		return nil, err
	}
	out := make(bson.D, 0, len(elems)+len(extra))
	for _, e := range elems {
		v, keep, err := edit(e.Key(), e.Value())
		if err != nil {
			return nil, err
		}
		if keep {
			out = append(out, bson.E{Key: e.Key(), Value: v})
		}
	}
	out = append(out, extra...)
	return bson.Marshal(out)
}

func pushEntry(doc bson.Raw, field string, key models.NaturalKey, item interface{}) (bson.Raw, error) {
	found := false
	edit := func(k string, v bson.RawValue) (interface{}, bool, error) {
		if k != field {
			return v, true, nil
		}
		found = true
		entries, err := arrayValues(field, v)
		if err != nil {
			return nil, false, err
		}
		list := make(bson.A, 0, len(entries)+1)
		for _, entry := range entries {
			if hasKey(entry, key) {
				return nil, false, ErrDuplicateEntry
			}
			list = append(list, entry)
		}
		return append(list, item), true, nil
	}
	out, err := rewrite(doc, edit, nil)
	if err != nil || found {
		return out, err
	}
	return rewrite(doc, keepAll, bson.D{{Key: field, Value: bson.A{item}}})
}

func keepAll(_ string, v bson.RawValue) (interface{}, bool, error) { return v, true, nil }

func pullEntry(doc bson.Raw, field string, key models.NaturalKey) (bson.Raw, error) {
	removed := 0
	edit := func(k string, v bson.RawValue) (interface{}, bool, error) {
		if k != field {
			return v, true, nil
		}
		entries, err := arrayValues(field, v)
		if err != nil {
			return nil, false, err
		}
		list := make(bson.A, 0, len(entries))
		for _, entry := range entries {
			if hasKey(entry, key) {
				removed++
				continue
			}
			list = append(list, entry)
		}
		return list, true, nil
	}
	out, err := rewrite(doc, edit, nil)
	if err != nil {
		return nil, err
	}
	if removed == 0 {
		return nil, ErrNoEntry
	}
	return out, nil
}

func setFields(doc bson.Raw, fields Match) (bson.Raw, error) {
	elems, err := doc.Elements()
	if err != nil {
		return nil, err
	}
	present := make(map[string]bool, len(elems))
	for _, e := range elems {
		present[e.Key()] = true
	}
	var extra bson.D
	for k, v := range fields {
		if !present[k] {
			extra = append(extra, bson.E{Key: k, Value: v})
		}
	}
	return rewrite(doc, func(k string, v bson.RawValue) (interface{}, bool, error) {
		if nv, ok := fields[k]; ok {
			return nv, true, nil
		}
		return v, true, nil
	}, extra)
}

// project keeps _id and the listed fields.
func project(doc bson.Raw, fields []string) (bson.Raw, error) {
	if len(fields) == 0 {
		return doc, nil
	}
	keep := map[string]bool{models.FieldID: true}
	for _, f := range fields {
		keep[f] = true
	}
	return rewrite(doc, func(k string, v bson.RawValue) (interface{}, bool, error) {
		return v, keep[k], nil
	}, nil)
}

func arrayValues(field string, v bson.RawValue) ([]bson.RawValue, error) {
	if v.Type == bson.TypeNull {
		return nil, nil
	}
	arr, ok := v.ArrayOK()
	if !ok {
		return nil, fmt.Errorf("store: field %s is not a list", field)
	}
	return arr.Values()
}
