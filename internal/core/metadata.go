package core

import (
	"fmt"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

// renameMetadataEntry updates the entries listed under d.Kind that describe the moved
// artifact. An entry matches on its display name ("name") or its instance name
// ("instance"); the kind key itself never changes.
//
//	{"page-objects":[{"name":"file","instance":"file"}]}
func renameMetadataEntry(doc string, d RenameDelta) (string, error) {
	key := string(d.Kind)
	entries := gjson.Get(doc, key)
	if !entries.IsArray() {
		return doc, nil
	}

	out := doc
	var err error
	for i, entry := range entries.Array() {
		name := entry.Get("name")
		instance := entry.Get("instance")
		matched := (name.Exists() && name.String() == d.OldDisplayName) ||
			(instance.Exists() && instance.String() == d.OldInstanceName)
		if !matched {
			continue
		}
		if name.Exists() {
			if out, err = sjson.Set(out, fmt.Sprintf("%s.%d.name", key, i), d.NewDisplayName); err != nil {
				return "", err
			}
		}
		if instance.Exists() {
			if out, err = sjson.Set(out, fmt.Sprintf("%s.%d.instance", key, i), d.NewInstanceName); err != nil {
				return "", err
			}
		}
	}
	return out, nil
}

// renameOwnMetadata updates the top-level "name" of a definer's own metadata.
func renameOwnMetadata(doc string, d RenameDelta) (string, error) {
	if gjson.Get(doc, "name").String() != d.OldDisplayName {
		return doc, nil
	}
	return sjson.Set(doc, "name", d.NewDisplayName)
}
