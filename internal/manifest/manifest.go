// Package manifest decodes YAML batch files that describe objects and
// assembles them against a catalog.
//
// A manifest has two sections. objects declares new objects with their
// values and relations; updates then replaces or clears single bindings on
// objects declared above.
//
//	objects:
//	  - name: alice
//	    category: person
//	    values:
//	      - attribute: age
//	        integer: 30
//	    relations:
//	      - configuration: knows
//	        target: bob
//	updates:
//	  - object: alice
//	    values:
//	      - attribute: age
//	        integer: 31
//	      - attribute: nickname
//	        clear: true
package manifest

import (
	"io"
	"math"
	"os"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	"gopkg.in/yaml.v3"

	"github.com/mesh-intelligence/eav/pkg/types"
)

// Manifest is the decoded form of a manifest file.
type Manifest struct {
	Objects []ObjectSpec `yaml:"objects"`
	Updates []UpdateSpec `yaml:"updates,omitempty"`
}

// ObjectSpec declares one object.
type ObjectSpec struct {
	Name      string         `yaml:"name"`
	Category  string         `yaml:"category"`
	Values    []ValueSpec    `yaml:"values,omitempty"`
	Relations []RelationSpec `yaml:"relations,omitempty"`
}

// UpdateSpec replaces bindings on an object declared in the objects section.
type UpdateSpec struct {
	Object    string         `yaml:"object"`
	Values    []ValueSpec    `yaml:"values,omitempty"`
	Relations []RelationSpec `yaml:"relations,omitempty"`
}

// DictionaryEntrySpec is the YAML form of a dictionary entry.
type DictionaryEntrySpec struct {
	Dictionary string `yaml:"dictionary"`
	Key        string `yaml:"key"`
	Label      string `yaml:"label,omitempty"`
}

// ValueSpec binds one attribute. Exactly one payload field must be set,
// except in updates where clear: true removes the binding instead.
type ValueSpec struct {
	Attribute       string               `yaml:"attribute"`
	Date            *string              `yaml:"date,omitempty"`
	DictionaryEntry *DictionaryEntrySpec `yaml:"dictionary_entry,omitempty"`
	Double          *float64             `yaml:"double,omitempty"`
	Integer         *int64               `yaml:"integer,omitempty"`
	Boolean         *bool                `yaml:"boolean,omitempty"`
	String          *string              `yaml:"string,omitempty"`
	Clear           bool                 `yaml:"clear,omitempty"`
}

// RelationSpec adds a relation to a target object named in the same
// manifest. In updates, clear: true removes the relation instead.
type RelationSpec struct {
	Configuration string `yaml:"configuration"`
	Target        string `yaml:"target,omitempty"`
	Clear         bool   `yaml:"clear,omitempty"`
}

// Decode reads a manifest. Unknown keys are rejected.
func Decode(r io.Reader) (*Manifest, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var m Manifest
	if err := dec.Decode(&m); err != nil {
		if errors.Is(err, io.EOF) {
			return &m, nil
		}
		return nil, errors.Wrapf(types.ErrInvalidArgument, "decoding manifest: %v", err)
	}
	return &m, nil
}

// Load decodes the manifest file at path. A file that cannot be opened is
// reported as ErrInvalidArgument under the cockroachdb errors.Is.
func Load(path string) (*Manifest, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Mark(errors.Wrapf(err, "opening manifest %s", path), types.ErrInvalidArgument)
	}
	defer f.Close()
	return Decode(f)
}

// dateLayouts are tried in order when parsing date values.
var dateLayouts = []string{"2006-01-02", time.RFC3339Nano}

func parseDate(s string) (time.Time, error) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, errors.Wrapf(types.ErrInvalidArgument, "date %q: expected YYYY-MM-DD or RFC 3339", s)
}

// payloads names the payload fields that are set.
func (v ValueSpec) payloads() []string {
	var set []string
	if v.Date != nil {
		set = append(set, "date")
	}
	if v.DictionaryEntry != nil {
		set = append(set, "dictionary_entry")
	}
	if v.Double != nil {
		set = append(set, "double")
	}
	if v.Integer != nil {
		set = append(set, "integer")
	}
	if v.Boolean != nil {
		set = append(set, "boolean")
	}
	if v.String != nil {
		set = append(set, "string")
	}
	return set
}

// checkClear rejects a clear entry that also carries a payload.
func (v ValueSpec) checkClear() error {
	if set := v.payloads(); len(set) > 0 {
		return errors.Wrapf(types.ErrInvalidArgument, "attribute %s: clear takes no value (%s given)",
			v.Attribute, strings.Join(set, ", "))
	}
	return nil
}

// Value converts the payload into a typed value.
// Returns ErrInvalidArgument unless exactly one payload field is set, and for
// NaN or infinite doubles.
func (v ValueSpec) Value() (types.Value, error) {
	set := v.payloads()
	switch len(set) {
	case 1:
	case 0:
		return nil, errors.Wrapf(types.ErrInvalidArgument, "attribute %s: no value given", v.Attribute)
	default:
		return nil, errors.Wrapf(types.ErrInvalidArgument, "attribute %s: several values given (%s)",
			v.Attribute, strings.Join(set, ", "))
	}

	switch {
	case v.Date != nil:
		t, err := parseDate(*v.Date)
		if err != nil {
			return nil, err
		}
		return types.NewDateValue(t), nil
	case v.DictionaryEntry != nil:
		dictionary, err := types.NewDictionaryIdentifier(v.DictionaryEntry.Dictionary)
		if err != nil {
			return nil, errors.Wrapf(err, "attribute %s", v.Attribute)
		}
		return types.NewDictionaryEntryValue(types.DictionaryEntry{
			Dictionary: dictionary,
			Key:        v.DictionaryEntry.Key,
			Label:      v.DictionaryEntry.Label,
		}), nil
	case v.Double != nil:
		if math.IsNaN(*v.Double) || math.IsInf(*v.Double, 0) {
			return nil, errors.Wrapf(types.ErrInvalidArgument, "attribute %s: double must be finite, got %v",
				v.Attribute, *v.Double)
		}
		return types.NewDoubleValue(*v.Double), nil
	case v.Integer != nil:
		return types.NewIntegerValue(*v.Integer), nil
	case v.Boolean != nil:
		return types.NewBooleanValue(*v.Boolean), nil
	default:
		return types.NewStringValue(*v.String), nil
	}
}

// checkClear rejects a clear entry that also names a target.
func (r RelationSpec) checkClear() error {
	if r.Target != "" {
		return errors.Wrapf(types.ErrInvalidArgument, "relation %s: clear takes no target (%q given)",
			r.Configuration, r.Target)
	}
	return nil
}
