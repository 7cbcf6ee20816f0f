package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/cockroachdb/errors"

	"github.com/mesh-intelligence/eav/pkg/types"
)

// objectJSON is the JSON rendering of an object.
type objectJSON struct {
	ID        string         `json:"id"`
	Name      string         `json:"name"`
	Category  string         `json:"category"`
	Values    []valueJSON    `json:"values"`
	Relations []relationJSON `json:"relations"`
}

type valueJSON struct {
	Attribute string `json:"attribute"`
	Kind      string `json:"kind"`
	Value     any    `json:"value"`
}

type relationJSON struct {
	Configuration string `json:"configuration"`
	Direction     string `json:"direction"`
	SourceID      string `json:"source_id"`
	TargetID      string `json:"target_id"`
}

// jsonValueMatcher converts values into JSON-friendly payloads.
type jsonValueMatcher struct{}

func (jsonValueMatcher) MatchDate(v types.DateValue) any {
	return v.Date().Format(time.RFC3339Nano)
}
func (jsonValueMatcher) MatchDictionaryEntry(v types.DictionaryEntryValue) any { return v.Entry() }
func (jsonValueMatcher) MatchDouble(v types.DoubleValue) any                   { return v.Double() }
func (jsonValueMatcher) MatchInteger(v types.IntegerValue) any                 { return v.Integer() }
func (jsonValueMatcher) MatchBoolean(v types.BooleanValue) any                 { return v.Boolean() }
func (jsonValueMatcher) MatchString(v types.StringValue) any                   { return v.Str() }

func toObjectJSON(o *types.Object) (objectJSON, error) {
	out := objectJSON{
		ID:        o.ID(),
		Name:      o.Name(),
		Category:  string(o.Category().Identifier()),
		Values:    []valueJSON{},
		Relations: []relationJSON{},
	}
	for _, ov := range o.Values() {
		payload, err := types.MatchValue[any](ov.Value(), jsonValueMatcher{})
		if err != nil {
			return objectJSON{}, err
		}
		out.Values = append(out.Values, valueJSON{
			Attribute: string(ov.Attribute().Identifier()),
			Kind:      ov.Kind().String(),
			Value:     payload,
		})
	}
	for _, r := range o.Relations() {
		out.Relations = append(out.Relations, relationJSON{
			Configuration: string(r.Configuration().Identifier()),
			Direction:     r.Configuration().Direction().String(),
			SourceID:      r.SourceID(),
			TargetID:      r.TargetID(),
		})
	}
	return out, nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return errors.Wrap(enc.Encode(v), "encode JSON")
}

// writeObjects renders objects as JSON or as indented text. In text mode
// relation targets are shown by name when the target is among objects.
func writeObjects(w io.Writer, objects []*types.Object, jsonMode bool) error {
	if jsonMode {
		out := make([]objectJSON, 0, len(objects))
		for _, o := range objects {
			oj, err := toObjectJSON(o)
			if err != nil {
				return err
			}
			out = append(out, oj)
		}
		return writeJSON(w, out)
	}

	names := make(map[string]string, len(objects))
	for _, o := range objects {
		names[o.ID()] = o.Name()
	}
	for _, o := range objects {
		fmt.Fprintf(w, "%s (%s) %s\n", o.Name(), o.Category().Identifier(), o.ID())
		for _, ov := range o.Values() {
			fmt.Fprintf(w, "  %s = %s\n", ov.Attribute().Identifier(), ov.Value())
		}
		for _, r := range o.Relations() {
			target := r.TargetID()
			if name, ok := names[target]; ok {
				target = name
			}
			arrow := "->"
			if r.Configuration().Direction() == types.Bidirectional {
				arrow = "<->"
			}
			fmt.Fprintf(w, "  %s %s %s\n", r.Configuration().Identifier(), arrow, target)
		}
	}
	return nil
}
