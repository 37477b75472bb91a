package eac

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/buger/jsonparser"
)

const activityMapKey = "activityConfigMap"

var (
	// ErrCorruptConfig means the stored blob is not valid JSON (or its
	// activityConfigMap is not an object). Callers must not write anything
	// back when they see this.
	ErrCorruptConfig = errors.New("corrupt app configuration")

	// ErrActivityNotFound means a named activity has no entry to remove.
	ErrActivityNotFound = errors.New("activity not configured")
)

// Enable inserts (or overwrites) the handwriting bundle for one activity.
// blob is the previously stored JSON document, or nil when the app has no
// stored configuration yet; the returned document differs from blob only in
// the targeted activityConfigMap entry. activity may be empty, in which case
// the entry is keyed by AnyActivity.
func Enable(blob []byte, drawViewKey, activity string) ([]byte, error) {
	if activity == "" {
		activity = AnyActivity
	}

	entry, err := json.Marshal(NewActivityConfig(drawViewKey, activity))
	if err != nil {
		return nil, fmt.Errorf("encoding activity config: %w", err)
	}

	if len(blob) == 0 {
		doc, err := json.Marshal(map[string]any{
			activityMapKey: map[string]json.RawMessage{activity: entry},
		})
		if err != nil {
			return nil, fmt.Errorf("encoding config: %w", err)
		}
		return doc, nil
	}

	if err := validate(blob); err != nil {
		return nil, err
	}

	out, err := jsonparser.Set(blob, entry, activityMapKey, activity)
	if err != nil {
		return nil, fmt.Errorf("updating %s: %w", activityMapKey, err)
	}
	return out, nil
}

// Disable removes handwriting entries from the blob. With a named activity
// only that entry is removed; with an empty name every entry that carries an
// enabled noteConfig with a draw view key is removed (entries the device put
// there for other purposes are kept).
func Disable(blob []byte, activity string) ([]byte, error) {
	if err := validate(blob); err != nil {
		return nil, err
	}

	if activity != "" {
		if _, _, _, err := jsonparser.Get(blob, activityMapKey, activity); err != nil {
			return nil, fmt.Errorf("%w: %s", ErrActivityNotFound, activity)
		}
		return jsonparser.Delete(blob, activityMapKey, activity), nil
	}

	infos, err := Activities(blob)
	if err != nil {
		return nil, err
	}
	for _, info := range infos {
		if info.Enabled && info.DrawViewKey != "" {
			blob = jsonparser.Delete(blob, activityMapKey, info.Activity)
		}
	}
	return blob, nil
}

// ActivityInfo is the decoded view of one activityConfigMap entry, enough
// for listing. Enabled reflects noteConfig.enable, not the outer EAC flag.
type ActivityInfo struct {
	Activity    string
	Enabled     bool
	DrawViewKey string
}

// Activities decodes the per-activity handwriting state of a blob. A missing
// activityConfigMap yields an empty slice.
func Activities(blob []byte) ([]ActivityInfo, error) {
	if err := validate(blob); err != nil {
		return nil, err
	}

	var infos []ActivityInfo
	err := jsonparser.ObjectEach(blob, func(key, value []byte, _ jsonparser.ValueType, _ int) error {
		info := ActivityInfo{Activity: string(key)}
		info.Enabled, _ = jsonparser.GetBoolean(value, "noteConfig", "enable")
		info.DrawViewKey, _ = jsonparser.GetString(value, "noteConfig", "drawViewKey")
		infos = append(infos, info)
		return nil
	}, activityMapKey)
	if err != nil && !errors.Is(err, jsonparser.KeyPathNotFoundError) {
		return nil, fmt.Errorf("%w: %v", ErrCorruptConfig, err)
	}
	return infos, nil
}

// validate rejects blobs the merge must not touch: documents that do not
// parse, and documents where activityConfigMap exists but is not an object.
func validate(blob []byte) error {
	if !json.Valid(blob) {
		return ErrCorruptConfig
	}
	_, typ, _, err := jsonparser.Get(blob, activityMapKey)
	if err != nil && !errors.Is(err, jsonparser.KeyPathNotFoundError) {
		return fmt.Errorf("%w: %v", ErrCorruptConfig, err)
	}
	if err == nil && typ != jsonparser.Object {
		return fmt.Errorf("%w: %s is %s, want object", ErrCorruptConfig, activityMapKey, typ)
	}
	return nil
}
