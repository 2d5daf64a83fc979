package domain

import (
	"reflect"
)

// SettingsDiff lists the blob keys whose values differ between two snapshots.
type SettingsDiff map[string]any

// Diff calculates the keys changed from oldSettings to newSettings, mapped to
// their new values. It returns nil when nothing changed.
func Diff(oldSettings, newSettings Settings) SettingsDiff {
	oldBlob := oldSettings.Encode()
	delta := make(SettingsDiff)
	for k, newVal := range newSettings.Encode() {
		if !reflect.DeepEqual(oldBlob[k], newVal) {
			delta[k] = newVal
		}
	}
	if len(delta) == 0 {
		return nil
	}
	return delta
}

// AffectsAnnotation reports whether the change requires rendered paragraphs
// to be annotated again.
func (d SettingsDiff) AffectsAnnotation() bool {
	for k := range d {
		switch k {
		case KeyEnabled, KeyAsteriskEnabled:
		default:
			return true
		}
	}
	return false
}

// IsEmpty checks if the diff contains any change.
func (d SettingsDiff) IsEmpty() bool {
	return len(d) == 0
}
