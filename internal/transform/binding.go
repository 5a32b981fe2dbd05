package transform

import "strings"

// ConfigBinding holds the Python names a patched migration uses to resolve the
// swappable model. The names are a pure function of the model and override so
// the idempotency marker stays stable across runs.
type ConfigBinding struct {
	// SettingName is the Django setting holding the model, e.g. AUTH_USER_MODEL.
	SettingName string

	// NamespaceConstName receives the app label, e.g. AUTH_USER_APP_LABEL.
	NamespaceConstName string

	// NameConstName receives the model name, e.g. AUTH_USER_MODEL_NAME.
	NameConstName string
}

// NewConfigBinding derives the binding for model. A blank override falls back
// to <APP_LABEL>_<MODEL_NAME>_MODEL; any other override is upper-cased.
func NewConfigBinding(model ModelIdentifier, override string) ConfigBinding {
	settingName := strings.TrimSpace(override)
	if settingName == "" {
		settingName = model.Namespace + "_" + model.Name + "_MODEL"
	}
	settingName = strings.ToUpper(settingName)

	return ConfigBinding{
		SettingName:        settingName,
		NamespaceConstName: strings.ToUpper(model.Namespace + "_" + model.Name + "_APP_LABEL"),
		NameConstName:      settingName + "_NAME",
	}
}
