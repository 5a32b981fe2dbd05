package transform

import (
	"fmt"
	"regexp"
	"strings"
)

const (
	markerFormat     = "# SWAPIFIED: %s"
	settingsImport   = "from django.conf import settings"
	initialMigration = "0001_initial"

	// objectNameLiteral is matched verbatim. It only covers models named
	// "User"; other model names are left as string literals.
	objectNameLiteral = "'object_name': 'User'"

	// emptyDependsOn is synthesized after the class header when a migration
	// declares no dependencies yet.
	emptyDependsOn = "\n\n    depends_on = (\n    )\n"
)

var (
	encodingLineRe    = regexp.MustCompile(`# -\*- coding: utf-8 -\*-`)
	migrationImportRe = regexp.MustCompile(`from south\.v2 import (?:Schema|Data)Migration`)
	migrationClassRe  = regexp.MustCompile(`class Migration\((?:Schema|Data)Migration\):`)
	dependsOnRe       = regexp.MustCompile(`depends_on = \(`)
)

// Step is a single named rewrite. Rewrite is pure: it returns new text and
// leaves text unchanged when its anchor is missing or its target is present.
type Step struct {
	Name    string
	Rewrite func(text string) string
}

// Transformer applies the swappable-model rewrite for one model/setting pair.
// A Transformer is immutable after construction and safe for concurrent use.
type Transformer struct {
	model   ModelIdentifier
	binding ConfigBinding
	marker  string

	lookupRe      *regexp.Regexp
	modelRe       *regexp.Regexp
	dynamicLookup string
	dependency    string
	constants     string

	steps []Step
}

// New creates a Transformer for model. override replaces the derived setting
// name when non-blank.
func New(model ModelIdentifier, override string) *Transformer {
	binding := NewConfigBinding(model, override)
	quoted := regexp.QuoteMeta(model.String())

	t := &Transformer{
		model:         model,
		binding:       binding,
		marker:        fmt.Sprintf(markerFormat, binding.SettingName),
		lookupRe:      regexp.MustCompile(`(?i)u?"orm\['` + quoted + `'\]"`),
		modelRe:       regexp.MustCompile(`(?i)u?['"]` + quoted + `['"]`),
		dynamicLookup: `"orm['{}']".format(` + binding.SettingName + `)`,
		dependency:    fmt.Sprintf("(%s, u'%s'),", binding.NamespaceConstName, initialMigration),
		constants: strings.Join([]string{
			fmt.Sprintf("%s = getattr(settings, u'%s', u'%s')", binding.SettingName, binding.SettingName, model),
			fmt.Sprintf("%s, %s = %s.split('.')", binding.NamespaceConstName, binding.NameConstName, binding.SettingName),
		}, "\n"),
	}

	t.steps = []Step{
		{Name: "replace-lookup", Rewrite: t.ReplaceLookup},
		{Name: "replace-model", Rewrite: t.ReplaceModel},
		{Name: "replace-object-name", Rewrite: t.ReplaceObjectName},
		{Name: "add-dependency", Rewrite: t.AddDependency},
		{Name: "add-settings-import", Rewrite: t.AddSettingsImport},
		{Name: "add-swappable-constants", Rewrite: t.AddSwappableConstants},
		{Name: "set-marker", Rewrite: t.SetMarker},
	}

	return t
}

// NewFromString parses model and creates a Transformer for it.
func NewFromString(model, override string) (*Transformer, error) {
	id, err := ParseModel(model)
	if err != nil {
		return nil, err
	}
	return New(id, override), nil
}

// Model returns the dotted model string, e.g. "auth.User".
func (t *Transformer) Model() string { return t.model.String() }

// Binding returns the derived setting and constant names.
func (t *Transformer) Binding() ConfigBinding { return t.binding }

// Marker returns the idempotency marker line.
func (t *Transformer) Marker() string { return t.marker }

// Steps returns the rewrite steps in the order Apply runs them.
func (t *Transformer) Steps() []Step {
	steps := make([]Step, len(t.steps))
	copy(steps, t.steps)
	return steps
}

// IsAlreadyPatched reports whether text carries the idempotency marker.
func (t *Transformer) IsAlreadyPatched(text string) bool {
	return strings.Contains(text, t.marker)
}

// UsesDynamicLookup reports whether text already resolves the frozen ORM
// lookup through the setting.
func (t *Transformer) UsesDynamicLookup(text string) bool {
	return strings.Contains(text, t.dynamicLookup)
}

// Apply runs every step in order. Marked text is returned unchanged.
func (t *Transformer) Apply(text string) string {
	if t.IsAlreadyPatched(text) {
		return text
	}
	for _, step := range t.steps {
		text = step.Rewrite(text)
	}
	return text
}

// ReplaceLookup rewrites frozen ORM lookups keyed by the literal model into a
// lookup formatted from the setting.
func (t *Transformer) ReplaceLookup(text string) string {
	return t.lookupRe.ReplaceAllLiteralString(text, "u"+t.dynamicLookup)
}

// ReplaceModel turns quoted model strings into a bare reference to the setting.
// The default inside an existing constants block is kept as a literal, so an
// unmarked file can be run through Apply again without damage.
func (t *Transformer) ReplaceModel(text string) string {
	parts := strings.Split(text, t.constants)
	for i, part := range parts {
		parts[i] = t.modelRe.ReplaceAllLiteralString(part, t.binding.SettingName)
	}
	return strings.Join(parts, t.constants)
}

// ReplaceObjectName points the frozen model's object_name at the derived
// model-name constant.
func (t *Transformer) ReplaceObjectName(text string) string {
	return strings.ReplaceAll(text, objectNameLiteral, "'object_name': "+t.binding.NameConstName)
}

// AddDependency prepends the app-label dependency to depends_on, creating the
// attribute under the class header when it is missing.
func (t *Transformer) AddDependency(text string) string {
	if strings.Contains(text, t.dependency) {
		return text
	}
	if !dependsOnRe.MatchString(text) {
		text = appendAfter(migrationClassRe, text, emptyDependsOn)
	}
	return appendAfter(dependsOnRe, text, "\n        "+t.dependency)
}

// AddSettingsImport imports django settings after the South migration import.
func (t *Transformer) AddSettingsImport(text string) string {
	if strings.Contains(text, settingsImport) {
		return text
	}
	return appendAfter(migrationImportRe, text, "\n"+settingsImport)
}

// AddSwappableConstants declares the setting and its split constants right
// before the migration class.
func (t *Transformer) AddSwappableConstants(text string) string {
	if strings.Contains(text, t.constants) {
		return text
	}
	return migrationClassRe.ReplaceAllStringFunc(text, func(header string) string {
		return t.constants + "\n\n\n" + header
	})
}

// SetMarker inserts the idempotency marker below the encoding declaration.
func (t *Transformer) SetMarker(text string) string {
	return appendAfter(encodingLineRe, text, "\n"+t.marker)
}

// appendAfter inserts suffix after every match of re.
func appendAfter(re *regexp.Regexp, text, suffix string) string {
	return re.ReplaceAllStringFunc(text, func(match string) string {
		return match + suffix
	})
}
