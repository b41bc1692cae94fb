package schema

import (
	"fmt"

	"github.com/0xalexb/confedit/document"
)

// Feature document field names.
const (
	fieldScreens      = "screens"
	fieldGlobalConfig = "globalConfig"
	fieldName         = "name"
	fieldIsChecked    = "isChecked"
	fieldConfig       = "config"
	fieldValue        = "value"
	fieldDescription  = "description"
)

// Scope selects where a config option lives.
type Scope int

const (
	// ScopeScreen addresses screens[i].config.
	ScopeScreen Scope = iota
	// ScopeGlobal addresses globalConfig.
	ScopeGlobal
)

// String returns the scope name.
func (s Scope) String() string {
	if s == ScopeGlobal {
		return "global"
	}

	return "screen"
}

// ParseScope accepts "screen" or "global".
func ParseScope(s string) (Scope, error) {
	switch s {
	case "screen":
		return ScopeScreen, nil
	case "global":
		return ScopeGlobal, nil
	default:
		return ScopeScreen, fmt.Errorf("%w: unknown scope %q", document.ErrValidation, s)
	}
}

// ConfigOption is one toggle with its immutable label and tooltip.
type ConfigOption struct {
	Key         string `json:"key"`
	Value       bool   `json:"value"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// FeatureScreen is one screen of a feature document.
type FeatureScreen struct {
	Name      string         `json:"name"`
	IsChecked bool           `json:"isChecked"`
	Config    []ConfigOption `json:"config"`
}

// BindFeatures validates the shape of a feature document. The tree is returned as is.
func BindFeatures(root document.Node) (document.Node, error) {
	screens, err := Screens(root)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]int, len(screens))

	for i, screen := range screens {
		if first, dup := seen[screen.Name]; dup {
			return nil, shapeError(screenPath(i).Append(document.Field(fieldName)),
				"screen name %q already used by screens[%d]", screen.Name, first)
		}

		seen[screen.Name] = i
	}

	if _, err := GlobalConfig(root); err != nil {
		return nil, err
	}

	return root, nil
}

// Screens returns the typed screen list.
func Screens(root document.Node) ([]FeatureScreen, error) {
	arr, err := screensArray(root)
	if err != nil {
		return nil, err
	}

	screens := make([]FeatureScreen, 0, arr.Len())

	for i, node := range arr.All() {
		path := screenPath(i)

		obj, err := object(node, path)
		if err != nil {
			return nil, err
		}

		name, err := stringField(obj, fieldName, path)
		if err != nil {
			return nil, err
		}

		checked, err := boolField(obj, fieldIsChecked, path)
		if err != nil {
			return nil, err
		}

		cfgNode, err := member(obj, fieldConfig, path)
		if err != nil {
			return nil, err
		}

		options, err := configOptions(cfgNode, path.Append(document.Field(fieldConfig)))
		if err != nil {
			return nil, err
		}

		screens = append(screens, FeatureScreen{Name: name, IsChecked: checked, Config: options})
	}

	return screens, nil
}

// GlobalConfig returns the typed global options.
func GlobalConfig(root document.Node) ([]ConfigOption, error) {
	rootObj, err := object(root, document.Path{})
	if err != nil {
		return nil, err
	}

	path := document.Path{document.Field(fieldGlobalConfig)}

	node, err := member(rootObj, fieldGlobalConfig, document.Path{})
	if err != nil {
		return nil, err
	}

	return configOptions(node, path)
}

// ScreenIndex finds a screen by name.
func ScreenIndex(root document.Node, name string) (int, error) {
	arr, err := screensArray(root)
	if err != nil {
		return 0, err
	}

	for i, node := range arr.All() {
		obj, ok := node.(*document.Object)
		if !ok {
			continue
		}

		if v, err := document.GetAtPath(obj, document.Path{document.Field(fieldName)}); err == nil {
			if s, ok := v.(document.String); ok && string(s) == name {
				return i, nil
			}
		}
	}

	return 0, &document.PathError{
		Path: document.Path{document.Field(fieldScreens)},
		Err:  fmt.Errorf("%w: no screen named %q", document.ErrKeyNotFound, name),
	}
}

// VisibilityPath returns the path of the named screen's isChecked flag.
func VisibilityPath(root document.Node, screen string) (document.Path, error) {
	i, err := ScreenIndex(root, screen)
	if err != nil {
		return nil, err
	}

	return screenPath(i).Append(document.Field(fieldIsChecked)), nil
}

// OptionValuePath returns the path of an option's value flag. screen is ignored for
// ScopeGlobal. The option must exist.
func OptionValuePath(root document.Node, scope Scope, screen, option string) (document.Path, error) {
	var base document.Path

	switch scope {
	case ScopeGlobal:
		base = document.Path{document.Field(fieldGlobalConfig)}
	case ScopeScreen:
		i, err := ScreenIndex(root, screen)
		if err != nil {
			return nil, err
		}

		base = screenPath(i).Append(document.Field(fieldConfig))
	default:
		return nil, fmt.Errorf("%w: unknown scope %d", document.ErrValidation, scope)
	}

	path := base.Append(document.Field(option), document.Field(fieldValue))

	if _, err := document.GetAtPath(root, path); err != nil {
		return nil, err
	}

	return path, nil
}

func screensArray(root document.Node) (*document.Array, error) {
	rootObj, err := object(root, document.Path{})
	if err != nil {
		return nil, err
	}

	node, err := member(rootObj, fieldScreens, document.Path{})
	if err != nil {
		return nil, err
	}

	return array(node, document.Path{document.Field(fieldScreens)})
}

func screenPath(i int) document.Path {
	return document.Path{document.Field(fieldScreens), document.Index(i)}
}

func configOptions(node document.Node, path document.Path) ([]ConfigOption, error) {
	obj, err := object(node, path)
	if err != nil {
		return nil, err
	}

	options := make([]ConfigOption, 0, obj.Len())

	for key, optNode := range obj.All() {
		optPath := path.Append(document.Field(key))

		opt, err := object(optNode, optPath)
		if err != nil {
			return nil, err
		}

		value, err := boolField(opt, fieldValue, optPath)
		if err != nil {
			return nil, err
		}

		name, err := stringField(opt, fieldName, optPath)
		if err != nil {
			return nil, err
		}

		description, err := stringField(opt, fieldDescription, optPath)
		if err != nil {
			return nil, err
		}

		options = append(options, ConfigOption{Key: key, Value: value, Name: name, Description: description})
	}

	return options, nil
}
