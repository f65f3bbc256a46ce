package platform

import (
	"fmt"
	"sort"
)

// Intent actions and extras
const (
	ActionView = "android.intent.action.VIEW"
	ExtraTitle = "title"
	MimeVideo  = "video/*"
)

// Intent flags, same values as on Android
const (
	FlagGrantReadURIPermission = 0x00000001
	FlagActivityNewTask        = 0x10000000
)

// Intent is a platform-neutral request to open Data with an application
// that handles Type. A non-empty Package restricts the request to that
// application.
type Intent struct {
	Action  string
	Data    string
	Type    string
	Package string
	Extras  map[string]string
	Flags   int
}

// NewViewIntent creates a view request for the locator with the given MIME type.
func NewViewIntent(data, mimeType string) *Intent {
	return &Intent{Action: ActionView, Data: data, Type: mimeType}
}

func (i *Intent) SetPackage(pkg string) *Intent { i.Package = pkg; return i }
func (i *Intent) AddFlags(flags int) *Intent    { i.Flags |= flags; return i }

func (i *Intent) PutExtra(key, value string) *Intent {
	if i.Extras == nil {
		i.Extras = make(map[string]string)
	}
	i.Extras[key] = value
	return i
}

// Extra returns the extra value and whether it was set.
func (i *Intent) Extra(key string) (string, bool) {
	v, ok := i.Extras[key]
	return v, ok
}

// IsConstrained reports whether the intent targets a specific application.
func (i *Intent) IsConstrained() bool { return i.Package != "" }

// Unconstrained returns a copy with the same action, data, type and flags
// but without the target application and its extras.
func (i *Intent) Unconstrained() *Intent {
	return &Intent{Action: i.Action, Data: i.Data, Type: i.Type, Flags: i.Flags}
}

// Args converts the intent to activity manager arguments
// (`am start` / `cmd package resolve-activity`).
func (i *Intent) Args() []string {
	var args []string
	if i.Action != "" {
		args = append(args, "-a", i.Action)
	}
	if i.Data != "" {
		args = append(args, "-d", i.Data)
	}
	if i.Type != "" {
		args = append(args, "-t", i.Type)
	}
	if i.Package != "" {
		args = append(args, "-p", i.Package)
	}
	if i.Flags != 0 {
		args = append(args, "-f", fmt.Sprintf("0x%08x", i.Flags))
	}
	keys := make([]string, 0, len(i.Extras))
	for k := range i.Extras {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		args = append(args, "--es", k, i.Extras[k])
	}
	return args
}

func (i *Intent) String() string {
	target := i.Package
	if target == "" {
		target = "*"
	}
	return fmt.Sprintf("%s %s (%s) -> %s", i.Action, i.Data, i.Type, target)
}
