package markers

import (
	"github.com/invopop/jsonschema"
)

// SettingsSchema describes the per-topic marker settings for settings editors.
var SettingsSchema = jsonschema.Reflect(&Settings{})
