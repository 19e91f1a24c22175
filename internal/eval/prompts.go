package eval

import (
	_ "embed"
)

// fitSystemPrompt is the fixed system instruction demanding JSON-only output
// with exactly the four evaluation fields.
//
//go:embed prompts/fit_system.md
var fitSystemPrompt string
