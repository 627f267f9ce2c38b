package config

import "strings"

// starterTemplate is the body written by "sjq config init". Unlike the
// teacher's per-framework template registry (relevance tiers differ by
// project type), sjq profiles have no project-shape-dependent fields, so a
// single starter covers every project; {{project_name}} is still supported
// as a placeholder for the profile name.
const starterTemplate = `# sjq configuration — see "sjq config show" / "sjq config explain"
[profile.default]
max_text_length = 4096
pretty = false
strict = false

# [profile.{{project_name}}]
# extends = "default"
# query = ". | mean.amount"
# output = "totals.json"
`

// RenderInitTemplate returns the starter .sjq.toml content with
// {{project_name}} replaced by projectName.
func RenderInitTemplate(projectName string) string {
	return strings.ReplaceAll(starterTemplate, "{{project_name}}", projectName)
}
