package config

// DefaultProfile returns a new Profile populated with sjq's built-in
// defaults. This profile is used as the base when no .sjq.toml is
// present or when a named profile omits fields.
//
// Callers receive a fresh copy each time; mutating the returned value does
// not affect subsequent calls.
func DefaultProfile() *Profile {
	return &Profile{
		Query: "",
		Output: "",
		Append: false,
		ForceNew: false,
		Pretty: false,
		MaxTextLength: 4096,
		Strict: false,
	}
}
