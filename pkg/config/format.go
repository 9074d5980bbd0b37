package config

// Label renders a rule identifier in format r. A rule without a name is
// always shown by code, as is any unrecognized format.
func (r RuleFormat) Label(code, name string) string {
	switch {
	case name == "":
		return code
	case r == RuleFormatName:
		return name
	case r == RuleFormatCombined:
		return code + "/" + name
	default:
		return code
	}
}
