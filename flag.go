package udimgen

// ProcessFlag is an interpreted manifest flag token.
type ProcessFlag string

const (
	// ProcessFlagAO marks an ambient occlusion map (-ao).
	ProcessFlagAO ProcessFlag = "ao"
	// ProcessFlagNormal marks a normal map (-nrm).
	ProcessFlagNormal ProcessFlag = "nrm"
	// ProcessFlagHighPrec requests high precision mips (-highprec).
	ProcessFlagHighPrec ProcessFlag = "highprec"
	// ProcessFlagSpec marks a specular map (-spec).
	ProcessFlagSpec ProcessFlag = "spec"
	// ProcessFlagUnrecognized is any token outside the flag table.
	ProcessFlagUnrecognized ProcessFlag = "unrecognized"
)

// flagTokens maps manifest tokens to flags.
var flagTokens = map[string]ProcessFlag{
	"-ao":       ProcessFlagAO,
	"-nrm":      ProcessFlagNormal,
	"-highprec": ProcessFlagHighPrec,
	"-spec":     ProcessFlagSpec,
}

// InterpretFlag maps one token to a flag. Unknown tokens yield
// ProcessFlagUnrecognized.
func InterpretFlag(token string) ProcessFlag {
	if f, ok := flagTokens[token]; ok {
		return f
	}

	return ProcessFlagUnrecognized
}

// InterpretFlags maps tokens in order, keeping unrecognized entries.
func InterpretFlags(tokens []string) []ProcessFlag {
	if len(tokens) == 0 {
		return nil
	}

	out := make([]ProcessFlag, 0, len(tokens))
	for _, tok := range tokens {
		out = append(out, InterpretFlag(tok))
	}

	return out
}

// Token returns the manifest token for a known flag, or "" for
// ProcessFlagUnrecognized.
func (f ProcessFlag) Token() string {
	switch f {
	case ProcessFlagAO:
		return "-ao"
	case ProcessFlagNormal:
		return "-nrm"
	case ProcessFlagHighPrec:
		return "-highprec"
	case ProcessFlagSpec:
		return "-spec"
	default:
		return ""
	}
}
