package udimgen

import "strconv"

// Mip priorities written into generated commands.
const (
	PriorityAO      = 0.9
	PriorityNormal  = 0.7
	PrioritySpec    = 0.1
	DefaultPriority = PrioritySpec
)

// Command is the generator state folded from a texture's flags.
type Command struct {
	Options      string  // Accumulated tool options, each followed by a space
	Priority     float64 // Priority of the last priority-affecting flag
	Unrecognized int     // Number of unrecognized flags seen
}

// FoldFlags reduces flags left to right. Later priority flags overwrite
// earlier ones; option flags accumulate in order.
func FoldFlags(flags []ProcessFlag) Command {
	c := Command{Priority: DefaultPriority}
	for _, f := range flags {
		c = c.apply(f)
	}

	return c
}

// apply returns the state after one flag.
func (c Command) apply(f ProcessFlag) Command {
	switch f {
	case ProcessFlagAO:
		c.Priority = PriorityAO
	case ProcessFlagSpec:
		c.Priority = PrioritySpec
		c.Options += "-specmap "
	case ProcessFlagNormal:
		c.Priority = PriorityNormal
		c.Options += "-normalmap "
	case ProcessFlagHighPrec:
		c.Options += "-highprec "
	default:
		c.Unrecognized++
	}

	return c
}

// PriorityString renders the priority in its shortest decimal form.
func (c Command) PriorityString() string {
	return formatFloat(c.Priority)
}

// formatFloat formats a float64 value to a string.
func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
