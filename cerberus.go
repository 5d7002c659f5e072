package cerberus

// DefaultNamespace is used when no explicit namespace is provided.
const DefaultNamespace = "tarmac"

// RuntimeConfig carries configuration shared by host capability clients and their doubles.
type RuntimeConfig struct {
	// Namespace is the waPC namespace used to scope host interactions.
	// If empty, DefaultNamespace is used.
	Namespace string
}

// WithDefaults returns a copy of the configuration with empty fields replaced by their defaults.
func (c RuntimeConfig) WithDefaults() RuntimeConfig {
	if c.Namespace == "" {
		c.Namespace = DefaultNamespace
	}
	return c
}
