package ports

// Normalizer defines the interface for title normalization.
type Normalizer interface {
	Normalize(text string) string
}
