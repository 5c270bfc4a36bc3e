package i

import "context"

// SortedIndex keeps members ordered by score under a key.
type SortedIndex interface {
	Push(ctx context.Context, key string, score float64, member string) error
	// Latest returns up to n members with the highest scores, highest first.
	Latest(ctx context.Context, key string, n int64) ([]string, error)
	Count(ctx context.Context, key string) int64
}
