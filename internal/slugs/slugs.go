package slugs

import (
	"context"
	"fmt"

	"github.com/gosimple/slug"
)

// ExistsFunc reports whether a slug is already taken.
type ExistsFunc func(ctx context.Context, slug string) (bool, error)

// Unique returns slug.Make(name), suffixed with -1, -2, ... until exists
// reports it free.
func Unique(ctx context.Context, name string, exists ExistsFunc) (string, error) {
	base := slug.Make(name)
	if base == "" {
		return "", fmt.Errorf("cannot build slug from %q", name)
	}

	result := base
	for i := 1; ; i++ {
		taken, err := exists(ctx, result)
		if err != nil {
			return "", err
		}
		if !taken {
			return result, nil
		}
		result = fmt.Sprintf("%s-%d", base, i)
	}
}

func Make(name string) string {
	return slug.Make(name)
}
