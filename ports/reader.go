package ports

import (
	"context"

	"edakit/domain/dataset"
)

// FrameSource loads a dataset into memory for analysis. Implementations
// receive their connection handles or file paths at construction time.
type FrameSource interface {
	Load(ctx context.Context) (*dataset.Frame, error)
}
