package pagination

const (
	// DefaultSize is the standard page size when one is not provided.
	DefaultSize = 20
	// MaxSize caps how many rows any page query can request.
	MaxSize = 100
)

// Params holds zero-indexed offset pagination inputs.
type Params struct {
	Page int
	Size int
}

// Normalize enforces the configured default and maximum sizes and clamps the
// page to zero.
func (p Params) Normalize() Params {
	if p.Page < 0 {
		p.Page = 0
	}
	if p.Size <= 0 {
		p.Size = DefaultSize
	}
	if p.Size > MaxSize {
		p.Size = MaxSize
	}
	return p
}

// Offset returns the row offset for the normalized params.
func (p Params) Offset() int {
	n := p.Normalize()
	return n.Page * n.Size
}

// Meta describes the page position within the full result set.
type Meta struct {
	Page          int   `json:"page"`
	Size          int   `json:"size"`
	TotalElements int64 `json:"totalElements"`
	TotalPages    int   `json:"totalPages"`
	First         bool  `json:"first"`
	Last          bool  `json:"last"`
}

// MetaFor derives page metadata from the store's total count for the same
// predicate.
func MetaFor(params Params, totalElements int64) Meta {
	n := params.Normalize()

	// An empty result set reports zero pages; page 0 still counts as both
	// first and last.
	totalPages := int(totalElements / int64(n.Size))
	if totalElements%int64(n.Size) != 0 {
		totalPages++
	}

	return Meta{
		Page:          n.Page,
		Size:          n.Size,
		TotalElements: totalElements,
		TotalPages:    totalPages,
		First:         n.Page == 0,
		Last:          n.Page >= totalPages-1,
	}
}
