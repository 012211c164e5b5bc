package usecase

// PageRequest is a 1-based page selection. Zero values fall back to defaults.
type PageRequest struct {
	Page     int
	PageSize int
}

type PageLimits struct {
	DefaultSize int
	MaxSize     int
}

func DefaultPageLimits() PageLimits {
	return PageLimits{DefaultSize: 20, MaxSize: 100}
}

type Page[T any] struct {
	Items      []T
	Page       int
	PageSize   int
	TotalItems int
	TotalPages int
}

func paginate[T any](items []T, req PageRequest, limits PageLimits) Page[T] {
	if limits.DefaultSize <= 0 {
		limits = DefaultPageLimits()
	}
	size := req.PageSize
	if size <= 0 {
		size = limits.DefaultSize
	}
	if limits.MaxSize > 0 && size > limits.MaxSize {
		size = limits.MaxSize
	}
	page := req.Page
	if page <= 0 {
		page = 1
	}

	total := len(items)
	start := (page - 1) * size
	if start > total {
		start = total
	}
	end := start + size
	if end > total {
		end = total
	}

	return Page[T]{
		Items:      append([]T(nil), items[start:end]...),
		Page:       page,
		PageSize:   size,
		TotalItems: total,
		TotalPages: (total + size - 1) / size,
	}
}
