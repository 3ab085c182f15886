package database

// Pagination describes the slice of a paginated result set.
type Pagination struct {
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	TotalPages int   `json:"total_pages"`
}

// Result is the uniform envelope every repository and manager operation
// returns. Callers must check Success before trusting Data; Error is a
// plain message, not a structured code.
type Result[T any] struct {
	Success    bool        `json:"success"`
	Data       T           `json:"data,omitempty"`
	Error      string      `json:"error,omitempty"`
	Message    string      `json:"message,omitempty"`
	Pagination *Pagination `json:"pagination,omitempty"`
}

// Ok wraps data in a success envelope.
func Ok[T any](data T) Result[T] {
	return Result[T]{Success: true, Data: data}
}

// OkMsg wraps data in a success envelope with a human-readable message.
func OkMsg[T any](data T, message string) Result[T] {
	return Result[T]{Success: true, Data: data, Message: message}
}

// OkPage wraps a page of data with pagination metadata.
func OkPage[T any](data T, p *Pagination) Result[T] {
	return Result[T]{Success: true, Data: data, Pagination: p}
}

// Fail converts an internal error into a failure envelope. Repositories
// never let errors escape past this conversion.
func Fail[T any](err error) Result[T] {
	return Result[T]{Success: false, Error: err.Error()}
}

// PageFor computes pagination metadata for a total row count. Returns nil
// when the caller did not request pagination.
func PageFor(total int64, page, limit int) *Pagination {
	if limit <= 0 {
		return nil
	}
	if page <= 0 {
		page = 1
	}
	pages := int((total + int64(limit) - 1) / int64(limit))
	return &Pagination{Total: total, Page: page, Limit: limit, TotalPages: pages}
}
