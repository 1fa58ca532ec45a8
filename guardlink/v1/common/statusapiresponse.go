package common

// StatusAPIResponse mirrors the API's success/error envelope.
type StatusAPIResponse[T any] struct {
	Data    T      `json:"data,omitempty"`
	Message string `json:"message,omitempty"`
}

type Pagination struct {
	Total int64 `json:"total"`
}

// SearchAPIResponse mirrors the API's list envelope.
type SearchAPIResponse[T any] struct {
	Data       []T        `json:"data"`
	Pagination Pagination `json:"pagination"`
	Message    string     `json:"message,omitempty"`
}
