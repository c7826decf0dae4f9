package models

import "encoding/json"

// Page is a slice of items plus optional pagination metadata. The backend
// returns paginated lists either as a Spring-style envelope
// ({"content": [...], "totalElements": ..., ...}) or as a bare JSON array;
// both decode to the same Content slice.
type Page[T any] struct {
	Content       []T   `json:"content"`
	TotalElements int64 `json:"totalElements"`
	TotalPages    int   `json:"totalPages"`
	Number        int   `json:"number"`
	Size          int   `json:"size"`
}

func (p *Page[T]) UnmarshalJSON(data []byte) error {
	var bare []T
	if err := json.Unmarshal(data, &bare); err == nil {
		*p = Page[T]{Content: bare, TotalElements: int64(len(bare)), TotalPages: 1}
		return nil
	}

	type envelope Page[T] // avoid recursing into this method
	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return err
	}
	*p = Page[T](env)
	return nil
}

// Empty reports whether the page holds no items.
func (p *Page[T]) Empty() bool {
	return len(p.Content) == 0
}
