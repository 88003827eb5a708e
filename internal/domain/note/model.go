package note

import "errors"

const DefaultTitle = "Untitled"

var (
	ErrInvalidInput = errors.New("invalid input")
)

// TitleOrDefault подставляет DefaultTitle только для непереданного заголовка; пустая строка сохраняется
func TitleOrDefault(title *string) string {
	if title == nil {
		return DefaultTitle
	}
	return *title
}

type Note struct {
	ID       string `json:"id" doc:"Opaque note id; generated when empty"`
	Title    string `json:"title" doc:"Note title"`
	Body     string `json:"body" doc:"Note body"`
	Position int    `json:"-"`
}
