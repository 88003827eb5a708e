package note

import "notebook/internal/domain/note"

type noteView struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	Body  string `json:"body"`
}

type noteRequest struct {
	_     struct{} `json:"-" additionalProperties:"true"`
	ID    string   `json:"id,omitempty" doc:"Opaque note id, generated when empty"`
	Title *string  `json:"title,omitempty" doc:"Defaults to \"Untitled\" when omitted"`
	Body  string   `json:"body,omitempty"`
}

type listOutput struct {
	Body []noteView
}

type replaceInput struct {
	Body replaceRequest
}

type replaceRequest struct {
	Notes []noteRequest `json:"notes"`
}

type replaceOutput struct {
	Body replaceResponse
}

type replaceResponse struct {
	Message string `json:"message"`
	Count   int    `json:"count"`
}

func toDomain(in []noteRequest) []note.Note {
	out := make([]note.Note, 0, len(in))
	for _, n := range in {
		out = append(out, note.Note{ID: n.ID, Title: note.TitleOrDefault(n.Title), Body: n.Body})
	}
	return out
}

func toView(in []note.Note) []noteView {
	out := make([]noteView, 0, len(in))
	for _, n := range in {
		out = append(out, noteView{ID: n.ID, Title: n.Title, Body: n.Body})
	}
	return out
}
