package user

import (
	"net/http"

	"notebook/internal/domain/note"
	"notebook/internal/domain/user"
)

type credentialsRequest struct {
	_        struct{} `json:"-" additionalProperties:"true"`
	UID      string   `json:"uid,omitempty" doc:"External identity (third-party auth UID)"`
	Username string   `json:"username,omitempty" doc:"Username, used by the password strategy"`
	Password string   `json:"password,omitempty" doc:"Password, required by the password strategy"`
}

func (r credentialsRequest) credentials() user.Credentials {
	return user.Credentials{UID: r.UID, Username: r.Username, Password: r.Password}
}

type userView struct {
	ID       int    `json:"id"`
	Identity string `json:"identity"`
}

func viewOf(u user.User) userView {
	return userView{ID: u.ID, Identity: u.Identity}
}

type registerInput struct {
	Body credentialsRequest
}

type registerOutput struct {
	Body authResponse
}

type loginInput struct {
	Body credentialsRequest
}

type loginOutput struct {
	SetCookie []http.Cookie `header:"Set-Cookie"`
	Body      authResponse
}

type authResponse struct {
	Message string   `json:"message"`
	User    userView `json:"user"`
}

type logoutNote struct {
	_     struct{} `json:"-" additionalProperties:"true"`
	ID    string   `json:"id,omitempty"`
	Title *string  `json:"title,omitempty"`
	Body  string   `json:"body,omitempty"`
}

type logoutRequest struct {
	_     struct{}       `json:"-" additionalProperties:"true"`
	Notes *[]logoutNote `json:"notes,omitempty" doc:"When present, replaces the user's notes before logging out"`
}

func (r *logoutRequest) notes() ([]note.Note, bool) {
	if r == nil || r.Notes == nil {
		return nil, false
	}
	out := make([]note.Note, 0, len(*r.Notes))
	for _, n := range *r.Notes {
		out = append(out, note.Note{ID: n.ID, Title: note.TitleOrDefault(n.Title), Body: n.Body})
	}
	return out, true
}

type logoutInput struct {
	Body *logoutRequest `required:"false"`
}

type logoutOutput struct {
	SetCookie []http.Cookie `header:"Set-Cookie"`
	Body      messageResponse
}

type messageResponse struct {
	Message string `json:"message"`
}

type protectedOutput struct {
	Body protectedResponse
}

type protectedResponse struct {
	LoggedInAs string `json:"logged_in_as"`
}
