package dictionary

type definitionInput struct {
	Word string `query:"word" doc:"Word to look up"`
}

type definitionOutput struct {
	ContentType string `header:"Content-Type"`
	Body        []byte
}
