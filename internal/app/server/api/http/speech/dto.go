package speech

type ttsInput struct {
	Body ttsRequest
}

type ttsRequest struct {
	_    struct{} `json:"-" additionalProperties:"true"`
	Text string   `json:"text,omitempty" doc:"Text to synthesize" maxLength:"5000"`
}

type ttsOutput struct {
	ContentType        string `header:"Content-Type"`
	ContentDisposition string `header:"Content-Disposition"`
	Body               []byte
}
