package api

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginResponse struct {
	AccessToken string `json:"access_token"`
	Role        string `json:"role"`
}

type chatRequest struct {
	Question string `json:"question"`
}

// Citation points into a source document chunk returned alongside an
// answer. Chunk and Page are pointers because index 0 is a valid value
// and must be distinguishable from absent.
type Citation struct {
	Source  string `json:"source"`
	Chunk   *int   `json:"chunk"`
	Page    *int   `json:"page"`
	Preview string `json:"preview"`
}

// Previewable reports whether the citation carries enough information to
// request a source preview. Both source and chunk are required.
func (c Citation) Previewable() bool {
	return c.Source != "" && c.Chunk != nil
}

// DisplayPage returns the page number to show, falling back to the chunk
// index when the backend sent no page.
func (c Citation) DisplayPage() (int, bool) {
	if c.Page != nil {
		return *c.Page, true
	}
	if c.Chunk != nil {
		return *c.Chunk, true
	}
	return 0, false
}

type ChatResponse struct {
	Answer    string     `json:"answer"`
	Citations []Citation `json:"citations"`
}

type uploadResponse struct {
	Saved []string `json:"saved"`
}

// errorBody is the backend's structured error envelope.
type errorBody struct {
	Detail string `json:"detail"`
}
