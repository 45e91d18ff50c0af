package api

type ChatResponse struct {
	Answer string `json:"answer"`
}
