package api

type DocRequest struct {
	JobDescription string `json:"job_description"`
	Model          string `json:"model,omitempty"`
}
