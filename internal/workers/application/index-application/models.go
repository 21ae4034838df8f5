package indexapplication

type Input struct {
	ApplicationID string `json:"applicationId"`
}

type Output struct {
	ApplicationID string `json:"applicationId"`
	IndexName     string `json:"indexName"`
	Indexed       bool   `json:"indexed"`
}
