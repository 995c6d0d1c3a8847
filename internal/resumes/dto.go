package resumes

import "resume-analyzer/internal/analysis"

// AnalyzeResponse is the outward-facing representation of a Report.
type AnalyzeResponse struct {
	Result      analysis.Result `json:"result"`
	TextPreview string          `json:"textPreview"`
	TextLength  int             `json:"textLength"`
	Provider    string          `json:"provider"`
}

// ExtractResponse carries the raw extracted text.
type ExtractResponse struct {
	Text       string `json:"text"`
	TextLength int    `json:"textLength"`
}

// TechniquesResponse lists résumé-writing tips.
type TechniquesResponse struct {
	Techniques []string `json:"techniques"`
}

// ToAnalyzeResponse converts a Report into its JSON shape.
func ToAnalyzeResponse(r Report) AnalyzeResponse {
	return AnalyzeResponse{
		Result:      r.Result,
		TextPreview: r.TextPreview,
		TextLength:  r.TextLength,
		Provider:    r.Provider,
	}
}
