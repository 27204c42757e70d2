package phrase

import "github.com/appcurve/olivia-party-sub000/internal/domain"

type PhraseInput struct {
	Label    string `json:"label"`
	Text     string `json:"text" binding:"required"`
	Language string `json:"language" binding:"required"`
}

type ListRequest struct {
	Name    string        `json:"name" binding:"required"`
	Phrases []PhraseInput `json:"phrases" binding:"dive"`
}

type PhraseResponse struct {
	Label    string `json:"label"`
	Text     string `json:"text"`
	Language string `json:"language"`
}

type ListResponse struct {
	UUID    string           `json:"uuid"`
	Name    string           `json:"name"`
	Phrases []PhraseResponse `json:"phrases"`
}

func toListResponse(list *domain.PhraseList) ListResponse {
	phrases := make([]PhraseResponse, 0, len(list.Phrases))
	for _, p := range list.Phrases {
		phrases = append(phrases, PhraseResponse{
			Label:    p.Label,
			Text:     p.Text,
			Language: p.Language,
		})
	}
	return ListResponse{UUID: list.UUID, Name: list.Name, Phrases: phrases}
}
