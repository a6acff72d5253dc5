package youtube

import (
	"encoding/json"
	"net/http"
	"net/url"
	"strings"
	"time"

	"terreiro-backend/internal/config"

	"github.com/gofiber/fiber/v2"
)

// Proxy fino da busca de áudios no YouTube Data API. Sem cache e sem
// rate limit próprio, quem manda é a cota da API.

const (
	searchEndpoint = "https://www.googleapis.com/youtube/v3/search"
	maxResults     = "8"
	musicCategory  = "10"
)

var httpClient = &http.Client{Timeout: 5 * time.Second}

type SearchResult struct {
	ID      string `json:"id"`
	Title   string `json:"title"`
	Thumb   string `json:"thumb"`
	Channel string `json:"channel"`
}

type searchAPIResponse struct {
	Items []struct {
		ID struct {
			VideoID string `json:"videoId"`
		} `json:"id"`
		Snippet struct {
			Title      string `json:"title"`
			Thumbnails struct {
				Default struct {
					URL string `json:"url"`
				} `json:"default"`
			} `json:"thumbnails"`
			ChannelTitle string `json:"channelTitle"`
		} `json:"snippet"`
	} `json:"items"`
}

// GET /api/youtube/search?q=cantiga de caboclo
func SearchHandler(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		q := strings.TrimSpace(c.Query("q"))
		if q == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Parâmetro q é obrigatório")
		}

		if cfg.YouTubeAPIKey == "" {
			return fiber.NewError(fiber.StatusServiceUnavailable, "Busca do YouTube não configurada")
		}

		params := url.Values{
			"key":             {cfg.YouTubeAPIKey},
			"q":               {q},
			"part":            {"snippet"},
			"type":            {"video"},
			"videoCategoryId": {musicCategory},
			"maxResults":      {maxResults},
			"fields":          {"items(id/videoId,snippet/title,snippet/thumbnails/default/url,snippet/channelTitle)"},
		}

		resp, err := httpClient.Get(searchEndpoint + "?" + params.Encode())
		if err != nil {
			return fiber.NewError(fiber.StatusBadGateway, "Falha na consulta ao YouTube")
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			return fiber.NewError(fiber.StatusBadGateway, "Consulta ao YouTube retornou erro")
		}

		var body searchAPIResponse
		if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
			return fiber.NewError(fiber.StatusBadGateway, "Resposta do YouTube inválida")
		}

		results := make([]SearchResult, 0, len(body.Items))
		for _, item := range body.Items {
			if item.ID.VideoID == "" {
				continue
			}
			results = append(results, SearchResult{
				ID:      item.ID.VideoID,
				Title:   item.Snippet.Title,
				Thumb:   item.Snippet.Thumbnails.Default.URL,
				Channel: item.Snippet.ChannelTitle,
			})
		}

		return c.JSON(fiber.Map{"items": results})
	}
}
