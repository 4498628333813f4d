package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"os"
	"sort"
	"sync"

	"github.com/alessandrolsdev/clutch/utils"
)

// ErrPrivateProfile is returned when the Steam profile hides its game
// list (or owns nothing), which the API reports as an empty response.
var ErrPrivateProfile = errors.New("steam profile is private or has no games")

const defaultSteamAPIBase = "http://api.steampowered.com"

// SteamClient talks to the Steam Web API. All calls go through the
// shared bounded-timeout HTTP client.
type SteamClient struct {
	APIKey     string
	BaseURL    string
	HTTPClient *http.Client
}

func NewSteamClient() *SteamClient {
	base := os.Getenv("STEAM_API_BASE_URL")
	if base == "" {
		base = defaultSteamAPIBase
	}
	return &SteamClient{
		APIKey:     os.Getenv("STEAM_API_KEY"),
		BaseURL:    base,
		HTTPClient: utils.HTTPClient,
	}
}

// Wire shapes, trimmed to the fields the sync consumes.

type steamPlayerSummary struct {
	PersonaName   string `json:"personaname"`
	RealName      string `json:"realname"`
	AvatarFull    string `json:"avatarfull"`
	CountryCode   string `json:"loccountrycode"`
	PersonaState  int    `json:"personastate"`
	GameExtraInfo string `json:"gameextrainfo"`
}

type steamOwnedGame struct {
	AppID           int    `json:"appid"`
	Name            string `json:"name"`
	PlaytimeForever int    `json:"playtime_forever"`
	ImgIconURL      string `json:"img_icon_url"`
}

type steamOwnedGames struct {
	GameCount int              `json:"game_count"`
	Games     []steamOwnedGame `json:"games"`
}

type steamPlayerAchievement struct {
	APIName    string `json:"apiname"`
	Achieved   int    `json:"achieved"`
	UnlockTime int64  `json:"unlocktime"`
}

type steamPlayerStats struct {
	GameName     string                   `json:"gameName"`
	Achievements []steamPlayerAchievement `json:"achievements"`
}

type steamSchemaAchievement struct {
	Name        string `json:"name"`
	DisplayName string `json:"displayName"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
	IconGray    string `json:"icongray"`
}

type steamGameSchema struct {
	GameName           string `json:"gameName"`
	AvailableGameStats struct {
		Achievements []steamSchemaAchievement `json:"achievements"`
	} `json:"availableGameStats"`
}

func (sc *SteamClient) get(ctx context.Context, path string, params map[string]string, out interface{}) error {
	base, err := url.Parse(sc.BaseURL)
	if err != nil {
		return fmt.Errorf("invalid steam API base URL %q: %w", sc.BaseURL, err)
	}
	endpoint := base.JoinPath(path)

	q := endpoint.Query()
	q.Set("key", sc.APIKey)
	for k, v := range params {
		q.Set(k, v)
	}
	endpoint.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, "GET", endpoint.String(), nil)
	if err != nil {
		return fmt.Errorf("failed to create steam request: %w", err)
	}

	resp, err := sc.HTTPClient.Do(req)
	if err != nil {
		return fmt.Errorf("steam request failed: %w", err)
	}
	defer func() {
		_, _ = io.Copy(io.Discard, resp.Body)
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return fmt.Errorf("steam returned %d for %s: %s", resp.StatusCode, path, string(body))
	}

	return json.NewDecoder(resp.Body).Decode(out)
}

// GetPlayerSummary fetches the public profile for a steam id.
func (sc *SteamClient) GetPlayerSummary(ctx context.Context, steamID string) (*steamPlayerSummary, error) {
	var payload struct {
		Response struct {
			Players []steamPlayerSummary `json:"players"`
		} `json:"response"`
	}
	err := sc.get(ctx, "/ISteamUser/GetPlayerSummaries/v0002/", map[string]string{
		"steamids": steamID,
	}, &payload)
	if err != nil {
		return nil, err
	}
	if len(payload.Response.Players) == 0 {
		return nil, fmt.Errorf("no player found for steam id %s", steamID)
	}
	return &payload.Response.Players[0], nil
}

// GetOwnedGames fetches the full library with playtime.
func (sc *SteamClient) GetOwnedGames(ctx context.Context, steamID string) (*steamOwnedGames, error) {
	var payload struct {
		Response steamOwnedGames `json:"response"`
	}
	err := sc.get(ctx, "/IPlayerService/GetOwnedGames/v0001/", map[string]string{
		"steamid":                   steamID,
		"format":                    "json",
		"include_appinfo":           "true",
		"include_played_free_games": "true",
	}, &payload)
	if err != nil {
		return nil, err
	}
	return &payload.Response, nil
}

// GetPlayerAchievements fetches the player's unlock state for one game.
func (sc *SteamClient) GetPlayerAchievements(ctx context.Context, steamID string, appID int) (*steamPlayerStats, error) {
	var payload struct {
		PlayerStats *steamPlayerStats `json:"playerstats"`
	}
	err := sc.get(ctx, "/ISteamUserStats/GetPlayerAchievements/v0001/", map[string]string{
		"steamid": steamID,
		"appid":   fmt.Sprintf("%d", appID),
	}, &payload)
	if err != nil {
		return nil, err
	}
	if payload.PlayerStats == nil {
		return nil, fmt.Errorf("no player stats for app %d", appID)
	}
	return payload.PlayerStats, nil
}

// GetSchemaForGame fetches achievement names, descriptions and icons.
func (sc *SteamClient) GetSchemaForGame(ctx context.Context, appID int) (*steamGameSchema, error) {
	var payload struct {
		Game *steamGameSchema `json:"game"`
	}
	err := sc.get(ctx, "/ISteamUserStats/GetSchemaForGame/v2/", map[string]string{
		"appid": fmt.Sprintf("%d", appID),
	}, &payload)
	if err != nil {
		return nil, err
	}
	if payload.Game == nil || payload.Game.GameName == "" {
		return nil, fmt.Errorf("no schema for app %d", appID)
	}
	return payload.Game, nil
}

func steamIconURL(appID int, iconHash string) string {
	return fmt.Sprintf("http://media.steampowered.com/steamcommunity/public/images/apps/%d/%s.jpg", appID, iconHash)
}

func steamGameHours(minutes int) int {
	return minutes / 60
}

// sortByPlaytime returns the top n games by playtime, descending.
func sortByPlaytime(games []steamOwnedGame, n int) []steamOwnedGame {
	sorted := make([]steamOwnedGame, len(games))
	copy(sorted, games)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].PlaytimeForever > sorted[j].PlaytimeForever
	})
	if len(sorted) > n {
		sorted = sorted[:n]
	}
	return sorted
}

// fetchTopGames enriches the top-3 titles with achievement completion,
// fanning out one goroutine per game. A failed fetch nils that game's
// achievement block instead of failing the sync (best-effort).
func (sc *SteamClient) fetchTopGames(ctx context.Context, steamID string, games []steamOwnedGame) []topGameResult {
	top := sortByPlaytime(games, 3)
	results := make([]topGameResult, len(top))

	var wg sync.WaitGroup
	for i, game := range top {
		wg.Add(1)
		go func(i int, game steamOwnedGame) {
			defer wg.Done()
			result := topGameResult{
				AppID: game.AppID,
				Name:  game.Name,
				Hours: steamGameHours(game.PlaytimeForever),
				Icon:  steamIconURL(game.AppID, game.ImgIconURL),
			}
			stats, err := sc.GetPlayerAchievements(ctx, steamID, game.AppID)
			if err != nil {
				log.Printf("⚠️  Achievement fetch failed for app %d: %v", game.AppID, err)
				results[i] = result
				return
			}
			achieved := 0
			for _, a := range stats.Achievements {
				if a.Achieved == 1 {
					achieved++
				}
			}
			total := len(stats.Achievements)
			percent := 0
			if total > 0 {
				percent = int(float64(achieved)/float64(total)*100 + 0.5)
			}
			result.Achieved = &achievementCount{Achieved: achieved, Total: total, Percent: percent}
			results[i] = result
		}(i, game)
	}
	wg.Wait()

	return results
}

type achievementCount struct {
	Achieved int
	Total    int
	Percent  int
}

type topGameResult struct {
	AppID    int
	Name     string
	Hours    int
	Icon     string
	Achieved *achievementCount
}
