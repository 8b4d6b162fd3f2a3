package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"liyu1981.xyz/prioribin-service/pkg/models"
)

type apiClient struct {
	base string
	http *http.Client
}

func newAPIClient(base string) *apiClient {
	return &apiClient{
		base: strings.TrimRight(base, "/"),
		http: &http.Client{Timeout: 10 * time.Second},
	}
}

func (c *apiClient) do(method, path string, body any, out any) (int, error) {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return 0, err
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequest(method, c.base+path, reader)
	if err != nil {
		return 0, err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		msg, _ := io.ReadAll(resp.Body)
		return resp.StatusCode, fmt.Errorf("%s %s: %s: %s", method, path, resp.Status, strings.TrimSpace(string(msg)))
	}
	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return resp.StatusCode, fmt.Errorf("decode %s: %w", path, err)
		}
	}
	return resp.StatusCode, nil
}

func (c *apiClient) healthy() bool {
	code, err := c.do(http.MethodGet, "/healthz", nil, nil)
	return err == nil && code == http.StatusOK
}

func (c *apiClient) register(binID string, lat, lon float64) (*models.Bin, bool, error) {
	var bin models.Bin
	code, err := c.do(http.MethodPost, "/api/bins", map[string]any{"bin_id": binID, "lat": lat, "lon": lon}, &bin)
	if err != nil {
		return nil, false, err
	}
	return &bin, code == http.StatusCreated, nil
}

func (c *apiClient) listBins(priorityOnly bool) ([]models.Bin, error) {
	path := "/api/bins"
	if priorityOnly {
		path += "/priority"
	}
	var bins []models.Bin
	_, err := c.do(http.MethodGet, path, nil, &bins)
	return bins, err
}

func (c *apiClient) history(binID string) ([]models.HistoryEvent, error) {
	var events []models.HistoryEvent
	_, err := c.do(http.MethodGet, "/api/bins/"+binID+"/history", nil, &events)
	return events, err
}

func (c *apiClient) updateFill(binID string, fillLevel int) (models.Status, error) {
	var resp struct {
		Status models.Status `json:"status"`
	}
	_, err := c.do(http.MethodPost, "/api/bins/"+binID+"/fill",
		map[string]any{"fill_level": fillLevel, "source": string(models.UpdateSourceSensor)}, &resp)
	return resp.Status, err
}
