package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/annel0/dig-planner/internal/export"
	"github.com/annel0/dig-planner/internal/mapgrid"
	"github.com/annel0/dig-planner/internal/storage"
	"github.com/annel0/dig-planner/internal/tile"
	"github.com/annel0/dig-planner/internal/vec"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Сервер создаётся один раз: prometheus middleware регистрирует
// метрики в глобальном регистре и не переживёт второй конструктор
func TestRestServer(t *testing.T) {
	snapshots := storage.NewMemorySnapshotStore()
	runs := storage.NewMemoryRunRepo()
	service := export.NewService(runs, nil)

	server := NewRestServer(Config{
		Service:   service,
		Runs:      runs,
		Snapshots: snapshots,
		Defaults:  export.Options{BaseDir: t.TempDir()},
	})

	// Снимок тестового мира: один видимый каменный слой
	grid := mapgrid.NewMapGrid(vec.Vec3{X: 2, Y: 1, Z: 1}, 10)
	grid.SetTile(vec.Vec3{}, tile.Tile{Shape: tile.ShapeWall, Material: tile.MaterialStone, Visible: true})
	grid.SetTile(vec.Vec3{X: 1}, tile.Tile{Shape: tile.ShapeFloor, Material: tile.MaterialGrassDark, Visible: true})
	require.NoError(t, snapshots.SaveWorld(context.Background(), "fortress", grid.ToSnapshot()))

	do := func(method, path string, body interface{}) *httptest.ResponseRecorder {
		var buf bytes.Buffer
		if body != nil {
			require.NoError(t, json.NewEncoder(&buf).Encode(body))
		}
		req := httptest.NewRequest(method, path, &buf)
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		server.router.ServeHTTP(w, req)
		return w
	}

	var runID string

	t.Run("Health", func(t *testing.T) {
		w := do(http.MethodGet, "/health", nil)
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("ListWorlds", func(t *testing.T) {
		w := do(http.MethodGet, "/api/worlds", nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "fortress")
	})

	t.Run("ExportUnknownWorld", func(t *testing.T) {
		w := do(http.MethodPost, "/api/export", map[string]interface{}{"world": "nowhere"})
		assert.Equal(t, http.StatusNotFound, w.Code, "Неизвестный мир должен давать 404")
	})

	t.Run("ExportMissingWorldField", func(t *testing.T) {
		w := do(http.MethodPost, "/api/export", map[string]interface{}{})
		assert.Equal(t, http.StatusBadRequest, w.Code, "Пустое имя мира должно отклоняться")
	})

	t.Run("Export", func(t *testing.T) {
		w := do(http.MethodPost, "/api/export", map[string]interface{}{"world": "fortress"})
		require.Equal(t, http.StatusOK, w.Code, "Экспорт известного мира должен удаваться: %s", w.Body.String())

		var resp struct {
			Success bool `json:"success"`
			Data    struct {
				RunID      string `json:"run_id"`
				Elevations []int  `json:"elevations"`
			} `json:"data"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.True(t, resp.Success)
		assert.Equal(t, []int{10}, resp.Data.Elevations, "Единственный слой на высоте origin")
		runID = resp.Data.RunID
	})

	t.Run("GetRun", func(t *testing.T) {
		require.NotEmpty(t, runID, "Запуск должен быть создан предыдущим подтестом")
		w := do(http.MethodGet, "/api/runs/"+runID, nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "fortress")
	})

	t.Run("GetRunNotFound", func(t *testing.T) {
		w := do(http.MethodGet, "/api/runs/no-such-run", nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("ListRuns", func(t *testing.T) {
		w := do(http.MethodGet, "/api/runs", nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), runID)
	})

	t.Run("ServerInfo", func(t *testing.T) {
		w := do(http.MethodGet, "/api/server", nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "Dig Planner")
	})

	t.Run("DeleteWorld", func(t *testing.T) {
		w := do(http.MethodDelete, "/api/worlds/fortress", nil)
		require.Equal(t, http.StatusOK, w.Code)

		w = do(http.MethodPost, "/api/export", map[string]interface{}{"world": "fortress"})
		assert.Equal(t, http.StatusNotFound, w.Code, "Удалённый мир больше не экспортируется")
	})
}
