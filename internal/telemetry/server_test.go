package telemetry

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/teardown/internal/plan"
	"github.com/Faultbox/teardown/internal/viewer"
)

func get(t *testing.T, s *Server, path string) (int, map[string]any) {
	t.Helper()
	resp, err := s.App().Test(httptest.NewRequest(http.MethodGet, path, nil))
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var out map[string]any
	require.NoError(t, json.Unmarshal(body, &out), string(body))
	return resp.StatusCode, out
}

func TestLiveness(t *testing.T) {
	s := NewServer(Config{}, NewStore(), nil)
	code, body := get(t, s, "/health/live")
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "alive", body["status"])
}

func TestStateReadout(t *testing.T) {
	store := NewStore()
	s := NewServer(Config{}, store, nil)

	snap := viewer.Snapshot{
		Product:     "kettle",
		Status:      "playing",
		Playing:     true,
		Step:        1,
		StepCount:   3,
		CurrentPart: "handle",
		Highlighted: []string{"handle"},
		Camera: viewer.CameraReadout{
			Position:  [3]float32{1, 2, 3},
			Animating: true,
		},
	}
	store.PublishState(snap)
	snap.Highlighted[0] = "mutated"

	code, body := get(t, s, "/api/v1/state")
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "playing", body["status"])
	assert.Equal(t, float64(1), body["step"])
	assert.Equal(t, "handle", body["current_part"])
	assert.Equal(t, []any{"handle"}, body["highlighted"])
	assert.NotContains(t, body, "scene_error")

	cam, ok := body["camera"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, []any{float64(1), float64(2), float64(3)}, cam["position"])
	assert.Equal(t, true, cam["animating"])
}

func TestPlanReadout(t *testing.T) {
	store := NewStore()
	s := NewServer(Config{}, store, nil)

	code, body := get(t, s, "/api/v1/plan")
	assert.Equal(t, http.StatusNotFound, code)
	assert.Equal(t, "no plan loaded", body["error"])

	store.PublishPlan(&plan.Plan{
		ProductID: "kettle",
		Sequence:  []string{"lid", "handle"},
		AnimationSteps: []plan.AnimationStep{
			{Step: 1, PartID: "lid", Duration: 1},
		},
		Metrics: plan.Metrics{TotalTime: 7.5, Algorithm: "dijkstra"},
	})

	code, body = get(t, s, "/api/v1/plan")
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "kettle", body["product_id"])
	assert.Equal(t, []any{"lid", "handle"}, body["sequence"])
	metrics, ok := body["metrics"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, 7.5, metrics["total_time"])
	assert.Equal(t, "dijkstra", metrics["algorithm"])

	store.PublishPlan(nil)
	code, _ = get(t, s, "/api/v1/plan")
	assert.Equal(t, http.StatusNotFound, code)
}

func TestViewerPublishesIntoStore(t *testing.T) {
	store := NewStore()
	v := viewer.New(viewer.DefaultOptions(), nil)
	v.AddPublisher(store)
	v.SetPlan(&plan.Plan{ProductID: "kettle", Sequence: []string{"lid"}})

	st := store.State()
	assert.Equal(t, "kettle", st.Product)
	assert.Equal(t, "stopped", st.Status)
	assert.Equal(t, viewer.ErrNoScene.Error(), st.SceneError)

	p, ok := store.Plan()
	require.True(t, ok)
	assert.Equal(t, []string{"lid"}, p.Sequence)
}
