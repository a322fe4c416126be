package server

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplyEffect_Vignette(t *testing.T) {
	srv, _ := newTestServer(t, testConfig())
	id := createSession(t, srv, "")

	rec := doRequest(srv, http.MethodPost, "/api/sessions/"+id.String()+"/effects", `{"effect":"vignette"}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var layer map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &layer))
	assert.Equal(t, "overlay", layer["type"])
	assert.Equal(t, "multiply", layer["blend_mode"])
	assert.NotEmpty(t, layer["id"])
}

func TestApplyEffect_GlowDefaultsToPaletteColor(t *testing.T) {
	srv, _ := newTestServer(t, testConfig())
	id := createSession(t, srv, "")

	rec := doRequest(srv, http.MethodPost, "/api/sessions/"+id.String()+"/effects", `{"effect":"glow"}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	var layer struct {
		Content struct {
			Color string `json:"color"`
		} `json:"content"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &layer))
	assert.NotEmpty(t, layer.Content.Color)
}

func TestApplyEffect_Unknown(t *testing.T) {
	srv, _ := newTestServer(t, testConfig())
	id := createSession(t, srv, "")

	rec := doRequest(srv, http.MethodPost, "/api/sessions/"+id.String()+"/effects", `{"effect":"sparkle"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestApplyLayout_Split(t *testing.T) {
	srv, _ := newTestServer(t, testConfig())
	id := createSession(t, srv, "")

	body := `{"layout":"split","left":"feed-a","right":"feed-b","split_position":0.5,"divider_width":2,"divider_color":"#000000"}`
	rec := doRequest(srv, http.MethodPost, "/api/sessions/"+id.String()+"/layout", body)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var resp struct {
		Layers []map[string]any `json:"layers"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Len(t, resp.Layers, 3)
}

func TestApplyLayout_SplitPositionOutOfRange(t *testing.T) {
	srv, _ := newTestServer(t, testConfig())
	id := createSession(t, srv, "")

	body := `{"layout":"split","left":"a","right":"b","split_position":1.5}`
	rec := doRequest(srv, http.MethodPost, "/api/sessions/"+id.String()+"/layout", body)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestApplyLayout_PictureInPicture(t *testing.T) {
	srv, _ := newTestServer(t, testConfig())
	id := createSession(t, srv, "")

	body := `{"layout":"pip","main":"feed-a","pip":"feed-b","x":1440,"y":60,"width":420,"height":236,"border_width":3,"border_color":"#ffffff"}`
	rec := doRequest(srv, http.MethodPost, "/api/sessions/"+id.String()+"/layout", body)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var resp struct {
		Layers []map[string]any `json:"layers"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Len(t, resp.Layers, 3)
}

func TestApplyLayout_PipMissingSize(t *testing.T) {
	srv, _ := newTestServer(t, testConfig())
	id := createSession(t, srv, "")

	rec := doRequest(srv, http.MethodPost, "/api/sessions/"+id.String()+"/layout", `{"layout":"pip","main":"a","pip":"b"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestApplyLayout_Unknown(t *testing.T) {
	srv, _ := newTestServer(t, testConfig())
	id := createSession(t, srv, "")

	rec := doRequest(srv, http.MethodPost, "/api/sessions/"+id.String()+"/layout", `{"layout":"quad"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestClearLayers_TypeFilter(t *testing.T) {
	srv, service := newTestServer(t, testConfig())
	id := createSession(t, srv, "")

	split := `{"layout":"split","left":"a","right":"b","split_position":0.5,"divider_width":2,"divider_color":"#000"}`
	rec := doRequest(srv, http.MethodPost, "/api/sessions/"+id.String()+"/layout", split)
	require.Equal(t, http.StatusCreated, rec.Code)
	rec = doRequest(srv, http.MethodPost, "/api/sessions/"+id.String()+"/effects", `{"effect":"vignette"}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	// Drop the split panes and divider; keep the vignette overlay.
	rec = doRequest(srv, http.MethodDelete, "/api/sessions/"+id.String()+"/layers?type=video&type=foreground", "")
	require.Equal(t, http.StatusOK, rec.Code)

	session, err := service.GetSession(id)
	require.NoError(t, err)
	assert.Equal(t, 1, session.Stats().Compositor.CustomLayers)
}

func TestClearLayers_UnknownType(t *testing.T) {
	srv, _ := newTestServer(t, testConfig())
	id := createSession(t, srv, "")

	rec := doRequest(srv, http.MethodDelete, "/api/sessions/"+id.String()+"/layers?type=bogus", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRemoveLayer(t *testing.T) {
	srv, _ := newTestServer(t, testConfig())
	id := createSession(t, srv, "")

	rec := doRequest(srv, http.MethodPost, "/api/sessions/"+id.String()+"/effects", `{"effect":"aberration"}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	var layer struct {
		ID uuid.UUID `json:"id"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &layer))

	rec = doRequest(srv, http.MethodDelete, "/api/sessions/"+id.String()+"/layers/"+layer.ID.String(), "")
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = doRequest(srv, http.MethodDelete, "/api/sessions/"+id.String()+"/layers/"+layer.ID.String(), "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
